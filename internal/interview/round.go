package interview

import "strings"

// Round is an interview phase.
type Round string

const (
	RoundTechnical Round = "TR"
	RoundHR        Round = "HR"
)

// ParseRound maps "TR" or "Technical" in any case to RoundTechnical.
// Every other value, including empty, is RoundHR.
func ParseRound(s string) Round {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tr", "technical":
		return RoundTechnical
	default:
		return RoundHR
	}
}

// Label is the human readable round name used in prompts.
func (r Round) Label() string {
	if r == RoundTechnical {
		return "Technical"
	}
	return "HR"
}

func (r Round) String() string {
	if r == RoundTechnical {
		return string(RoundTechnical)
	}
	return string(RoundHR)
}
