package interview

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Result aggregates both rounds of an interview.
type Result struct {
	ID           string       `json:"id"`
	JobTitle     string       `json:"jobTitle"`
	Category     string       `json:"category,omitempty"`
	TRQuestions  []string     `json:"trQuestions,omitempty"`
	HRQuestions  []string     `json:"hrQuestions,omitempty"`
	TREvaluation []Evaluation `json:"trEvaluation"`
	HREvaluation []Evaluation `json:"hrEvaluation"`
	TRScore      int          `json:"trScore"`
	HRScore      int          `json:"hrScore"`
	TotalScore   int          `json:"totalScore"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Summarize sums the per-answer scores of both rounds.
func Summarize(jobTitle string, tr, hr []Evaluation) *Result {
	if tr == nil {
		tr = []Evaluation{}
	}
	if hr == nil {
		hr = []Evaluation{}
	}

	result := &Result{
		ID:           uuid.NewString(),
		JobTitle:     jobTitle,
		TREvaluation: tr,
		HREvaluation: hr,
		TRScore:      sumScores(tr),
		HRScore:      sumScores(hr),
		CreatedAt:    time.Now().UTC(),
	}
	result.TotalScore = result.TRScore + result.HRScore
	return result
}

// MaxScore is the highest total the result could reach.
func (r *Result) MaxScore() int {
	return (len(r.TREvaluation) + len(r.HREvaluation)) * maxScore
}

// DumpToTmpFile writes the result as indented JSON to a new temp file and
// returns its name.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "interview_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func sumScores(evaluations []Evaluation) int {
	total := 0
	for _, e := range evaluations {
		total += e.Score
	}
	return total
}
