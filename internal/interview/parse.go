package interview

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrMalformedResponse is returned when an ai response has no usable evaluation array.
var ErrMalformedResponse = errors.New("ai response not in expected JSON format")

var leadingIntRe = regexp.MustCompile(`^[-+]?\d+`)

type rawEvaluation struct {
	Score    any `json:"score"`
	Feedback any `json:"feedback"`
}

// ParseEvaluations decodes the JSON array embedded in raw. The array must hold
// exactly expected objects.
func ParseEvaluations(raw string, expected int) ([]Evaluation, error) {
	span, ok := extractJSONArray(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no array found", ErrMalformedResponse)
	}

	var items []any
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	var decoded []rawEvaluation
	cfg := &mapstructure.DecoderConfig{
		Result:  &decoded,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(decoded) != expected {
		return nil, fmt.Errorf("%w: expected %d evaluations, got %d", ErrMalformedResponse, expected, len(decoded))
	}

	evaluations := make([]Evaluation, 0, len(decoded))
	for _, item := range decoded {
		evaluations = append(evaluations, Evaluation{
			Score:    clampScore(coerceInt(item.Score)),
			Feedback: coerceString(item.Feedback),
		})
	}

	return evaluations, nil
}

// extractJSONArray returns the span from the first '[' to the last ']' when it
// contains at least one object.
func extractJSONArray(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end < start {
		return "", false
	}

	span := raw[start : end+1]
	if !strings.Contains(span, "{") {
		return "", false
	}
	return span, true
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		// Clamped before conversion, out of range floats have no defined int value.
		return int(math.Round(math.Max(minScore, math.Min(maxScore, val))))
	case int:
		return val
	case string:
		digits := leadingIntRe.FindString(strings.TrimSpace(val))
		if digits == "" {
			return 0
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
