package interview

import (
	"encoding/json"
	"os"
	"testing"
)

func TestSummarize(t *testing.T) {
	tr := []Evaluation{{Score: 7}, {Score: 3}}
	hr := []Evaluation{{Score: 10}, {Score: 0}, {Score: 5}}

	result := Summarize("Backend Developer", tr, hr)
	if result.TRScore != 10 || result.HRScore != 15 || result.TotalScore != 25 {
		t.Fatalf("unexpected scores: tr=%d hr=%d total=%d", result.TRScore, result.HRScore, result.TotalScore)
	}
	if result.MaxScore() != 50 {
		t.Fatalf("expected max score 50, got %d", result.MaxScore())
	}
	if result.CreatedAt.IsZero() {
		t.Fatalf("expected creation time to be set")
	}
	if result.ID == "" || result.ID == Summarize("Backend Developer", tr, hr).ID {
		t.Fatalf("expected a unique result id, got %q", result.ID)
	}

	empty := Summarize("Designer", nil, nil)
	if empty.TotalScore != 0 || empty.TREvaluation == nil || empty.HREvaluation == nil {
		t.Fatalf("unexpected empty result: %+v", empty)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	result := Summarize("QA Engineer", []Evaluation{{Score: 6, Feedback: "ok"}}, []Evaluation{{Score: 4, Feedback: "fine"}})

	name, err := result.DumpToTmpFile()
	if err != nil {
		t.Fatalf("dump result: %v", err)
	}
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if decoded.TotalScore != 10 || decoded.JobTitle != "QA Engineer" || len(decoded.TREvaluation) != 1 {
		t.Fatalf("unexpected dumped result: %+v", decoded)
	}
}
