package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"github.com/spigell/ats-interviewer/internal/ai"
)

//go:embed questions.md
var questionsTemplate string

//go:embed evaluation.md
var evaluationTemplate string

const (
	DefaultTimeout = 20 * time.Second

	questionTokens   = 500
	evaluationTokens = 700

	defaultMaxLogLength = 200
)

func buildQuestionsPrompt(jobTitle string, round Round, jobDescription string) string {
	framing := "HR"
	if round == RoundTechnical {
		framing = "practical technical"
	}

	description := ""
	if jd := strings.TrimSpace(jobDescription); jd != "" {
		description = fmt.Sprintf("Job description:\n%s\n", jd)
	}

	prompt := strings.ReplaceAll(questionsTemplate, "{{FRAMING}}", framing)
	prompt = strings.ReplaceAll(prompt, "{{ROLE}}", jobTitle)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", description)
	return prompt
}

func buildEvaluationPrompt(answers []string, jobTitle string, round Round) string {
	lines := make([]string, 0, len(answers))
	for i, answer := range answers {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, answer))
	}

	prompt := strings.ReplaceAll(evaluationTemplate, "{{ROUND}}", round.Label())
	prompt = strings.ReplaceAll(prompt, "{{ROLE}}", jobTitle)
	prompt = strings.ReplaceAll(prompt, "{{ANSWERS}}", strings.Join(lines, "\n"))
	return prompt
}

// generate runs one bounded remote call. The deadline holds even if the
// generator ignores its context.
func generate(ctx context.Context, generator ai.TextGenerator, timeout time.Duration, prompt string, maxTokens int) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		text, err := generator.GenerateText(ctx, prompt, maxTokens)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: no response after %s", ai.ErrRemoteTimeout, timeout)
		}
		return "", ai.Classify(ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", ai.Classify(res.err)
		}
		return res.text, nil
	}
}

func modelName(generator ai.TextGenerator) string {
	if namer, ok := generator.(ai.ModelNamer); ok {
		return namer.Model()
	}
	return ""
}
