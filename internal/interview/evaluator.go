package interview

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/ats-interviewer/internal/ai"
	"github.com/spigell/ats-interviewer/internal/ats"
	"github.com/spigell/ats-interviewer/internal/utils"
)

const (
	minScore = 0
	maxScore = 10

	maxKeywordPoints = 2
)

// Evaluation is the score and feedback for a single answer.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Evaluator scores interview answers.
type Evaluator struct {
	generator ai.TextGenerator
	timeout   time.Duration
	logger    *zap.Logger
	maxLogLen int
}

// NewEvaluator builds an Evaluator. A nil generator means only the local heuristic is used.
func NewEvaluator(generator ai.TextGenerator, logger *zap.Logger, timeout time.Duration, maxLogLength int) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Evaluator{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Evaluate returns one evaluation per answer in the same order. Any remote
// failure, including a response that does not parse as a whole, switches the
// entire batch to the local heuristic.
func (e *Evaluator) Evaluate(ctx context.Context, answers []string, jobTitle string, round Round) []Evaluation {
	if len(answers) == 0 {
		return []Evaluation{}
	}

	if e.generator == nil {
		e.logger.Debug("no ai generator configured, using heuristic evaluation", zap.Stringer("round", round))
		return LocalEvaluate(answers, jobTitle)
	}

	prompt := buildEvaluationPrompt(answers, jobTitle, round)
	e.logger.Debug("evaluate answers request",
		zap.Stringer("round", round),
		zap.Int("answers", len(answers)),
		zap.String("model", modelName(e.generator)),
		zap.String("prompt_preview", utils.TruncateForLog(utils.SingleLine(prompt), e.maxLogLen)),
	)

	raw, err := generate(ctx, e.generator, e.timeout, prompt, evaluationTokens)
	if err != nil {
		e.logger.Warn("answer evaluation failed, using heuristic evaluation",
			zap.Stringer("round", round),
			zap.Error(err),
		)
		return LocalEvaluate(answers, jobTitle)
	}

	evaluations, err := ParseEvaluations(raw, len(answers))
	if err != nil {
		e.logger.Warn("ai evaluation response rejected, using heuristic evaluation",
			zap.Stringer("round", round),
			zap.String("response_preview", utils.TruncateForLog(utils.SingleLine(raw), e.maxLogLen)),
			zap.Error(err),
		)
		return LocalEvaluate(answers, jobTitle)
	}

	return evaluations
}

// LocalEvaluate scores answers by length, word count and job title keywords.
func LocalEvaluate(answers []string, jobTitle string) []Evaluation {
	keywords := ats.Tokenize(jobTitle)

	evaluations := make([]Evaluation, 0, len(answers))
	for _, answer := range answers {
		evaluations = append(evaluations, evaluateLocally(answer, keywords))
	}
	return evaluations
}

func evaluateLocally(answer string, keywords []string) Evaluation {
	text := strings.ToLower(strings.TrimSpace(answer))
	length := utf8.RuneCountInString(text)

	score := 0
	if length > 20 {
		score += 3
	}
	if length > 80 {
		score += 3
	}
	if len(strings.Fields(text)) > 40 {
		score += 2
	}

	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			matches++
		}
	}
	score += min(maxKeywordPoints, matches)

	return Evaluation{
		Score:    clampScore(score),
		Feedback: fmt.Sprintf("Heuristic feedback: length %d, keywords matched %d", length, matches),
	}
}

func clampScore(score int) int {
	return max(minScore, min(maxScore, score))
}
