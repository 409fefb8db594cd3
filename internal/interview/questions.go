package interview

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/ats-interviewer/internal/ai"
	"github.com/spigell/ats-interviewer/internal/utils"
)

// QuestionCount is the size of every question batch.
const QuestionCount = 5

const minQuestionLength = 6

var enumerationRe = regexp.MustCompile(`^\s*[-•*\d.)]+\s*`)

// Questioner produces interview questions for a role.
type Questioner struct {
	generator ai.TextGenerator
	timeout   time.Duration
	logger    *zap.Logger
	maxLogLen int
}

// NewQuestioner builds a Questioner. A nil generator means only local templates are used.
func NewQuestioner(generator ai.TextGenerator, logger *zap.Logger, timeout time.Duration, maxLogLength int) *Questioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Questioner{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Generate returns exactly QuestionCount questions. It never fails: any remote
// problem falls back to the local templates.
func (q *Questioner) Generate(ctx context.Context, jobTitle string, round Round, jobDescription string) []string {
	fallback := LocalQuestions(jobTitle, round)
	if q.generator == nil {
		q.logger.Debug("no ai generator configured, using local questions", zap.Stringer("round", round))
		return fallback
	}

	prompt := buildQuestionsPrompt(jobTitle, round, jobDescription)
	q.logger.Debug("generate questions request",
		zap.Stringer("round", round),
		zap.String("model", modelName(q.generator)),
		zap.String("prompt_preview", utils.TruncateForLog(utils.SingleLine(prompt), q.maxLogLen)),
	)

	raw, err := generate(ctx, q.generator, q.timeout, prompt, questionTokens)
	if err != nil {
		q.logger.Warn("question generation failed, using local questions",
			zap.Stringer("round", round),
			zap.Error(err),
		)
		return fallback
	}

	q.logger.Debug("generate questions response",
		zap.Stringer("round", round),
		zap.String("response_preview", utils.TruncateForLog(utils.SingleLine(raw), q.maxLogLen)),
	)

	questions := ParseQuestions(raw)
	if len(questions) == 0 {
		q.logger.Warn("ai response has no usable questions, using local questions", zap.Stringer("round", round))
		return fallback
	}

	// Short batches are topped up from the templates to keep the batch size.
	for i := len(questions); i < QuestionCount; i++ {
		questions = append(questions, fallback[i])
	}

	return questions
}

// ParseQuestions splits a free text response into at most QuestionCount
// questions, removing enumeration markers and lines that are too short.
func ParseQuestions(raw string) []string {
	questions := make([]string, 0, QuestionCount)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(enumerationRe.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(line) < minQuestionLength {
			continue
		}
		questions = append(questions, line)
		if len(questions) == QuestionCount {
			break
		}
	}
	return questions
}

// LocalQuestions returns the deterministic template questions for a round.
func LocalQuestions(jobTitle string, round Round) []string {
	if round == RoundTechnical {
		area := jobTitle
		if area == "" {
			area = "software"
		}
		return []string{
			"Explain your most recent " + jobTitle + " project and your role in it.",
			"Describe a technical challenge you faced related to " + jobTitle + " tasks and how you solved it.",
			"How do you approach debugging and testing in " + area + " work?",
			"Explain a core concept or tool commonly used in " + jobTitle + " roles.",
			"Describe your experience with collaborative version control (e.g., git) in " + jobTitle + " projects.",
		}
	}

	return []string{
		"Tell me about yourself and why you applied for the " + jobTitle + " role.",
		"Describe a time you worked in a team and what you contributed.",
		"How do you handle tight deadlines and pressure?",
		"Describe a time you received feedback and how you incorporated it.",
		"What motivates you to perform well in a " + jobTitle + " position?",
	}
}
