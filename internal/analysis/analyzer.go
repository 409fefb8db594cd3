package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-interviewer/internal/ats"
	"github.com/spigell/ats-interviewer/internal/extract"
	"github.com/spigell/ats-interviewer/internal/interview"
)

// Analysis is everything produced for one uploaded resume.
type Analysis struct {
	ID               string      `json:"id"`
	FileName         string      `json:"fileName"`
	JobTitle         string      `json:"jobTitle"`
	Category         string      `json:"category"`
	ExtractedText    string      `json:"extractedText"`
	ATS              *ats.Result `json:"ats"`
	NormalizedScore  int         `json:"normalizedScore"`
	Suggestion       string      `json:"suggestion"`
	TRQuestions      []string    `json:"trQuestions"`
	HRQuestions      []string    `json:"hrQuestions"`
	PrimaryQuestions []string    `json:"primaryQuestions"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// Deps are the collaborators of an Analyzer. Nil fields get defaults, a nil
// Questioner uses local templates only.
type Deps struct {
	Extractor  *extract.Extractor
	Scorer     *ats.Scorer
	Questioner *interview.Questioner
	Logger     *zap.Logger
}

// Analyzer runs the resume pipeline: read, extract, enrich, score and generate
// questions for both rounds.
type Analyzer struct {
	extractor   *extract.Extractor
	scorer      *ats.Scorer
	questioner  *interview.Questioner
	logger      *zap.Logger
	readTimeout time.Duration
}

func New(deps *Deps, readTimeout time.Duration) *Analyzer {
	if deps == nil {
		deps = &Deps{}
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Analyzer{
		extractor:   deps.Extractor,
		scorer:      deps.Scorer,
		questioner:  deps.Questioner,
		logger:      logger,
		readTimeout: readTimeout,
	}

	if a.extractor == nil {
		a.extractor = extract.New(logger)
	}
	if a.scorer == nil {
		a.scorer = ats.NewScorer(nil)
	}
	if a.questioner == nil {
		a.questioner = interview.NewQuestioner(nil, logger, 0, 0)
	}

	return a
}

// AnalyzeFile reads the resume at path with the read timeout and analyzes it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path, jobTitle, jobDescription string) (*Analysis, error) {
	ext := extract.Ext(path)
	if ext != extract.ExtPDF && ext != extract.ExtDOCX {
		return nil, fmt.Errorf("%w: %q", extract.ErrUnsupportedFormat, ext)
	}

	data, err := extract.ReadFile(ctx, path, a.readTimeout)
	if err != nil {
		return nil, err
	}

	return a.Analyze(ctx, data, filepath.Base(path), jobTitle, jobDescription)
}

// Analyze extracts and scores the resume bytes. Only unsupported formats and
// DOCX extraction failures are returned as errors.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, fileName, jobTitle, jobDescription string) (*Analysis, error) {
	text, err := a.extractor.Extract(data, extract.Ext(fileName))
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", fileName, err)
	}

	if extract.NeedsEnrichment(text) {
		a.logger.Debug("extracted text is too short, enriching with job title and file name",
			zap.String("file", fileName),
		)
		text = extract.Enrich(text, jobTitle, fileName)
	}

	result := a.scorer.Score(text, jobTitle)
	category := ats.Category(jobTitle)

	a.logger.Info("resume scored",
		zap.String("file", fileName),
		zap.String("job_title", jobTitle),
		zap.String("category", category),
		zap.Int("score", result.Score),
		zap.Int("matched_skills", result.MatchCount),
	)

	tr, hr := a.Questions(ctx, jobTitle, jobDescription)

	primary := hr
	if category == ats.CategoryTechnical {
		primary = tr
	}

	return &Analysis{
		ID:               uuid.NewString(),
		FileName:         fileName,
		JobTitle:         jobTitle,
		Category:         category,
		ExtractedText:    text,
		ATS:              result,
		NormalizedScore:  result.Normalized(),
		Suggestion:       result.Suggestion(),
		TRQuestions:      tr,
		HRQuestions:      hr,
		PrimaryQuestions: primary,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Questions generates the technical and HR batches concurrently. Each call
// carries its own deadline, so a slow round never holds back or cancels the other.
func (a *Analyzer) Questions(ctx context.Context, jobTitle, jobDescription string) (tr []string, hr []string) {
	rounds := []interview.Round{interview.RoundTechnical, interview.RoundHR}
	batches := make([][]string, len(rounds))

	var g errgroup.Group
	for i, round := range rounds {
		g.Go(func() error {
			batches[i] = a.questioner.Generate(ctx, jobTitle, round, jobDescription)
			return nil
		})
	}
	// Generate never fails, the group is only used for the join.
	_ = g.Wait()

	return batches[0], batches[1]
}
