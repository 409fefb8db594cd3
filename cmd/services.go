package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-interviewer/internal/ai"
	"github.com/spigell/ats-interviewer/internal/ai/gemini"
	"github.com/spigell/ats-interviewer/internal/analysis"
	"github.com/spigell/ats-interviewer/internal/ats"
	"github.com/spigell/ats-interviewer/internal/extract"
	"github.com/spigell/ats-interviewer/internal/interview"
	"github.com/spigell/ats-interviewer/internal/logger"
	"github.com/spigell/ats-interviewer/internal/secrets"
)

// services holds the components shared by all commands. They are built once
// per process and only read afterwards.
type services struct {
	config     *Config
	logger     *zap.Logger
	scorer     *ats.Scorer
	questioner *interview.Questioner
	evaluator  *interview.Evaluator
	analyzer   *analysis.Analyzer
}

func setup(ctx context.Context) *services {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the ats-interviewer", zap.String("version", version))

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("ai is unavailable, using local fallbacks", zap.Error(err))
	}

	componentLogger := aiLogger(logger, config.AI, generator)

	scorer := ats.NewScorer(ats.NewTaxonomy(config.ATS.Skills()))
	questioner := interview.NewQuestioner(generator, componentLogger, config.AI.Timeout, config.AI.Gemini.MaxLogLength)
	evaluator := interview.NewEvaluator(generator, componentLogger, config.AI.Timeout, config.AI.Gemini.MaxLogLength)

	analyzer := analysis.New(&analysis.Deps{
		Extractor:  extract.New(logger),
		Scorer:     scorer,
		Questioner: questioner,
		Logger:     logger,
	}, config.Extract.ReadTimeout)

	return &services{
		config:     config,
		logger:     logger,
		scorer:     scorer,
		questioner: questioner,
		evaluator:  evaluator,
		analyzer:   analyzer,
	}
}

// newGenerator returns nil without an error when ai is disabled.
func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.TextGenerator, error) {
	if cfg == nil {
		return nil, nil
	}

	if !cfg.Enabled {
		if cfg.Gemini != nil && (strings.TrimSpace(cfg.Gemini.APIKey) != "" || strings.TrimSpace(cfg.Gemini.APIKeyFile) != "") {
			logger.Info("gemini api key is set but ai is disabled, using local fallbacks",
				zap.String("hint", "set ai.enabled: true in the config file to use the remote model"),
			)
		}
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(zap.String("component", "gemini"))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, genLogger)
	if err != nil {
		return nil, err
	}

	return generator, nil
}

func aiLogger(base *zap.Logger, cfg *AIConfig, generator ai.TextGenerator) *zap.Logger {
	if generator == nil {
		return logger.WithFields(base, zap.Bool("ai_enabled", false))
	}

	model := ""
	if namer, ok := generator.(ai.ModelNamer); ok {
		model = namer.Model()
	}

	return logger.WithCommonFields(base, cfg.Provider, model)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
