package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-interviewer/internal/interview"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate interview answers stored in a yaml, json or toml file",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("job-title", "t", "", "target job title")
	evaluateCmd.Flags().StringP("round", "r", "HR", "interview round: TR (technical) or HR")
	evaluateCmd.Flags().StringP("answers", "a", "", "file with an 'answers' list")

	evaluateCmd.MarkFlagRequired("job-title")
	evaluateCmd.MarkFlagRequired("answers")
}

func evaluate(cmd *cobra.Command) {
	ctx := context.Background()
	s := setup(ctx)

	jobTitle, _ := cmd.Flags().GetString("job-title")
	roundFlag, _ := cmd.Flags().GetString("round")
	answersFile, _ := cmd.Flags().GetString("answers")
	round := interview.ParseRound(roundFlag)

	answers, err := loadAnswers(answersFile)
	if err != nil {
		s.logger.Fatal("loading answers", zap.Error(err))
	}

	evaluations := s.evaluator.Evaluate(ctx, answers, jobTitle, round)

	total := 0
	for _, e := range evaluations {
		total += e.Score
	}
	s.logger.Info("answers evaluated",
		zap.Stringer("round", round),
		zap.Int("answers", len(answers)),
		zap.Int("total_score", total),
	)

	out := struct {
		JobTitle    string                 `json:"jobTitle"`
		Round       string                 `json:"round"`
		Evaluations []interview.Evaluation `json:"evaluations"`
		TotalScore  int                    `json:"totalScore"`
	}{JobTitle: jobTitle, Round: round.String(), Evaluations: evaluations, TotalScore: total}

	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		s.logger.Fatal("printing evaluations", zap.Error(err))
	}
}

// loadAnswers reads the "answers" list from any format viper understands.
func loadAnswers(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("answers file is not set")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading answers file %q: %w", path, err)
	}

	if !v.IsSet("answers") {
		return nil, fmt.Errorf("answers file %q has no 'answers' key", path)
	}

	return v.GetStringSlice("answers"), nil
}
