package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-interviewer/internal/interview"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate five interview questions for a job title",
	Run: func(cmd *cobra.Command, _ []string) {
		questions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().StringP("job-title", "t", "", "target job title")
	questionsCmd.Flags().StringP("round", "r", "HR", "interview round: TR (technical) or HR")
	questionsCmd.Flags().String("job-description", "", "optional job description")

	questionsCmd.MarkFlagRequired("job-title")
}

func questions(cmd *cobra.Command) {
	ctx := context.Background()
	s := setup(ctx)

	jobTitle, _ := cmd.Flags().GetString("job-title")
	roundFlag, _ := cmd.Flags().GetString("round")
	jobDescription, _ := cmd.Flags().GetString("job-description")
	round := interview.ParseRound(roundFlag)

	result := s.questioner.Generate(ctx, jobTitle, round, jobDescription)

	s.logger.Debug("questions generated", zap.Stringer("round", round), zap.Int("count", len(result)))

	out := struct {
		JobTitle  string   `json:"jobTitle"`
		Round     string   `json:"round"`
		Questions []string `json:"questions"`
	}{JobTitle: jobTitle, Round: round.String(), Questions: result}

	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		s.logger.Fatal("printing questions", zap.Error(err))
	}
}
