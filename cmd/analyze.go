package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a PDF or DOCX resume against a job title and prepare interview questions",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("file", "f", "", "path to the resume (.pdf or .docx)")
	analyzeCmd.Flags().StringP("job-title", "t", "", "target job title")
	analyzeCmd.Flags().String("job-description", "", "optional job description used for question generation")

	analyzeCmd.MarkFlagRequired("file")
	analyzeCmd.MarkFlagRequired("job-title")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()
	s := setup(ctx)

	file, _ := cmd.Flags().GetString("file")
	jobTitle, _ := cmd.Flags().GetString("job-title")
	jobDescription, _ := cmd.Flags().GetString("job-description")

	s.logger.Info("analyzing resume", zap.String("file", file), zap.String("job_title", jobTitle))

	result, err := s.analyzer.AnalyzeFile(ctx, file, jobTitle, jobDescription)
	if err != nil {
		s.logger.Fatal("analyzing resume", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		s.logger.Fatal("printing result", zap.Error(err))
	}
}
