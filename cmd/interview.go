package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-interviewer/internal/ats"
	"github.com/spigell/ats-interviewer/internal/interview"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var dumpPrompt = promptui.Select{
	Label: "Dump interview result to file?",
	Items: []string{PromptYes, PromptNo},
}

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview with technical and HR rounds",
	Run: func(cmd *cobra.Command, _ []string) {
		runInterview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().StringP("job-title", "t", "", "target job title")
	interviewCmd.Flags().String("job-description", "", "optional job description used for question generation")
	interviewCmd.Flags().BoolP("yes", "y", false, "dump the result to a file without asking")

	interviewCmd.MarkFlagRequired("job-title")
}

func runInterview(cmd *cobra.Command) {
	ctx := context.Background()
	s := setup(ctx)

	jobTitle, _ := cmd.Flags().GetString("job-title")
	jobDescription, _ := cmd.Flags().GetString("job-description")

	s.logger.Info("preparing interview questions", zap.String("job_title", jobTitle))

	trQuestions, hrQuestions := s.analyzer.Questions(ctx, jobTitle, jobDescription)

	trAnswers, err := askRound(interview.RoundTechnical, trQuestions)
	if err != nil {
		s.logger.Fatal("exiting", zap.Error(err))
	}

	hrAnswers, err := askRound(interview.RoundHR, hrQuestions)
	if err != nil {
		s.logger.Fatal("exiting", zap.Error(err))
	}

	result := interview.Summarize(jobTitle,
		s.evaluator.Evaluate(ctx, trAnswers, jobTitle, interview.RoundTechnical),
		s.evaluator.Evaluate(ctx, hrAnswers, jobTitle, interview.RoundHR),
	)
	result.Category = ats.Category(jobTitle)
	result.TRQuestions = trQuestions
	result.HRQuestions = hrQuestions

	reportRound(s.logger, interview.RoundTechnical, trQuestions, result.TREvaluation)
	reportRound(s.logger, interview.RoundHR, hrQuestions, result.HREvaluation)

	s.logger.Info("interview finished",
		zap.Int("tr_score", result.TRScore),
		zap.Int("hr_score", result.HRScore),
		zap.Int("total_score", result.TotalScore),
		zap.Int("max_score", result.MaxScore()),
	)

	action := PromptYes
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		_, action, err = dumpPrompt.Run()
		if err != nil {
			s.logger.Fatal("exiting", zap.Error(err))
		}
	}

	if action != PromptYes {
		return
	}

	filename, err := result.DumpToTmpFile()
	if err != nil {
		s.logger.Fatal("dump result to file", zap.Error(err))
	}
	s.logger.Info("dumping result to file", zap.String("filename", filename))
}

func askRound(round interview.Round, questions []string) ([]string, error) {
	answers := make([]string, 0, len(questions))
	for i, question := range questions {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("[%s %d/%d] %s", round, i+1, len(questions), question),
		}

		answer, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil, fmt.Errorf("interview interrupted: %w", err)
			}
			return nil, fmt.Errorf("reading answer %d: %w", i+1, err)
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

func reportRound(logger *zap.Logger, round interview.Round, questions []string, evaluations []interview.Evaluation) {
	for i, e := range evaluations {
		question := ""
		if i < len(questions) {
			question = questions[i]
		}
		logger.Info("answer evaluated",
			zap.Stringer("round", round),
			zap.String("question", question),
			zap.Int("score", e.Score),
			zap.String("feedback", e.Feedback),
		)
	}
}
