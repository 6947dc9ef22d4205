package cli

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"quiz-outcome-service/internal/app"
	"quiz-outcome-service/internal/domain"
	"quiz-outcome-service/internal/infra/memory"
	"quiz-outcome-service/internal/quizdoc"
	"quiz-outcome-service/internal/resolver"
)

// NewResolveCmd resolves an answer file against a quiz file without starting the server.
func NewResolveCmd(configPath *string) *cobra.Command {
	var quizFile, answersFile string
	var explain bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an answer set against a quiz document and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if quizFile == "" || answersFile == "" {
				return errors.New("--quiz and --answers are required")
			}
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			quiz, err := quizdoc.LoadFile(quizFile)
			if err != nil {
				return err
			}
			submissions, err := quizdoc.LoadAnswersFile(answersFile)
			if err != nil {
				return err
			}

			engine := resolver.New(resolver.WithDefaultOutcome(cfg.Engine.DefaultOutcome))
			quizzes := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{quiz.ID: quiz}), time.Minute)
			service := app.NewResponseService(memory.NewSessionStore(0), quizzes, engine, logger)

			res, trace, err := service.Explain(cmd.Context(), quiz.ID, submissions)
			if err != nil {
				return err
			}

			var out any = res
			if explain {
				out = struct {
					domain.Resolution
					Trace resolver.Trace `json:"trace"`
				}{res, trace}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&quizFile, "quiz", "", "quiz document (YAML or JSON)")
	cmd.Flags().StringVar(&answersFile, "answers", "", "answer submissions (YAML or JSON list)")
	cmd.Flags().BoolVar(&explain, "explain", false, "include scores and qualification trace")
	return cmd
}
