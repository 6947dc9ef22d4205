package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-outcome-service/internal/infra/postgres"
	"quiz-outcome-service/internal/infra/sqlite"
	"quiz-outcome-service/internal/quizdoc"
)

// NewSeedCmd loads a quiz document into the configured store.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a quiz document (YAML or JSON) into Postgres or SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			quiz, err := quizdoc.LoadFile(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.Postgres.URL != "" {
				if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
					return err
				}
				db := postgres.OpenBun(cfg.Postgres.URL)
				defer db.Close()
				if err := postgres.NewQuizWriter(db).PutQuiz(ctx, quiz); err != nil {
					return err
				}
				logger.Info("quiz seeded", zap.String("quiz_id", quiz.ID), zap.String("store", "postgres"))
				return nil
			}

			store, err := sqlite.Open(ctx, cfg.SQLite.DSN)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.PutQuiz(ctx, quiz); err != nil {
				return err
			}
			logger.Info("quiz seeded", zap.String("quiz_id", quiz.ID), zap.String("store", "sqlite"))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "quiz document to load")
	return cmd
}
