package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-outcome-service/internal/app"
	"quiz-outcome-service/internal/config"
	"quiz-outcome-service/internal/domain"
	"quiz-outcome-service/internal/infra/memory"
	pgloader "quiz-outcome-service/internal/infra/postgres"
	redisstore "quiz-outcome-service/internal/infra/redis"
	"quiz-outcome-service/internal/infra/sqlite"
	"quiz-outcome-service/internal/quizdoc"
	"quiz-outcome-service/internal/resolver"
	transport "quiz-outcome-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, logger, err := setup(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	loader, closeLoader, err := newQuizLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLoader()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Session.TTL, 2*time.Hour)

	var quizRepo app.QuizRepository
	var store app.SessionRepository
	if redisClient != nil {
		quizRepo = redisstore.NewQuizRepository(redisClient, loader, quizTTL, logger)
		store = redisstore.NewSessionStore(redisClient, sessionTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
		store = memory.NewSessionStore(sessionTTL)
	}

	engine := resolver.New(resolver.WithDefaultOutcome(cfg.Engine.DefaultOutcome))
	service := app.NewResponseService(store, quizRepo, engine, logger)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting quiz service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newQuizLoader picks the quiz source: Postgres, then SQLite, then a quiz file, then the
// bundled sample quiz.
func newQuizLoader(ctx context.Context, cfg config.Config, logger *zap.Logger) (memory.QuizLoader, func(), error) {
	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("loading quizzes from postgres")
		return pgloader.NewQuizLoader(pool), pool.Close, nil
	case cfg.SQLite.DSN != "":
		store, err := sqlite.Open(ctx, cfg.SQLite.DSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("loading quizzes from sqlite", zap.String("dsn", cfg.SQLite.DSN))
		return store, func() { _ = store.Close() }, nil
	case cfg.Quiz.File != "":
		quiz, err := quizdoc.LoadFile(cfg.Quiz.File)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("serving quiz from file", zap.String("quiz_id", quiz.ID), zap.String("file", cfg.Quiz.File))
		return memory.NewStaticQuizLoader(map[string]domain.Quiz{quiz.ID: quiz}), func() {}, nil
	default:
		quiz := quizdoc.Sample()
		logger.Warn("no quiz store configured, serving bundled sample quiz", zap.String("quiz_id", quiz.ID))
		return memory.NewStaticQuizLoader(map[string]domain.Quiz{quiz.ID: quiz}), func() {}, nil
	}
}
