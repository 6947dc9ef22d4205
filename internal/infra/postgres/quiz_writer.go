package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"quiz-outcome-service/internal/domain"
)

// OpenBun opens a bun handle on the Postgres DSN.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes"`

	ID        string    `bun:"id,pk"`
	Data      string    `bun:"data,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// QuizWriter upserts quiz documents. It backs the seed command only; authoring happens elsewhere.
type QuizWriter struct {
	db *bun.DB
}

func NewQuizWriter(db *bun.DB) *QuizWriter {
	return &QuizWriter{db: db}
}

func (w *QuizWriter) PutQuiz(ctx context.Context, quiz domain.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	row := &quizRow{ID: quiz.ID, Data: string(data), UpdatedAt: time.Now().UTC()}
	_, err = w.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert quiz: %w", err)
	}
	return nil
}
