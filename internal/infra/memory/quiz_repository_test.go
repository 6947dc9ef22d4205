package memory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"quiz-outcome-service/internal/domain"
)

func TestQuizRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuizLoader: NewStaticQuizLoader(map[string]domain.Quiz{
			"quiz-1": sampleQuiz(),
		}),
	}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls.Load())
	}

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls.Load())
	}

	repo.Invalidate("quiz-1")
	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz 3: %v", err)
	}
	if loader.calls.Load() != 2 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls.Load())
	}
}

func TestQuizRepositoryExpires(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(map[string]domain.Quiz{"quiz-1": sampleQuiz()})}
	repo := NewQuizRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuiz(context.Background(), "quiz-1")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuiz(context.Background(), "quiz-1")
	if loader.calls.Load() != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls.Load())
	}
}

func TestQuizRepositoryRejectsInvalidQuiz(t *testing.T) {
	broken := sampleQuiz()
	broken.Outcomes = append(broken.Outcomes, broken.Outcomes[0])
	repo := NewQuizRepository(NewStaticQuizLoader(map[string]domain.Quiz{"quiz-1": broken}), time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); !errors.Is(err, domain.ErrInvalidQuiz) {
		t.Fatalf("expected invalid quiz error, got %v", err)
	}
	if _, err := repo.GetQuiz(context.Background(), "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	QuizLoader
	calls atomic.Int32
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	l.calls.Add(1)
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID: "quiz-1",
		Questions: []domain.Question{
			{
				ID:   "q1",
				Type: domain.MultipleChoice,
				Text: "How does your skin feel by noon?",
				Options: []domain.Option{
					{ID: "o1", Text: "Shiny", Tags: []string{"oily"}, Weights: []domain.Weight{{OutcomeID: "oily", Points: 2}}},
					{ID: "o2", Text: "Tight", Tags: []string{"dry"}, Weights: []domain.Weight{{OutcomeID: "dry", Points: 2}}},
				},
			},
		},
		Outcomes: []domain.Outcome{
			{ID: "oily", Title: "Oily", Tags: []string{"oily"}},
			{ID: "dry", Title: "Dry", Tags: []string{"dry"}},
		},
	}
}
