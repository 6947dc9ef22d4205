package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quiz-outcome-service/internal/domain"
	"quiz-outcome-service/internal/resolver"
)

// SessionRepository abstracts how response sessions are stored (in-memory, Redis, etc).
// Implementations hand out copies; callers persist changes with Save.
type SessionRepository interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Save(ctx context.Context, session Session) error
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// ResponseService walks respondents through a quiz and resolves their outcome.
type ResponseService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	engine   *resolver.Engine
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

func NewResponseService(sessions SessionRepository, quizzes QuizRepository, engine *resolver.Engine, logger *zap.Logger) *ResponseService {
	if engine == nil {
		engine = resolver.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseService{
		sessions: sessions,
		quizzes:  quizzes,
		engine:   engine,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock is test-only for deterministic timestamps.
func (s *ResponseService) WithClock(now func() time.Time) *ResponseService {
	s.now = now
	return s
}

// Start opens a new response session for quizID.
func (s *ResponseService) Start(ctx context.Context, quizID string) (domain.Progress, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Progress{}, err
	}

	now := s.now()
	session := Session{
		ID:        uuid.NewString(),
		QuizID:    quiz.ID,
		Answers:   make(map[string]Answer),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.Progress{}, fmt.Errorf("create session: %w", err)
	}
	s.logger.Debug("response session started", zap.String("quiz_id", quiz.ID), zap.String("session_id", session.ID))
	return session.Progress(quiz), nil
}

// Resume returns the current progress of an existing session.
func (s *ResponseService) Resume(ctx context.Context, sessionID string) (domain.Progress, error) {
	session, quiz, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Progress{}, err
	}
	return session.Progress(quiz), nil
}

// Answer records the answer to one question. Answering a question again replaces the
// earlier answer.
func (s *ResponseService) Answer(ctx context.Context, sessionID string, submission domain.AnswerSubmission) (domain.Progress, error) {
	session, quiz, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Progress{}, err
	}
	if session.Completed {
		return domain.Progress{}, domain.ErrSessionCompleted
	}

	answer, err := validateAnswer(quiz, submission)
	if err != nil {
		return domain.Progress{}, err
	}
	session.Answers[submission.QuestionID] = answer
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Progress{}, fmt.Errorf("save session: %w", err)
	}
	return session.Progress(quiz), nil
}

// SubmitEmail records the respondent's email on the session. Quizzes that collect email
// require it before Complete.
func (s *ResponseService) SubmitEmail(ctx context.Context, sessionID, email string) (domain.Progress, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.Progress{}, fmt.Errorf("%w: %q", domain.ErrInvalidEmail, email)
	}
	session, quiz, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Progress{}, err
	}
	if session.Completed {
		return domain.Progress{}, domain.ErrSessionCompleted
	}

	session.Email = email
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Progress{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("respondent email captured", zap.String("quiz_id", quiz.ID), zap.String("session_id", session.ID))
	return session.Progress(quiz), nil
}

// Complete resolves the session's answers. Completing an already completed session
// returns the stored result.
func (s *ResponseService) Complete(ctx context.Context, sessionID string) (domain.Resolution, error) {
	session, quiz, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Resolution{}, err
	}
	if session.Completed && session.Result != nil {
		return *session.Result, nil
	}
	if quiz.Settings.CollectEmail && session.Email == "" {
		return domain.Resolution{}, domain.ErrEmailRequired
	}

	res, _ := s.resolve(quiz, session.Answers)
	session.Completed = true
	session.Result = &res
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Resolution{}, fmt.Errorf("save session: %w", err)
	}
	return res, nil
}

// Resolve validates a full answer set and resolves it without a session.
func (s *ResponseService) Resolve(ctx context.Context, quizID string, submissions []domain.AnswerSubmission) (domain.Resolution, error) {
	res, _, err := s.Explain(ctx, quizID, submissions)
	return res, err
}

// Explain is Resolve plus the engine trace of the same resolution.
func (s *ResponseService) Explain(ctx context.Context, quizID string, submissions []domain.AnswerSubmission) (domain.Resolution, resolver.Trace, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Resolution{}, resolver.Trace{}, err
	}
	answers := make(map[string]Answer, len(submissions))
	for _, sub := range submissions {
		answer, err := validateAnswer(quiz, sub)
		if err != nil {
			return domain.Resolution{}, resolver.Trace{}, err
		}
		answers[sub.QuestionID] = answer
	}
	res, trace := s.resolve(quiz, answers)
	return res, trace, nil
}

func (s *ResponseService) load(ctx context.Context, sessionID string) (Session, domain.Quiz, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Session{}, domain.Quiz{}, err
	}
	quiz, err := s.quizzes.GetQuiz(ctx, session.QuizID)
	if err != nil {
		return Session{}, domain.Quiz{}, err
	}
	if session.Answers == nil {
		session.Answers = make(map[string]Answer)
	}
	return session, quiz, nil
}

func (s *ResponseService) resolve(quiz domain.Quiz, answers map[string]Answer) (domain.Resolution, resolver.Trace) {
	res, trace := s.engine.Explain(Selections(quiz, answers), quiz.Outcomes)
	if res.Winner == nil {
		s.logger.Warn("quiz has no outcomes configured", zap.String("quiz_id", quiz.ID))
		return res, trace
	}
	s.logger.Info("quiz resolved",
		zap.String("quiz_id", quiz.ID),
		zap.String("winner_id", trace.WinnerID),
		zap.Strings("qualified", trace.Qualified),
		zap.Bool("fallback", trace.Fallback),
		zap.Int("products", len(res.Products)),
	)
	return res, trace
}

// validateAnswer checks a submission against its question and normalises it.
func validateAnswer(quiz domain.Quiz, submission domain.AnswerSubmission) (Answer, error) {
	question, ok := quiz.Question(submission.QuestionID)
	if !ok {
		return Answer{}, domain.ErrQuestionNotFound
	}

	switch question.Type {
	case domain.ShortText:
		if len(submission.OptionIDs) > 0 {
			return Answer{}, fmt.Errorf("%w: question %s takes text", domain.ErrInvalidAnswer, question.ID)
		}
		return Answer{Text: submission.Text}, nil
	case domain.MultipleChoice:
		if len(submission.OptionIDs) != 1 {
			return Answer{}, fmt.Errorf("%w: question %s takes exactly one option", domain.ErrInvalidAnswer, question.ID)
		}
	case domain.Checkboxes:
		if len(submission.OptionIDs) == 0 {
			return Answer{}, fmt.Errorf("%w: question %s takes at least one option", domain.ErrInvalidAnswer, question.ID)
		}
	default:
		return Answer{}, fmt.Errorf("%w: unknown question type %q", domain.ErrInvalidAnswer, question.Type)
	}

	seen := make(map[string]struct{}, len(submission.OptionIDs))
	ids := make([]string, 0, len(submission.OptionIDs))
	for _, id := range submission.OptionIDs {
		if _, ok := question.Option(id); !ok {
			return Answer{}, fmt.Errorf("%w: %s", domain.ErrOptionNotFound, id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return Answer{OptionIDs: ids}, nil
}
