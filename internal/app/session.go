package app

import (
	"time"

	"quiz-outcome-service/internal/domain"
)

// Answer is the stored answer to one question.
type Answer struct {
	OptionIDs []string `json:"optionIds,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// Session is one respondent's walk through a quiz.
type Session struct {
	ID        string             `json:"id"`
	QuizID    string             `json:"quizId"`
	Answers   map[string]Answer  `json:"answers"`
	Completed bool               `json:"completed"`
	Email     string             `json:"email,omitempty"`
	Result    *domain.Resolution `json:"result,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Clone returns a copy that shares no maps or slices with s.
func (s Session) Clone() Session {
	out := s
	out.Answers = make(map[string]Answer, len(s.Answers))
	for qid, a := range s.Answers {
		a.OptionIDs = append([]string(nil), a.OptionIDs...)
		out.Answers[qid] = a
	}
	if s.Result != nil {
		res := *s.Result
		res.Products = append([]domain.RecommendedProduct{}, s.Result.Products...)
		if s.Result.Winner != nil {
			winner := s.Result.Winner.Clone()
			res.Winner = &winner
		}
		out.Result = &res
	}
	return out
}

// Progress reports the position of the session within quiz. Step is the index of the
// first unanswered question, or len(quiz.Questions) once every question is answered.
func (s Session) Progress(quiz domain.Quiz) domain.Progress {
	p := domain.Progress{
		SessionID: s.ID,
		QuizID:    s.QuizID,
		Step:      len(quiz.Questions),
		Total:     len(quiz.Questions),
		Complete:  s.Completed,
		UpdatedAt: s.UpdatedAt,
	}
	p.EmailRequired = quiz.Settings.CollectEmail && s.Email == "" && !s.Completed
	for i, q := range quiz.Questions {
		if _, ok := s.Answers[q.ID]; ok {
			p.Answered++
			continue
		}
		if i < p.Step {
			p.Step = i
		}
	}
	return p
}

// Selections returns the chosen options in question order. Free-text questions carry no
// scoring signal and are skipped, as are unanswered questions.
func Selections(quiz domain.Quiz, answers map[string]Answer) []domain.Option {
	var selections []domain.Option
	for _, q := range quiz.Questions {
		if !q.Type.IsChoice() {
			continue
		}
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, id := range answer.OptionIDs {
			if opt, ok := q.Option(id); ok {
				selections = append(selections, opt)
			}
		}
	}
	return selections
}
