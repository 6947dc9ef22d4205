package app

import (
	"reflect"
	"testing"

	"quiz-outcome-service/internal/domain"
)

func TestSelectionsFollowQuestionOrderAndSkipText(t *testing.T) {
	quiz := domain.Quiz{
		ID: "q",
		Questions: []domain.Question{
			{ID: "q1", Type: domain.Checkboxes, Options: []domain.Option{{ID: "a"}, {ID: "b"}}},
			{ID: "q2", Type: domain.ShortText},
			{ID: "q3", Type: domain.MultipleChoice, Options: []domain.Option{{ID: "c"}}},
			{ID: "q4", Type: domain.MultipleChoice, Options: []domain.Option{{ID: "d"}}},
		},
	}
	answers := map[string]Answer{
		"q3": {OptionIDs: []string{"c"}},
		"q2": {Text: "free"},
		"q1": {OptionIDs: []string{"b", "a"}},
	}

	var ids []string
	for _, opt := range Selections(quiz, answers) {
		ids = append(ids, opt.ID)
	}
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
}

func TestProgressStepIsFirstUnanswered(t *testing.T) {
	quiz := domain.Quiz{Questions: []domain.Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}}}
	s := Session{Answers: map[string]Answer{"q1": {}, "q3": {}}}

	p := s.Progress(quiz)
	if p.Step != 1 || p.Answered != 2 || p.Total != 3 {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestSessionCloneIsDeep(t *testing.T) {
	winner := &domain.Outcome{
		ID:                  "a",
		Tags:                []string{"calm"},
		RecommendedProducts: []domain.RecommendedProduct{{Title: "W"}},
	}
	s := Session{
		Answers: map[string]Answer{"q1": {OptionIDs: []string{"a"}}},
		Result:  &domain.Resolution{Winner: winner, Products: []domain.RecommendedProduct{{Title: "P"}}},
	}
	c := s.Clone()
	c.Answers["q1"].OptionIDs[0] = "z"
	c.Result.Products[0].Title = "Q"
	c.Result.Winner.ID = "b"
	c.Result.Winner.Tags[0] = "loud"
	c.Result.Winner.RecommendedProducts[0].Title = "X"

	if s.Answers["q1"].OptionIDs[0] != "a" || s.Result.Products[0].Title != "P" {
		t.Fatalf("clone shares state with original")
	}
	if winner.ID != "a" || winner.Tags[0] != "calm" || winner.RecommendedProducts[0].Title != "W" {
		t.Fatalf("clone shares winner with original: %+v", winner)
	}
}

func TestProgressRequiresEmailUntilSubmitted(t *testing.T) {
	quiz := domain.Quiz{
		Questions: []domain.Question{{ID: "q1", Type: domain.ShortText}},
		Settings:  domain.Settings{CollectEmail: true},
	}
	s := Session{Answers: map[string]Answer{}}
	if !s.Progress(quiz).EmailRequired {
		t.Fatalf("expected email to be required")
	}
	s.Email = "a@example.com"
	if s.Progress(quiz).EmailRequired {
		t.Fatalf("expected email requirement to clear once submitted")
	}
	quiz.Settings.CollectEmail = false
	if (Session{}).Progress(quiz).EmailRequired {
		t.Fatalf("quiz without email collection should never require one")
	}
}
