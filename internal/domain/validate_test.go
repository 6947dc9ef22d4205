package domain

import (
	"errors"
	"testing"
)

func TestQuizValidate(t *testing.T) {
	valid := Quiz{
		ID: "quiz-1",
		Questions: []Question{
			{ID: "q1", Type: MultipleChoice, Options: []Option{{ID: "o1"}, {ID: "o2"}}},
			{ID: "q2", Type: ShortText},
		},
		Outcomes: []Outcome{{ID: "a"}, {ID: "b"}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}

	broken := map[string]func(q *Quiz){
		"missing quiz id":    func(q *Quiz) { q.ID = "" },
		"duplicate question": func(q *Quiz) { q.Questions[1].ID = "q1" },
		"unknown type":       func(q *Quiz) { q.Questions[1].Type = "rating" },
		"empty option id":    func(q *Quiz) { q.Questions[0].Options[1].ID = "" },
		"duplicate option":   func(q *Quiz) { q.Questions[0].Options[1].ID = "o1" },
		"duplicate outcome":  func(q *Quiz) { q.Outcomes[1].ID = "a" },
	}
	for name, mutate := range broken {
		q := valid
		q.Questions = []Question{
			{ID: "q1", Type: MultipleChoice, Options: []Option{{ID: "o1"}, {ID: "o2"}}},
			{ID: "q2", Type: ShortText},
		}
		q.Outcomes = []Outcome{{ID: "a"}, {ID: "b"}}
		mutate(&q)
		if err := q.Validate(); !errors.Is(err, ErrInvalidQuiz) {
			t.Fatalf("%s: expected ErrInvalidQuiz, got %v", name, err)
		}
	}
}
