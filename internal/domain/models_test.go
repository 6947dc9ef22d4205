package domain

import (
	"encoding/json"
	"testing"
)

func TestDecodeNormalizesLegacyIDs(t *testing.T) {
	raw := `{
		"_id": "quiz-1",
		"questions": [
			{"_id": "q1", "type": "multiple_choice", "text": "Skin?", "options": [
				{"_id": "o1", "text": "Oily", "tags": ["oily"], "weights": [{"outcomeId": "a"}]},
				{"id": "o2", "_id": "ignored", "text": "Dry"}
			]}
		],
		"outcomes": [{"_id": "a", "title": "Oily", "matchingRules": {"requiredTags": ["oily"]}}]
	}`

	var quiz Quiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if quiz.ID != "quiz-1" {
		t.Fatalf("expected quiz id from _id, got %q", quiz.ID)
	}
	q, ok := quiz.Question("q1")
	if !ok {
		t.Fatalf("expected question q1")
	}
	if _, ok := q.Option("o1"); !ok {
		t.Fatalf("expected option o1 from _id")
	}
	if _, ok := q.Option("o2"); !ok {
		t.Fatalf("expected explicit id to win over _id")
	}
	if quiz.Outcomes[0].ID != "a" {
		t.Fatalf("expected outcome id a, got %q", quiz.Outcomes[0].ID)
	}
	if got := quiz.Outcomes[0].MatchingRules.RequiredTags; len(got) != 1 || got[0] != "oily" {
		t.Fatalf("unexpected required tags %v", got)
	}
}

func TestWeightValueDefaultsToOne(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 5: 5, -2: -2}
	for points, want := range cases {
		if got := (Weight{OutcomeID: "a", Points: points}).Value(); got != want {
			t.Fatalf("points %d: expected %d, got %d", points, want, got)
		}
	}
}

func TestQuestionTypeIsChoice(t *testing.T) {
	if !MultipleChoice.IsChoice() || !Checkboxes.IsChoice() {
		t.Fatalf("expected choice types")
	}
	if ShortText.IsChoice() {
		t.Fatalf("short_text must not be a choice type")
	}
	if QuestionType("rating").Valid() {
		t.Fatalf("unknown type must be invalid")
	}
}
