package domain

import (
	"encoding/json"
	"time"
)

// QuestionType distinguishes choice questions from free text.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortText      QuestionType = "short_text"
	Checkboxes     QuestionType = "checkboxes"
)

// IsChoice reports whether answers to this question type carry options (and thus scoring signal).
func (t QuestionType) IsChoice() bool {
	return t == MultipleChoice || t == Checkboxes
}

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	return t.IsChoice() || t == ShortText
}

// Weight is an explicit point contribution an option grants to an outcome.
type Weight struct {
	OutcomeID string `json:"outcomeId"`
	Points    int    `json:"points,omitempty"` // 0 means unspecified and counts as 1
}

// Value returns the effective points of the weight.
func (w Weight) Value() int {
	if w.Points == 0 {
		return 1
	}
	return w.Points
}

// Option represents a selectable answer for a choice question.
type Option struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Tags    []string `json:"tags,omitempty"`
	Weights []Weight `json:"weights,omitempty"`
}

// Question is a single step of a quiz flow.
type Question struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Text    string       `json:"text"`
	Options []Option     `json:"options,omitempty"`
}

// Option returns the option with the given ID.
func (q Question) Option(optionID string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// RecommendedProduct is a product attached to an outcome. Title is unique per catalog.
type RecommendedProduct struct {
	Title    string `json:"title"`
	Price    string `json:"price,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// MatchingRules restrict which respondents an outcome can be shown to.
type MatchingRules struct {
	RequiredTags []string `json:"requiredTags,omitempty"`
}

// Outcome is a possible quiz result. Zero values of Priority and MinScore are the defaults.
type Outcome struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Description         string               `json:"description,omitempty"`
	ButtonText          string               `json:"buttonText,omitempty"`
	ButtonURL           string               `json:"buttonUrl,omitempty"`
	DiscountCode        string               `json:"discountCode,omitempty"`
	Tags                []string             `json:"tags,omitempty"`
	RecommendedProducts []RecommendedProduct `json:"recommendedProducts,omitempty"`
	Priority            int                  `json:"priority,omitempty"`
	MinScore            int                  `json:"minScore,omitempty"`
	MatchingRules       MatchingRules        `json:"matchingRules"`
}

// Clone returns a copy of o that shares no slices with it.
func (o Outcome) Clone() Outcome {
	out := o
	out.Tags = append([]string(nil), o.Tags...)
	out.RecommendedProducts = append([]RecommendedProduct(nil), o.RecommendedProducts...)
	out.MatchingRules.RequiredTags = append([]string(nil), o.MatchingRules.RequiredTags...)
	return out
}

// Settings holds flow-level switches of a quiz.
type Settings struct {
	CollectEmail bool `json:"collectEmail,omitempty"`
}

// Quiz is a question flow plus the outcomes it resolves to.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
	Outcomes  []Outcome  `json:"outcomes"`
	Settings  Settings   `json:"settings"`
}

// Question returns the question with the given ID.
func (q Quiz) Question(questionID string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return Question{}, false
}

// AnswerSubmission is what a respondent sends for one question.
type AnswerSubmission struct {
	QuestionID string   `json:"questionId"`
	OptionIDs  []string `json:"optionIds,omitempty"`
	Text       string   `json:"text,omitempty"`
}

// Resolution is the winning outcome and the products recommended with it.
// Winner is nil only when the quiz has no outcomes.
type Resolution struct {
	Winner   *Outcome             `json:"winner"`
	Products []RecommendedProduct `json:"products"`
}

// Progress describes where a respondent is in the flow.
type Progress struct {
	SessionID string `json:"sessionId"`
	QuizID    string `json:"quizId"`
	Step      int    `json:"step"`
	Total     int    `json:"total"`
	Answered  int    `json:"answered"`
	Complete  bool   `json:"complete"`
	// EmailRequired is set while the quiz still waits for the respondent's email.
	EmailRequired bool      `json:"emailRequired,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// The authoring UI stores either a client generated "id" or a server assigned "_id".
// Decoding folds both into ID so the rest of the service sees one identifier.

func (o *Option) UnmarshalJSON(data []byte) error {
	type alias Option
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = aux.LegacyID
	}
	return nil
}

func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if q.ID == "" {
		q.ID = aux.LegacyID
	}
	return nil
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	type alias Outcome
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = aux.LegacyID
	}
	return nil
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	type alias Quiz
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if q.ID == "" {
		q.ID = aux.LegacyID
	}
	return nil
}
