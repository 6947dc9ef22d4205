package domain

import "fmt"

// Validate checks the structural invariants the resolver relies on: every question,
// option and outcome has an ID, IDs are unique within their scope, and question types
// are known.
func (q Quiz) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing quiz id", ErrInvalidQuiz)
	}

	questions := make(map[string]struct{}, len(q.Questions))
	for i, question := range q.Questions {
		if question.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidQuiz, i)
		}
		if _, dup := questions[question.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %s", ErrInvalidQuiz, question.ID)
		}
		questions[question.ID] = struct{}{}
		if !question.Type.Valid() {
			return fmt.Errorf("%w: question %s has unknown type %q", ErrInvalidQuiz, question.ID, question.Type)
		}

		options := make(map[string]struct{}, len(question.Options))
		for j, opt := range question.Options {
			if opt.ID == "" {
				return fmt.Errorf("%w: option %d of question %s has no id", ErrInvalidQuiz, j, question.ID)
			}
			if _, dup := options[opt.ID]; dup {
				return fmt.Errorf("%w: duplicate option id %s in question %s", ErrInvalidQuiz, opt.ID, question.ID)
			}
			options[opt.ID] = struct{}{}
		}
	}

	outcomes := make(map[string]struct{}, len(q.Outcomes))
	for i, o := range q.Outcomes {
		if o.ID == "" {
			return fmt.Errorf("%w: outcome %d has no id", ErrInvalidQuiz, i)
		}
		if _, dup := outcomes[o.ID]; dup {
			return fmt.Errorf("%w: duplicate outcome id %s", ErrInvalidQuiz, o.ID)
		}
		outcomes[o.ID] = struct{}{}
	}
	return nil
}
