// Package resolver decides which outcome a completed response set resolves to and which
// products are recommended with it.
//
// Everything here is a pure function of its arguments: calls share no state and may run
// concurrently as long as callers do not mutate the quiz data while a call is in flight.
package resolver

import "quiz-outcome-service/internal/domain"

// Trace records the intermediate values of a resolution.
type Trace struct {
	Scores    Scores   `json:"scores"`
	Touched   []string `json:"touchedTags"`
	Qualified []string `json:"qualified"`
	WinnerID  string   `json:"winnerId"`
	Fallback  bool     `json:"fallback"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultOutcome names the outcome used when nothing qualifies. Unknown or empty IDs
// leave the first defined outcome as the fallback.
func WithDefaultOutcome(outcomeID string) Option {
	return func(e *Engine) { e.defaultOutcomeID = outcomeID }
}

// Engine runs the resolution pipeline. The zero value is ready to use.
type Engine struct {
	defaultOutcomeID string
}

// New builds an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve runs the default engine.
func Resolve(selections []domain.Option, outcomes []domain.Outcome) domain.Resolution {
	res, _ := New().Explain(selections, outcomes)
	return res
}

// Resolve returns the winning outcome and recommended products for the selected options.
// Winner is nil only when outcomes is empty.
func (e *Engine) Resolve(selections []domain.Option, outcomes []domain.Outcome) domain.Resolution {
	res, _ := e.Explain(selections, outcomes)
	return res
}

// Explain is Resolve plus the trace of how the winner was reached.
func (e *Engine) Explain(selections []domain.Option, outcomes []domain.Outcome) (domain.Resolution, Trace) {
	if len(outcomes) == 0 {
		return domain.Resolution{Products: []domain.RecommendedProduct{}}, Trace{}
	}

	scores, touched := Accumulate(selections, outcomes)
	qualified, final := Qualify(outcomes, scores, touched)
	trace := Trace{
		Scores:    final,
		Touched:   touched.Sorted(),
		Qualified: qualified,
	}

	var winner domain.Outcome
	if id, ok := SelectWinner(qualified, final, outcomes); ok {
		winner, _ = find(outcomes, id)
	} else {
		winner = e.fallback(outcomes)
		trace.Fallback = true
	}
	trace.WinnerID = winner.ID

	return domain.Resolution{
		Winner:   &winner,
		Products: AggregateProducts(winner, final, outcomes),
	}, trace
}

func (e *Engine) fallback(outcomes []domain.Outcome) domain.Outcome {
	if e.defaultOutcomeID != "" {
		if o, ok := find(outcomes, e.defaultOutcomeID); ok {
			return o
		}
	}
	return outcomes[0]
}

func find(outcomes []domain.Outcome, id string) (domain.Outcome, bool) {
	for _, o := range outcomes {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Outcome{}, false
}
