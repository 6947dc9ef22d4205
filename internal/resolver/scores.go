package resolver

import (
	"sort"

	"quiz-outcome-service/internal/domain"
)

// Scores maps outcome IDs to accumulated points.
type Scores map[string]int

func (s Scores) clone() Scores {
	out := make(Scores, len(s))
	for id, v := range s {
		out[id] = v
	}
	return out
}

// TagSet is the set of tags touched by a respondent's selections.
type TagSet map[string]struct{}

// Has reports whether tag was touched.
func (t TagSet) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

// HasAll reports whether every tag in tags was touched. An empty list is always satisfied.
func (t TagSet) HasAll(tags []string) bool {
	for _, tag := range tags {
		if !t.Has(tag) {
			return false
		}
	}
	return true
}

// Count returns how many entries of tags were touched.
func (t TagSet) Count(tags []string) int {
	n := 0
	for _, tag := range tags {
		if t.Has(tag) {
			n++
		}
	}
	return n
}

// Sorted returns the tags in lexical order.
func (t TagSet) Sorted() []string {
	out := make([]string, 0, len(t))
	for tag := range t {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Accumulate folds the weights and tags of every selected option into per-outcome scores
// and the set of touched tags. Every outcome starts at zero; weights that target an
// unknown outcome are ignored.
func Accumulate(selections []domain.Option, outcomes []domain.Outcome) (Scores, TagSet) {
	scores := make(Scores, len(outcomes))
	for _, o := range outcomes {
		scores[o.ID] = 0
	}
	touched := make(TagSet)
	for _, opt := range selections {
		for _, w := range opt.Weights {
			if _, ok := scores[w.OutcomeID]; ok {
				scores[w.OutcomeID] += w.Value()
			}
		}
		for _, tag := range opt.Tags {
			touched[tag] = struct{}{}
		}
	}
	return scores, touched
}
