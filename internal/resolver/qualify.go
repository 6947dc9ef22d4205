package resolver

import "quiz-outcome-service/internal/domain"

// Qualify returns, in input order, the IDs of outcomes that pass both gates:
// every required tag touched, and accumulated score plus tag-match bonus >= MinScore.
//
// The returned Scores is a copy of scores in which each qualified outcome carries its
// boosted total. Outcomes that fail a gate keep their accumulated score.
func Qualify(outcomes []domain.Outcome, scores Scores, touched TagSet) ([]string, Scores) {
	final := scores.clone()
	qualified := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if !touched.HasAll(o.MatchingRules.RequiredTags) {
			continue
		}
		total := scores[o.ID] + touched.Count(o.Tags)
		if total < o.MinScore {
			continue
		}
		final[o.ID] = total
		qualified = append(qualified, o.ID)
	}
	return qualified, final
}
