package resolver

import "quiz-outcome-service/internal/domain"

// SelectWinner picks the best of the qualified outcome IDs: higher score first, then
// higher priority, then the earlier position in qualified. It returns false when
// qualified is empty.
func SelectWinner(qualified []string, scores Scores, outcomes []domain.Outcome) (string, bool) {
	if len(qualified) == 0 {
		return "", false
	}
	priority := make(map[string]int, len(outcomes))
	for _, o := range outcomes {
		if _, ok := priority[o.ID]; !ok {
			priority[o.ID] = o.Priority
		}
	}

	best := qualified[0]
	for _, id := range qualified[1:] {
		switch {
		case scores[id] > scores[best]:
			best = id
		case scores[id] == scores[best] && priority[id] > priority[best]:
			best = id
		}
	}
	return best, true
}
