package resolver

import "quiz-outcome-service/internal/domain"

// AggregateProducts lists the winner's products followed by the products of every other
// outcome with a positive score, in outcome order. A title is only ever listed once; the
// first occurrence wins.
func AggregateProducts(winner domain.Outcome, scores Scores, outcomes []domain.Outcome) []domain.RecommendedProduct {
	products := make([]domain.RecommendedProduct, 0, len(winner.RecommendedProducts))
	seen := make(map[string]struct{})
	add := func(list []domain.RecommendedProduct) {
		for _, p := range list {
			if _, ok := seen[p.Title]; ok {
				continue
			}
			seen[p.Title] = struct{}{}
			products = append(products, p)
		}
	}

	add(winner.RecommendedProducts)
	for _, o := range outcomes {
		if o.ID == winner.ID || scores[o.ID] <= 0 {
			continue
		}
		add(o.RecommendedProducts)
	}
	return products
}
