// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

// AggregateFeedback rolls historical feedback up to per-recipe statistics:
// mean rating, would-make-again rate, and times cooked. Recipes with no
// feedback are absent from the result; the scorer supplies defaults.
// Empty input yields an empty, non-nil map, never an error.
func AggregateFeedback(feedback []FeedbackRecord) map[int]FeedbackStats {
	type accumulator struct {
		ratingSum float64
		againSum  float64
		count     int
	}

	acc := make(map[int]*accumulator)
	for _, record := range feedback {
		a, ok := acc[record.RecipeID]
		if !ok {
			a = &accumulator{}
			acc[record.RecipeID] = a
		}
		a.ratingSum += record.Rating
		if record.WouldMakeAgain {
			a.againSum++
		}
		a.count++
	}

	stats := make(map[int]FeedbackStats, len(acc))
	for recipeID, a := range acc {
		stats[recipeID] = FeedbackStats{
			RecipeID:           recipeID,
			AvgRating:          a.ratingSum / float64(a.count),
			WouldMakeAgainRate: a.againSum / float64(a.count),
			TimesCooked:        a.count,
		}
	}

	return stats
}
