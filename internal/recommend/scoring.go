// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

import (
	"strings"
)

// ScoreCandidates computes the final weighted score for every surviving
// candidate, joining in aggregated feedback (left join: recipes without
// feedback receive the configured defaults).
//
// Components, each normalized to [0, 1]:
//
//	pantry_score  = pantry_match_pct / 100
//	rating_score  = avg_rating / 5
//	repeat_score  = would_make_again_rate
//	cuisine_score = 1 when the recipe's cuisine equals the preferred one
//	time_score    = 1 - time / max(time across this result set, 1)
//
// The time normalization is relative and dataset-dependent: it is
// recomputed per request over the filtered set, never a fixed constant.
// After the weighted sum, penalty factors apply multiplicatively and
// stack: LowRatingFactor when the average rating is below its threshold,
// LowRepeatFactor when the repeat rate is below its threshold.
//
// The result preserves candidate order; ranking happens in the engine.
func ScoreCandidates(candidates []Candidate, stats map[int]FeedbackStats, prefs Preferences, cfg *Config) []ScoredRecipe {
	if len(candidates) == 0 {
		return []ScoredRecipe{}
	}

	weights := cfg.Weights.Normalize()
	maxTime := maxCookingTime(candidates)

	scored := make([]ScoredRecipe, 0, len(candidates))
	for i := range candidates {
		scored = append(scored, scoreCandidate(&candidates[i], stats, prefs, cfg, weights, maxTime))
	}

	return scored
}

// maxCookingTime returns the largest effective cooking time in the set,
// floored at 1 to keep the time normalization well-defined.
func maxCookingTime(candidates []Candidate) float64 {
	maxTime := 1.0
	for i := range candidates {
		if t := candidates[i].Recipe.EffectiveCookingTime(); t > maxTime {
			maxTime = t
		}
	}
	return maxTime
}

// scoreCandidate computes one candidate's score and breakdown. It is a
// pure function of the row: the same inputs reproduce the same breakdown
// byte for byte.
func scoreCandidate(c *Candidate, stats map[int]FeedbackStats, prefs Preferences, cfg *Config, weights ScoreWeights, maxTime float64) ScoredRecipe {
	// Left join with feedback; unmatched recipes get the neutral defaults.
	fb, ok := stats[c.Recipe.ID]
	if !ok {
		fb = FeedbackStats{
			RecipeID:           c.Recipe.ID,
			AvgRating:          cfg.Defaults.AvgRating,
			WouldMakeAgainRate: cfg.Defaults.WouldMakeAgainRate,
		}
	}

	cookingTime := c.Recipe.EffectiveCookingTime()
	cuisineMatch := prefs.PreferredCuisine != "" &&
		strings.EqualFold(c.Recipe.Cuisine, prefs.PreferredCuisine)

	breakdown := ScoreBreakdown{
		PantryMatchPct:     c.Metrics.PantryMatchPct,
		AvgRating:          fb.AvgRating,
		WouldMakeAgain:     fb.WouldMakeAgainRate,
		CuisineMatch:       cuisineMatch,
		CookingTimeMinutes: cookingTime,

		PantryScore: c.Metrics.PantryMatchPct / 100.0,
		RatingScore: fb.AvgRating / 5.0,
		RepeatScore: fb.WouldMakeAgainRate,
		TimeScore:   1.0 - cookingTime/maxTime,
	}
	if cuisineMatch {
		breakdown.CuisineScore = 1.0
	}

	breakdown.WeightedScore = weights.Pantry*breakdown.PantryScore +
		weights.Rating*breakdown.RatingScore +
		weights.Repeat*breakdown.RepeatScore +
		weights.Cuisine*breakdown.CuisineScore +
		weights.Time*breakdown.TimeScore

	breakdown.PenaltyMultiplier = 1.0
	if fb.AvgRating < cfg.Penalties.LowRatingThreshold {
		breakdown.PenaltyMultiplier *= cfg.Penalties.LowRatingFactor
	}
	if fb.WouldMakeAgainRate < cfg.Penalties.LowRepeatThreshold {
		breakdown.PenaltyMultiplier *= cfg.Penalties.LowRepeatFactor
	}

	missing := c.Missing
	if missing == nil {
		missing = []string{}
	}

	return ScoredRecipe{
		Recipe:             c.Recipe,
		PantryMatchPct:     c.Metrics.PantryMatchPct,
		MissingIngredients: missing,
		AvgRating:          fb.AvgRating,
		WouldMakeAgainRate: fb.WouldMakeAgainRate,
		TimesCooked:        fb.TimesCooked,
		FinalScore:         breakdown.WeightedScore * breakdown.PenaltyMultiplier,
		Breakdown:          breakdown,
	}
}
