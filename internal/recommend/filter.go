// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

// Candidate is a recipe joined with its match metrics and missing list,
// the unit flowing through the constraint filter and scorer.
type Candidate struct {
	// Recipe is the catalog recipe metadata.
	Recipe Recipe

	// Metrics is the recipe's pantry match metrics.
	Metrics MatchMetrics

	// Missing is the ordered missing-ingredient list. Never nil.
	Missing []string
}

// ApplyConstraints removes candidates violating hard preferences. Each
// present constraint is a boolean AND predicate, applied in a fixed order:
//
//  1. pantry match percentage >= the minimum floor (default 0)
//  2. dish type == meal type, when a meal type is given
//  3. dish category, when given
//  4. diet type, when given
//  5. recipes requiring an airfryer are dropped when the user cannot use one
//  6. recipes requiring soaking are dropped when the user cannot soak
//
// The preferred cuisine is deliberately NOT filtered here: it is a soft
// scoring signal (see scoreCandidates). Filtering is idempotent: applying
// the same preferences to the filtered output returns the same set.
//
// The result is a new slice, possibly empty, in input order.
func ApplyConstraints(candidates []Candidate, prefs Preferences) []Candidate {
	filtered := make([]Candidate, 0, len(candidates))

	for i := range candidates {
		if matchesConstraints(&candidates[i], prefs) {
			filtered = append(filtered, candidates[i])
		}
	}

	return filtered
}

// matchesConstraints evaluates all hard predicates for one candidate.
func matchesConstraints(c *Candidate, prefs Preferences) bool {
	if c.Metrics.PantryMatchPct < prefs.MinPantryMatchPct {
		return false
	}

	if prefs.MealType != "" && c.Recipe.DishType != prefs.MealType {
		return false
	}

	if prefs.DishCategory != "" && c.Recipe.DishCategory != prefs.DishCategory {
		return false
	}

	if prefs.DietType != "" && c.Recipe.DietType != prefs.DietType {
		return false
	}

	if !prefs.AllowAirfryer && c.Recipe.RequiresAirfryer {
		return false
	}

	if !prefs.AllowSoaking && c.Recipe.RequiresSoaking {
		return false
	}

	return true
}
