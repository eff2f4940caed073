// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

// AggregatePantry collapses possibly-duplicated pantry entries into one
// available quantity per ingredient. Ingredients with no pantry entries do
// not appear in the result; downstream consumers treat absence as zero.
// Empty input yields an empty, non-nil map.
func AggregatePantry(pantry []PantryEntry) map[int]float64 {
	agg := make(map[int]float64, len(pantry))
	for _, entry := range pantry {
		agg[entry.IngredientID] += entry.Quantity
	}
	return agg
}

// ResolveIngredientStatuses classifies every recipe-ingredient link against
// the aggregated pantry. The result has exactly one row per input link, in
// input order.
//
// Classification:
//   - optional links are always StatusOptional, regardless of quantity
//   - available >= required (including required == 0) is StatusAvailable
//   - 0 < available < required is StatusPartial
//   - available == 0 is StatusMissing
func ResolveIngredientStatuses(links []RecipeIngredientLink, pantry map[int]float64) []IngredientStatusRow {
	rows := make([]IngredientStatusRow, 0, len(links))

	for _, link := range links {
		available := pantry[link.IngredientID] // missing key means zero on hand

		rows = append(rows, IngredientStatusRow{
			RecipeID:          link.RecipeID,
			IngredientID:      link.IngredientID,
			RequiredQuantity:  link.Quantity,
			AvailableQuantity: available,
			IsOptional:        link.IsOptional,
			Status:            classifyIngredient(link, available),
		})
	}

	return rows
}

// classifyIngredient derives the availability status for one link.
func classifyIngredient(link RecipeIngredientLink, available float64) IngredientStatus {
	switch {
	case link.IsOptional:
		return StatusOptional
	case available >= link.Quantity:
		return StatusAvailable
	case available > 0:
		return StatusPartial
	default:
		return StatusMissing
	}
}

// ComputeMatchMetrics rolls ingredient statuses up to per-recipe counts and
// a pantry match percentage. Optional rows are excluded from the
// denominator entirely, not merely neutralized.
//
// A recipe whose every link is optional has TotalIngredients zero; rather
// than propagate an undefined division, its match percentage is 100:
// nothing mandatory is missing. Recipes with no links at all never appear
// (they produce no status rows).
//
// The returned map is keyed by recipe ID; iteration order is up to the
// caller, who holds the ordered recipe relation.
func ComputeMatchMetrics(statuses []IngredientStatusRow) map[int]MatchMetrics {
	metrics := make(map[int]MatchMetrics)

	for _, row := range statuses {
		m, ok := metrics[row.RecipeID]
		if !ok {
			m = MatchMetrics{RecipeID: row.RecipeID}
		}

		switch row.Status {
		case StatusOptional:
			// Excluded from all counts.
		case StatusAvailable:
			m.TotalIngredients++
			m.AvailableCount++
		case StatusPartial:
			m.TotalIngredients++
			m.PartialCount++
		case StatusMissing:
			m.TotalIngredients++
			m.MissingCount++
		}

		metrics[row.RecipeID] = m
	}

	for id, m := range metrics {
		if m.TotalIngredients == 0 {
			m.PantryMatchPct = 100.0
		} else {
			m.PantryMatchPct = float64(m.AvailableCount) / float64(m.TotalIngredients) * 100.0
		}
		metrics[id] = m
	}

	return metrics
}

// MissingIngredients produces, per recipe, the ordered list of missing
// ingredient names. Order follows the status rows, which follow the input
// link order. Optional rows never appear regardless of pantry state.
// Recipes with nothing missing are absent from the result; callers default
// to an empty list, never nil.
//
// Ingredient IDs without a catalog entry are skipped here; snapshot
// validation rejects them before the pipeline runs.
func MissingIngredients(statuses []IngredientStatusRow, ingredients []Ingredient) map[int][]string {
	names := make(map[int]string, len(ingredients))
	for _, ing := range ingredients {
		names[ing.ID] = ing.Name
	}

	missing := make(map[int][]string)
	for _, row := range statuses {
		if row.Status != StatusMissing {
			continue
		}
		name, ok := names[row.IngredientID]
		if !ok {
			continue
		}
		missing[row.RecipeID] = append(missing[row.RecipeID], name)
	}

	return missing
}
