// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

import (
	"errors"
	"fmt"
)

// Validation sentinels. Input shape problems are configuration failures
// surfaced to the caller; the pipeline never silently drops rows that
// reference nonexistent recipes or ingredients.
var (
	// ErrUnknownRecipe indicates a link or feedback row references a
	// recipe missing from the catalog.
	ErrUnknownRecipe = errors.New("unknown recipe reference")

	// ErrUnknownIngredient indicates a link or pantry row references an
	// ingredient missing from the catalog.
	ErrUnknownIngredient = errors.New("unknown ingredient reference")

	// ErrDuplicateLink indicates more than one link exists for the same
	// (recipe, ingredient) pair.
	ErrDuplicateLink = errors.New("duplicate recipe-ingredient link")

	// ErrInvalidPreferences indicates the request preferences carry an
	// unrecognized enum value.
	ErrInvalidPreferences = errors.New("invalid preferences")
)

// linkKey identifies one recipe-ingredient pair.
type linkKey struct {
	recipeID     int
	ingredientID int
}

// ValidateSnapshot checks referential integrity of a snapshot. Integrity
// is owned by the ingestion collaborator, but the core rejects violations
// explicitly rather than producing rows with missing metadata.
func ValidateSnapshot(snap *Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}

	recipes := make(map[int]struct{}, len(snap.Recipes))
	for _, r := range snap.Recipes {
		recipes[r.ID] = struct{}{}
	}

	ingredients := make(map[int]struct{}, len(snap.Ingredients))
	for _, ing := range snap.Ingredients {
		ingredients[ing.ID] = struct{}{}
	}

	seen := make(map[linkKey]struct{}, len(snap.Links))
	for _, link := range snap.Links {
		if _, ok := recipes[link.RecipeID]; !ok {
			return fmt.Errorf("link (recipe %d, ingredient %d): %w", link.RecipeID, link.IngredientID, ErrUnknownRecipe)
		}
		if _, ok := ingredients[link.IngredientID]; !ok {
			return fmt.Errorf("link (recipe %d, ingredient %d): %w", link.RecipeID, link.IngredientID, ErrUnknownIngredient)
		}
		key := linkKey{link.RecipeID, link.IngredientID}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("recipe %d, ingredient %d: %w", link.RecipeID, link.IngredientID, ErrDuplicateLink)
		}
		seen[key] = struct{}{}
	}

	for _, entry := range snap.Pantry {
		if _, ok := ingredients[entry.IngredientID]; !ok {
			return fmt.Errorf("pantry entry for ingredient %d: %w", entry.IngredientID, ErrUnknownIngredient)
		}
	}

	for _, fb := range snap.Feedback {
		if _, ok := recipes[fb.RecipeID]; !ok {
			return fmt.Errorf("feedback %d for recipe %d: %w", fb.ID, fb.RecipeID, ErrUnknownRecipe)
		}
	}

	return nil
}

// Validate checks preference enum values. Zero values are "no preference"
// and always valid.
func (p *Preferences) Validate() error {
	if p.MealType != "" && !p.MealType.Valid() {
		return fmt.Errorf("meal type %q: %w", p.MealType, ErrInvalidPreferences)
	}
	if !p.DietType.Valid() {
		return fmt.Errorf("diet type %q: %w", p.DietType, ErrInvalidPreferences)
	}
	if p.MinPantryMatchPct < 0 || p.MinPantryMatchPct > 100 {
		return fmt.Errorf("min pantry match %.1f outside [0, 100]: %w", p.MinPantryMatchPct, ErrInvalidPreferences)
	}
	return nil
}
