// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

// Package ingest turns recipe submissions into catalog rows. It owns ID
// allocation and referential integrity: recipe IDs continue from the
// current maximum, ingredient names are matched case-insensitively
// against the existing catalog before new IDs are minted, and each
// (recipe, ingredient) pair produces exactly one link.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tanvisivaraj/kitchen-compass/internal/metrics"
	"github.com/tanvisivaraj/kitchen-compass/internal/models"
	"github.com/tanvisivaraj/kitchen-compass/internal/recommend"
)

// ErrNoIngredients indicates a submission without any ingredient rows.
var ErrNoIngredients = errors.New("recipe needs at least one ingredient")

// Store is the persistence surface the service writes through.
type Store interface {
	// ListIngredients returns the full ingredient catalog.
	ListIngredients(ctx context.Context) ([]recommend.Ingredient, error)

	// MaxRecipeID returns the highest recipe ID ever assigned.
	MaxRecipeID(ctx context.Context) (int, error)

	// CreateRecipe persists a recipe, its new ingredients, and its links
	// in one transaction.
	CreateRecipe(ctx context.Context, recipe recommend.Recipe, createdBy string, newIngredients []recommend.Ingredient, links []recommend.RecipeIngredientLink) error
}

// Service ingests recipe submissions.
type Service struct {
	store  Store
	logger zerolog.Logger

	// mu serializes writes so concurrent submissions never race on ID
	// allocation.
	mu sync.Mutex
}

// NewService creates an ingestion service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// Result describes one completed ingestion.
type Result struct {
	// Recipe is the stored recipe with its assigned ID.
	Recipe recommend.Recipe `json:"recipe"`

	// NewIngredients lists ingredients created for this recipe.
	NewIngredients []recommend.Ingredient `json:"new_ingredients"`

	// ReusedIngredients lists existing ingredients the recipe linked to.
	ReusedIngredients []recommend.Ingredient `json:"reused_ingredients"`
}

// IngestRecipe validates a submission, allocates IDs, and persists the
// recipe. Duplicate ingredient names within one submission collapse into
// a single link; quantities of later duplicates are dropped in favor of
// the first occurrence.
func (s *Service) IngestRecipe(ctx context.Context, req *models.RecipeCreateRequest) (*Result, error) {
	if len(req.Ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.ListIngredients(ctx)
	if err != nil {
		metrics.IngestErrors.WithLabelValues("database").Inc()
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	maxRecipeID, err := s.store.MaxRecipeID(ctx)
	if err != nil {
		metrics.IngestErrors.WithLabelValues("database").Inc()
		return nil, fmt.Errorf("failed to read max recipe id: %w", err)
	}
	recipeID := maxRecipeID + 1

	// Case-insensitive name index over the current catalog.
	byName := make(map[string]recommend.Ingredient, len(existing))
	maxIngredientID := 0
	for _, ing := range existing {
		byName[normalizeName(ing.Name)] = ing
		if ing.ID > maxIngredientID {
			maxIngredientID = ing.ID
		}
	}

	var (
		newIngredients []recommend.Ingredient
		reused         []recommend.Ingredient
		links          []recommend.RecipeIngredientLink
		linked         = make(map[int]bool)
	)
	for _, input := range req.Ingredients {
		key := normalizeName(input.Name)
		ing, ok := byName[key]
		if !ok {
			maxIngredientID++
			ing = recommend.Ingredient{ID: maxIngredientID, Name: strings.TrimSpace(input.Name)}
			byName[key] = ing
			newIngredients = append(newIngredients, ing)
		} else if !linked[ing.ID] {
			reused = append(reused, ing)
		}

		// One link per (recipe, ingredient) pair.
		if linked[ing.ID] {
			continue
		}
		linked[ing.ID] = true

		links = append(links, recommend.RecipeIngredientLink{
			RecipeID:     recipeID,
			IngredientID: ing.ID,
			Quantity:     input.Quantity,
			Unit:         input.Unit,
			IsOptional:   input.IsOptional,
		})
	}

	recipe := recommend.Recipe{
		ID:                 recipeID,
		Name:               strings.TrimSpace(req.Name),
		DishType:           recommend.DishType(req.DishType),
		Cuisine:            req.Cuisine,
		DietType:           recommend.DietType(req.DietType),
		DishCategory:       req.DishCategory,
		CookingTimeMinutes: req.CookingTimeMinutes,
		RequiresAirfryer:   req.RequiresAirfryer,
		RequiresSoaking:    req.RequiresSoaking,
		MealPrepFriendly:   req.MealPrepFriendly,
		VideoLink:          req.VideoLink,
	}

	if err := s.store.CreateRecipe(ctx, recipe, req.CreatedBy, newIngredients, links); err != nil {
		metrics.IngestErrors.WithLabelValues("database").Inc()
		return nil, fmt.Errorf("failed to persist recipe: %w", err)
	}

	metrics.IngestRecipesTotal.Inc()
	metrics.IngestIngredientsCreated.Add(float64(len(newIngredients)))

	s.logger.Info().
		Int("recipe_id", recipeID).
		Str("name", recipe.Name).
		Int("new_ingredients", len(newIngredients)).
		Int("reused_ingredients", len(reused)).
		Msg("recipe ingested")

	return &Result{
		Recipe:            recipe,
		NewIngredients:    newIngredients,
		ReusedIngredients: reused,
	}, nil
}

// normalizeName folds an ingredient name for case-insensitive matching.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
