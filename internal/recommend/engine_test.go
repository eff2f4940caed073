// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func testEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// testSnapshot builds the canonical fixture: flour in the pantry, a
// pancake recipe needing flour plus an optional egg, and a cake recipe
// needing sugar that is not in the pantry.
func testSnapshot() *Snapshot {
	return &Snapshot{
		Recipes: []Recipe{
			{ID: 1, Name: "pancakes", DishType: DishBreakfast, CookingTimeMinutes: 20},
			{ID: 2, Name: "cake", DishType: DishDessert, CookingTimeMinutes: 90},
		},
		Ingredients: []Ingredient{
			{ID: 1, Name: "flour"},
			{ID: 2, Name: "egg"},
			{ID: 3, Name: "sugar"},
		},
		Links: []RecipeIngredientLink{
			{RecipeID: 1, IngredientID: 1, Quantity: 50},
			{RecipeID: 1, IngredientID: 2, Quantity: 1, IsOptional: true},
			{RecipeID: 2, IngredientID: 3, Quantity: 200},
		},
		Pantry: []PantryEntry{
			{IngredientID: 1, Quantity: 100},
		},
		Version: 1,
	}
}

func TestEngine_Recommend_PantryScenarios(t *testing.T) {
	engine := testEngine(t, nil)

	resp, err := engine.Recommend(context.Background(), testSnapshot(), permissivePrefs(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(resp.Recipes))
	}

	// Pancakes: flour available, egg optional -> 100% match, nothing missing.
	pancakes := findScored(t, resp.Recipes, 1)
	if pancakes.PantryMatchPct != 100 {
		t.Errorf("pancakes match = %f, want 100", pancakes.PantryMatchPct)
	}
	if len(pancakes.MissingIngredients) != 0 {
		t.Errorf("pancakes missing = %v, want empty", pancakes.MissingIngredients)
	}
	if pancakes.MissingIngredients == nil {
		t.Error("pancakes missing is nil, want empty slice")
	}

	// Cake: sugar absent -> 0% match, sugar reported missing.
	cake := findScored(t, resp.Recipes, 2)
	if cake.PantryMatchPct != 0 {
		t.Errorf("cake match = %f, want 0", cake.PantryMatchPct)
	}
	if !reflect.DeepEqual(cake.MissingIngredients, []string{"sugar"}) {
		t.Errorf("cake missing = %v, want [sugar]", cake.MissingIngredients)
	}

	// Full pantry beats empty pantry.
	if resp.Recipes[0].Recipe.ID != 1 {
		t.Errorf("top recipe = %d, want pancakes (1)", resp.Recipes[0].Recipe.ID)
	}
}

func TestEngine_Recommend_MinPantryMatchFilter(t *testing.T) {
	engine := testEngine(t, nil)

	prefs := permissivePrefs()
	prefs.MinPantryMatchPct = 60

	resp, err := engine.Recommend(context.Background(), testSnapshot(), prefs, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recipes) != 1 {
		t.Fatalf("got %d recipes, want 1", len(resp.Recipes))
	}
	if resp.Recipes[0].Recipe.ID != 1 {
		t.Errorf("survivor = %d, want 1", resp.Recipes[0].Recipe.ID)
	}
	if resp.Metadata.Filtered != 1 {
		t.Errorf("filtered count = %d, want 1", resp.Metadata.Filtered)
	}
}

func TestEngine_Recommend_EmptyResultIsNotAnError(t *testing.T) {
	engine := testEngine(t, nil)

	prefs := permissivePrefs()
	prefs.MealType = DishBeverage // nothing in the fixture is a beverage

	resp, err := engine.Recommend(context.Background(), testSnapshot(), prefs, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Recipes == nil {
		t.Fatal("recipes is nil, want empty slice")
	}
	if len(resp.Recipes) != 0 {
		t.Errorf("got %d recipes, want 0", len(resp.Recipes))
	}
	if resp.TotalCandidates != 2 {
		t.Errorf("total candidates = %d, want 2", resp.TotalCandidates)
	}
}

func TestEngine_Recommend_TieBreakByRecipeID(t *testing.T) {
	engine := testEngine(t, nil)

	// Two identical recipes with identical pantry coverage score equally;
	// the smaller recipe ID must sort first. IDs are inserted in
	// descending order to prove the sort is doing the work.
	snap := &Snapshot{
		Recipes: []Recipe{
			{ID: 9, Name: "dal b", DishType: DishMeal, CookingTimeMinutes: 30},
			{ID: 4, Name: "dal a", DishType: DishMeal, CookingTimeMinutes: 30},
		},
		Ingredients: []Ingredient{{ID: 1, Name: "lentils"}},
		Links: []RecipeIngredientLink{
			{RecipeID: 9, IngredientID: 1, Quantity: 100},
			{RecipeID: 4, IngredientID: 1, Quantity: 100},
		},
		Pantry:  []PantryEntry{{IngredientID: 1, Quantity: 500}},
		Version: 1,
	}

	resp, err := engine.Recommend(context.Background(), snap, permissivePrefs(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(resp.Recipes))
	}
	if resp.Recipes[0].FinalScore != resp.Recipes[1].FinalScore {
		t.Fatalf("fixture broken: scores differ (%f vs %f)",
			resp.Recipes[0].FinalScore, resp.Recipes[1].FinalScore)
	}
	if resp.Recipes[0].Recipe.ID != 4 || resp.Recipes[1].Recipe.ID != 9 {
		t.Errorf("tie order = [%d, %d], want [4, 9]",
			resp.Recipes[0].Recipe.ID, resp.Recipes[1].Recipe.ID)
	}
}

func TestEngine_Recommend_TopNTruncation(t *testing.T) {
	engine := testEngine(t, nil)

	resp, err := engine.Recommend(context.Background(), testSnapshot(), permissivePrefs(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recipes) != 1 {
		t.Errorf("got %d recipes, want 1", len(resp.Recipes))
	}

	// Zero topN falls back to the configured default.
	resp, err = engine.Recommend(context.Background(), testSnapshot(), permissivePrefs(), 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recipes) != 2 {
		t.Errorf("default topN returned %d recipes, want all 2", len(resp.Recipes))
	}
}

func TestEngine_Recommend_ValidationFailures(t *testing.T) {
	engine := testEngine(t, nil)
	ctx := context.Background()

	t.Run("link references unknown recipe", func(t *testing.T) {
		snap := testSnapshot()
		snap.Links = append(snap.Links, RecipeIngredientLink{RecipeID: 99, IngredientID: 1, Quantity: 1})
		_, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
		if !errors.Is(err, ErrUnknownRecipe) {
			t.Errorf("error = %v, want ErrUnknownRecipe", err)
		}
	})

	t.Run("link references unknown ingredient", func(t *testing.T) {
		snap := testSnapshot()
		snap.Links = append(snap.Links, RecipeIngredientLink{RecipeID: 1, IngredientID: 99, Quantity: 1})
		_, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
		if !errors.Is(err, ErrUnknownIngredient) {
			t.Errorf("error = %v, want ErrUnknownIngredient", err)
		}
	})

	t.Run("duplicate link", func(t *testing.T) {
		snap := testSnapshot()
		snap.Links = append(snap.Links, snap.Links[0])
		_, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
		if !errors.Is(err, ErrDuplicateLink) {
			t.Errorf("error = %v, want ErrDuplicateLink", err)
		}
	})

	t.Run("pantry references unknown ingredient", func(t *testing.T) {
		snap := testSnapshot()
		snap.Pantry = append(snap.Pantry, PantryEntry{IngredientID: 42, Quantity: 1})
		_, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
		if !errors.Is(err, ErrUnknownIngredient) {
			t.Errorf("error = %v, want ErrUnknownIngredient", err)
		}
	})

	t.Run("feedback references unknown recipe", func(t *testing.T) {
		snap := testSnapshot()
		snap.Feedback = append(snap.Feedback, FeedbackRecord{ID: 1, RecipeID: 77, Rating: 5})
		_, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
		if !errors.Is(err, ErrUnknownRecipe) {
			t.Errorf("error = %v, want ErrUnknownRecipe", err)
		}
	})

	t.Run("invalid meal type", func(t *testing.T) {
		prefs := permissivePrefs()
		prefs.MealType = "brunch"
		_, err := engine.Recommend(ctx, testSnapshot(), prefs, 5)
		if !errors.Is(err, ErrInvalidPreferences) {
			t.Errorf("error = %v, want ErrInvalidPreferences", err)
		}
	})
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	engine := testEngine(t, nil)
	ctx := context.Background()

	snap := testSnapshot()
	snap.Version = 0 // bypass the cache so both runs execute the pipeline
	snap.Feedback = []FeedbackRecord{
		{ID: 1, RecipeID: 1, Rating: 5, WouldMakeAgain: true},
		{ID: 2, RecipeID: 1, Rating: 1, WouldMakeAgain: false},
		{ID: 3, RecipeID: 2, Rating: 4, WouldMakeAgain: true},
	}

	first, err := engine.Recommend(ctx, snap, permissivePrefs(), 10)
	if err != nil {
		t.Fatalf("first run error = %v", err)
	}
	second, err := engine.Recommend(ctx, snap, permissivePrefs(), 10)
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}

	if !reflect.DeepEqual(first.Recipes, second.Recipes) {
		t.Error("two runs over identical inputs produced different ranked output")
	}

	// Split feedback averages out: 5 and 1 mean rating 3.0, repeat 0.5,
	// no penalties.
	pancakes := findScored(t, first.Recipes, 1)
	if pancakes.AvgRating != 3.0 {
		t.Errorf("avg rating = %f, want 3.0", pancakes.AvgRating)
	}
	if pancakes.WouldMakeAgainRate != 0.5 {
		t.Errorf("repeat rate = %f, want 0.5", pancakes.WouldMakeAgainRate)
	}
	if pancakes.Breakdown.PenaltyMultiplier != 1.0 {
		t.Errorf("penalty multiplier = %f, want 1.0", pancakes.Breakdown.PenaltyMultiplier)
	}
}

func TestEngine_Recommend_Cache(t *testing.T) {
	engine := testEngine(t, nil)
	ctx := context.Background()
	snap := testSnapshot()

	first, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first call reported a cache hit")
	}

	second, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second call with same version missed the cache")
	}
	if !reflect.DeepEqual(first.Recipes, second.Recipes) {
		t.Error("cached response differs from the original")
	}

	// A new snapshot version is a different key.
	snap.Version = 2
	third, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if third.Metadata.CacheHit {
		t.Error("version bump still hit the cache")
	}

	engine.InvalidateCache()
	fourth, err := engine.Recommend(ctx, snap, permissivePrefs(), 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if fourth.Metadata.CacheHit {
		t.Error("invalidated cache still served a hit")
	}
}

func TestEngine_Recommend_RecipesWithoutLinksAreExcluded(t *testing.T) {
	engine := testEngine(t, nil)

	snap := testSnapshot()
	snap.Recipes = append(snap.Recipes, Recipe{ID: 3, Name: "mystery", DishType: DishMeal})

	resp, err := engine.Recommend(context.Background(), snap, permissivePrefs(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := range resp.Recipes {
		if resp.Recipes[i].Recipe.ID == 3 {
			t.Error("recipe without any ingredient link entered the pipeline")
		}
	}
}

func TestEngine_Recommend_AllOptionalRecipeMatchesFully(t *testing.T) {
	engine := testEngine(t, nil)

	snap := &Snapshot{
		Recipes:     []Recipe{{ID: 1, Name: "garnish", DishType: DishSnack}},
		Ingredients: []Ingredient{{ID: 1, Name: "coriander"}},
		Links: []RecipeIngredientLink{
			{RecipeID: 1, IngredientID: 1, Quantity: 5, IsOptional: true},
		},
		Version: 1,
	}

	resp, err := engine.Recommend(context.Background(), snap, permissivePrefs(), 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recipes) != 1 {
		t.Fatalf("got %d recipes, want 1", len(resp.Recipes))
	}
	if resp.Recipes[0].PantryMatchPct != 100 {
		t.Errorf("all-optional recipe match = %f, want 100", resp.Recipes[0].PantryMatchPct)
	}
	if len(resp.Recipes[0].MissingIngredients) != 0 {
		t.Errorf("all-optional recipe missing = %v, want empty", resp.Recipes[0].MissingIngredients)
	}
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Pantry = -1

	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Error("NewEngine() accepted negative weight")
	}
}

func findScored(t *testing.T, recipes []ScoredRecipe, recipeID int) *ScoredRecipe {
	t.Helper()
	for i := range recipes {
		if recipes[i].Recipe.ID == recipeID {
			return &recipes[i]
		}
	}
	t.Fatalf("recipe %d not found in results", recipeID)
	return nil
}
