// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package models

// RecommendationRequest is the body for POST /api/v1/recommendations.
// All preference fields are optional; zero values mean "no preference".
type RecommendationRequest struct {
	// MealType filters candidates to one dish type.
	MealType string `json:"meal_type" validate:"omitempty,dishtype"`

	// DishCategory filters candidates to one dish category.
	DishCategory string `json:"dish_category" validate:"omitempty,max=100"`

	// DietType filters candidates to veg or non-veg.
	DietType string `json:"diet_type" validate:"omitempty,diettype"`

	// PreferredCuisine boosts matching recipes during scoring. It never
	// excludes candidates.
	PreferredCuisine string `json:"preferred_cuisine" validate:"omitempty,max=100"`

	// PreferredIngredients is accepted for future use.
	PreferredIngredients []string `json:"preferred_ingredients" validate:"omitempty,dive,max=200"`

	// AllowAirfryer permits recipes needing an airfryer.
	AllowAirfryer bool `json:"allow_airfryer"`

	// AllowSoaking permits recipes needing overnight soaking.
	AllowSoaking bool `json:"allow_soaking"`

	// MinPantryMatchPct excludes recipes below this pantry match floor.
	MinPantryMatchPct float64 `json:"min_pantry_match_pct" validate:"min=0,max=100"`

	// TopN is the result count. Zero selects the server default.
	TopN int `json:"top_n" validate:"min=0,max=100"`
}

// RecipeIngredientInput is one ingredient row inside a recipe creation
// request. Ingredient names are matched case-insensitively against the
// existing catalog; unknown names create new ingredients.
type RecipeIngredientInput struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Quantity   float64 `json:"quantity" validate:"min=0"`
	Unit       string  `json:"unit" validate:"omitempty,max=50"`
	IsOptional bool    `json:"is_optional"`
}

// RecipeCreateRequest is the body for POST /api/v1/recipes.
type RecipeCreateRequest struct {
	Name               string                  `json:"name" validate:"required,max=300"`
	DishType           string                  `json:"dish_type" validate:"required,dishtype"`
	Cuisine            string                  `json:"cuisine" validate:"omitempty,max=100"`
	DietType           string                  `json:"diet_type" validate:"omitempty,diettype"`
	DishCategory       string                  `json:"dish_category" validate:"omitempty,max=100"`
	CookingTimeMinutes float64                 `json:"cooking_time_minutes" validate:"min=0"`
	RequiresAirfryer   bool                    `json:"requires_airfryer"`
	RequiresSoaking    bool                    `json:"requires_soaking"`
	MealPrepFriendly   bool                    `json:"meal_prep_friendly"`
	VideoLink          string                  `json:"video_link" validate:"omitempty,url,max=500"`
	CreatedBy          string                  `json:"created_by" validate:"omitempty,max=100"`
	Ingredients        []RecipeIngredientInput `json:"ingredients" validate:"required,min=1,dive"`
}

// PantryUpdateRequest is the body for PUT /api/v1/pantry. It replaces or
// adds one pantry entry.
type PantryUpdateRequest struct {
	IngredientID int     `json:"ingredient_id" validate:"required,min=1"`
	Quantity     float64 `json:"quantity" validate:"min=0"`
	UpdatedBy    string  `json:"updated_by" validate:"omitempty,max=100"`
}

// FeedbackCreateRequest is the body for POST /api/v1/feedback.
type FeedbackCreateRequest struct {
	RecipeID       int     `json:"recipe_id" validate:"required,min=1"`
	Rating         float64 `json:"rating" validate:"required,min=1,max=5"`
	Liked          bool    `json:"liked"`
	Comments       string  `json:"comments" validate:"omitempty,max=2000"`
	CookedOn       string  `json:"cooked_on" validate:"omitempty,datetime=2006-01-02"`
	WouldMakeAgain bool    `json:"would_make_again"`
}
