// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

import (
	"time"
)

// DishType classifies a recipe by the meal it belongs to.
type DishType string

// Recognized dish types.
const (
	DishBreakfast DishType = "breakfast"
	DishMeal      DishType = "meal"
	DishSnack     DishType = "snack"
	DishDessert   DishType = "dessert"
	DishBeverage  DishType = "beverage"
)

// Valid reports whether the dish type is one of the recognized values.
func (d DishType) Valid() bool {
	switch d {
	case DishBreakfast, DishMeal, DishSnack, DishDessert, DishBeverage:
		return true
	default:
		return false
	}
}

// DietType classifies a recipe's dietary category.
type DietType string

// Recognized diet types. An empty value means the recipe is unclassified.
const (
	DietVeg    DietType = "veg"
	DietNonVeg DietType = "non-veg"
)

// Valid reports whether the diet type is recognized or unset.
func (d DietType) Valid() bool {
	return d == "" || d == DietVeg || d == DietNonVeg
}

// DefaultCookingTimeMinutes is assumed for recipes without a cooking time.
const DefaultCookingTimeMinutes = 60.0

// Ingredient is a canonical ingredient name with a unique integer ID.
// Names are expected to be unique case-insensitively; uniqueness is owned
// by the ingestion collaborator.
type Ingredient struct {
	// ID is the unique ingredient identifier.
	ID int `json:"ingredient_id"`

	// Name is the display name.
	Name string `json:"name"`
}

// Recipe is a catalog recipe. The core reads recipes, never writes them.
type Recipe struct {
	// ID is the unique recipe identifier.
	ID int `json:"recipe_id"`

	// Name is the display name.
	Name string `json:"name"`

	// DishType is the meal classification (breakfast, meal, snack, ...).
	DishType DishType `json:"dish_type"`

	// Cuisine is a free-text cuisine label. Optional.
	Cuisine string `json:"cuisine,omitempty"`

	// DietType is veg or non-veg. Optional.
	DietType DietType `json:"diet_type,omitempty"`

	// DishCategory is a free-text category label. Optional.
	DishCategory string `json:"dish_category,omitempty"`

	// CookingTimeMinutes is the expected cooking time. Zero means unset;
	// the scorer resolves it to DefaultCookingTimeMinutes.
	CookingTimeMinutes float64 `json:"cooking_time_minutes,omitempty"`

	// RequiresAirfryer marks recipes that need an airfryer.
	RequiresAirfryer bool `json:"requires_airfryer"`

	// RequiresSoaking marks recipes that need overnight soaking.
	RequiresSoaking bool `json:"requires_soaking"`

	// MealPrepFriendly marks recipes suitable for batch preparation.
	MealPrepFriendly bool `json:"meal_prep_friendly"`

	// VideoLink is a URL to the recipe video.
	VideoLink string `json:"video_link,omitempty"`
}

// EffectiveCookingTime returns the cooking time with the documented
// default applied for recipes that carry none.
func (r *Recipe) EffectiveCookingTime() float64 {
	if r.CookingTimeMinutes <= 0 {
		return DefaultCookingTimeMinutes
	}
	return r.CookingTimeMinutes
}

// RecipeIngredientLink connects a recipe to one required ingredient.
// At most one link exists per (recipe, ingredient) pair.
type RecipeIngredientLink struct {
	// RecipeID references the owning recipe.
	RecipeID int `json:"recipe_id"`

	// IngredientID references the required ingredient.
	IngredientID int `json:"ingredient_id"`

	// Quantity is the required amount. Zero means the ingredient is
	// always considered available.
	Quantity float64 `json:"quantity"`

	// Unit is the unit of Quantity. Optional, informational only.
	Unit string `json:"unit,omitempty"`

	// IsOptional links never block a recommendation and are excluded
	// from match-percentage computation.
	IsOptional bool `json:"is_optional"`
}

// PantryEntry is one pantry row. Multiple rows per ingredient are valid
// (partial purchases) and are summed by the pantry aggregator.
type PantryEntry struct {
	// IngredientID references the pantry ingredient.
	IngredientID int `json:"ingredient_id"`

	// Quantity is the amount on hand for this entry.
	Quantity float64 `json:"quantity"`

	// UpdatedAt is when this entry was recorded.
	UpdatedAt time.Time `json:"updated_at,omitempty"`

	// UpdatedBy is who recorded this entry.
	UpdatedBy string `json:"updated_by,omitempty"`
}

// FeedbackRecord is one cooking-feedback row for a recipe.
type FeedbackRecord struct {
	// ID is the unique feedback identifier.
	ID int `json:"feedback_id"`

	// RecipeID references the cooked recipe.
	RecipeID int `json:"recipe_id"`

	// Rating is on a 1-5 scale.
	Rating float64 `json:"rating"`

	// Liked is a simple thumbs-up flag.
	Liked bool `json:"liked"`

	// Comments is free-text feedback.
	Comments string `json:"comments,omitempty"`

	// CookedOn is the date the recipe was cooked.
	CookedOn time.Time `json:"cooked_on,omitempty"`

	// WouldMakeAgain indicates the cook would repeat the recipe.
	WouldMakeAgain bool `json:"would_make_again"`
}

// Snapshot is a fully materialized, immutable view of the catalog and
// transactional relations. The engine never mutates a snapshot.
type Snapshot struct {
	// Recipes is the recipe catalog.
	Recipes []Recipe `json:"recipes"`

	// Ingredients is the ingredient catalog.
	Ingredients []Ingredient `json:"ingredients"`

	// Links is the recipe-ingredient relation.
	Links []RecipeIngredientLink `json:"links"`

	// Pantry is the pantry relation, possibly with duplicate ingredients.
	Pantry []PantryEntry `json:"pantry"`

	// Feedback is the historical feedback relation.
	Feedback []FeedbackRecord `json:"feedback"`

	// Version identifies this snapshot for response caching. Writers bump
	// it on every catalog mutation; zero disables caching for the call.
	Version int64 `json:"version,omitempty"`
}

// Preferences carries one request's user preferences. Zero values mean
// "no preference" except for the equipment flags, whose false value is a
// hard filter.
type Preferences struct {
	// MealType filters recipes to an exact dish type when set.
	MealType DishType `json:"meal_type,omitempty"`

	// DishCategory filters recipes to an exact category when set.
	DishCategory string `json:"dish_category,omitempty"`

	// DietType filters recipes to an exact diet type when set.
	DietType DietType `json:"diet_type,omitempty"`

	// PreferredCuisine is a soft scoring signal, never a hard filter:
	// recipes of this cuisine receive the cuisine weight in scoring.
	PreferredCuisine string `json:"preferred_cuisine,omitempty"`

	// PreferredIngredients is accepted for forward compatibility with
	// ingredient-level boosts; the current weight table has no slot for
	// it and the scorer ignores it.
	PreferredIngredients []string `json:"preferred_ingredients,omitempty"`

	// AllowAirfryer, when false, drops recipes requiring an airfryer.
	AllowAirfryer bool `json:"allow_airfryer"`

	// AllowSoaking, when false, drops recipes requiring soaking.
	AllowSoaking bool `json:"allow_soaking"`

	// MinPantryMatchPct is the hard floor on pantry match percentage.
	MinPantryMatchPct float64 `json:"min_pantry_match_pct,omitempty"`
}

// IngredientStatus classifies availability of one recipe-ingredient link.
type IngredientStatus int

const (
	// StatusMissing means none of the ingredient is in the pantry.
	StatusMissing IngredientStatus = iota
	// StatusPartial means some, but not enough, is in the pantry.
	StatusPartial
	// StatusAvailable means the required quantity is covered.
	StatusAvailable
	// StatusOptional means the link is optional and never counts for or
	// against availability.
	StatusOptional
)

// String returns the status name used in logs and API payloads.
func (s IngredientStatus) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusPartial:
		return "partial"
	case StatusAvailable:
		return "available"
	case StatusOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// IngredientStatusRow is the classified form of one link. Exactly one
// status row exists per input link.
type IngredientStatusRow struct {
	RecipeID          int              `json:"recipe_id"`
	IngredientID      int              `json:"ingredient_id"`
	RequiredQuantity  float64          `json:"required_quantity"`
	AvailableQuantity float64          `json:"available_quantity"`
	IsOptional        bool             `json:"is_optional"`
	Status            IngredientStatus `json:"status"`
}

// MatchMetrics holds per-recipe availability counts over non-optional links.
type MatchMetrics struct {
	RecipeID int `json:"recipe_id"`

	// TotalIngredients counts the recipe's non-optional links.
	TotalIngredients int `json:"total_ingredients"`

	AvailableCount int `json:"available_count"`
	MissingCount   int `json:"missing_count"`
	PartialCount   int `json:"partial_count"`

	// PantryMatchPct is AvailableCount / TotalIngredients * 100.
	// A recipe whose links are all optional has TotalIngredients zero and
	// matches 100%: nothing mandatory is missing.
	PantryMatchPct float64 `json:"pantry_match_pct"`
}

// FeedbackStats holds aggregated feedback for one recipe.
type FeedbackStats struct {
	RecipeID int `json:"recipe_id"`

	// AvgRating is the mean rating over all feedback records.
	AvgRating float64 `json:"avg_rating"`

	// WouldMakeAgainRate is the share of records marked would-make-again.
	WouldMakeAgainRate float64 `json:"would_make_again_rate"`

	// TimesCooked is the number of feedback records.
	TimesCooked int `json:"times_cooked"`
}

// ScoreBreakdown exposes the raw inputs and normalized components behind a
// final score. It is a pure function of the scored row and reproducible
// byte-for-byte from the same inputs.
type ScoreBreakdown struct {
	// Raw inputs.
	PantryMatchPct     float64 `json:"pantry_match_pct"`
	AvgRating          float64 `json:"avg_rating"`
	WouldMakeAgain     float64 `json:"would_make_again"`
	CuisineMatch       bool    `json:"cuisine_match"`
	CookingTimeMinutes float64 `json:"cooking_time_minutes"`

	// Normalized components, each in [0, 1].
	PantryScore  float64 `json:"pantry_score"`
	RatingScore  float64 `json:"rating_score"`
	RepeatScore  float64 `json:"repeat_score"`
	CuisineScore float64 `json:"cuisine_score"`
	TimeScore    float64 `json:"time_score"`

	// WeightedScore is the weighted sum before penalties.
	WeightedScore float64 `json:"weighted_score"`

	// PenaltyMultiplier is the stacked post-adjustment factor (1.0 when
	// no penalty applies).
	PenaltyMultiplier float64 `json:"penalty_multiplier"`
}

// ScoredRecipe is one ranked recommendation. It exists only for the
// duration of a recommendation call and is never persisted.
type ScoredRecipe struct {
	// Recipe is the catalog recipe metadata, passed through unchanged.
	Recipe Recipe `json:"recipe"`

	// PantryMatchPct is the recipe's pantry match percentage.
	PantryMatchPct float64 `json:"pantry_match_pct"`

	// MissingIngredients lists missing ingredient names in classification
	// order. Always non-nil; empty when nothing is missing.
	MissingIngredients []string `json:"missing_ingredients"`

	// AvgRating is the aggregated (or defaulted) average rating.
	AvgRating float64 `json:"avg_rating"`

	// WouldMakeAgainRate is the aggregated (or defaulted) repeat rate.
	WouldMakeAgainRate float64 `json:"would_make_again_rate"`

	// TimesCooked is how many feedback records exist for the recipe.
	TimesCooked int `json:"times_cooked"`

	// FinalScore is the penalized weighted score used for ranking.
	FinalScore float64 `json:"final_score"`

	// Breakdown explains how FinalScore was computed.
	Breakdown ScoreBreakdown `json:"score_breakdown"`
}

// Response is the result of one recommendation call.
type Response struct {
	// Recipes is the ranked result list. Empty, never nil, when no recipe
	// survives filtering.
	Recipes []ScoredRecipe `json:"recipes"`

	// TotalCandidates is the number of recipes that had at least one
	// ingredient link and entered the pipeline.
	TotalCandidates int `json:"total_candidates"`

	// Metadata carries timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Filtered is the number of candidates removed by the constraint filter.
	Filtered int `json:"filtered"`

	// LatencyMS is the total pipeline latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// SnapshotVersion is the catalog snapshot version used.
	SnapshotVersion int64 `json:"snapshot_version,omitempty"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}
