// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

// Package api provides the HTTP surface of Kitchen Compass: recipe
// ingestion, catalog and pantry access, feedback submission, and
// recommendation requests, routed with chi.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tanvisivaraj/kitchen-compass/internal/database"
	"github.com/tanvisivaraj/kitchen-compass/internal/ingest"
	"github.com/tanvisivaraj/kitchen-compass/internal/logging"
	"github.com/tanvisivaraj/kitchen-compass/internal/metrics"
	"github.com/tanvisivaraj/kitchen-compass/internal/models"
	"github.com/tanvisivaraj/kitchen-compass/internal/recommend"
)

// Store is the persistence surface the handlers read and write through.
// *database.DB satisfies it; tests use a mock.
type Store interface {
	Ping(ctx context.Context) error
	LoadSnapshot(ctx context.Context) (*recommend.Snapshot, error)
	ListRecipes(ctx context.Context) ([]recommend.Recipe, error)
	ListIngredients(ctx context.Context) ([]recommend.Ingredient, error)
	ListPantry(ctx context.Context) ([]recommend.PantryEntry, error)
	UpsertPantryEntry(ctx context.Context, entry recommend.PantryEntry) error
	InsertFeedback(ctx context.Context, record recommend.FeedbackRecord) (int, error)
}

// Handler implements the HTTP endpoints.
type Handler struct {
	store  Store
	engine *recommend.Engine
	ingest *ingest.Service
}

// NewHandler creates the endpoint handler.
func NewHandler(store Store, engine *recommend.Engine, ingestSvc *ingest.Service) *Handler {
	return &Handler{
		store:  store,
		engine: engine,
		ingest: ingestSvc,
	}
}

// HealthLive handles GET /api/v1/health/live. It reports process
// liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. It verifies the database
// connection.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "database unavailable", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, start)
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	snap, err := h.store.LoadSnapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load catalog", err)
		return
	}

	prefs := recommend.Preferences{
		MealType:             recommend.DishType(req.MealType),
		DishCategory:         req.DishCategory,
		DietType:             recommend.DietType(req.DietType),
		PreferredCuisine:     req.PreferredCuisine,
		PreferredIngredients: req.PreferredIngredients,
		AllowAirfryer:        req.AllowAirfryer,
		AllowSoaking:         req.AllowSoaking,
		MinPantryMatchPct:    req.MinPantryMatchPct,
	}

	resp, err := h.engine.Recommend(r.Context(), snap, prefs, req.TopN)
	metrics.RecordRecommendation(time.Since(start), len(snap.Recipes), resp != nil && resp.Metadata.CacheHit, err)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidPreferences) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "recommendation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      resp.Metadata.CacheHit,
		},
	})
}

// CreateRecipe handles POST /api/v1/recipes.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecipeCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	result, err := h.ingest.IngestRecipe(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ingest.ErrNoIngredients) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to store recipe", err)
		return
	}

	// New catalog rows invalidate any cached recommendations.
	h.engine.InvalidateCache()

	logging.Ctx(r.Context()).Info().
		Int("recipe_id", result.Recipe.ID).
		Msg("recipe created")

	respondSuccess(w, http.StatusCreated, result, start)
}

// ListRecipes handles GET /api/v1/recipes.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recipes, err := h.store.ListRecipes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list recipes", err)
		return
	}
	if recipes == nil {
		recipes = []recommend.Recipe{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"recipes": recipes,
		"total":   len(recipes),
	}, start)
}

// ListIngredients handles GET /api/v1/ingredients.
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ingredients, err := h.store.ListIngredients(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list ingredients", err)
		return
	}
	if ingredients == nil {
		ingredients = []recommend.Ingredient{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"ingredients": ingredients,
		"total":       len(ingredients),
	}, start)
}

// GetPantry handles GET /api/v1/pantry.
func (h *Handler) GetPantry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	entries, err := h.store.ListPantry(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list pantry", err)
		return
	}
	if entries == nil {
		entries = []recommend.PantryEntry{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"pantry": entries,
		"total":  len(entries),
	}, start)
}

// UpdatePantry handles PUT /api/v1/pantry. It replaces or inserts one
// pantry entry.
func (h *Handler) UpdatePantry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PantryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	entry := recommend.PantryEntry{
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		UpdatedBy:    req.UpdatedBy,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := h.store.UpsertPantryEntry(r.Context(), entry); err != nil {
		if errors.Is(err, database.ErrIngredientNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "ingredient not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update pantry", err)
		return
	}

	metrics.PantryUpdates.Inc()
	h.engine.InvalidateCache()

	respondSuccess(w, http.StatusOK, entry, start)
}

// CreateFeedback handles POST /api/v1/feedback.
func (h *Handler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.FeedbackCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	record := recommend.FeedbackRecord{
		RecipeID:       req.RecipeID,
		Rating:         req.Rating,
		Liked:          req.Liked,
		Comments:       req.Comments,
		WouldMakeAgain: req.WouldMakeAgain,
	}
	if req.CookedOn != "" {
		cookedOn, err := time.Parse("2006-01-02", req.CookedOn)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "cooked_on must be a YYYY-MM-DD date", nil)
			return
		}
		record.CookedOn = cookedOn
	}

	id, err := h.store.InsertFeedback(r.Context(), record)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "recipe not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to store feedback", err)
		return
	}
	record.ID = id

	metrics.FeedbackRecorded.Inc()
	h.engine.InvalidateCache()

	respondSuccess(w, http.StatusCreated, record, start)
}
