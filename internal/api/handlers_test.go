// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tanvisivaraj/kitchen-compass/internal/config"
	"github.com/tanvisivaraj/kitchen-compass/internal/database"
	"github.com/tanvisivaraj/kitchen-compass/internal/ingest"
	"github.com/tanvisivaraj/kitchen-compass/internal/models"
	"github.com/tanvisivaraj/kitchen-compass/internal/recommend"
)

// mockStore backs the handlers with canned data. It satisfies both the
// api Store and the ingest Store.
type mockStore struct {
	snapshot    *recommend.Snapshot
	pingErr     error
	pantryErr   error
	feedbackErr error

	pantryWrites   []recommend.PantryEntry
	feedbackWrites []recommend.FeedbackRecord
	createdRecipes []recommend.Recipe
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) LoadSnapshot(context.Context) (*recommend.Snapshot, error) {
	return m.snapshot, nil
}

func (m *mockStore) ListRecipes(context.Context) ([]recommend.Recipe, error) {
	return m.snapshot.Recipes, nil
}

func (m *mockStore) ListIngredients(context.Context) ([]recommend.Ingredient, error) {
	return m.snapshot.Ingredients, nil
}

func (m *mockStore) ListPantry(context.Context) ([]recommend.PantryEntry, error) {
	return m.snapshot.Pantry, nil
}

func (m *mockStore) UpsertPantryEntry(_ context.Context, entry recommend.PantryEntry) error {
	if m.pantryErr != nil {
		return m.pantryErr
	}
	m.pantryWrites = append(m.pantryWrites, entry)
	return nil
}

func (m *mockStore) InsertFeedback(_ context.Context, record recommend.FeedbackRecord) (int, error) {
	if m.feedbackErr != nil {
		return 0, m.feedbackErr
	}
	m.feedbackWrites = append(m.feedbackWrites, record)
	return len(m.feedbackWrites), nil
}

func (m *mockStore) MaxRecipeID(context.Context) (int, error) {
	maxID := 0
	for _, r := range m.snapshot.Recipes {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID, nil
}

func (m *mockStore) CreateRecipe(_ context.Context, recipe recommend.Recipe, _ string, _ []recommend.Ingredient, _ []recommend.RecipeIngredientLink) error {
	m.createdRecipes = append(m.createdRecipes, recipe)
	return nil
}

func testSnapshot() *recommend.Snapshot {
	return &recommend.Snapshot{
		Recipes: []recommend.Recipe{
			{ID: 1, Name: "pancakes", DishType: recommend.DishBreakfast, CookingTimeMinutes: 20},
		},
		Ingredients: []recommend.Ingredient{
			{ID: 1, Name: "flour"},
		},
		Links: []recommend.RecipeIngredientLink{
			{RecipeID: 1, IngredientID: 1, Quantity: 50},
		},
		Pantry: []recommend.PantryEntry{
			{IngredientID: 1, Quantity: 100},
		},
		Version: 1,
	}
}

// newTestServer wires handlers with a mock store behind the full router.
func newTestServer(t *testing.T, store *mockStore) *httptest.Server {
	t.Helper()

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	handler := NewHandler(store, engine, ingest.NewService(store, zerolog.Nop()))

	cfg := &config.APIConfig{
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"*"},
	}
	srv := httptest.NewServer(NewRouter(handler, cfg))
	t.Cleanup(srv.Close)
	return srv
}

// doJSON performs a JSON request and decodes the envelope.
func doJSON(t *testing.T, method, url string, body interface{}) (int, *models.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var envelope models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, &envelope
}

func TestHealthLive(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	status, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/v1/health/live", nil)
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q", envelope.Status)
	}
}

func TestHealthReady_DatabaseDown(t *testing.T) {
	store := &mockStore{snapshot: testSnapshot(), pingErr: fmt.Errorf("connection refused")}
	srv := newTestServer(t, store)

	status, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/v1/health/ready", nil)
	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "NOT_READY" {
		t.Errorf("error = %+v, want NOT_READY", envelope.Error)
	}
}

func TestRecommend_Success(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recommendations",
		models.RecommendationRequest{AllowAirfryer: true, AllowSoaking: true, TopN: 5})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data has type %T", envelope.Data)
	}
	recipes, ok := data["recipes"].([]interface{})
	if !ok || len(recipes) != 1 {
		t.Fatalf("recipes = %v, want one entry", data["recipes"])
	}
}

func TestRecommend_InvalidMealType(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recommendations",
		map[string]interface{}{"meal_type": "brunch"})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}
}

func TestRecommend_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	resp, err := http.Post(srv.URL+"/api/v1/recommendations", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateRecipe(t *testing.T) {
	store := &mockStore{snapshot: testSnapshot()}
	srv := newTestServer(t, store)

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recipes",
		models.RecipeCreateRequest{
			Name:     "waffles",
			DishType: "breakfast",
			Ingredients: []models.RecipeIngredientInput{
				{Name: "flour", Quantity: 100},
			},
		})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %+v", status, envelope.Error)
	}
	if len(store.createdRecipes) != 1 {
		t.Fatalf("got %d created recipes, want 1", len(store.createdRecipes))
	}
	// ID continues past the existing catalog maximum.
	if store.createdRecipes[0].ID != 2 {
		t.Errorf("recipe ID = %d, want 2", store.createdRecipes[0].ID)
	}
}

func TestCreateRecipe_MissingIngredients(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recipes",
		map[string]interface{}{"name": "air", "dish_type": "snack"})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if envelope.Error == nil {
		t.Error("missing error payload")
	}
}

func TestListRecipes(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	status, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/v1/recipes", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := envelope.Data.(map[string]interface{})
	if data["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", data["total"])
	}
}

func TestUpdatePantry(t *testing.T) {
	store := &mockStore{snapshot: testSnapshot()}
	srv := newTestServer(t, store)

	status, _ := doJSON(t, http.MethodPut, srv.URL+"/api/v1/pantry",
		models.PantryUpdateRequest{IngredientID: 1, Quantity: 250, UpdatedBy: "tanvi"})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(store.pantryWrites) != 1 {
		t.Fatalf("got %d pantry writes, want 1", len(store.pantryWrites))
	}
	if store.pantryWrites[0].Quantity != 250 || store.pantryWrites[0].UpdatedBy != "tanvi" {
		t.Errorf("write = %+v", store.pantryWrites[0])
	}
}

func TestUpdatePantry_UnknownIngredient(t *testing.T) {
	store := &mockStore{
		snapshot:  testSnapshot(),
		pantryErr: fmt.Errorf("ingredient 99: %w", database.ErrIngredientNotFound),
	}
	srv := newTestServer(t, store)

	status, envelope := doJSON(t, http.MethodPut, srv.URL+"/api/v1/pantry",
		models.PantryUpdateRequest{IngredientID: 99, Quantity: 1})
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", envelope.Error)
	}
}

func TestCreateFeedback(t *testing.T) {
	store := &mockStore{snapshot: testSnapshot()}
	srv := newTestServer(t, store)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/feedback",
		models.FeedbackCreateRequest{
			RecipeID:       1,
			Rating:         4.5,
			Liked:          true,
			CookedOn:       "2026-08-30",
			WouldMakeAgain: true,
		})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if len(store.feedbackWrites) != 1 {
		t.Fatalf("got %d feedback writes, want 1", len(store.feedbackWrites))
	}
	got := store.feedbackWrites[0]
	if got.Rating != 4.5 || !got.WouldMakeAgain {
		t.Errorf("write = %+v", got)
	}
	if got.CookedOn.Format("2006-01-02") != "2026-08-30" {
		t.Errorf("cooked_on = %v", got.CookedOn)
	}
}

func TestCreateFeedback_BadRating(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	status, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/feedback",
		models.FeedbackCreateRequest{RecipeID: 1, Rating: 9})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, &mockStore{snapshot: testSnapshot()})

	resp, err := http.Get(srv.URL + "/api/v1/health/live")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}
