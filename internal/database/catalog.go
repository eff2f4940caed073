// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tanvisivaraj/kitchen-compass/internal/metrics"
	"github.com/tanvisivaraj/kitchen-compass/internal/recommend"
)

// Sentinel errors for write-path referential checks.
var (
	// ErrRecipeNotFound indicates a write referenced a recipe that does
	// not exist or is inactive.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrIngredientNotFound indicates a write referenced an unknown
	// ingredient.
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// LoadSnapshot materializes the full catalog, pantry, and feedback state
// into one consistent in-memory snapshot. Only active recipes are loaded.
// The snapshot carries the current data version for downstream caching.
func (db *DB) LoadSnapshot(ctx context.Context) (*recommend.Snapshot, error) {
	version := db.DataVersion()
	start := time.Now()

	recipes, err := db.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	ingredients, err := db.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	links, err := db.listLinks(ctx)
	if err != nil {
		return nil, err
	}
	pantry, err := db.ListPantry(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := db.listFeedback(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordDBQuery("load_snapshot", "all", time.Since(start), nil)

	return &recommend.Snapshot{
		Recipes:     recipes,
		Ingredients: ingredients,
		Links:       links,
		Pantry:      pantry,
		Feedback:    feedback,
		Version:     version,
	}, nil
}

// ListRecipes returns all active recipes ordered by ID.
func (db *DB) ListRecipes(ctx context.Context) ([]recommend.Recipe, error) {
	const query = `
		SELECT recipe_id, name, dish_type,
		       COALESCE(cuisine, ''), COALESCE(diet_type, ''), COALESCE(dish_category, ''),
		       COALESCE(cooking_time_minutes, 0),
		       requires_airfryer, requires_soaking, meal_prep_friendly,
		       COALESCE(video_link, '')
		FROM recipes
		WHERE is_active
		ORDER BY recipe_id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer closeRows(rows)

	var recipes []recommend.Recipe
	for rows.Next() {
		var r recommend.Recipe
		if err := rows.Scan(
			&r.ID, &r.Name, &r.DishType,
			&r.Cuisine, &r.DietType, &r.DishCategory,
			&r.CookingTimeMinutes,
			&r.RequiresAirfryer, &r.RequiresSoaking, &r.MealPrepFriendly,
			&r.VideoLink,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// ListIngredients returns all ingredients ordered by ID.
func (db *DB) ListIngredients(ctx context.Context) ([]recommend.Ingredient, error) {
	const query = `SELECT ingredient_id, name FROM ingredients ORDER BY ingredient_id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer closeRows(rows)

	var ingredients []recommend.Ingredient
	for rows.Next() {
		var ing recommend.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// listLinks returns all recipe-ingredient links in insertion order, which
// the pipeline relies on for missing-ingredient reporting.
func (db *DB) listLinks(ctx context.Context) ([]recommend.RecipeIngredientLink, error) {
	const query = `
		SELECT recipe_id, ingredient_id, quantity, COALESCE(unit, ''), is_optional
		FROM recipe_ingredients
		ORDER BY rowid`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer closeRows(rows)

	var links []recommend.RecipeIngredientLink
	for rows.Next() {
		var l recommend.RecipeIngredientLink
		if err := rows.Scan(&l.RecipeID, &l.IngredientID, &l.Quantity, &l.Unit, &l.IsOptional); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// ListPantry returns the current pantry ordered by ingredient ID.
func (db *DB) ListPantry(ctx context.Context) ([]recommend.PantryEntry, error) {
	const query = `
		SELECT ingredient_id, quantity, COALESCE(updated_by, ''), updated_at
		FROM pantry
		ORDER BY ingredient_id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pantry: %w", err)
	}
	defer closeRows(rows)

	var entries []recommend.PantryEntry
	for rows.Next() {
		var e recommend.PantryEntry
		if err := rows.Scan(&e.IngredientID, &e.Quantity, &e.UpdatedBy, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// listFeedback returns all feedback records ordered by ID.
func (db *DB) listFeedback(ctx context.Context) ([]recommend.FeedbackRecord, error) {
	const query = `
		SELECT feedback_id, recipe_id, rating, liked,
		       COALESCE(comments, ''), COALESCE(cooked_on, DATE '1970-01-01'), would_make_again
		FROM recipe_feedback
		ORDER BY feedback_id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer closeRows(rows)

	var records []recommend.FeedbackRecord
	for rows.Next() {
		var f recommend.FeedbackRecord
		if err := rows.Scan(&f.ID, &f.RecipeID, &f.Rating, &f.Liked, &f.Comments, &f.CookedOn, &f.WouldMakeAgain); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		records = append(records, f)
	}
	return records, rows.Err()
}

// MaxRecipeID returns the highest recipe ID, or 0 for an empty catalog.
// Inactive recipes count so their IDs are never reused.
func (db *DB) MaxRecipeID(ctx context.Context) (int, error) {
	var maxID int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(recipe_id), 0) FROM recipes`).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("failed to query max recipe id: %w", err)
	}
	return maxID, nil
}

// CreateRecipe inserts a recipe, any new ingredients, and its ingredient
// links in one transaction. The caller assigns all IDs.
func (db *DB) CreateRecipe(ctx context.Context, recipe recommend.Recipe, createdBy string, newIngredients []recommend.Ingredient, links []recommend.RecipeIngredientLink) error {
	start := time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	for _, ing := range newIngredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ingredients (ingredient_id, name) VALUES (?, ?)`,
			ing.ID, ing.Name,
		); err != nil {
			return fmt.Errorf("failed to insert ingredient %q: %w", ing.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (
			recipe_id, name, dish_type, cuisine, diet_type, dish_category,
			cooking_time_minutes, requires_airfryer, requires_soaking,
			meal_prep_friendly, video_link, is_active, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?)`,
		recipe.ID, recipe.Name, string(recipe.DishType),
		nullIfEmpty(recipe.Cuisine), nullIfEmpty(string(recipe.DietType)), nullIfEmpty(recipe.DishCategory),
		recipe.CookingTimeMinutes, recipe.RequiresAirfryer, recipe.RequiresSoaking,
		recipe.MealPrepFriendly, nullIfEmpty(recipe.VideoLink), nullIfEmpty(createdBy),
	); err != nil {
		return fmt.Errorf("failed to insert recipe %q: %w", recipe.Name, err)
	}

	for _, link := range links {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit, is_optional)
			 VALUES (?, ?, ?, ?, ?)`,
			link.RecipeID, link.IngredientID, link.Quantity, nullIfEmpty(link.Unit), link.IsOptional,
		); err != nil {
			return fmt.Errorf("failed to insert link (recipe %d, ingredient %d): %w",
				link.RecipeID, link.IngredientID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordDBQuery("create_recipe", "recipes", time.Since(start), err)
		return fmt.Errorf("failed to commit recipe: %w", err)
	}

	metrics.RecordDBQuery("create_recipe", "recipes", time.Since(start), nil)
	db.bumpVersion()
	return nil
}

// UpsertPantryEntry replaces or inserts one pantry entry. The ingredient
// must already exist in the catalog.
func (db *DB) UpsertPantryEntry(ctx context.Context, entry recommend.PantryEntry) error {
	exists, err := db.ingredientExists(ctx, entry.IngredientID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("ingredient %d: %w", entry.IngredientID, ErrIngredientNotFound)
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO pantry (ingredient_id, quantity, updated_by, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (ingredient_id) DO UPDATE SET
		 	quantity = EXCLUDED.quantity,
		 	updated_by = EXCLUDED.updated_by,
		 	updated_at = now()`,
		entry.IngredientID, entry.Quantity, nullIfEmpty(entry.UpdatedBy),
	)
	metrics.RecordDBQuery("upsert", "pantry", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert pantry entry: %w", err)
	}

	db.bumpVersion()
	return nil
}

// InsertFeedback appends one feedback record and returns its assigned ID.
// The recipe must exist and be active.
func (db *DB) InsertFeedback(ctx context.Context, record recommend.FeedbackRecord) (int, error) {
	exists, err := db.recipeExists(ctx, record.RecipeID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("recipe %d: %w", record.RecipeID, ErrRecipeNotFound)
	}

	start := time.Now()
	var id int
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO recipe_feedback (recipe_id, rating, liked, comments, cooked_on, would_make_again)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING feedback_id`,
		record.RecipeID, record.Rating, record.Liked,
		nullIfEmpty(record.Comments), nullTimeIfZero(record.CookedOn), record.WouldMakeAgain,
	).Scan(&id)
	metrics.RecordDBQuery("insert", "recipe_feedback", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}

	db.bumpVersion()
	return id, nil
}

// recipeExists reports whether an active recipe with the ID exists.
func (db *DB) recipeExists(ctx context.Context, recipeID int) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM recipes WHERE recipe_id = ? AND is_active)`,
		recipeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recipe %d: %w", recipeID, err)
	}
	return exists, nil
}

// ingredientExists reports whether an ingredient with the ID exists.
func (db *DB) ingredientExists(ctx context.Context, ingredientID int) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM ingredients WHERE ingredient_id = ?)`,
		ingredientID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check ingredient %d: %w", ingredientID, err)
	}
	return exists, nil
}

// nullIfEmpty maps "" to NULL for optional text columns.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullTimeIfZero maps the zero time to NULL for optional date columns.
func nullTimeIfZero(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func closeRows(rows *sql.Rows) {
	// Scan errors surface through rows.Err.
	_ = rows.Close()
}

func rollbackQuietly(tx *sql.Tx) {
	// Rollback after commit returns sql.ErrTxDone, which is expected.
	_ = tx.Rollback()
}
