// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// createTables creates the core tables. All columns are defined in the
// initial CREATE TABLE statements, which keeps the schema a single source
// of truth and avoids startup migrations.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS feedback_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			ingredient_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS recipes (
			recipe_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			dish_type TEXT NOT NULL,
			cuisine TEXT,
			diet_type TEXT,
			dish_category TEXT,
			cooking_time_minutes DOUBLE,
			requires_airfryer BOOLEAN DEFAULT FALSE,
			requires_soaking BOOLEAN DEFAULT FALSE,
			meal_prep_friendly BOOLEAN DEFAULT FALSE,
			video_link TEXT,
			is_active BOOLEAN DEFAULT TRUE,
			created_by TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			recipe_id INTEGER NOT NULL,
			ingredient_id INTEGER NOT NULL,
			quantity DOUBLE DEFAULT 0,
			unit TEXT,
			is_optional BOOLEAN DEFAULT FALSE,
			PRIMARY KEY (recipe_id, ingredient_id)
		)`,

		`CREATE TABLE IF NOT EXISTS pantry (
			ingredient_id INTEGER PRIMARY KEY,
			quantity DOUBLE NOT NULL DEFAULT 0,
			updated_by TEXT,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS recipe_feedback (
			feedback_id INTEGER PRIMARY KEY DEFAULT nextval('feedback_id_seq'),
			recipe_id INTEGER NOT NULL,
			rating DOUBLE NOT NULL,
			liked BOOLEAN DEFAULT FALSE,
			comments TEXT,
			cooked_on DATE,
			would_make_again BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe
			ON recipe_ingredients (recipe_id)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_recipe
			ON recipe_feedback (recipe_id)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}
