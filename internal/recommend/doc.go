// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

// Package recommend implements the pantry-aware recipe recommendation pipeline.
//
// # Architecture
//
// The pipeline is a fixed sequence of pure transformations over an immutable
// catalog snapshot:
//
//  1. Pantry aggregation: duplicate pantry rows collapse to one quantity
//     per ingredient.
//  2. Ingredient status resolution: each recipe-ingredient link is
//     classified as optional, available, partial, or missing.
//  3. Match metrics: per-recipe counts and a pantry match percentage over
//     the non-optional links.
//  4. Missing-ingredient reporting: human-readable names of missing
//     ingredients, in classification order.
//  5. Constraint filtering: hard AND predicates from the caller's
//     preferences (meal type, category, diet, equipment, match floor).
//  6. Feedback aggregation: historical ratings roll up to an average
//     rating and a repeat-cook rate.
//  7. Scoring: a weighted sum of normalized signals, with multiplicative
//     penalties for poorly rated recipes, and a per-recipe breakdown for
//     explainability.
//  8. Ranking: final score descending, recipe ID ascending on ties,
//     truncated to the requested size.
//
// # Design Principles
//
//   - Deterministic: identical snapshots and preferences produce
//     byte-identical ordered output.
//   - Pure: no stage mutates its input; each produces a new relation.
//   - Total: degenerate data (no feedback, no cooking time, all-optional
//     recipes) resolves to documented defaults, never to errors or NaN.
//   - Explainable: every result carries the raw inputs and normalized
//     components that produced its score.
//
// # Usage
//
//	engine := recommend.NewEngine(recommend.DefaultConfig(), logger)
//
//	results, err := engine.Recommend(ctx, snapshot, recommend.Preferences{
//	    MealType:          "meal",
//	    MinPantryMatchPct: 60,
//	}, 5)
//
// # Thread Safety
//
// The engine holds no mutable pipeline state; concurrent Recommend calls
// against the same snapshot are independent. The internal response cache
// is guarded by its own lock.
//
// Note: this package has no dependencies on other internal packages to
// maintain clean separation. The caller supplies fully materialized
// relations via Snapshot.
package recommend
