// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine runs the recommendation pipeline. It is safe for concurrent use:
// the pipeline itself is pure, and the response cache has its own lock.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Metrics
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64

	// Response cache keyed by preferences + topN + snapshot version.
	cache   map[string]cacheEntry
	cacheMu sync.RWMutex
}

// cacheEntry holds one cached recommendation response.
type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewEngine creates a recommendation engine with the given scoring policy.
// A nil config selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  make(map[string]cacheEntry),
	}, nil
}

// Recommend runs the full pipeline over one snapshot and returns the top-N
// ranked recipes. It is total and deterministic for fixed inputs: malformed
// preferences or broken referential integrity return an error, every other
// input degrades to a well-formed (possibly empty) response.
func (e *Engine) Recommend(ctx context.Context, snap *Snapshot, prefs Preferences, topN int) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	topN = e.clampTopN(topN)

	requestID := uuid.New().String()
	logger := e.logger.With().
		Str("request_id", requestID).
		Int("top_n", topN).
		Logger()

	if err := prefs.Validate(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	if err := ValidateSnapshot(snap); err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("snapshot validation: %w", err)
	}

	// Cache lookup. Snapshot version zero means the caller cannot vouch
	// for freshness, so the call bypasses the cache entirely.
	cacheKey := ""
	if e.config.Cache.Enabled && snap.Version != 0 {
		cacheKey = e.cacheKey(prefs, topN, snap.Version)
		if resp := e.checkCache(cacheKey); resp != nil {
			e.cacheHits.Add(1)
			resp.Metadata.CacheHit = true
			resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
			logger.Debug().Msg("cache hit")
			return resp, nil
		}
		e.cacheMisses.Add(1)
	}

	// Stages 1-4: pantry matching.
	pantry := AggregatePantry(snap.Pantry)
	statuses := ResolveIngredientStatuses(snap.Links, pantry)
	metrics := ComputeMatchMetrics(statuses)
	missing := MissingIngredients(statuses, snap.Ingredients)

	// Join recipe metadata in catalog order: the ordered recipe relation
	// keeps candidate iteration deterministic. Recipes without any
	// ingredient link never enter the pipeline.
	candidates := make([]Candidate, 0, len(metrics))
	for _, recipe := range snap.Recipes {
		m, ok := metrics[recipe.ID]
		if !ok {
			continue
		}
		miss := missing[recipe.ID]
		if miss == nil {
			miss = []string{}
		}
		candidates = append(candidates, Candidate{Recipe: recipe, Metrics: m, Missing: miss})
	}
	totalCandidates := len(candidates)

	// Stage 5: hard constraints. An empty survivor set short-circuits the
	// pipeline; feedback aggregation and scoring never run.
	filtered := ApplyConstraints(candidates, prefs)
	if len(filtered) == 0 {
		logger.Debug().
			Int("candidates", totalCandidates).
			Msg("no recipes survive constraints")
		resp := e.buildResponse(requestID, []ScoredRecipe{}, totalCandidates, 0, snap.Version, start)
		e.cacheResponse(cacheKey, resp)
		return resp, nil
	}

	// Stages 6-7: feedback join and scoring.
	stats := AggregateFeedback(snap.Feedback)
	scored := ScoreCandidates(filtered, stats, prefs, e.config)

	// Stage 8: rank. Final score descending; recipe ID ascending breaks
	// ties so equal scores never reorder between runs.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].FinalScore != scored[j].FinalScore {
			return scored[i].FinalScore > scored[j].FinalScore
		}
		return scored[i].Recipe.ID < scored[j].Recipe.ID
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}

	resp := e.buildResponse(requestID, scored, totalCandidates, totalCandidates-len(filtered), snap.Version, start)
	e.cacheResponse(cacheKey, resp)

	logger.Debug().
		Int("candidates", totalCandidates).
		Int("returned", len(scored)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// clampTopN applies the configured default and ceiling.
func (e *Engine) clampTopN(topN int) int {
	if topN <= 0 {
		return e.config.Limits.DefaultTopN
	}
	if topN > e.config.Limits.MaxTopN {
		return e.config.Limits.MaxTopN
	}
	return topN
}

// buildResponse assembles the response envelope.
func (e *Engine) buildResponse(requestID string, scored []ScoredRecipe, totalCandidates, filtered int, version int64, start time.Time) *Response {
	return &Response{
		Recipes:         scored,
		TotalCandidates: totalCandidates,
		Metadata: ResponseMetadata{
			RequestID:       requestID,
			Filtered:        filtered,
			LatencyMS:       time.Since(start).Milliseconds(),
			SnapshotVersion: version,
			Timestamp:       time.Now().UTC(),
		},
	}
}

// cacheKey builds a deterministic key from the request parameters.
func (e *Engine) cacheKey(prefs Preferences, topN int, version int64) string {
	return fmt.Sprintf("v%d|n%d|mt%s|dc%s|dt%s|pc%s|pi%s|af%t|sk%t|mp%.2f",
		version, topN,
		prefs.MealType, prefs.DishCategory, prefs.DietType,
		strings.ToLower(prefs.PreferredCuisine),
		strings.Join(prefs.PreferredIngredients, ","),
		prefs.AllowAirfryer, prefs.AllowSoaking,
		prefs.MinPantryMatchPct,
	)
}

// checkCache returns a copy of a live cached response, or nil.
func (e *Engine) checkCache(key string) *Response {
	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}

	// Shallow copy so callers can stamp per-call metadata.
	resp := *entry.response
	return &resp
}

// cacheResponse stores a response under the given key. An empty key means
// caching was bypassed for this call.
func (e *Engine) cacheResponse(key string, resp *Response) {
	if key == "" {
		return
	}

	stored := *resp

	e.cacheMu.Lock()
	e.cache[key] = cacheEntry{
		response:  &stored,
		expiresAt: time.Now().Add(e.config.Cache.TTL),
	}
	e.cacheMu.Unlock()
}

// InvalidateCache drops all cached responses. Writers call this after any
// catalog mutation.
func (e *Engine) InvalidateCache() {
	e.cacheMu.Lock()
	e.cache = make(map[string]cacheEntry)
	e.cacheMu.Unlock()
}

// Stats returns engine counters for observability.
func (e *Engine) Stats() (requests, cacheHits, cacheMisses, errors int64) {
	return e.requestCount.Load(), e.cacheHits.Load(), e.cacheMisses.Load(), e.errorCount.Load()
}
