// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
// It is an explicit, injectable policy object: weights are never process
// state, so alternative policies are testable side by side.
type Config struct {
	// Weights defines the relative contribution of each scoring signal.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights ScoreWeights `json:"weights" koanf:"weights"`

	// Defaults contains signal defaults for recipes without feedback.
	Defaults SignalDefaults `json:"defaults" koanf:"defaults"`

	// Penalties contains post-adjustment penalty parameters.
	Penalties PenaltyConfig `json:"penalties" koanf:"penalties"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// ScoreWeights defines the relative contribution of each scoring signal.
type ScoreWeights struct {
	// Pantry weights the pantry match percentage.
	Pantry float64 `json:"pantry" koanf:"pantry"`

	// Rating weights the average feedback rating.
	Rating float64 `json:"rating" koanf:"rating"`

	// Repeat weights the would-make-again rate.
	Repeat float64 `json:"repeat" koanf:"repeat"`

	// Cuisine weights the preferred-cuisine match.
	Cuisine float64 `json:"cuisine" koanf:"cuisine"`

	// Time weights the relative cooking-time score.
	Time float64 `json:"time" koanf:"time"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoreWeights) Normalize() ScoreWeights {
	sum := w.Pantry + w.Rating + w.Repeat + w.Cuisine + w.Time

	if sum == 0 {
		// Equal weights if all zero (5 signals, each gets 0.2)
		const equalWeight = 1.0 / 5.0
		return ScoreWeights{
			Pantry: equalWeight, Rating: equalWeight, Repeat: equalWeight,
			Cuisine: equalWeight, Time: equalWeight,
		}
	}

	return ScoreWeights{
		Pantry:  w.Pantry / sum,
		Rating:  w.Rating / sum,
		Repeat:  w.Repeat / sum,
		Cuisine: w.Cuisine / sum,
		Time:    w.Time / sum,
	}
}

// ToMap returns the weights as a string-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoreWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"pantry":  w.Pantry,
		"rating":  w.Rating,
		"repeat":  w.Repeat,
		"cuisine": w.Cuisine,
		"time":    w.Time,
	}
}

// SignalDefaults supplies the feedback signals for recipes with no
// feedback history.
type SignalDefaults struct {
	// AvgRating is the assumed rating for unrated recipes.
	// Default: 3.0 (the midpoint of the 1-5 scale).
	AvgRating float64 `json:"avg_rating" koanf:"avg_rating"`

	// WouldMakeAgainRate is the assumed repeat-cook rate for recipes
	// never cooked. Default: 0.5, a neutral prior, so unknown recipes are
	// neither penalized nor boosted.
	WouldMakeAgainRate float64 `json:"would_make_again_rate" koanf:"would_make_again_rate"`
}

// PenaltyConfig contains the multiplicative post-adjustment penalties.
// Both penalties stack when both conditions hold.
type PenaltyConfig struct {
	// LowRatingThreshold triggers LowRatingFactor when avg rating is below it.
	LowRatingThreshold float64 `json:"low_rating_threshold" koanf:"low_rating_threshold"`

	// LowRatingFactor multiplies the final score for badly rated recipes.
	LowRatingFactor float64 `json:"low_rating_factor" koanf:"low_rating_factor"`

	// LowRepeatThreshold triggers LowRepeatFactor when the repeat rate is
	// below it.
	LowRepeatThreshold float64 `json:"low_repeat_threshold" koanf:"low_repeat_threshold"`

	// LowRepeatFactor multiplies the final score for recipes the household
	// would not cook again.
	LowRepeatFactor float64 `json:"low_repeat_factor" koanf:"low_repeat_factor"`
}

// LimitsConfig contains operational limits for recommendation requests.
type LimitsConfig struct {
	// DefaultTopN is the result size when the caller requests zero.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// MaxTopN caps the result size.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled toggles the in-memory response cache.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is how long a cached response stays valid.
	TTL time.Duration `json:"ttl" koanf:"ttl"`
}

// DefaultConfig returns the reference scoring policy:
// pantry 0.50, rating 0.25, repeat 0.10, cuisine 0.10, time 0.05.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoreWeights{
			Pantry:  0.50,
			Rating:  0.25,
			Repeat:  0.10,
			Cuisine: 0.10,
			Time:    0.05,
		},
		Defaults: SignalDefaults{
			AvgRating:          3.0,
			WouldMakeAgainRate: 0.5,
		},
		Penalties: PenaltyConfig{
			LowRatingThreshold: 2.5,
			LowRatingFactor:    0.3,
			LowRepeatThreshold: 0.3,
			LowRepeatFactor:    0.5,
		},
		Limits: LimitsConfig{
			DefaultTopN: 5,
			MaxTopN:     100,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Weights.Pantry < 0 || c.Weights.Rating < 0 || c.Weights.Repeat < 0 ||
		c.Weights.Cuisine < 0 || c.Weights.Time < 0 {
		return fmt.Errorf("scoring weights must be non-negative: %+v", c.Weights)
	}

	if c.Defaults.AvgRating < 1 || c.Defaults.AvgRating > 5 {
		return fmt.Errorf("default avg rating %.2f outside 1-5 scale", c.Defaults.AvgRating)
	}
	if c.Defaults.WouldMakeAgainRate < 0 || c.Defaults.WouldMakeAgainRate > 1 {
		return fmt.Errorf("default would-make-again rate %.2f outside [0, 1]", c.Defaults.WouldMakeAgainRate)
	}

	if c.Penalties.LowRatingFactor < 0 || c.Penalties.LowRatingFactor > 1 {
		return fmt.Errorf("low rating penalty factor %.2f outside [0, 1]", c.Penalties.LowRatingFactor)
	}
	if c.Penalties.LowRepeatFactor < 0 || c.Penalties.LowRepeatFactor > 1 {
		return fmt.Errorf("low repeat penalty factor %.2f outside [0, 1]", c.Penalties.LowRepeatFactor)
	}

	if c.Limits.DefaultTopN <= 0 {
		return fmt.Errorf("default top N must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("max top N %d below default %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when caching is enabled")
	}

	return nil
}
