// Package main provides CMA-ES optimization for aquarium parameters.
package main

import (
	"github.com/pthm-cable/reef/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Breeding
			{Name: "breed_cooldown", Path: "breeder.cooldown", Min: 300, Max: 1200, Default: 600},
			{Name: "breed_distance", Path: "breeder.breed_distance", Min: 30, Max: 80, Default: 50},
			// Offspring
			{Name: "prey_invulnerability", Path: "prey.invulnerability", Min: 120, Max: 600, Default: 300},
			{Name: "prey_fatigue_rate", Path: "prey.fatigue_rate", Min: 0.02, Max: 0.15, Default: 0.07},
			{Name: "prey_recovery_rate", Path: "prey.recovery_rate", Min: 0.005, Max: 0.05, Default: 0.01},
			// Hunters
			{Name: "pred_speed", Path: "predator.speed", Min: 1.5, Max: 3.5, Default: 2.5},
			{Name: "pred_detection", Path: "predator.detection_radius", Min: 150, Max: 500, Default: 400},
			// Water
			{Name: "auto_feed_interval", Path: "food.auto_feed_interval", Min: 90, Max: 360, Default: 180},
			{Name: "ambient_waste", Path: "water.ambient_waste", Min: 0.1, Max: 1.0, Default: 0.5},
			{Name: "algae_growth_base", Path: "algae.growth_base", Min: 0.01, Max: 0.1, Default: 0.05},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Breeder.Cooldown = int(c[0])
	cfg.Breeder.BreedDistance = c[1]

	cfg.Prey.Invulnerability = int(c[2])
	cfg.Prey.FatigueRate = c[3]
	cfg.Prey.RecoveryRate = c[4]

	cfg.Predator.Speed = c[5]
	cfg.Predator.DetectionRadius = c[6]

	cfg.Food.AutoFeedInterval = int(c[7])
	cfg.Water.AmbientWaste = c[8]
	cfg.Algae.GrowthBase = c[9]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Breeder.Cooldown),
		cfg.Breeder.BreedDistance,
		float64(cfg.Prey.Invulnerability),
		cfg.Prey.FatigueRate,
		cfg.Prey.RecoveryRate,
		cfg.Predator.Speed,
		cfg.Predator.DetectionRadius,
		float64(cfg.Food.AutoFeedInterval),
		cfg.Water.AmbientWaste,
		cfg.Algae.GrowthBase,
	}
}
