package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oldtown-game/decor/internal/anim"
	"github.com/oldtown-game/decor/internal/decor"
)

// Tuning is the on-disk tuning document. The distance thresholds and update
// intervals are empirically chosen; treat them as knobs, not contracts.
type Tuning struct {
	Planner struct {
		MinDistance  float64 `yaml:"min_distance"`
		MaxDistance  float64 `yaml:"max_distance"`
		MinCount     int     `yaml:"min_count"`
		MaxCount     int     `yaml:"max_count"`
		MaxAttempts  int     `yaml:"max_attempts"`
		EdgeInset    float64 `yaml:"edge_inset"`
		SagRatio     float64 `yaml:"sag_ratio"`
		CarpetChance float64 `yaml:"carpet_chance"`
	} `yaml:"planner"`
	Animation struct {
		NearDist        float64 `yaml:"near_dist"`
		CullDist        float64 `yaml:"cull_dist"`
		FarInterval     float64 `yaml:"far_interval"`
		VeryFarInterval float64 `yaml:"very_far_interval"`
	} `yaml:"animation"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	var t Tuning
	c := decor.DefaultConstraints()
	t.Planner.MinDistance = c.MinDistance
	t.Planner.MaxDistance = c.MaxDistance
	t.Planner.MinCount = c.MinCount
	t.Planner.MaxCount = c.MaxCount
	t.Planner.MaxAttempts = c.MaxAttempts
	t.Planner.EdgeInset = c.EdgeInset
	t.Planner.SagRatio = c.SagRatio
	t.Planner.CarpetChance = c.CarpetChance

	b := anim.DefaultBands()
	t.Animation.NearDist = 60
	t.Animation.CullDist = 90
	t.Animation.FarInterval = b.FarInterval
	t.Animation.VeryFarInterval = b.VeryFarInterval
	return t
}

// Load reads tuning from a YAML file. A missing file yields the defaults;
// a malformed file or invalid values are configuration errors and fail fast.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := t.Constraints().Validate(); err != nil {
		return t, err
	}
	if err := t.Bands().Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Constraints converts the planner section into planner constraints.
func (t Tuning) Constraints() decor.Constraints {
	return decor.Constraints{
		MinDistance:  t.Planner.MinDistance,
		MaxDistance:  t.Planner.MaxDistance,
		MinCount:     t.Planner.MinCount,
		MaxCount:     t.Planner.MaxCount,
		MaxAttempts:  t.Planner.MaxAttempts,
		EdgeInset:    t.Planner.EdgeInset,
		SagRatio:     t.Planner.SagRatio,
		CarpetChance: t.Planner.CarpetChance,
	}
}

// Bands converts the animation section into driver bands. Distances are
// stored in the file as plain world units and squared here.
func (t Tuning) Bands() anim.Bands {
	return anim.Bands{
		NearDistSq:      t.Animation.NearDist * t.Animation.NearDist,
		CullDistSq:      t.Animation.CullDist * t.Animation.CullDist,
		FarInterval:     t.Animation.FarInterval,
		VeryFarInterval: t.Animation.VeryFarInterval,
	}
}
