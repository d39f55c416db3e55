// Package anim drives per-frame motion for draped decorations, throttled by
// viewer distance. Trig recomputation for every cloth item in a large scene
// is the dominant per-frame cost, so far-away instances reuse their last
// offset for a time window instead of recomputing.
package anim

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/oldtown-game/decor/internal/geom"
)

// Sinusoid constants for the three motion components. Distinct frequencies
// keep the combined motion from looking like a single pendulum.
const (
	swayFreq   = 1.1
	swayAmp    = 0.18
	bounceFreq = 1.7
	bounceAmp  = 0.07
	tiltFreq   = 0.9
	tiltAmp    = 0.12
)

// Bands configure the distance gating. Distances are squared world units;
// intervals are seconds. The empirical defaults are tunable configuration,
// not load-bearing values.
type Bands struct {
	NearDistSq      float64 // Below this: recompute every frame
	CullDistSq      float64 // Below this: recompute at most every FarInterval
	FarInterval     float64
	VeryFarInterval float64 // Beyond CullDistSq: recompute at most this often
}

// DefaultBands returns the tuning used by the street decorator.
func DefaultBands() Bands {
	return Bands{
		NearDistSq:      60 * 60,
		CullDistSq:      90 * 90,
		FarInterval:     0.2,
		VeryFarInterval: 0.5,
	}
}

// Validate reports a configuration error, if any.
func (b Bands) Validate() error {
	if b.NearDistSq <= 0 || b.CullDistSq < b.NearDistSq {
		return fmt.Errorf("anim: distance band [%v, %v] is invalid", b.NearDistSq, b.CullDistSq)
	}
	if b.FarInterval <= 0 || b.VeryFarInterval < b.FarInterval {
		return fmt.Errorf("anim: interval pair (%v, %v) is invalid", b.FarInterval, b.VeryFarInterval)
	}
	return nil
}

// Offset is the purely additive visual displacement for one instance this
// frame: horizontal sway, vertical bounce, and rotational jitter. It is
// applied on top of the frozen curve-derived base position and never baked
// back into the descriptor.
type Offset struct {
	Sway   float64
	Bounce float64
	Tilt   float64
}

// Instance is the animation state for one attached item. All mutable state
// is local to the instance; there is nothing shared between instances.
type Instance struct {
	Base      geom.Vec3 // Frozen curve-derived rest position
	Phase     float64   // Per-item phase offset
	WindPhase float64   // Shared descriptor phase, for coherent motion
	Amplitude float64   // Size-derived motion scale

	lastUpdate float64
	updated    bool
	factor     float64 // Spring-smoothed activity level, avoids band popping
	factorVel  float64
	offset     Offset
}

// Current returns the most recently computed offset.
func (in *Instance) Current() Offset {
	return in.offset
}

// Driver updates a set of instances once per displayed frame. It is not
// safe for concurrent use; the whole subsystem is frame-driven and
// single-threaded.
type Driver struct {
	bands  Bands
	spring harmonica.Spring
}

// NewDriver validates the bands and returns a driver.
func NewDriver(b Bands) (*Driver, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Driver{
		bands:  b,
		spring: harmonica.NewSpring(harmonica.FPS(60), 4.0, 1.0),
	}, nil
}

// Advance updates every instance for the current frame. now is monotonic
// simulation time in seconds; viewer is the camera position.
func (d *Driver) Advance(now float64, viewer geom.Vec3, instances []*Instance) {
	for _, in := range instances {
		d.advance(in, now, viewer)
	}
}

func (d *Driver) advance(in *Instance, now float64, viewer geom.Vec3) {
	distSq := geom.DistanceSquared(viewer, in.Base)

	targetFactor := 1.0
	interval := 0.0
	switch {
	case distSq <= d.bands.NearDistSq:
		// Every frame.
	case distSq <= d.bands.CullDistSq:
		targetFactor = 0.6
		interval = d.bands.FarInterval
	default:
		targetFactor = 0.25
		interval = d.bands.VeryFarInterval
	}

	if in.updated && interval > 0 && now-in.lastUpdate < interval {
		return // stale offset persists until the window expires
	}
	in.lastUpdate = now
	in.updated = true

	in.factor, in.factorVel = d.spring.Update(in.factor, in.factorVel, targetFactor)

	phase := now + in.Phase + in.WindPhase
	amp := in.Amplitude * in.factor
	in.offset = Offset{
		Sway:   math.Sin(phase*swayFreq) * swayAmp * amp,
		Bounce: math.Sin(phase*bounceFreq+1.3) * bounceAmp * amp,
		Tilt:   math.Sin(phase*tiltFreq+2.1) * tiltAmp * amp,
	}
}
