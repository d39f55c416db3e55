package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldtown-game/decor/internal/geom"
)

func testBands() Bands {
	return Bands{
		NearDistSq:      10 * 10,
		CullDistSq:      20 * 20,
		FarInterval:     0.2,
		VeryFarInterval: 0.5,
	}
}

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := NewDriver(testBands())
	require.NoError(t, err)
	return d
}

func TestNearRecomputesEveryFrame(t *testing.T) {
	d := newTestDriver(t)
	in := &Instance{Base: geom.Vec3{}, Amplitude: 1}
	viewer := geom.Vec3{X: 5} // well inside the near band

	d.Advance(0, viewer, []*Instance{in})
	first := in.Current()
	d.Advance(0.016, viewer, []*Instance{in})
	assert.NotEqual(t, first, in.Current(), "near instances update every frame")
}

func TestFarReusesWithinInterval(t *testing.T) {
	d := newTestDriver(t)
	in := &Instance{Base: geom.Vec3{}, Amplitude: 1}
	viewer := geom.Vec3{X: 15} // between near and cull thresholds

	d.Advance(0.01, viewer, []*Instance{in})
	cached := in.Current()

	// Within the far window nothing is recomputed; the stale offset persists.
	d.Advance(0.1, viewer, []*Instance{in})
	assert.Equal(t, cached, in.Current())
	d.Advance(0.2, viewer, []*Instance{in})
	assert.Equal(t, cached, in.Current())

	// Once the window expires the offset moves again.
	d.Advance(0.22, viewer, []*Instance{in})
	assert.NotEqual(t, cached, in.Current())
}

func TestVeryFarUsesLongerInterval(t *testing.T) {
	d := newTestDriver(t)
	in := &Instance{Base: geom.Vec3{}, Amplitude: 1}
	viewer := geom.Vec3{X: 50} // beyond the cull threshold

	d.Advance(0, viewer, []*Instance{in})
	cached := in.Current()

	d.Advance(0.4, viewer, []*Instance{in})
	assert.Equal(t, cached, in.Current(), "still inside the very-far window")
	d.Advance(0.5, viewer, []*Instance{in})
	assert.NotEqual(t, cached, in.Current())
}

func TestOffsetsAreAdditiveOnly(t *testing.T) {
	d := newTestDriver(t)
	base := geom.Vec3{X: 3, Y: 7, Z: -2}
	in := &Instance{Base: base, Phase: 1.2, WindPhase: 0.4, Amplitude: 1}
	viewer := geom.Vec3{X: 4, Y: 7, Z: -2}

	for i := 0; i < 100; i++ {
		d.Advance(float64(i)*0.016, viewer, []*Instance{in})
	}
	assert.Equal(t, base, in.Base, "animation must never bake offsets into the base")
}

func TestAmplitudeRampsSmoothly(t *testing.T) {
	d := newTestDriver(t)
	in := &Instance{Base: geom.Vec3{}, Amplitude: 1}
	viewer := geom.Vec3{X: 1}

	// The activity factor springs up from zero, so the very first frames
	// move less than steady state. No step discontinuities.
	prev := 0.0
	for i := 0; i < 60; i++ {
		d.Advance(float64(i)*0.016, viewer, []*Instance{in})
		f := in.factor
		assert.LessOrEqual(t, f, 1.2)
		assert.GreaterOrEqual(t, f, prev-0.3, "factor must not jump")
		prev = f
	}
	assert.Greater(t, prev, 0.5, "factor approaches the near-band target")
}

func TestBandsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Bands)
		ok     bool
	}{
		{"defaults", func(*Bands) {}, true},
		{"zero near", func(b *Bands) { b.NearDistSq = 0 }, false},
		{"cull below near", func(b *Bands) { b.CullDistSq = b.NearDistSq - 1 }, false},
		{"zero far interval", func(b *Bands) { b.FarInterval = 0 }, false},
		{"very far below far", func(b *Bands) { b.VeryFarInterval = 0.1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DefaultBands()
			tt.mutate(&b)
			err := b.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	_, err := NewDriver(Bands{})
	assert.Error(t, err)
}
