// Package scene owns the per-tile decoration batch lifecycle: a batch is
// generated once when a tile is entered, advanced every frame, and discarded
// wholesale when the player moves on. Nothing is persisted; a tile's batch
// is reproduced from its seed alone.
package scene

import (
	"fmt"

	"github.com/oldtown-game/decor/internal/anim"
	"github.com/oldtown-game/decor/internal/curve"
	"github.com/oldtown-game/decor/internal/decor"
	"github.com/oldtown-game/decor/internal/detrand"
	"github.com/oldtown-game/decor/internal/geom"
)

// Tile identifies one map tile.
type Tile struct {
	X, Y int
}

// AnchorSource supplies candidate structures for a tile. Implemented by the
// building generator.
type AnchorSource interface {
	Anchors(t Tile) []decor.AnchorCandidate
}

// Options configure a Scene.
type Options struct {
	SessionSeed      int64
	Constraints      decor.Constraints
	Bands            anim.Bands
	OrnamentVariants int
}

// Scene manages the active batch for the currently entered tile.
type Scene struct {
	src    AnchorSource
	opts   Options
	driver *anim.Driver
	batch  *Batch
}

// Batch is the frozen decoration set for one (tile, session seed) pair plus
// its transient animation state.
type Batch struct {
	Tile        Tile
	Seed        int64
	Descriptors []decor.Descriptor
	Ornaments   []decor.OrnamentChoice

	perps     []geom.Vec3        // Planar perpendicular per descriptor, for sway
	grouped   [][]*anim.Instance // Instances per descriptor
	instances []*anim.Instance   // Flat view for the driver
}

// New validates the options and returns a Scene.
func New(src AnchorSource, opts Options) (*Scene, error) {
	if src == nil {
		return nil, fmt.Errorf("scene: nil anchor source")
	}
	if err := opts.Constraints.Validate(); err != nil {
		return nil, err
	}
	driver, err := anim.NewDriver(opts.Bands)
	if err != nil {
		return nil, err
	}
	if opts.OrnamentVariants < 1 {
		opts.OrnamentVariants = 1
	}
	return &Scene{src: src, opts: opts, driver: driver}, nil
}

// Enter regenerates the batch for a tile, discarding any previous batch and
// its animation state. Entering the same tile again reproduces the same
// batch.
func (s *Scene) Enter(t Tile) *Batch {
	seed := detrand.TileSeed(s.opts.SessionSeed, t.X, t.Y)
	candidates := s.src.Anchors(t)

	b := &Batch{
		Tile:        t,
		Seed:        seed,
		Descriptors: decor.Plan(candidates, seed, s.opts.Constraints),
		Ornaments:   decor.PlanOrnaments(candidates, seed, s.opts.OrnamentVariants),
	}

	b.perps = make([]geom.Vec3, len(b.Descriptors))
	b.grouped = make([][]*anim.Instance, len(b.Descriptors))
	for i := range b.Descriptors {
		d := &b.Descriptors[i]
		dir := geom.PlanarDirection(d.Start, d.End)
		b.perps[i] = geom.Vec3{X: -dir.Z, Z: dir.X}
		b.grouped[i] = instancesFor(d)
		b.instances = append(b.instances, b.grouped[i]...)
	}

	s.batch = b
	return b
}

// instancesFor builds one animation instance per attached item, resting on
// the curve. A carpet has no attachments and animates as a whole from its
// lowest point.
func instancesFor(d *decor.Descriptor) []*anim.Instance {
	if len(d.Attachments) == 0 {
		return []*anim.Instance{{
			Base:      curve.SamplePoint(d.Start, d.End, d.Sag, 0.5),
			WindPhase: d.WindPhase,
			Amplitude: 0.4,
		}}
	}
	out := make([]*anim.Instance, len(d.Attachments))
	for j, att := range d.Attachments {
		out[j] = &anim.Instance{
			Base:      curve.SamplePoint(d.Start, d.End, d.Sag, att.T),
			Phase:     att.Phase,
			WindPhase: d.WindPhase,
			Amplitude: att.Size,
		}
	}
	return out
}

// Batch returns the active batch, or nil before the first Enter.
func (s *Scene) Batch() *Batch {
	return s.batch
}

// Advance updates animation state for the current frame. Safe to call with
// no active batch.
func (s *Scene) Advance(now float64, viewer geom.Vec3) {
	if s.batch == nil {
		return
	}
	s.driver.Advance(now, viewer, s.batch.instances)
}

// ItemCount returns the number of animated instances for descriptor di.
func (b *Batch) ItemCount(di int) int {
	return len(b.grouped[di])
}

// ItemPosition returns the world position of item ai of descriptor di with
// the current frame's offset applied: sway runs along the line's planar
// perpendicular, bounce is vertical. The stored base is never mutated.
func (b *Batch) ItemPosition(di, ai int) geom.Vec3 {
	in := b.grouped[di][ai]
	off := in.Current()
	p := in.Base.Add(b.perps[di].Scale(off.Sway))
	p.Y += off.Bounce
	return p
}

// ItemRotation returns the item's rotation baseline plus the current jitter.
func (b *Batch) ItemRotation(di, ai int) float64 {
	base := 0.0
	d := &b.Descriptors[di]
	if ai < len(d.Attachments) {
		base = d.Attachments[ai].BaseRotation
	}
	return base + b.grouped[di][ai].Current().Tilt
}
