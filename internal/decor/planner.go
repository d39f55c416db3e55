package decor

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/oldtown-game/decor/internal/curve"
	"github.com/oldtown-game/decor/internal/detrand"
	"github.com/oldtown-game/decor/internal/geom"
)

// Key layout for the scalar generator. Each descriptor owns a stride of
// keys offset by its output index so its choices are independent of every
// other descriptor's.
const (
	keyTargetCount      int64 = 1
	keyDescriptorBase   int64 = 1000
	keyDescriptorStride int64 = 64
	keyAttachmentBase   int64 = 16
	keyAttachmentStride int64 = 4
)

// patternCount is the number of cloth/carpet pattern variants renderers know.
const patternCount = 4

// Constraints bound the planner's search. Validate before use; Plan assumes
// a valid configuration and has no error path of its own.
type Constraints struct {
	MinDistance  float64 // Anchor pairs closer than this are rejected
	MaxDistance  float64 // Anchor pairs farther than this are rejected
	MinCount     int     // Lower bound of the target decoration count
	MaxCount     int     // Upper bound of the target decoration count
	MaxAttempts  int     // Pair examinations before the planner gives up
	EdgeInset    float64 // Extra inset past the candidate edge, toward the partner
	SagRatio     float64 // Sag as a fraction of line length
	CarpetChance float64 // Probability a pair becomes a carpet instead of laundry
}

// DefaultConstraints returns the tuning used by the street decorator.
func DefaultConstraints() Constraints {
	return Constraints{
		MinDistance:  4,
		MaxDistance:  22,
		MinCount:     4,
		MaxCount:     5,
		MaxAttempts:  64,
		EdgeInset:    0.15,
		SagRatio:     0.12,
		CarpetChance: 0.3,
	}
}

// Validate reports a configuration error, if any. These are programmer
// errors and should be surfaced at configuration time, not per decoration.
func (c Constraints) Validate() error {
	if c.MinDistance < 0 {
		return fmt.Errorf("decor: MinDistance %v is negative", c.MinDistance)
	}
	if c.MaxDistance < c.MinDistance {
		return fmt.Errorf("decor: MaxDistance %v below MinDistance %v", c.MaxDistance, c.MinDistance)
	}
	if c.MinCount < 0 || c.MaxCount < c.MinCount {
		return fmt.Errorf("decor: count range [%d, %d] is invalid", c.MinCount, c.MaxCount)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("decor: MaxAttempts %d must be positive", c.MaxAttempts)
	}
	if c.SagRatio <= 0 {
		return fmt.Errorf("decor: SagRatio %v must be positive", c.SagRatio)
	}
	if c.CarpetChance < 0 || c.CarpetChance > 1 {
		return fmt.Errorf("decor: CarpetChance %v outside [0, 1]", c.CarpetChance)
	}
	return nil
}

// Plan selects candidate pairs and emits one frozen Descriptor per accepted
// pair. Identical (candidates, seed, constraints) produce an identical list,
// independent of the caller's candidate ordering. Insufficient candidates or
// an exhausted attempt budget yield a shorter-than-target result, never an
// error.
func Plan(candidates []AnchorCandidate, seed int64, c Constraints) []Descriptor {
	span := c.MaxCount - c.MinCount + 1
	target := c.MinCount + detrand.IntN(seed, keyTargetCount, span)

	order := shuffled(candidates, seed)

	var out []Descriptor
	attempts := 0
	for i := 0; i+1 < len(order) && len(out) < target && attempts < c.MaxAttempts; {
		attempts++
		start, end, ok := anchorPoints(order[i], order[i+1], c)
		if !ok {
			i++
			continue
		}
		out = append(out, buildDescriptor(seed, len(out), order[i], order[i+1], start, end, c))
		i += 2
	}
	return out
}

// shuffled returns the candidates reordered by a seed-keyed hash of their
// quantized positions. Two callers holding the same candidate set in any
// order see the same sequence.
func shuffled(candidates []AnchorCandidate, seed int64) []AnchorCandidate {
	order := make([]AnchorCandidate, len(candidates))
	copy(order, candidates)
	sort.Slice(order, func(i, j int) bool {
		ri := detrand.Bits(seed, posKey(order[i].Position))
		rj := detrand.Bits(seed, posKey(order[j].Position))
		if ri != rj {
			return ri < rj
		}
		if order[i].Position.X != order[j].Position.X {
			return order[i].Position.X < order[j].Position.X
		}
		return order[i].Position.Z < order[j].Position.Z
	})
	return order
}

// posKey quantizes a position to 1/16 units and folds it into one key.
func posKey(p geom.Vec3) int64 {
	qx := int64(math.Round(p.X * 16))
	qz := int64(math.Round(p.Z * 16))
	return qx<<21 ^ qz
}

// anchorPoints computes the span between two candidates, inset from each
// candidate's edge toward the other so the line visually originates at the
// structure boundary, not its center. Rejects pairs whose resulting anchor
// distance falls outside the configured band.
func anchorPoints(a, b AnchorCandidate, c Constraints) (start, end geom.Vec3, ok bool) {
	dir := geom.PlanarDirection(a.Position, b.Position)
	if dir == (geom.Vec3{}) {
		return start, end, false
	}
	start = a.Position.Add(dir.Scale(a.HalfWidth + c.EdgeInset))
	end = b.Position.Sub(dir.Scale(b.HalfWidth + c.EdgeInset))

	d := geom.PlanarDistance(start, end)
	if d < c.MinDistance || d > c.MaxDistance {
		return start, end, false
	}
	return start, end, true
}

// buildDescriptor freezes one decoration. Every choice reads the scalar
// generator at a key offset by the output index, so each descriptor's
// colors and layout are reproducible on their own.
func buildDescriptor(seed int64, idx int, a, b AnchorCandidate, start, end geom.Vec3, c Constraints) Descriptor {
	base := keyDescriptorBase + int64(idx)*keyDescriptorStride

	kind := KindLaundryLine
	if detrand.Value(seed, base) < c.CarpetChance {
		kind = KindCarpet
	}

	// Hang the line partway up the shorter of the two facades.
	maxY := math.Min(a.Position.Y+a.Height(), b.Position.Y+b.Height())
	minY := math.Max(a.Position.Y, b.Position.Y)
	hangY := minY + (maxY-minY)*detrand.Range(seed, base+1, 0.55, 0.9)
	start.Y = hangY
	end.Y = hangY

	length := end.Sub(start).Length()
	sag := length * c.SagRatio * detrand.Range(seed, base+2, 0.7, 1.3)
	if sag < curve.MinSag {
		sag = curve.MinSag
	}

	hue := detrand.Value(seed, base+3) * 360
	primary := colorful.Hsv(hue, detrand.Range(seed, base+4, 0.45, 0.85), detrand.Range(seed, base+5, 0.55, 0.9))
	secondary := colorful.Hsv(
		math.Mod(hue+detrand.Range(seed, base+6, 90, 270), 360),
		detrand.Range(seed, base+7, 0.35, 0.7),
		detrand.Range(seed, base+8, 0.6, 0.95),
	)

	d := Descriptor{
		ID:        fmt.Sprintf("%s-%02d", kind, idx),
		Kind:      kind,
		Start:     start,
		End:       end,
		Length:    length,
		Sag:       sag,
		Primary:   primary,
		Secondary: secondary,
		Pattern:   detrand.IntN(seed, base+9, patternCount),
		WindPhase: detrand.Angle(seed, base+10),
	}

	switch kind {
	case KindCarpet:
		d.Width = detrand.Range(seed, base+11, 1.2, 2.4)
	default:
		d.Width = detrand.Range(seed, base+11, 0.04, 0.1)
		d.Attachments = buildAttachments(seed, base, length)
	}
	return d
}

// buildAttachments hangs cloth items along a laundry line. The count scales
// with span length; positions are evenly slotted with per-item jitter so
// items never collide or leave [0,1].
func buildAttachments(seed, base int64, length float64) []Attachment {
	count := int(length / 1.6)
	if count < 2 {
		count = 2
	}
	if count > 6 {
		count = 6
	}

	items := make([]Attachment, count)
	for j := range items {
		key := base + keyAttachmentBase + int64(j)*keyAttachmentStride
		items[j] = Attachment{
			T:            (float64(j) + 0.25 + 0.5*detrand.Value(seed, key)) / float64(count),
			Phase:        detrand.Angle(seed, key+1),
			Size:         detrand.Range(seed, key+2, 0.5, 1.1),
			BaseRotation: detrand.Range(seed, key+3, -0.15, 0.15),
		}
	}
	return items
}

func (k Kind) String() string {
	switch k {
	case KindCarpet:
		return "carpet"
	default:
		return "laundry"
	}
}
