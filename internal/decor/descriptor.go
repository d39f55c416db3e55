// Package decor plans and describes procedural street decorations: laundry
// lines with cloth items, hanging carpets, and per-building ornament choices.
// Everything is derived deterministically from a batch seed so a tile can be
// regenerated bit-identically on demand.
package decor

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/oldtown-game/decor/internal/geom"
)

// Kind distinguishes the decoration families the planner can emit.
type Kind int

const (
	KindLaundryLine Kind = iota
	KindCarpet
)

// Attachment is one item hung on a line (a cloth piece on a laundry line).
type Attachment struct {
	T            float64 // Position parameter along the curve, in [0,1]
	Phase        float64 // Per-item animation phase offset
	Size         float64 // Visual size of the item
	BaseRotation float64 // Rotation baseline the animation jitters around
}

// Descriptor is the frozen record for one placed decoration. Anchor points
// are fixed at creation; all motion is a per-frame visual offset applied on
// top, never written back here.
type Descriptor struct {
	ID   string
	Kind Kind

	Start  geom.Vec3
	End    geom.Vec3
	Length float64 // Cached |End - Start|
	Sag    float64 // Always > 0

	Primary   colorful.Color
	Secondary colorful.Color
	Pattern   int     // Variant tag for texture/pattern selection
	Width     float64 // Perpendicular width of the draped surface

	WindPhase   float64 // Shared by all attachments so they move coherently
	Attachments []Attachment
}
