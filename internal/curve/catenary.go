// Package curve models the sag of draped lines as a closed-form catenary.
package curve

import (
	"math"

	"github.com/oldtown-game/decor/internal/geom"
)

// MinSag is the floor applied to the sag parameter. At sag = 0 the shape
// parameter a = L/(2·sag) diverges and the cosh term amplifies rounding
// error, so the model never evaluates below this.
const MinSag = 0.01

// DefaultSegments is the polyline resolution used by renderers.
const DefaultSegments = 20

// SamplePoint returns the position at parameter t ∈ [0,1] on a catenary
// hung between start and end with the given sag. Horizontal coordinates
// interpolate linearly; the vertical coordinate droops below the chord,
// maximally at t = 0.5. The endpoints are returned exactly at t = 0 and 1.
func SamplePoint(start, end geom.Vec3, sag, t float64) geom.Vec3 {
	if t <= 0 {
		return start
	}
	if t >= 1 {
		return end
	}
	if sag < MinSag {
		sag = MinSag
	}

	p := geom.Lerp(start, end, t)

	span := geom.PlanarDistance(start, end)
	if span < 1e-9 {
		// Vertical or coincident anchors: nothing to drape across.
		return p
	}

	a := span / (2 * sag)
	x := (t - 0.5) * span
	// Droop relative to the chord: zero at both anchors, edgeDrop at the middle.
	edgeDrop := a * (math.Cosh(span/(2*a)) - 1)
	drop := a * (math.Cosh(x/a) - 1)
	p.Y -= edgeDrop - drop
	return p
}

// Polyline samples the curve at segments+1 uniform steps for rendering.
// segments below 1 falls back to DefaultSegments.
func Polyline(start, end geom.Vec3, sag float64, segments int) []geom.Vec3 {
	if segments < 1 {
		segments = DefaultSegments
	}
	pts := make([]geom.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		pts[i] = SamplePoint(start, end, sag, float64(i)/float64(segments))
	}
	return pts
}
