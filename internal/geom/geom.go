// Package geom provides vector and distance utilities for decoration placement.
package geom

import "math"

// Vec3 is a point or direction in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return dx*dx + dy*dy + dz*dz
}

// PlanarDistance calculates the distance between two points projected onto
// the ground plane (Y ignored).
func PlanarDistance(a, b Vec3) float64 {
	return math.Sqrt(PlanarDistanceSquared(a, b))
}

// PlanarDistanceSquared calculates the squared ground-plane distance.
func PlanarDistanceSquared(a, b Vec3) float64 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	return dx*dx + dz*dz
}

// PlanarDirection returns the unit direction from a to b projected onto the
// ground plane. Returns the zero vector if the points coincide in the plane.
func PlanarDirection(a, b Vec3) Vec3 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	d := math.Sqrt(dx*dx + dz*dz)
	if d == 0 {
		return Vec3{}
	}
	return Vec3{X: dx / d, Z: dz / d}
}
