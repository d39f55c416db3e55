package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistances(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 6, Z: 3}

	assert.Equal(t, 25.0, DistanceSquared(a, b))
	assert.Equal(t, 5.0, Distance(a, b))
	assert.Equal(t, 9.0, PlanarDistanceSquared(a, b), "Y must not contribute")
	assert.Equal(t, 3.0, PlanarDistance(a, b))
}

func TestPlanarDirection(t *testing.T) {
	dir := PlanarDirection(Vec3{}, Vec3{X: 10, Y: 99})
	assert.Equal(t, Vec3{X: 1}, dir)

	// Stacked points have no planar direction.
	assert.Equal(t, Vec3{}, PlanarDirection(Vec3{Y: 1}, Vec3{Y: 7}))
}

func TestLerp(t *testing.T) {
	a := Vec3{X: 0, Y: 10, Z: -2}
	b := Vec3{X: 4, Y: 0, Z: 2}
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, Vec3{X: 2, Y: 5, Z: 0}, Lerp(a, b, 0.5))
}
