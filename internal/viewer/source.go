package viewer

import (
	"github.com/oldtown-game/decor/internal/decor"
	"github.com/oldtown-game/decor/internal/detrand"
	"github.com/oldtown-game/decor/internal/geom"
	"github.com/oldtown-game/decor/internal/scene"
)

// demoSource stands in for the building generator: a deterministic street of
// houses per tile, so the viewer works without the full world pipeline.
type demoSource struct {
	seed int64
}

func (s demoSource) Anchors(t scene.Tile) []decor.AnchorCandidate {
	seed := detrand.TileSeed(s.seed^0x5157, t.X, t.Y)
	count := 6 + detrand.IntN(seed, 0, 3)
	out := make([]decor.AnchorCandidate, count)
	x := 4.0
	for i := range out {
		key := int64(10 + i*8)
		half := detrand.Range(seed, key, 2, 4)
		x += half
		out[i] = decor.AnchorCandidate{
			Position:    geom.Vec3{X: x, Z: detrand.Range(seed, key+1, -2, 2)},
			HalfWidth:   half,
			StoryHeight: 3,
			Stories:     2 + detrand.IntN(seed, key+2, 3),
		}
		x += half + detrand.Range(seed, key+3, 2, 7)
	}
	return out
}
