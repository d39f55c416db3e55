package decor

import "github.com/oldtown-game/decor/internal/geom"

// AnchorCandidate is a structure decorations can hang from, as reported by
// the world generator. Read-only to this package.
type AnchorCandidate struct {
	Position    geom.Vec3 // Center of the structure footprint, at street level
	HalfWidth   float64   // Horizontal extent from center to edge
	StoryHeight float64   // Height of one story
	Stories     int       // Number of stories
	Facing      float64   // Orientation in radians (informational)
}

// Height returns the total vertical extent of the candidate.
func (a AnchorCandidate) Height() float64 {
	return a.StoryHeight * float64(a.Stories)
}
