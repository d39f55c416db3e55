package decor

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/oldtown-game/decor/internal/detrand"
)

// ornament keys live far from the descriptor key range.
const keyOrnamentBase int64 = 1 << 40

// OrnamentChoice is a per-building decoration pick (trim variant and tint)
// consumed by the mesh assembler.
type OrnamentChoice struct {
	Candidate int // Index into the caller's candidate slice
	Variant   int
	Tint      colorful.Color
}

// PlanOrnaments picks one ornament variant per candidate. Choices are keyed
// off each candidate's position, not its slice index, so a building keeps
// the same trim no matter how the world generator orders its output.
// variants below 1 yields variant 0 for every building.
func PlanOrnaments(candidates []AnchorCandidate, seed int64, variants int) []OrnamentChoice {
	out := make([]OrnamentChoice, len(candidates))
	for i, cand := range candidates {
		key := keyOrnamentBase ^ posKey(cand.Position)
		out[i] = OrnamentChoice{
			Candidate: i,
			Variant:   detrand.IntN(seed, key, variants),
			Tint: colorful.Hsv(
				detrand.Value(seed, key+1)*360,
				detrand.Range(seed, key+2, 0.15, 0.4),
				detrand.Range(seed, key+3, 0.7, 0.95),
			),
		}
	}
	return out
}
