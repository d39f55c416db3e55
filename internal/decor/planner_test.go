package decor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldtown-game/decor/internal/geom"
)

func testConstraints() Constraints {
	c := DefaultConstraints()
	c.MinDistance = 4
	c.MaxDistance = 28
	return c
}

// clusterCandidates returns a 3x3 grid whose every pair lies inside the test
// distance band, so the planner always finds work regardless of shuffle.
func clusterCandidates() []AnchorCandidate {
	var out []AnchorCandidate
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out = append(out, AnchorCandidate{
				Position:    geom.Vec3{X: float64(i) * 10, Z: float64(j) * 10},
				HalfWidth:   2,
				StoryHeight: 3,
				Stories:     2 + (i+j)%3,
			})
		}
	}
	return out
}

func streetCandidates() []AnchorCandidate {
	out := make([]AnchorCandidate, 0, 8)
	x := 0.0
	for i := 0; i < 8; i++ {
		out = append(out, AnchorCandidate{
			Position:    geom.Vec3{X: x, Z: float64(i%2) * 1.5},
			HalfWidth:   2,
			StoryHeight: 3,
			Stories:     2 + i%3,
		})
		x += 12
	}
	return out
}

func TestPlanDeterministic(t *testing.T) {
	cands := clusterCandidates()
	a := Plan(cands, 42, testConstraints())
	b := Plan(cands, 42, testConstraints())
	require.NotEmpty(t, a)
	assert.Equal(t, a, b, "identical inputs must give bit-identical output")
}

func TestPlanCallerOrderIndependent(t *testing.T) {
	cands := clusterCandidates()
	reversed := make([]AnchorCandidate, len(cands))
	for i, c := range cands {
		reversed[len(cands)-1-i] = c
	}
	assert.Equal(t, Plan(cands, 42, testConstraints()), Plan(reversed, 42, testConstraints()))
}

func TestPlanSeedChangesLayout(t *testing.T) {
	cands := clusterCandidates()
	a := Plan(cands, 1, testConstraints())
	b := Plan(cands, 2, testConstraints())
	assert.NotEqual(t, a, b)
}

func TestPlanDistanceBand(t *testing.T) {
	c := testConstraints()
	for seed := int64(0); seed < 50; seed++ {
		for _, d := range Plan(streetCandidates(), seed, c) {
			dist := geom.PlanarDistance(d.Start, d.End)
			assert.GreaterOrEqual(t, dist, c.MinDistance, "seed %d", seed)
			assert.LessOrEqual(t, dist, c.MaxDistance, "seed %d", seed)
		}
	}
}

func TestPlanInvariants(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		batch := Plan(streetCandidates(), seed, testConstraints())
		ids := map[string]bool{}
		for _, d := range batch {
			assert.Positive(t, d.Length, "seed %d", seed)
			assert.Positive(t, d.Sag, "seed %d", seed)
			assert.Positive(t, d.Width, "seed %d", seed)
			assert.False(t, ids[d.ID], "duplicate id %q in batch, seed %d", d.ID, seed)
			ids[d.ID] = true
			for _, att := range d.Attachments {
				assert.GreaterOrEqual(t, att.T, 0.0)
				assert.LessOrEqual(t, att.T, 1.0)
			}
			if d.Kind == KindLaundryLine {
				assert.GreaterOrEqual(t, len(d.Attachments), 2)
				assert.LessOrEqual(t, len(d.Attachments), 6)
			}
		}
	}
}

func TestPlanTermination(t *testing.T) {
	c := testConstraints()

	assert.Empty(t, Plan(nil, 42, c))
	assert.Empty(t, Plan([]AnchorCandidate{{Position: geom.Vec3{}}}, 42, c))

	// No pair satisfies the band: all candidates stacked within 1 unit.
	var tight []AnchorCandidate
	for i := 0; i < 30; i++ {
		tight = append(tight, AnchorCandidate{
			Position: geom.Vec3{X: float64(i) * 0.03},
			Stories:  2, StoryHeight: 3,
		})
	}
	assert.Empty(t, Plan(tight, 42, c))

	// Coincident candidates: no planar direction exists at all.
	same := []AnchorCandidate{
		{Position: geom.Vec3{X: 1, Z: 1}},
		{Position: geom.Vec3{X: 1, Z: 1}},
		{Position: geom.Vec3{X: 1, Z: 1}},
	}
	assert.Empty(t, Plan(same, 42, c))

	// An exhausted attempt budget yields a short result, not an error.
	tiny := testConstraints()
	tiny.MaxAttempts = 1
	assert.LessOrEqual(t, len(Plan(clusterCandidates(), 42, tiny)), 1)
}

func TestPlanTwoCandidateScenario(t *testing.T) {
	cands := []AnchorCandidate{
		{Position: geom.Vec3{X: 0}, HalfWidth: 1, StoryHeight: 3, Stories: 2},
		{Position: geom.Vec3{X: 10}, HalfWidth: 1, StoryHeight: 3, Stories: 2},
	}
	c := Constraints{
		MinDistance: 8, MaxDistance: 20,
		MinCount: 1, MaxCount: 2,
		MaxAttempts: 16,
		SagRatio:    0.12,
	}
	require.NoError(t, c.Validate())

	batch := Plan(cands, 42, c)
	require.Len(t, batch, 1)

	d := batch[0]
	lo, hi := d.Start.X, d.End.X
	if lo > hi {
		lo, hi = hi, lo
	}
	// Anchors sit at the candidate edges, inset toward each other, not at
	// the centers.
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 9.0, hi)
	assert.Equal(t, d.Start.Z, d.End.Z)

	assert.Equal(t, batch, Plan(cands, 42, c), "re-running seed 42 reproduces the batch")
}

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Constraints)
		ok     bool
	}{
		{"defaults", func(*Constraints) {}, true},
		{"min above max distance", func(c *Constraints) { c.MinDistance = 30 }, false},
		{"negative min distance", func(c *Constraints) { c.MinDistance = -1 }, false},
		{"inverted counts", func(c *Constraints) { c.MinCount = 9; c.MaxCount = 2 }, false},
		{"no attempt budget", func(c *Constraints) { c.MaxAttempts = 0 }, false},
		{"zero sag ratio", func(c *Constraints) { c.SagRatio = 0 }, false},
		{"carpet chance above one", func(c *Constraints) { c.CarpetChance = 1.5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConstraints()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPlanOrnaments(t *testing.T) {
	cands := streetCandidates()
	choices := PlanOrnaments(cands, 42, 4)
	require.Len(t, choices, len(cands))
	for _, ch := range choices {
		assert.GreaterOrEqual(t, ch.Variant, 0)
		assert.Less(t, ch.Variant, 4)
	}

	// A building keeps its ornament no matter how the generator orders its
	// output.
	reversed := make([]AnchorCandidate, len(cands))
	for i, c := range cands {
		reversed[len(cands)-1-i] = c
	}
	rev := PlanOrnaments(reversed, 42, 4)
	for i := range cands {
		assert.Equal(t, choices[i].Variant, rev[len(cands)-1-i].Variant)
		assert.Equal(t, choices[i].Tint, rev[len(cands)-1-i].Tint)
	}
}
