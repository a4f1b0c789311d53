package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApply_AdjacentOppositeColors: a single collision clears the board.
func TestApply_AdjacentOppositeColors(t *testing.T) {
	b := build(t, []string{"rb"})
	before := b.Clone()

	m := b.Apply(0, Right)
	require.Equal(t, Collided, m.Outcome)
	assert.True(t, m.Collision())
	assert.Equal(t, 1, m.Partner())
	assert.Equal(t, Solved, b.Status())
	assert.Equal(t, 0, b.LiveCount())
	assert.False(t, b.Cell(1, 0).Open, "collision cell closes")
	assert.Equal(t, None, b.Cell(0, 0).Occupant)
	assert.Equal(t, b.ComputeHash(), b.Hash())
	require.NoError(t, b.CheckConsistency())

	b.Undo(m)
	assert.Equal(t, before, b)
}

func TestApply_Rejected(t *testing.T) {
	b := build(t, []string{
		"rr#",
	})
	before := b.Clone()

	for _, dir := range Directions {
		m := b.Apply(0, dir)
		assert.Equal(t, Rejected, m.Outcome, "particle 0 %s", dir)
		m = b.Apply(1, dir)
		assert.Equal(t, Rejected, m.Outcome, "particle 1 %s", dir)
	}
	assert.Equal(t, before, b, "rejected moves change nothing")
}

func TestApply_Slide(t *testing.T) {
	b := build(t, []string{
		"r..",
		"..b",
	})
	m := b.Apply(0, Down)
	require.Equal(t, Slid, m.Outcome)
	assert.Equal(t, [4]int{0, 0, 0, 1}, [4]int{m.FromX, m.FromY, m.ToX, m.ToY})
	assert.Equal(t, 0, b.Cell(0, 1).Occupant)
	assert.Equal(t, None, b.Cell(0, 0).Occupant)
	assert.Equal(t, Ongoing, b.Status())
	assert.Equal(t, b.ComputeHash(), b.Hash())
}

func TestApply_PortalHop(t *testing.T) {
	b := build(t, []string{
		"r.#..",
	}, portalAt{1, 0, 0}, portalAt{4, 0, 0})

	m := b.Apply(0, Right)
	require.Equal(t, Slid, m.Outcome)
	assert.Equal(t, 4, m.ToX, "enters the portal and exits at its partner")
	assert.Equal(t, 4, b.Particle(0).X)
	assert.Equal(t, b.ComputeHash(), b.Hash())

	// Stepping left from a portal cell lands on a plain cell; no chaining.
	m2 := b.Apply(0, Left)
	require.Equal(t, Slid, m2.Outcome)
	assert.Equal(t, 3, m2.ToX)

	b.Undo(m2)
	b.Undo(m)
	assert.Equal(t, 0, b.Particle(0).X)
	assert.Equal(t, b.ComputeHash(), b.Hash())
}

func TestApply_PortalIntoSameColorRejected(t *testing.T) {
	b := build(t, []string{
		"r.#r",
	}, portalAt{1, 0, 0}, portalAt{3, 0, 0})

	m := b.Apply(0, Right)
	assert.Equal(t, Rejected, m.Outcome)
}

func TestApply_PortalIntoOppositeColorCollides(t *testing.T) {
	b := build(t, []string{
		"r.#b",
	}, portalAt{1, 0, 0}, portalAt{3, 0, 0})

	m := b.Apply(0, Right)
	require.Equal(t, Collided, m.Outcome)
	assert.Equal(t, 3, m.ToX)
	assert.Equal(t, Solved, b.Status())
	assert.Equal(t, None, b.Cell(1, 0).Portal, "partner endpoint loses its portal")
	assert.Equal(t, None, b.Cell(3, 0).Portal)
	assert.False(t, b.Cell(3, 0).Open)
	assert.True(t, b.Cell(1, 0).Open, "partner cell stays open")
	require.NoError(t, b.CheckConsistency())
	assert.Equal(t, b.ComputeHash(), b.Hash())

	b.Undo(m)
	assert.Equal(t, 1, b.Cell(3, 0).Portal)
	assert.Equal(t, 0, b.Cell(1, 0).Portal)
	require.NoError(t, b.CheckConsistency())
}

// TestApply_CollisionOnPortalEntrance: an occupied portal cell is a
// collision site, not a teleport.
func TestApply_CollisionOnPortalEntrance(t *testing.T) {
	b := build(t, []string{
		"rb..r",
		"....b",
	}, portalAt{1, 0, 0}, portalAt{3, 1, 0})

	m := b.Apply(0, Right)
	require.Equal(t, Collided, m.Outcome)
	assert.Equal(t, 1, m.ToX)
	assert.Equal(t, 0, m.ToY)
	assert.Equal(t, None, b.Cell(3, 1).Portal)
	assert.Equal(t, Ongoing, b.Status())
	assert.Equal(t, 2, b.LiveCount())
	require.NoError(t, b.CheckConsistency())
}

// TestApply_IsolatingCollisionIsDead: closing the middle cell cuts the two
// survivors apart.
func TestApply_IsolatingCollisionIsDead(t *testing.T) {
	b := build(t, []string{"brbr"})
	before := b.Clone()

	m := b.Apply(1, Right)
	require.Equal(t, Collided, m.Outcome)
	assert.Equal(t, Dead, b.Status())
	assert.False(t, b.IsConnected())

	b.Undo(m)
	assert.Equal(t, before, b)
	assert.Equal(t, Ongoing, b.Status())

	m = b.Apply(0, Right)
	require.Equal(t, Collided, m.Outcome)
	assert.Equal(t, Ongoing, b.Status(), "the survivors are adjacent")
}

func TestIsConnected_ThroughPortal(t *testing.T) {
	b := build(t, []string{
		"r#b",
	}, portalAt{0, 0, 1}, portalAt{2, 0, 1})
	assert.True(t, b.IsConnected(), "the start cell's portal is followed")

	c := build(t, []string{
		"r#b",
	})
	assert.False(t, c.IsConnected())
}

func TestHash_BasePowers(t *testing.T) {
	want := [8]uint64{
		131,
		17161,
		294499921,
		86730203469006241,
		17875507469515632449,
		6561729160138256001,
		3558634572158344449,
		3350337366117136897,
	}
	assert.Equal(t, want, basePowers)
	assert.Equal(t, uint64(131*131*131), weights[3])
	assert.Equal(t, uint64(1), weights[0])
}

func TestHash_FromScratch(t *testing.T) {
	b := build(t, []string{"rb"})
	// 1·131² + blue·131 + red
	assert.Equal(t, uint64(17161+3*131+2), b.Hash())

	c := build(t, []string{"#."})
	assert.Equal(t, uint64(17161+1*131+0), c.Hash())
}

// TestRandomWalk_UndoExact drives random moves through a board with
// portals and checks every invariant after each Apply and Undo.
func TestRandomWalk_UndoExact(t *testing.T) {
	initial := build(t, []string{
		"r..b.",
		".#.#.",
		"b...r",
		"..#..",
		"r.b.b",
	}, portalAt{1, 0, 0}, portalAt{3, 4, 0}, portalAt{0, 3, 1}, portalAt{4, 1, 1})

	rng := rand.New(rand.NewSource(7))
	for walk := 0; walk < 50; walk++ {
		b := initial.Clone()
		var stack []Move
		var snapshots []*Board

		for step := 0; step < 40; step++ {
			if b.Status() != Ongoing {
				break
			}
			i := rng.Intn(b.NumParticles())
			dir := Directions[rng.Intn(len(Directions))]
			wasConnected := b.IsConnected()
			snap := b.Clone()

			m := b.Apply(i, dir)
			if m.Outcome == Rejected {
				require.Equal(t, snap, b)
				continue
			}
			require.NoError(t, b.CheckConsistency())
			require.Equal(t, b.ComputeHash(), b.Hash(), "walk %d step %d", walk, step)
			if m.Outcome == Slid {
				require.Equal(t, wasConnected, b.IsConnected(), "slides never change connectivity")
			}

			if b.Status() == Dead || rng.Intn(4) == 0 {
				b.Undo(m)
				require.Equal(t, snap, b, "walk %d step %d", walk, step)
				continue
			}
			stack = append(stack, m)
			snapshots = append(snapshots, snap)
		}

		for len(stack) > 0 {
			n := len(stack) - 1
			b.Undo(stack[n])
			require.Equal(t, snapshots[n], b)
			require.Equal(t, b.ComputeHash(), b.Hash())
			stack, snapshots = stack[:n], snapshots[:n]
		}
		require.Equal(t, initial, b)
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		got, err := ParseDirection(dir.String())
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	}
	_, err := ParseDirection("north")
	assert.Error(t, err)
}
