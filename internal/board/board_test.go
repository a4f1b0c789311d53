package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// portalAt places portal endpoint id on (x, y) in a test layout.
type portalAt struct {
	x, y, id int
}

// build creates a sealed board from a row layout: '#' closed, '.' open,
// 'r' and 'b' a particle on an open cell. Particles get IDs in reading order.
func build(t *testing.T, layout []string, portals ...portalAt) *Board {
	t.Helper()
	b, err := New(len(layout), len(layout[0]))
	require.NoError(t, err)

	for y, row := range layout {
		require.Len(t, row, len(layout[0]), "row %d", y)
		for x, ch := range row {
			if ch != '#' {
				require.NoError(t, b.OpenCell(x, y))
			}
		}
	}
	for _, p := range portals {
		require.NoError(t, b.AddPortal(p.x, p.y, p.id))
	}
	for y, row := range layout {
		for x, ch := range row {
			switch ch {
			case 'r':
				_, err = b.AddParticle(x, y, Red)
			case 'b':
				_, err = b.AddParticle(x, y, Blue)
			default:
				continue
			}
			require.NoError(t, err)
		}
	}
	require.NoError(t, b.Seal())
	return b
}

func TestNew_SizeLimits(t *testing.T) {
	cases := []struct {
		rows, cols int
		ok         bool
	}{
		{1, 1, true},
		{MaxSide, MaxSide, true},
		{0, 3, false},
		{3, 0, false},
		{MaxSide + 1, 2, false},
		{2, MaxSide + 1, false},
	}
	for _, tc := range cases {
		_, err := New(tc.rows, tc.cols)
		if tc.ok {
			assert.NoError(t, err, "%dx%d", tc.rows, tc.cols)
		} else {
			assert.ErrorIs(t, err, ErrInvalidSize, "%dx%d", tc.rows, tc.cols)
		}
	}
}

func TestAddParticle_Errors(t *testing.T) {
	b, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.OpenCell(0, 0))

	_, err = b.AddParticle(1, 1, Red)
	assert.ErrorIs(t, err, ErrCellClosed)

	_, err = b.AddParticle(5, 0, Red)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	id, err := b.AddParticle(0, 0, Blue)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	_, err = b.AddParticle(0, 0, Red)
	assert.ErrorIs(t, err, ErrCellOccupied)
}

func TestPortals_Pairing(t *testing.T) {
	b, err := New(3, 3)
	require.NoError(t, err)
	require.NoError(t, b.AddPortal(0, 0, 4))
	require.NoError(t, b.AddPortal(2, 2, 4))

	assert.Equal(t, 1, b.Portal(0).Dest)
	assert.Equal(t, 0, b.Portal(1).Dest)
	assert.True(t, b.Cell(0, 0).Open, "portal cells are open")

	err = b.AddPortal(1, 1, 4)
	assert.ErrorIs(t, err, ErrPortalOverflow)

	err = b.AddPortal(1, 1, MaxPortalPairs)
	assert.ErrorIs(t, err, ErrPortalOverflow)

	err = b.AddPortal(0, 0, 5)
	assert.ErrorIs(t, err, ErrCellOccupied)
}

func TestSeal_UnpairedPortal(t *testing.T) {
	b, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.AddPortal(1, 0, 3))

	err = b.Seal()
	assert.ErrorIs(t, err, ErrUnpairedPortal)
}

func TestSeal_FreezesBoard(t *testing.T) {
	b := build(t, []string{".."})
	assert.Equal(t, Solved, b.Status(), "a board without particles is solved")
	assert.ErrorIs(t, b.Seal(), ErrSealed)
	assert.ErrorIs(t, b.OpenCell(0, 0), ErrSealed)
}

func TestClone_Independent(t *testing.T) {
	b := build(t, []string{"r.b"})
	c := b.Clone()
	require.Equal(t, b, c)

	m := c.Apply(0, Right)
	require.Equal(t, Slid, m.Outcome)
	assert.Equal(t, 0, b.Particle(0).X)
	assert.Equal(t, 1, c.Particle(0).X)
	assert.NotEqual(t, b.Hash(), c.Hash())
}

func TestFormat(t *testing.T) {
	b := build(t, []string{
		"r.#",
		"..b",
	}, portalAt{1, 0, 0}, portalAt{0, 1, 0})

	want := "" +
		"+-------+\n" +
		"| r o # |\n" +
		"| o . b |\n" +
		"+-------+\n"
	assert.Equal(t, want, b.Format())
}

func TestCheckConsistency_Fresh(t *testing.T) {
	b := build(t, []string{
		"r.b.",
		".#..",
		"b..r",
	}, portalAt{1, 0, 2}, portalAt{2, 2, 2})
	assert.NoError(t, b.CheckConsistency())
	assert.Equal(t, 4, b.LiveCount())
	assert.True(t, b.IsConnected())
}
