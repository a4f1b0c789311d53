package board

import (
	"fmt"
	"strings"
)

// Size limits
const (
	MaxSide        = 15
	MaxCells       = MaxSide * MaxSide
	MaxParticles   = 100
	MaxPortalPairs = 20
)

// None marks an absent portal or occupant reference.
const None = -1

// Color is one of the two particle colors.
type Color int

const (
	Red Color = iota
	Blue
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return 1 - c
}

func (c Color) String() string {
	if c == Blue {
		return "blue"
	}
	return "red"
}

// Status classifies the board after a move.
type Status int

const (
	Ongoing Status = iota
	Dead           // a collision left live particles unreachable from each other
	Solved         // no live particles remain
)

func (s Status) String() string {
	switch s {
	case Dead:
		return "dead"
	case Solved:
		return "solved"
	default:
		return "ongoing"
	}
}

// Particle is a registry entry. Particles are never removed: an eliminated
// particle keeps its last coordinates and is marked not alive.
type Particle struct {
	ID    int
	Color Color
	X, Y  int
	Alive bool
}

// Portal is one endpoint of a teleporting pair.
// Dest is the registry index of its partner.
type Portal struct {
	ID   int
	X, Y int
	Dest int
}

// Cell is a single grid position.
// Portal and Occupant hold registry indices or None.
type Cell struct {
	Open     bool
	Portal   int
	Occupant int
}

// Board holds the grid, the particle and portal registries, the status and
// the running hash. It is mutated in place by Apply and Undo.
type Board struct {
	rows, cols int
	cells      [MaxCells]Cell

	particles []Particle
	portals   []Portal

	// pending maps a portal pairing id to the index of its first endpoint
	// until the second one is added.
	pending map[int]int

	status Status
	live   int
	hash   uint64
	sealed bool
}

// New creates an empty board of the given size with every cell closed.
func New(rows, cols int) (*Board, error) {
	if rows <= 0 || rows > MaxSide || cols <= 0 || cols > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d must be within 1x1 and %dx%d", ErrInvalidSize, rows, cols, MaxSide, MaxSide)
	}
	b := &Board{
		rows:    rows,
		cols:    cols,
		pending: make(map[int]int),
	}
	for i := range b.cells {
		b.cells[i] = Cell{Portal: None, Occupant: None}
	}
	return b, nil
}

// Clone creates an independent copy of the Board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	clone := *b
	clone.particles = append([]Particle(nil), b.particles...)
	clone.portals = append([]Portal(nil), b.portals...)
	clone.pending = make(map[int]int, len(b.pending))
	for id, idx := range b.pending {
		clone.pending[id] = idx
	}
	return &clone
}

// OpenCell marks the cell at (x, y) as open.
func (b *Board) OpenCell(x, y int) error {
	if err := b.checkMutable(x, y); err != nil {
		return err
	}
	b.cells[b.pos(x, y)].Open = true
	return nil
}

// AddPortal opens the cell at (x, y) and places a portal endpoint on it.
// The second portal added with the same id becomes its partner.
func (b *Board) AddPortal(x, y, id int) error {
	if err := b.checkMutable(x, y); err != nil {
		return err
	}
	if id < 0 || id >= MaxPortalPairs {
		return fmt.Errorf("%w: portal id %d must be in range [0, %d)", ErrPortalOverflow, id, MaxPortalPairs)
	}
	pos := b.pos(x, y)
	if b.cells[pos].Portal != None {
		return fmt.Errorf("%w: cell (%d,%d) already hosts a portal", ErrCellOccupied, x, y)
	}
	for _, p := range b.portals {
		if p.ID == id && p.Dest != None {
			return fmt.Errorf("%w: portal id %d already has two endpoints", ErrPortalOverflow, id)
		}
	}

	idx := len(b.portals)
	b.portals = append(b.portals, Portal{ID: id, X: x, Y: y, Dest: None})
	b.cells[pos].Open = true
	b.cells[pos].Portal = idx

	if first, ok := b.pending[id]; ok {
		b.portals[first].Dest = idx
		b.portals[idx].Dest = first
		delete(b.pending, id)
	} else {
		b.pending[id] = idx
	}
	return nil
}

// AddParticle places a new live particle on the open cell at (x, y) and
// returns its registry index, which is also its ID.
func (b *Board) AddParticle(x, y int, color Color) (int, error) {
	if err := b.checkMutable(x, y); err != nil {
		return None, err
	}
	if len(b.particles) >= MaxParticles {
		return None, fmt.Errorf("%w: limit is %d", ErrTooManyParticles, MaxParticles)
	}
	pos := b.pos(x, y)
	if !b.cells[pos].Open {
		return None, fmt.Errorf("%w: particle at (%d,%d)", ErrCellClosed, x, y)
	}
	if b.cells[pos].Occupant != None {
		return None, fmt.Errorf("%w: particle at (%d,%d)", ErrCellOccupied, x, y)
	}

	idx := len(b.particles)
	b.particles = append(b.particles, Particle{ID: idx, Color: color, X: x, Y: y, Alive: true})
	b.setOccupant(pos, idx)
	b.live++
	return idx, nil
}

// Seal finishes construction: it rejects unpaired portals, computes the
// initial hash and sets the initial status. No cells, portals or particles
// can be added afterwards.
func (b *Board) Seal() error {
	if b.sealed {
		return ErrSealed
	}
	for id, idx := range b.pending {
		p := b.portals[idx]
		return fmt.Errorf("%w: id %d at (%d,%d)", ErrUnpairedPortal, id, p.X, p.Y)
	}
	b.hash = b.ComputeHash()
	b.status = Ongoing
	if b.live == 0 {
		b.status = Solved
	}
	b.sealed = true
	return nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// Cell returns the cell at (x, y).
// Out-of-bounds coordinates yield a closed, empty cell.
func (b *Board) Cell(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{Portal: None, Occupant: None}
	}
	return b.cells[b.pos(x, y)]
}

// NumParticles returns the registry size, including eliminated particles.
func (b *Board) NumParticles() int {
	return len(b.particles)
}

// Particle returns the particle with registry index i.
func (b *Board) Particle(i int) Particle {
	return b.particles[i]
}

// Particles returns a copy of the particle registry.
func (b *Board) Particles() []Particle {
	return append([]Particle(nil), b.particles...)
}

// NumPortals returns the number of portal endpoints ever placed.
func (b *Board) NumPortals() int {
	return len(b.portals)
}

// Portal returns the portal with registry index i.
func (b *Board) Portal(i int) Portal {
	return b.portals[i]
}

// LiveCount returns the number of particles still alive.
func (b *Board) LiveCount() int {
	return b.live
}

// Status returns the status left by the last Apply or Undo.
func (b *Board) Status() Status {
	return b.status
}

// Hash returns the running board hash.
func (b *Board) Hash() uint64 {
	return b.hash
}

// Format returns a human-readable board representation.
// '#' is closed, '.' open, 'r'/'b' a particle, 'R'/'B' a particle standing
// on a portal and 'o' an empty portal cell.
func (b *Board) Format() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", 2*b.cols+1) + "+\n"
	sb.WriteString(border)

	for y, n := 0, b.rows; y < n; y++ {
		sb.WriteString("| ")
		for x, n := 0, b.cols; x < n; x++ {
			sb.WriteByte(b.glyph(b.cells[b.pos(x, y)]))
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}

	sb.WriteString(border)
	return sb.String()
}

func (b *Board) glyph(c Cell) byte {
	switch {
	case !c.Open:
		return '#'
	case c.Occupant != None:
		g := byte('r')
		if b.particles[c.Occupant].Color == Blue {
			g = 'b'
		}
		if c.Portal != None {
			g -= 'a' - 'A'
		}
		return g
	case c.Portal != None:
		return 'o'
	default:
		return '.'
	}
}

// pos transforms a column and row into a linear cell index.
// The index doubles as the exponent of the cell's hash weight.
func (b *Board) pos(x, y int) int {
	return y*b.cols + x
}

// setOccupant places particle i on the cell at pos and moves the particle's
// coordinates there.
func (b *Board) setOccupant(pos, i int) {
	b.cells[pos].Occupant = i
	b.particles[i].X = pos % b.cols
	b.particles[i].Y = pos / b.cols
}

// clearOccupant empties the cell at pos. The former occupant keeps its
// coordinates.
func (b *Board) clearOccupant(pos int) {
	b.cells[pos].Occupant = None
}

// detachPortalPair removes the portal on the cell at pos together with its
// partner endpoint. The registry entries stay so they can be reattached.
func (b *Board) detachPortalPair(pos int) {
	idx := b.cells[pos].Portal
	if idx == None {
		return
	}
	dest := b.portals[idx].Dest
	b.cells[b.pos(b.portals[dest].X, b.portals[dest].Y)].Portal = None
	b.cells[pos].Portal = None
}

// attachPortalPair restores portal idx and its partner on their cells.
func (b *Board) attachPortalPair(idx int) {
	p := b.portals[idx]
	d := b.portals[p.Dest]
	b.cells[b.pos(p.X, p.Y)].Portal = idx
	b.cells[b.pos(d.X, d.Y)].Portal = p.Dest
}
