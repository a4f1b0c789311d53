package board

// Outcome classifies an attempted move.
type Outcome int

const (
	Rejected Outcome = iota // blocked, out of bounds or same color; nothing changed
	Slid
	Collided
)

func (o Outcome) String() string {
	switch o {
	case Slid:
		return "slid"
	case Collided:
		return "collided"
	default:
		return "rejected"
	}
}

// Action names a particle and a direction to move it in.
type Action struct {
	Particle int
	Dir      Direction
}

// Move records an applied move with everything Undo needs to invert it.
type Move struct {
	Outcome  Outcome
	Particle int
	Dir      Direction
	FromX    int
	FromY    int
	ToX      int
	ToY      int

	// Delta is the signed hash change, modulo 2^64.
	Delta uint64

	// prior is the destination cell before the move.
	prior Cell
}

// Collision reports whether the move annihilated two particles.
func (m Move) Collision() bool {
	return m.Outcome == Collided
}

// Partner returns the particle destroyed together with the mover, or None.
func (m Move) Partner() int {
	if m.Outcome != Collided {
		return None
	}
	return m.prior.Occupant
}

// Apply attempts to move live particle i one cell in direction dir.
// A portal on the target cell sends the particle to the partner cell, once.
// A particle of the opposite color on the final cell annihilates both, and
// the board status is then re-evaluated. A Rejected move leaves the board
// untouched and must not be undone.
func (b *Board) Apply(i int, dir Direction) Move {
	p := b.particles[i]
	if !p.Alive {
		return Move{Outcome: Rejected, Particle: i, Dir: dir}
	}

	dx, dy := dir.Offset()
	tx, ty := p.X+dx, p.Y+dy
	if !b.InBounds(tx, ty) || !b.cells[b.pos(tx, ty)].Open {
		return Move{Outcome: Rejected, Particle: i, Dir: dir}
	}

	collision, ok := b.classify(b.cells[b.pos(tx, ty)], p.Color)
	if !ok {
		return Move{Outcome: Rejected, Particle: i, Dir: dir}
	}
	if c := b.cells[b.pos(tx, ty)]; !collision && c.Portal != None {
		d := b.portals[b.portals[c.Portal].Dest]
		tx, ty = d.X, d.Y
		if collision, ok = b.classify(b.cells[b.pos(tx, ty)], p.Color); !ok {
			return Move{Outcome: Rejected, Particle: i, Dir: dir}
		}
	}

	from, to := b.pos(p.X, p.Y), b.pos(tx, ty)
	m := Move{
		Outcome:  Slid,
		Particle: i,
		Dir:      dir,
		FromX:    p.X,
		FromY:    p.Y,
		ToX:      tx,
		ToY:      ty,
		prior:    b.cells[to],
	}

	fromBefore, toBefore := b.category(b.cells[from]), b.category(b.cells[to])
	if !collision {
		m.Delta = delta(from, fromBefore, categoryEmpty, to, toBefore, fromBefore)
		b.clearOccupant(from)
		b.setOccupant(to, i)
		b.hash += m.Delta
		return m
	}

	m.Outcome = Collided
	m.Delta = delta(from, fromBefore, categoryEmpty, to, toBefore, categoryClosed)
	b.particles[m.prior.Occupant].Alive = false
	b.particles[i].Alive = false
	b.live -= 2
	b.clearOccupant(to)
	b.clearOccupant(from)
	b.detachPortalPair(to)
	b.cells[to].Open = false
	b.hash += m.Delta

	switch {
	case !b.IsConnected():
		b.status = Dead
	case b.live == 0:
		b.status = Solved
	default:
		b.status = Ongoing
	}
	return m
}

// classify checks whether a particle of color c may enter cell t.
// ok is false when t holds a particle of the same color.
func (b *Board) classify(t Cell, c Color) (collision, ok bool) {
	if t.Occupant == None {
		return false, true
	}
	if b.particles[t.Occupant].Color == c {
		return false, false
	}
	return true, true
}

// Undo reverts m, which must be the most recent move applied to b.
func (b *Board) Undo(m Move) {
	from, to := b.pos(m.FromX, m.FromY), b.pos(m.ToX, m.ToY)
	switch m.Outcome {
	case Slid:
		b.clearOccupant(to)
		b.setOccupant(from, m.Particle)
	case Collided:
		if m.prior.Portal != None {
			b.attachPortalPair(m.prior.Portal)
		}
		b.cells[to].Open = true
		b.particles[m.prior.Occupant].Alive = true
		b.particles[m.Particle].Alive = true
		b.setOccupant(to, m.prior.Occupant)
		b.setOccupant(from, m.Particle)
		b.live += 2
		b.status = Ongoing
	default:
		return
	}
	b.hash -= m.Delta
}
