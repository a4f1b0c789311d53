package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize      = errors.New("board size out of range")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrCellClosed       = errors.New("cell is closed")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrUnpairedPortal   = errors.New("portal has no partner")
	ErrPortalOverflow   = errors.New("too many portal endpoints")
	ErrTooManyParticles = errors.New("too many particles")
	ErrSealed           = errors.New("board is sealed")
)

// CheckConsistency reports the first violation of the board invariants:
// every occupant refers to a live particle standing on that cell, every
// live particle is its cell's occupant, portal cells are open and every
// attached portal is paired symmetrically.
func (b *Board) CheckConsistency() error {
	live := 0
	for i, p := range b.particles {
		if !p.Alive {
			continue
		}
		live++
		if !b.InBounds(p.X, p.Y) {
			return fmt.Errorf("particle %d at (%d,%d): %w", i, p.X, p.Y, ErrOutOfBounds)
		}
		if got := b.cells[b.pos(p.X, p.Y)].Occupant; got != i {
			return fmt.Errorf("particle %d at (%d,%d) but cell holds %d", i, p.X, p.Y, got)
		}
	}
	if live != b.live {
		return fmt.Errorf("live count %d, registry has %d", b.live, live)
	}

	for y, n := 0, b.rows; y < n; y++ {
		for x, n := 0, b.cols; x < n; x++ {
			c := b.cells[b.pos(x, y)]
			if c.Occupant != None {
				p := b.particles[c.Occupant]
				if !p.Alive || p.X != x || p.Y != y {
					return fmt.Errorf("cell (%d,%d) holds particle %d at (%d,%d) alive=%v", x, y, c.Occupant, p.X, p.Y, p.Alive)
				}
				if !c.Open {
					return fmt.Errorf("cell (%d,%d) is closed but occupied: %w", x, y, ErrCellClosed)
				}
			}
			if c.Portal == None {
				continue
			}
			if !c.Open {
				return fmt.Errorf("cell (%d,%d) is closed but hosts portal %d: %w", x, y, c.Portal, ErrCellClosed)
			}
			p := b.portals[c.Portal]
			if p.X != x || p.Y != y {
				return fmt.Errorf("cell (%d,%d) hosts portal %d located at (%d,%d)", x, y, c.Portal, p.X, p.Y)
			}
			d := b.portals[p.Dest]
			if d.Dest != c.Portal || b.cells[b.pos(d.X, d.Y)].Portal != p.Dest {
				return fmt.Errorf("portal %d at (%d,%d): %w", c.Portal, x, y, ErrUnpairedPortal)
			}
		}
	}
	return nil
}

// checkMutable verifies that the board is still under construction and that
// (x, y) is on the board.
func (b *Board) checkMutable(x, y int) error {
	if b.sealed {
		return ErrSealed
	}
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, b.cols, b.rows)
	}
	return nil
}
