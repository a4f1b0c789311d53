package board

import "github.com/zyedidia/generic/queue"

// IsConnected reports whether every live particle can reach every other one
// through open cells and portal links. A board without live particles is
// connected.
//
// Sliding moves never change the verdict, so the move engine only asks
// after a collision.
func (b *Board) IsConnected() bool {
	start := None
	for _, p := range b.particles {
		if p.Alive {
			start = b.pos(p.X, p.Y)
			break
		}
	}
	if start == None {
		return true
	}

	var seen [MaxCells]bool
	q := queue.New[int]()
	visit := func(pos int) {
		if !seen[pos] {
			seen[pos] = true
			q.Enqueue(pos)
		}
	}

	visit(start)
	for !q.Empty() {
		u := q.Dequeue()
		if idx := b.cells[u].Portal; idx != None {
			d := b.portals[b.portals[idx].Dest]
			visit(b.pos(d.X, d.Y))
		}
		ux, uy := u%b.cols, u/b.cols
		for _, dir := range Directions {
			dx, dy := dir.Offset()
			vx, vy := ux+dx, uy+dy
			if !b.InBounds(vx, vy) {
				continue
			}
			if v := b.pos(vx, vy); b.cells[v].Open {
				visit(v)
			}
		}
	}

	for _, p := range b.particles {
		if p.Alive && !seen[b.pos(p.X, p.Y)] {
			return false
		}
	}
	return true
}
