package board

// The board hash is a positional polynomial in hashBase over all cells,
// modulo 2^64. It is not collision free.
const hashBase uint64 = 131

// Cell categories weighted into the hash.
const (
	categoryClosed uint64 = iota
	categoryEmpty
	categoryRed
	categoryBlue
)

// basePowers[i] is hashBase^(2^i). Eight bits cover every cell index.
var basePowers [8]uint64

// weights[n] is hashBase^n for every cell index n and for the leading term
// at n = rows*cols.
var weights [MaxCells + 1]uint64

func init() {
	p := hashBase
	for i := range basePowers {
		basePowers[i] = p
		p *= p
	}
	for n := range weights {
		weights[n] = power(n)
	}
}

// power composes hashBase^n from the cached powers by the bits of n.
func power(n int) uint64 {
	out := uint64(1)
	for i := range basePowers {
		if n&(1<<i) != 0 {
			out *= basePowers[i]
		}
	}
	return out
}

// category returns the hash category of a cell.
func (b *Board) category(c Cell) uint64 {
	switch {
	case !c.Open:
		return categoryClosed
	case c.Occupant == None:
		return categoryEmpty
	case b.particles[c.Occupant].Color == Blue:
		return categoryBlue
	default:
		return categoryRed
	}
}

// ComputeHash hashes the whole board from scratch. The search never calls
// it; the running hash is maintained by move deltas.
func (b *Board) ComputeHash() uint64 {
	h := uint64(1)
	for y := b.rows - 1; y >= 0; y-- {
		for x := b.cols - 1; x >= 0; x-- {
			h = h*hashBase + b.category(b.cells[b.pos(x, y)])
		}
	}
	return h
}

// delta returns the hash change of moving the cell at from from category
// fromBefore to fromAfter and the cell at to from toBefore to toAfter.
// Wrapping subtraction makes negative differences work modulo 2^64.
func delta(from int, fromBefore, fromAfter uint64, to int, toBefore, toAfter uint64) uint64 {
	return weights[from]*(fromAfter-fromBefore) + weights[to]*(toAfter-toBefore)
}
