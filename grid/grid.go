package grid

import "fmt"

// Dimensionality selects the spatial configuration of the solver.
type Dimensionality uint8

const (
	D2 Dimensionality = iota // x-z plane, y collapsed to a single cell
	D3
	RZ // cylindrical r-z with azimuthal mode stacking
)

// IntVect is an integer triple with one entry per spatial axis.
type IntVect [3]int

// ZeroVect returns the all-zero vector.
func ZeroVect() IntVect { return IntVect{} }

// UnitVect returns the vector with value n on every axis.
func UnitVect(n int) IntVect { return IntVect{n, n, n} }

// Max returns the component-wise maximum of a and b.
func (a IntVect) Max(b IntVect) IntVect {
	for d := 0; d < 3; d++ {
		if b[d] > a[d] {
			a[d] = b[d]
		}
	}
	return a
}

// Min returns the component-wise minimum of a and b.
func (a IntVect) Min(b IntVect) IntVect {
	for d := 0; d < 3; d++ {
		if b[d] < a[d] {
			a[d] = b[d]
		}
	}
	return a
}

// Add returns the component-wise sum of a and b.
func (a IntVect) Add(b IntVect) IntVect {
	for d := 0; d < 3; d++ {
		a[d] += b[d]
	}
	return a
}

// Clamp returns a with every negative component replaced by zero.
func (a IntVect) Clamp() IntVect {
	for d := 0; d < 3; d++ {
		if a[d] < 0 {
			a[d] = 0
		}
	}
	return a
}

// AllGE reports whether every component of a is >= the matching component of b.
func (a IntVect) AllGE(b IntVect) bool {
	for d := 0; d < 3; d++ {
		if a[d] < b[d] {
			return false
		}
	}
	return true
}

// Staggering tags the placement of field samples per axis: true means nodal
// (cell corner) along that axis, false means shifted to the face/edge center.
type Staggering [3]bool

// NodalAll is the fully nodal staggering.
func NodalAll() Staggering { return Staggering{true, true, true} }

// CellCentered is the fully cell-centered staggering.
func CellCentered() Staggering { return Staggering{false, false, false} }

// Box is a rectangular index region with inclusive bounds.
type Box struct {
	Lo, Hi IntVect
}

// NewBox builds a box from inclusive bounds. Inverted bounds are a
// configuration error.
func NewBox(lo, hi IntVect) Box {
	for d := 0; d < 3; d++ {
		if hi[d] < lo[d] {
			panic(fmt.Sprintf("grid: inverted box bounds on axis %d: lo=%d hi=%d", d, lo[d], hi[d]))
		}
	}
	return Box{Lo: lo, Hi: hi}
}

// Size returns the number of cells along each axis.
func (b Box) Size() IntVect {
	return IntVect{b.Hi[0] - b.Lo[0] + 1, b.Hi[1] - b.Lo[1] + 1, b.Hi[2] - b.Lo[2] + 1}
}

// NumPts returns the total number of cells in the box.
func (b Box) NumPts() int {
	n := b.Size()
	return n[0] * n[1] * n[2]
}

// Contains reports whether (i,j,k) lies inside the box.
func (b Box) Contains(i, j, k int) bool {
	return i >= b.Lo[0] && i <= b.Hi[0] &&
		j >= b.Lo[1] && j <= b.Hi[1] &&
		k >= b.Lo[2] && k <= b.Hi[2]
}

// Grow expands the box by ng cells on both sides of each axis.
func (b Box) Grow(ng IntVect) Box {
	for d := 0; d < 3; d++ {
		b.Lo[d] -= ng[d]
		b.Hi[d] += ng[d]
	}
	return b
}

// Refine maps the box to the next finer level with the given refinement ratio.
func (b Box) Refine(ratio int) Box {
	for d := 0; d < 3; d++ {
		b.Lo[d] *= ratio
		b.Hi[d] = (b.Hi[d]+1)*ratio - 1
	}
	return b
}

// Coarsen maps the box to the next coarser level with the given refinement
// ratio, using floor division so that fine cells map onto their covering
// coarse cell.
func (b Box) Coarsen(ratio int) Box {
	for d := 0; d < 3; d++ {
		b.Lo[d] = floorDiv(b.Lo[d], ratio)
		b.Hi[d] = floorDiv(b.Hi[d], ratio)
	}
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
