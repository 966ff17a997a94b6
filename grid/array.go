package grid

import "fmt"

// Array is a multi-component field array over a box, including any guard
// region the box was grown by. Samples are tagged with a staggering and the
// refinement level that owns the data. The array owns its backing slice; the
// solver kernels only ever borrow it.
type Array struct {
	Box   Box
	Stag  Staggering
	Level int
	NComp int

	data           []float64
	nx, ny, nz     int
	strideJ        int
	strideK, sComp int
}

// NewArray allocates a zero-filled array covering b with nc components.
func NewArray(b Box, nc int, stag Staggering, level int) *Array {
	if nc < 1 {
		panic(fmt.Sprintf("grid: array must have at least one component, got %d", nc))
	}
	n := b.Size()
	a := &Array{
		Box:   b,
		Stag:  stag,
		Level: level,
		NComp: nc,
		nx:    n[0], ny: n[1], nz: n[2],
	}
	a.strideJ = a.nx
	a.strideK = a.nx * a.ny
	a.sComp = a.nx * a.ny * a.nz
	a.data = make([]float64, a.sComp*nc)
	return a
}

func (a *Array) index(i, j, k, n int) int {
	return (i - a.Box.Lo[0]) + (j-a.Box.Lo[1])*a.strideJ + (k-a.Box.Lo[2])*a.strideK + n*a.sComp
}

// At returns component n at (i,j,k). Indices outside the box are a
// programming error; no bounds check is performed beyond the slice access.
func (a *Array) At(i, j, k, n int) float64 { return a.data[a.index(i, j, k, n)] }

// Set writes component n at (i,j,k).
func (a *Array) Set(i, j, k, n int, v float64) { a.data[a.index(i, j, k, n)] = v }

// V reads component 0 at (i,j,k), the common case for single-component
// field arrays inside derivative kernels.
func (a *Array) V(i, j, k int) float64 { return a.data[a.index(i, j, k, 0)] }

// SetV writes component 0 at (i,j,k).
func (a *Array) SetV(i, j, k int, v float64) { a.data[a.index(i, j, k, 0)] = v }

// AtOrZero returns component n at (i,j,k), or zero when the index lies
// outside the array. Zero is the additive identity, so averaging stencils can
// reach past a patch boundary without special cases.
func (a *Array) AtOrZero(i, j, k, n int) float64 {
	if !a.Box.Contains(i, j, k) {
		return 0
	}
	return a.data[a.index(i, j, k, n)]
}

// Contains reports whether (i,j,k) lies inside the array's box.
func (a *Array) Contains(i, j, k int) bool { return a.Box.Contains(i, j, k) }

// Data exposes the backing slice. Layout is x fastest, then y, then z, with
// whole components contiguous.
func (a *Array) Data() []float64 { return a.data }

// Fill sets every sample of every component to v.
func (a *Array) Fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// SameShape reports whether b covers the same box with the same number of
// components.
func (a *Array) SameShape(b *Array) bool {
	return a.Box == b.Box && a.NComp == b.NComp
}
