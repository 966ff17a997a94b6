// Package filter smooths deposited current and charge density with the
// separable bilinear filter, composed with itself a configurable number of
// passes per direction.
package filter

import (
	"fmt"

	"github.com/plasmakit/picmesh/grid"
	"github.com/plasmakit/picmesh/parallel"
)

// Bilinear holds the composed filter stencils. Each pass convolves with the
// (1/4, 1/2, 1/4) kernel along one direction; n passes give a binomial
// stencil reaching n cells per side, so deposition arrays must carry at
// least Passes guard cells per direction for the result to be exact at the
// valid-region edge. Stencils are computed once and shared read-only.
type Bilinear struct {
	Passes grid.IntVect

	// Symmetric half-stencils per axis, center weight first. A zero-pass
	// axis degenerates to the identity stencil {1}.
	Stencil [3][]float64
}

// NewBilinear builds the filter for per-direction pass counts. The y pass
// count is ignored for 2-D configurations.
func NewBilinear(passes grid.IntVect, dims grid.Dimensionality) *Bilinear {
	if dims != grid.D2 && dims != grid.D3 {
		panic(fmt.Sprintf("filter: unsupported dimensionality branch %d", dims))
	}
	for d, p := range passes {
		if p < 0 {
			panic(fmt.Sprintf("filter: pass count must be non-negative on axis %d, got %d", d, p))
		}
	}
	if dims == grid.D2 {
		passes[1] = 0
	}
	f := &Bilinear{Passes: passes}
	for d := 0; d < 3; d++ {
		f.Stencil[d] = ComputeStencil(passes[d])
	}
	return f
}

// ComputeStencil composes the 1-D bilinear kernel with itself npass times and
// returns the symmetric half of the result, center weight first. The full
// stencil sums to one: s[0] + 2*sum(s[1:]) == 1.
func ComputeStencil(npass int) []float64 {
	old := make([]float64, npass+1)
	old[0] = 1
	jmax := 1
	for ipass := 0; ipass < npass; ipass++ {
		next := make([]float64, npass+1)
		next[0] = 0.5 * old[0]
		if jmax > 1 {
			next[0] += 0.5 * old[1]
		}
		for j := 1; j <= jmax; j++ {
			next[j] = 0.5*old[j] + 0.25*old[j-1]
			if j < jmax {
				next[j] += 0.25 * old[j+1]
			}
		}
		old = next
		jmax++
	}
	return old
}

// Apply filters every cell of dst's box from src. Cells the stencil reaches
// outside src's valid+guard region contribute zero. dst and src must share a
// shape and must not alias; each output cell is independent of every other.
func (f *Bilinear) Apply(dst, src *grid.Array) {
	if dst == src {
		panic("filter: in-place application is not supported")
	}
	if !dst.SameShape(src) {
		panic("filter: destination and source arrays differ in shape")
	}
	sx, sy, sz := f.Stencil[0], f.Stencil[1], f.Stencil[2]
	for n := 0; n < dst.NComp; n++ {
		n := n
		parallel.ForBox(dst.Box, func(i, j, k int) {
			var acc float64
			for di := 1 - len(sx); di < len(sx); di++ {
				wx := sx[abs(di)]
				for dj := 1 - len(sy); dj < len(sy); dj++ {
					wxy := wx * sy[abs(dj)]
					for dk := 1 - len(sz); dk < len(sz); dk++ {
						acc += wxy * sz[abs(dk)] * src.AtOrZero(i+di, j+dj, k+dk, n)
					}
				}
			}
			dst.Set(i, j, k, n, acc)
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
