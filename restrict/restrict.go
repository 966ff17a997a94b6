// Package restrict fills a coarse-level patch with averaged values from the
// spatially coincident fine-level patch, keeping multi-level density and
// charge fields consistent after deposition.
package restrict

import (
	"fmt"

	"github.com/plasmakit/picmesh/grid"
	"github.com/plasmakit/picmesh/parallel"
)

// Ratio is the only refinement ratio the averaging stencil supports; the
// weights below assume it.
const Ratio = 2

// Operator averages fine cells onto coarse cells with binomial weights: the
// coincident fine cell carries weight 2^-d for dimension count d, each
// neighbor shell half the previous. Fine cells outside the patch's
// valid+guard region contribute zero, so no boundary special-casing is
// needed. Restriction of each output cell is independent of every other.
type Operator struct {
	fine   *grid.Array
	coarse *grid.Array
	nComp  int
	twoD   bool
}

// NewOperator builds the restriction of fine onto coarse. ratio must be 2;
// rejecting other ratios here keeps the per-cell kernel free of checks.
func NewOperator(fine, coarse *grid.Array, ratio, nComp int, dims grid.Dimensionality) *Operator {
	if ratio != Ratio {
		panic(fmt.Sprintf("restrict: only refinement ratio %d is supported, got %d", Ratio, ratio))
	}
	if nComp < 1 || nComp > fine.NComp || nComp > coarse.NComp {
		panic(fmt.Sprintf("restrict: component count %d outside fine=%d coarse=%d",
			nComp, fine.NComp, coarse.NComp))
	}
	if dims != grid.D2 && dims != grid.D3 {
		panic(fmt.Sprintf("restrict: unsupported dimensionality branch %d", dims))
	}
	return &Operator{fine: fine, coarse: coarse, nComp: nComp, twoD: dims == grid.D2}
}

// Apply restricts every coarse cell of the coarse array's box.
func (op *Operator) Apply() {
	b := op.coarse.Box
	parallel.ForBox(b, op.Cell)
}

// Cell restricts a single coarse cell. Pure per-cell function with no shared
// mutable state; safe to invoke independently for every output cell.
func (op *Operator) Cell(i, j, k int) {
	f := op.fine.AtOrZero
	if op.twoD {
		// x-z plane; the y axis has extent one and is not refined.
		ii, kk := i*Ratio, k*Ratio
		for m := 0; m < op.nComp; m++ {
			v := 0.25 * (f(ii, j, kk, m) +
				0.5*(f(ii-1, j, kk, m)+f(ii+1, j, kk, m)+
					f(ii, j, kk-1, m)+f(ii, j, kk+1, m)) +
				0.25*(f(ii-1, j, kk-1, m)+f(ii+1, j, kk-1, m)+
					f(ii-1, j, kk+1, m)+f(ii+1, j, kk+1, m)))
			op.coarse.Set(i, j, k, m, v)
		}
		return
	}
	ii, jj, kk := i*Ratio, j*Ratio, k*Ratio
	for m := 0; m < op.nComp; m++ {
		v := 0.125 * (f(ii, jj, kk, m) +
			0.5*(f(ii-1, jj, kk, m)+f(ii+1, jj, kk, m)+
				f(ii, jj-1, kk, m)+f(ii, jj+1, kk, m)+
				f(ii, jj, kk-1, m)+f(ii, jj, kk+1, m)) +
			0.25*(f(ii-1, jj-1, kk, m)+f(ii+1, jj-1, kk, m)+
				f(ii-1, jj+1, kk, m)+f(ii+1, jj+1, kk, m)+
				f(ii-1, jj, kk-1, m)+f(ii+1, jj, kk-1, m)+
				f(ii-1, jj, kk+1, m)+f(ii+1, jj, kk+1, m)+
				f(ii, jj-1, kk-1, m)+f(ii, jj+1, kk-1, m)+
				f(ii, jj-1, kk+1, m)+f(ii, jj+1, kk+1, m)) +
			0.125*(f(ii-1, jj-1, kk-1, m)+f(ii-1, jj-1, kk+1, m)+
				f(ii-1, jj+1, kk-1, m)+f(ii-1, jj+1, kk+1, m)+
				f(ii+1, jj-1, kk-1, m)+f(ii+1, jj-1, kk+1, m)+
				f(ii+1, jj+1, kk-1, m)+f(ii+1, jj+1, kk+1, m)))
		op.coarse.Set(i, j, k, m, v)
	}
}
