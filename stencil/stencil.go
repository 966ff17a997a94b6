// Package stencil provides finite-difference coefficient tables and the
// directional derivative operators used inside the field-update kernels.
//
// A Derivatives value is selected once at configuration time; inside the
// per-cell loops it is the only indirection, and all configuration (cell
// size, order, collapsed axes) is baked into the coefficient tables.
package stencil

import (
	"fmt"

	"github.com/plasmakit/picmesh/grid"
)

// Scheme enumerates the supported staggering schemes.
type Scheme uint8

const (
	Nodal     Scheme = iota // collocated samples, centered differences
	Yee                     // staggered samples, half-cell differences
	HighOrder               // collocated samples, even order > 2
)

// Coefficients holds the per-axis 1-D stencil coefficient tables. For the
// order-2 nodal and Yee schemes each table degenerates to the single value
// 1/delta along that axis; for the high-order scheme the table has order/2
// entries t_n with dF/dx ~= sum_n t_n*(F(i+n) - F(i-n)). A collapsed axis
// carries an empty table.
type Coefficients struct {
	X, Y, Z []float64
}

// InitializeCoefficients builds the per-axis coefficient tables for a cell
// size and derivative order. The order is baked into the tables here, so the
// derivative operators never branch on it. cellSize entries must be positive
// for every axis with extent; the y entry is ignored for 2-D configurations.
func InitializeCoefficients(cellSize [3]float64, order int, dims grid.Dimensionality) Coefficients {
	checkDims(dims)
	for d, dx := range cellSize {
		if dx <= 0 && !(d == 1 && dims == grid.D2) {
			panic(fmt.Sprintf("stencil: cell size must be positive on axis %d, got %g", d, dx))
		}
	}
	var c Coefficients
	c.X = axisTable(cellSize[0], order)
	c.Z = axisTable(cellSize[2], order)
	if dims == grid.D3 {
		c.Y = axisTable(cellSize[1], order)
	}
	return c
}

func axisTable(dx float64, order int) []float64 {
	if order == 2 {
		return []float64{1 / dx}
	}
	cf := FornbergStencilCoefficients(order, false)
	t := make([]float64, len(cf))
	for n, cn := range cf {
		t[n] = cn / (2 * float64(n+1) * dx)
	}
	return t
}

// Derivatives is the capability set shared by all staggering schemes. The
// field solver holds one value behind this interface and stays agnostic to
// the scheme; coefficient tables are passed through unchanged.
//
// All operators read across at most the stencil width in guard cells; the
// halo exchange for those cells must have completed before a kernel using
// them runs.
type Derivatives interface {
	UpwardDx(f *grid.Array, cx []float64, i, j, k int) float64
	DownwardDx(f *grid.Array, cx []float64, i, j, k int) float64
	UpwardDy(f *grid.Array, cy []float64, i, j, k int) float64
	DownwardDy(f *grid.Array, cy []float64, i, j, k int) float64
	UpwardDz(f *grid.Array, cz []float64, i, j, k int) float64
	DownwardDz(f *grid.Array, cz []float64, i, j, k int) float64
}

// New selects the derivative implementation for a scheme and dimensionality.
// Unknown enumerated options are configuration errors.
func New(s Scheme, dims grid.Dimensionality) Derivatives {
	checkDims(dims)
	switch s {
	case Nodal:
		if dims == grid.D2 {
			return CartesianNodalXZ{}
		}
		return CartesianNodal{}
	case Yee:
		if dims == grid.D2 {
			return CartesianYeeXZ{}
		}
		return CartesianYee{}
	case HighOrder:
		if dims == grid.D2 {
			return CartesianHighOrderXZ{}
		}
		return CartesianHighOrder{}
	default:
		panic(fmt.Sprintf("stencil: unknown staggering scheme %d", s))
	}
}

// checkDims rejects any configuration outside the Cartesian x-z and x-y-z
// branches. The cylindrical configuration has no finite-difference variant
// here; it is served by the spectral solver.
func checkDims(dims grid.Dimensionality) {
	if dims != grid.D2 && dims != grid.D3 {
		panic(fmt.Sprintf("stencil: unsupported dimensionality branch %d", dims))
	}
}
