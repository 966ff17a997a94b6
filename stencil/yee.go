package stencil

import "github.com/plasmakit/picmesh/grid"

// CartesianYee computes half-cell differences on a staggered 3-D grid. The
// upward derivative maps a sample at i onto the staggered location i+1/2,
// the downward derivative onto i-1/2.
type CartesianYee struct{}

func (CartesianYee) UpwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	invDx := cx[0]
	return invDx * (f.V(i+1, j, k) - f.V(i, j, k))
}

func (CartesianYee) DownwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	invDx := cx[0]
	return invDx * (f.V(i, j, k) - f.V(i-1, j, k))
}

func (CartesianYee) UpwardDy(f *grid.Array, cy []float64, i, j, k int) float64 {
	invDy := cy[0]
	return invDy * (f.V(i, j+1, k) - f.V(i, j, k))
}

func (CartesianYee) DownwardDy(f *grid.Array, cy []float64, i, j, k int) float64 {
	invDy := cy[0]
	return invDy * (f.V(i, j, k) - f.V(i, j-1, k))
}

func (CartesianYee) UpwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	invDz := cz[0]
	return invDz * (f.V(i, j, k+1) - f.V(i, j, k))
}

func (CartesianYee) DownwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	invDz := cz[0]
	return invDz * (f.V(i, j, k) - f.V(i, j, k-1))
}

// CartesianYeeXZ is the 2-D staggered variant; derivatives along y vanish.
type CartesianYeeXZ struct{}

func (CartesianYeeXZ) UpwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return CartesianYee{}.UpwardDx(f, cx, i, j, k)
}

func (CartesianYeeXZ) DownwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return CartesianYee{}.DownwardDx(f, cx, i, j, k)
}

func (CartesianYeeXZ) UpwardDy(*grid.Array, []float64, int, int, int) float64 { return 0 }

func (CartesianYeeXZ) DownwardDy(*grid.Array, []float64, int, int, int) float64 { return 0 }

func (CartesianYeeXZ) UpwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return CartesianYee{}.UpwardDz(f, cz, i, j, k)
}

func (CartesianYeeXZ) DownwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return CartesianYee{}.DownwardDz(f, cz, i, j, k)
}
