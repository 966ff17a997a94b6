package stencil

import "github.com/plasmakit/picmesh/grid"

// CartesianNodal computes centered differences on a collocated 3-D grid.
// On a staggered grid the upward and downward derivatives take the
// staggering into account; for the nodal scheme they are equivalent.
type CartesianNodal struct{}

func (CartesianNodal) UpwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	invDx := cx[0]
	return 0.5 * invDx * (f.V(i+1, j, k) - f.V(i-1, j, k))
}

func (d CartesianNodal) DownwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return d.UpwardDx(f, cx, i, j, k)
}

func (CartesianNodal) UpwardDy(f *grid.Array, cy []float64, i, j, k int) float64 {
	invDy := cy[0]
	return 0.5 * invDy * (f.V(i, j+1, k) - f.V(i, j-1, k))
}

func (d CartesianNodal) DownwardDy(f *grid.Array, cy []float64, i, j, k int) float64 {
	return d.UpwardDy(f, cy, i, j, k)
}

func (CartesianNodal) UpwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	invDz := cz[0]
	return 0.5 * invDz * (f.V(i, j, k+1) - f.V(i, j, k-1))
}

func (d CartesianNodal) DownwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return d.UpwardDz(f, cz, i, j, k)
}

// CartesianNodalXZ is the 2-D Cartesian variant: the y axis has no extent and
// derivatives along it are defined as zero.
type CartesianNodalXZ struct{}

func (CartesianNodalXZ) UpwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	invDx := cx[0]
	return 0.5 * invDx * (f.V(i+1, j, k) - f.V(i-1, j, k))
}

func (d CartesianNodalXZ) DownwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return d.UpwardDx(f, cx, i, j, k)
}

func (CartesianNodalXZ) UpwardDy(*grid.Array, []float64, int, int, int) float64 { return 0 }

func (CartesianNodalXZ) DownwardDy(*grid.Array, []float64, int, int, int) float64 { return 0 }

func (CartesianNodalXZ) UpwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	invDz := cz[0]
	return 0.5 * invDz * (f.V(i, j, k+1) - f.V(i, j, k-1))
}

func (d CartesianNodalXZ) DownwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return d.UpwardDz(f, cz, i, j, k)
}
