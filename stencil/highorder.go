package stencil

import "github.com/plasmakit/picmesh/grid"

// CartesianHighOrder computes centered differences of even order > 2 on a
// collocated grid. The table length fixes the stencil width; upward and
// downward derivatives are equivalent, as for any collocated scheme.
type CartesianHighOrder struct{}

func highOrderDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	var d float64
	for n, t := range cx {
		d += t * (f.V(i+n+1, j, k) - f.V(i-n-1, j, k))
	}
	return d
}

func highOrderDy(f *grid.Array, cy []float64, i, j, k int) float64 {
	var d float64
	for n, t := range cy {
		d += t * (f.V(i, j+n+1, k) - f.V(i, j-n-1, k))
	}
	return d
}

func highOrderDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	var d float64
	for n, t := range cz {
		d += t * (f.V(i, j, k+n+1) - f.V(i, j, k-n-1))
	}
	return d
}

func (CartesianHighOrder) UpwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return highOrderDx(f, cx, i, j, k)
}

func (CartesianHighOrder) DownwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return highOrderDx(f, cx, i, j, k)
}

func (CartesianHighOrder) UpwardDy(f *grid.Array, cy []float64, i, j, k int) float64 {
	return highOrderDy(f, cy, i, j, k)
}

func (CartesianHighOrder) DownwardDy(f *grid.Array, cy []float64, i, j, k int) float64 {
	return highOrderDy(f, cy, i, j, k)
}

func (CartesianHighOrder) UpwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return highOrderDz(f, cz, i, j, k)
}

func (CartesianHighOrder) DownwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return highOrderDz(f, cz, i, j, k)
}

// CartesianHighOrderXZ is the 2-D variant; derivatives along y vanish.
type CartesianHighOrderXZ struct{}

func (CartesianHighOrderXZ) UpwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return highOrderDx(f, cx, i, j, k)
}

func (CartesianHighOrderXZ) DownwardDx(f *grid.Array, cx []float64, i, j, k int) float64 {
	return highOrderDx(f, cx, i, j, k)
}

func (CartesianHighOrderXZ) UpwardDy(*grid.Array, []float64, int, int, int) float64 { return 0 }

func (CartesianHighOrderXZ) DownwardDy(*grid.Array, []float64, int, int, int) float64 { return 0 }

func (CartesianHighOrderXZ) UpwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return highOrderDz(f, cz, i, j, k)
}

func (CartesianHighOrderXZ) DownwardDz(f *grid.Array, cz []float64, i, j, k int) float64 {
	return highOrderDz(f, cz, i, j, k)
}
