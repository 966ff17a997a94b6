package stencil

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FornbergStencilCoefficients returns the coefficients c_1..c_m, m = order/2,
// of the centered first-derivative approximation of the given even order,
//
//	dF/dx ~= sum_n c_n * (F(x + s_n*dx) - F(x - s_n*dx)) / (2*s_n*dx)
//
// with sample offsets s_n = n on a collocated grid and s_n = n - 1/2 on a
// staggered grid. The same tables define the modified wavenumbers of the
// spectral solver.
//
// The c_n solve the moment conditions sum_n c_n * s_n^(2j) = delta_{j0},
// j = 0..m-1, set up as a dense Vandermonde system.
func FornbergStencilCoefficients(order int, staggered bool) []float64 {
	if order < 2 || order%2 != 0 {
		panic(fmt.Sprintf("stencil: derivative order must be a positive even number, got %d", order))
	}
	m := order / 2
	s := make([]float64, m)
	for n := 0; n < m; n++ {
		s[n] = float64(n + 1)
		if staggered {
			s[n] -= 0.5
		}
	}

	a := mat.NewDense(m, m, nil)
	rhs := mat.NewVecDense(m, nil)
	rhs.SetVec(0, 1)
	for j := 0; j < m; j++ {
		for n := 0; n < m; n++ {
			a.Set(j, n, math.Pow(s[n], float64(2*j)))
		}
	}

	var c mat.VecDense
	if err := c.SolveVec(a, rhs); err != nil {
		panic(fmt.Sprintf("stencil: singular coefficient system for order %d: %v", order, err))
	}
	out := make([]float64, m)
	for n := 0; n < m; n++ {
		out[n] = c.AtVec(n)
	}
	return out
}
