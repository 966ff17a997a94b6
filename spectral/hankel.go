package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// HankelTransform maps the radial samples of one azimuthal mode onto the
// discrete Hankel basis and back. The radial frequencies kr come from the
// roots of the Bessel function of the azimuthal mode order m; the basis
// functions themselves may be of order m-1, m, or m+1 depending on which
// field component is transformed. The matrices are computed once and treated
// as read-only for the rest of the run.
type HankelTransform struct {
	Mode  int // azimuthal mode index, sets the kr grid
	Order int // Bessel order of the basis functions
	Nr    int
	RMax  float64
	Kr    []float64

	backward *mat.Dense // spectral -> radial, backward[j][n] = J_order(kr_n * r_j)
	forward  *mat.Dense // radial -> spectral, numerical inverse of backward
}

// NewHankelTransform builds the transform pair for nr radial cells of extent
// rmax, with samples at the cell centers r_j = (j+1/2)*rmax/nr.
func NewHankelTransform(mode, order, nr int, rmax float64) *HankelTransform {
	if nr <= 0 {
		panic(fmt.Sprintf("spectral: number of radial cells must be positive, got %d", nr))
	}
	if rmax <= 0 {
		panic(fmt.Sprintf("spectral: radial extent must be positive, got %g", rmax))
	}
	if mode < 0 {
		panic(fmt.Sprintf("spectral: azimuthal mode must be non-negative, got %d", mode))
	}
	h := &HankelTransform{Mode: mode, Order: order, Nr: nr, RMax: rmax}

	alpha := besselZeros(mode, nr)
	h.Kr = make([]float64, nr)
	for n := 0; n < nr; n++ {
		h.Kr[n] = alpha[n] / rmax
	}

	dr := rmax / float64(nr)
	h.backward = mat.NewDense(nr, nr, nil)
	for j := 0; j < nr; j++ {
		r := (float64(j) + 0.5) * dr
		for n := 0; n < nr; n++ {
			h.backward.Set(j, n, besselJ(order, h.Kr[n]*r))
		}
	}
	h.forward = mat.NewDense(nr, nr, nil)
	if err := h.forward.Inverse(h.backward); err != nil {
		panic(fmt.Sprintf("spectral: Hankel basis matrix is singular for mode %d order %d: %v",
			mode, order, err))
	}
	return h
}

// Transform applies the forward (radial to spectral) transform to a
// row-major (nr x nz) complex block, writing into dst. dst and src must not
// alias and must both have length nr*nz.
func (h *HankelTransform) Transform(dst, src []complex128, nz int) {
	h.apply(h.forward, dst, src, nz)
}

// InverseTransform applies the backward (spectral to radial) transform.
func (h *HankelTransform) InverseTransform(dst, src []complex128, nz int) {
	h.apply(h.backward, dst, src, nz)
}

func (h *HankelTransform) apply(m *mat.Dense, dst, src []complex128, nz int) {
	if len(src) != h.Nr*nz || len(dst) != h.Nr*nz {
		panic(fmt.Sprintf("spectral: Hankel transform extent mismatch: want %d*%d values, got src=%d dst=%d",
			h.Nr, nz, len(src), len(dst)))
	}
	re := mat.NewDense(h.Nr, nz, nil)
	im := mat.NewDense(h.Nr, nz, nil)
	for j := 0; j < h.Nr; j++ {
		for iz := 0; iz < nz; iz++ {
			v := src[j*nz+iz]
			re.Set(j, iz, real(v))
			im.Set(j, iz, imag(v))
		}
	}
	var reOut, imOut mat.Dense
	reOut.Mul(m, re)
	imOut.Mul(m, im)
	for n := 0; n < h.Nr; n++ {
		for iz := 0; iz < nz; iz++ {
			dst[n*nz+iz] = complex(reOut.At(n, iz), imOut.At(n, iz))
		}
	}
}

// besselJ evaluates J_nu for integer nu of either sign.
func besselJ(nu int, x float64) float64 {
	return math.Jn(nu, x)
}

// besselZeros returns the first n positive roots of J_nu, nu >= 0, found by
// Newton iteration from the McMahon asymptotic guesses.
func besselZeros(nu, n int) []float64 {
	out := make([]float64, n)
	mu := 4 * float64(nu) * float64(nu)
	for k := 1; k <= n; k++ {
		beta := (float64(k) + 0.5*float64(nu) - 0.25) * math.Pi
		x := beta - (mu-1)/(8*beta)
		for it := 0; it < 50; it++ {
			f := math.Jn(nu, x)
			df := 0.5 * (math.Jn(nu-1, x) - math.Jn(nu+1, x))
			step := f / df
			x -= step
			if math.Abs(step) < 1e-14*x {
				break
			}
		}
		out[k-1] = x
	}
	return out
}
