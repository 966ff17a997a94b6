package spectral

import (
	"fmt"
	"math"

	"github.com/plasmakit/picmesh/stencil"
)

// KSpace holds the axial wavenumber grid of the spectral solver, in standard
// DFT ordering (non-negative frequencies first, then negative).
type KSpace struct {
	Nz int
	Dz float64
	Kz []float64
}

// NewKSpace builds the wavenumber grid for nz cells of size dz.
func NewKSpace(nz int, dz float64) *KSpace {
	if nz <= 0 {
		panic(fmt.Sprintf("spectral: number of axial cells must be positive, got %d", nz))
	}
	if dz <= 0 {
		panic(fmt.Sprintf("spectral: axial cell size must be positive, got %g", dz))
	}
	ks := &KSpace{Nz: nz, Dz: dz, Kz: make([]float64, nz)}
	for i := 0; i < nz; i++ {
		f := i
		if i >= (nz+1)/2 {
			f = i - nz
		}
		ks.Kz[i] = 2 * math.Pi * float64(f) / (float64(nz) * dz)
	}
	return ks
}

// ModifiedKz returns the modified wavenumbers consistent with a
// finite-order differencing scheme along z: the discrete derivative of
// e^(ikz) equals i*kmod*e^(ikz) for the returned kmod. order < 0 selects the
// infinite-order (exact) spectral derivative; nodal selects the collocated
// rather than the staggered stencil.
func (ks *KSpace) ModifiedKz(order int, nodal bool) []float64 {
	out := make([]float64, ks.Nz)
	if order < 0 {
		copy(out, ks.Kz)
		return out
	}
	coefs := stencil.FornbergStencilCoefficients(order, !nodal)
	for i, k := range ks.Kz {
		var kmod float64
		for n, c := range coefs {
			s := float64(n + 1)
			if !nodal {
				s -= 0.5
			}
			kmod += c * math.Sin(k*s*ks.Dz) / (s * ks.Dz)
		}
		out[i] = kmod
	}
	return out
}
