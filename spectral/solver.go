package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/plasmakit/picmesh/grid"
)

// SolverConfig fixes the spectral space of one mesh level.
type SolverConfig struct {
	Modes   int     // number of azimuthal modes
	Nr, Nz  int     // radial and axial cells of the transform domain
	RMax    float64 // radial extent
	Dz      float64 // axial cell size
	NOrderZ int     // finite differencing order along z, < 0 for exact
	Nodal   bool    // source grid is nodal rather than staggered
	Dt      float64
}

// Solver owns the spectral space of one level: the forward and backward
// transforms (FFT along z, discrete Hankel transform in r) and the PSATD
// update algorithm operating between them. Transform matrices and update
// coefficients are computed once and shared read-only afterwards.
type Solver struct {
	Config SolverConfig
	Fields *FieldData

	alg *PsatdAlgorithm
	fft *fourier.CmplxFFT

	// Per azimuthal mode m, the transform of the F+ components (Bessel
	// order m+1), the F- components (order m-1) and the scalar/axial
	// components (order m). All three share the kr grid of mode m.
	hP, hM, hZ []*HankelTransform
}

// NewSolver builds the spectral space and the PSATD algorithm for one level.
// Coefficients are computed by the first InitializeCoefficients call.
func NewSolver(cfg SolverConfig) *Solver {
	if cfg.Modes <= 0 {
		panic(fmt.Sprintf("spectral: need at least one azimuthal mode, got %d", cfg.Modes))
	}
	s := &Solver{
		Config: cfg,
		Fields: NewFieldData(cfg.Modes, cfg.Nr, cfg.Nz),
		fft:    fourier.NewCmplxFFT(cfg.Nz),
		hP:     make([]*HankelTransform, cfg.Modes),
		hM:     make([]*HankelTransform, cfg.Modes),
		hZ:     make([]*HankelTransform, cfg.Modes),
	}
	kr := make([][]float64, cfg.Modes)
	for m := 0; m < cfg.Modes; m++ {
		s.hZ[m] = NewHankelTransform(m, m, cfg.Nr, cfg.RMax)
		s.hP[m] = NewHankelTransform(m, m+1, cfg.Nr, cfg.RMax)
		s.hM[m] = NewHankelTransform(m, m-1, cfg.Nr, cfg.RMax)
		kr[m] = s.hZ[m].Kr
	}
	ks := NewKSpace(cfg.Nz, cfg.Dz)
	s.alg = NewPsatdAlgorithm(ks, kr, cfg.NOrderZ, cfg.Nodal, cfg.Dt)
	return s
}

// Algorithm exposes the underlying field-update algorithm.
func (s *Solver) Algorithm() Algorithm { return s.alg }

// InitializeCoefficients computes (or refreshes, after SetTimeStep) the
// PSATD update coefficients.
func (s *Solver) InitializeCoefficients() { s.alg.InitializeCoefficients(s.Fields) }

// SetTimeStep changes dt; InitializeCoefficients must be called before the
// next push.
func (s *Solver) SetTimeStep(dt float64) {
	s.alg.SetTimeStep(dt)
	s.Config.Dt = dt
}

// PushSpectralFields advances the spectral E and B fields by one step.
func (s *Solver) PushSpectralFields() { s.alg.PushSpectralFields(s.Fields) }

// RequiredNumberOfFields reports the number of spectral field slots.
func (s *Solver) RequiredNumberOfFields() int { return s.alg.RequiredNumberOfFields() }

func (s *Solver) hankelFor(fi FieldIndex, mode int) *HankelTransform {
	switch fi {
	case Ep, Bp, Jp:
		return s.hP[mode]
	case Em, Bm, Jm:
		return s.hM[mode]
	default:
		return s.hZ[mode]
	}
}

// checkPhysical validates the shape of a physical-space mode-stacked array:
// (Nr x 1 x Nz) cells with 2*Modes-1 components (mode 0 is real, higher
// modes carry real/imaginary pairs).
func (s *Solver) checkPhysical(a *grid.Array) {
	n := a.Box.Size()
	if n[0] != s.Config.Nr || n[1] != 1 || n[2] != s.Config.Nz {
		panic(fmt.Sprintf("spectral: physical array is %dx%dx%d, transform domain is %dx1x%d",
			n[0], n[1], n[2], s.Config.Nr, s.Config.Nz))
	}
	want := 2*s.Config.Modes - 1
	if a.NComp != want {
		panic(fmt.Sprintf("spectral: physical array carries %d components, %d modes need %d",
			a.NComp, s.Config.Modes, want))
	}
}

// gatherMode collects one azimuthal mode of a physical array into a
// row-major (Nr x Nz) complex block.
func (s *Solver) gatherMode(a *grid.Array, mode int, dst []complex128) {
	lo := a.Box.Lo
	re, im := modeComps(mode)
	for ir := 0; ir < s.Config.Nr; ir++ {
		for iz := 0; iz < s.Config.Nz; iz++ {
			v := complex(a.At(lo[0]+ir, lo[1], lo[2]+iz, re), 0)
			if im >= 0 {
				v = complex(real(v), a.At(lo[0]+ir, lo[1], lo[2]+iz, im))
			}
			dst[ir*s.Config.Nz+iz] = v
		}
	}
}

// scatterMode writes one azimuthal mode back into a physical array.
func (s *Solver) scatterMode(a *grid.Array, mode int, src []complex128) {
	lo := a.Box.Lo
	re, im := modeComps(mode)
	for ir := 0; ir < s.Config.Nr; ir++ {
		for iz := 0; iz < s.Config.Nz; iz++ {
			v := src[ir*s.Config.Nz+iz]
			a.Set(lo[0]+ir, lo[1], lo[2]+iz, re, real(v))
			if im >= 0 {
				a.Set(lo[0]+ir, lo[1], lo[2]+iz, im, imag(v))
			}
		}
	}
}

// modeComps maps an azimuthal mode to its real and imaginary component
// indices in a mode-stacked physical array; mode 0 has no imaginary part.
func modeComps(mode int) (re, im int) {
	if mode == 0 {
		return 0, -1
	}
	return 2*mode - 1, 2 * mode
}

// ForwardTransform moves one physical field into the spectral slot fi:
// FFT along z on every radial ring, then the mode's Hankel transform.
func (s *Solver) ForwardTransform(fi FieldIndex, phys *grid.Array) {
	s.checkPhysical(phys)
	nz := s.Config.Nz
	work := make([]complex128, s.Config.Nr*nz)
	for m := 0; m < s.Config.Modes; m++ {
		s.gatherMode(phys, m, work)
		for ir := 0; ir < s.Config.Nr; ir++ {
			row := work[ir*nz : (ir+1)*nz]
			s.fft.Coefficients(row, row)
		}
		s.hankelFor(fi, m).Transform(s.Fields.Slice(fi, m), work, nz)
	}
}

// BackwardTransform moves the spectral slot fi back to physical space,
// normalizing the unnormalized FFT round trip.
func (s *Solver) BackwardTransform(fi FieldIndex, phys *grid.Array) {
	s.checkPhysical(phys)
	nz := s.Config.Nz
	work := make([]complex128, s.Config.Nr*nz)
	norm := complex(1/float64(nz), 0)
	for m := 0; m < s.Config.Modes; m++ {
		s.hankelFor(fi, m).InverseTransform(work, s.Fields.Slice(fi, m), nz)
		for ir := 0; ir < s.Config.Nr; ir++ {
			row := work[ir*nz : (ir+1)*nz]
			s.fft.Sequence(row, row)
			for iz := range row {
				row[iz] *= norm
			}
		}
		s.scatterMode(phys, m, work)
	}
}

// ComputeDivE evaluates div(E) from the spectral E components and returns it
// in physical space in the given mode-stacked array.
func (s *Solver) ComputeDivE(divE *grid.Array) {
	s.checkPhysical(divE)
	nz := s.Config.Nz
	blocks := make([][]complex128, s.Config.Modes)
	for m := range blocks {
		blocks[m] = make([]complex128, s.Config.Nr*nz)
	}
	s.alg.ComputeSpectralDivE(s.Fields, blocks)

	work := make([]complex128, s.Config.Nr*nz)
	norm := complex(1/float64(nz), 0)
	for m := 0; m < s.Config.Modes; m++ {
		s.hZ[m].InverseTransform(work, blocks[m], nz)
		for ir := 0; ir < s.Config.Nr; ir++ {
			row := work[ir*nz : (ir+1)*nz]
			s.fft.Sequence(row, row)
			for iz := range row {
				row[iz] *= norm
			}
		}
		s.scatterMode(divE, m, work)
	}
}
