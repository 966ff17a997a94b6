package spectral

import (
	"fmt"
	"math"

	"github.com/plasmakit/picmesh/parallel"
)

// Algorithm is the capability set of a spectral field-update algorithm:
// the field push and the sizing contract for the caller's transform buffers.
type Algorithm interface {
	InitializeCoefficients(f *FieldData)
	PushSpectralFields(f *FieldData)
	RequiredNumberOfFields() int
	ComputeSpectralDivE(f *FieldData, divE [][]complex128)
}

// coefficientKey identifies one coefficient configuration. Recomputation is
// keyed on it rather than on a one-shot flag, so a legitimate change of dt
// mid-run (adaptive stepping) is picked up by the next
// InitializeCoefficients call, while repeated calls with identical inputs
// are no-ops with byte-identical tables.
type coefficientKey struct {
	dt       float64
	norderZ  int
	nodal    bool
	modes    int
	nkr, nkz int
}

// PsatdAlgorithm advances Maxwell's equations in the azimuthal-mode spectral
// space with the pseudo-spectral analytical-time-domain update. Every
// (mode, kr, kz) triple is updated independently with precomputed
// trigonometric coefficients.
type PsatdAlgorithm struct {
	modes   int
	norderZ int
	nodal   bool
	dt      float64

	kz []float64   // modified axial wavenumbers
	kr [][]float64 // radial wavenumbers per azimuthal mode

	// Update coefficients per mode, each a row-major (Nkr x Nkz) table.
	// Immutable once computed; shared read-only by all execution lanes.
	C, Sck, X1, X2, X3 [][]float64

	key   coefficientKey
	ready bool
}

// NewPsatdAlgorithm builds the algorithm for the given spectral space. The
// modified axial wavenumbers follow the finite-order differencing scheme
// selected by norderZ and nodal; kr carries one radial grid per azimuthal
// mode. Coefficients are computed by the first InitializeCoefficients call.
func NewPsatdAlgorithm(ks *KSpace, kr [][]float64, norderZ int, nodal bool, dt float64) *PsatdAlgorithm {
	if len(kr) == 0 {
		panic("spectral: PSATD needs at least one azimuthal mode")
	}
	if dt <= 0 {
		panic(fmt.Sprintf("spectral: time step must be positive, got %g", dt))
	}
	return &PsatdAlgorithm{
		modes:   len(kr),
		norderZ: norderZ,
		nodal:   nodal,
		dt:      dt,
		kz:      ks.ModifiedKz(norderZ, nodal),
		kr:      kr,
	}
}

// SetTimeStep changes dt. The coefficient tables are not touched here; the
// next InitializeCoefficients call sees a config key mismatch and recomputes.
func (p *PsatdAlgorithm) SetTimeStep(dt float64) {
	if dt <= 0 {
		panic(fmt.Sprintf("spectral: time step must be positive, got %g", dt))
	}
	p.dt = dt
}

// RequiredNumberOfFields reports how many spectral-domain field slots the
// caller must allocate.
func (p *PsatdAlgorithm) RequiredNumberOfFields() int { return NumFields }

func (p *PsatdAlgorithm) keyFor(f *FieldData) coefficientKey {
	return coefficientKey{
		dt: p.dt, norderZ: p.norderZ, nodal: p.nodal,
		modes: f.NModes, nkr: f.Nkr, nkz: f.Nkz,
	}
}

// InitializeCoefficients computes C, S_ck and the source-term coefficients
// X1, X2, X3 for every (mode, kr, kz) triple. Calling it again with the same
// configuration is a no-op; after SetTimeStep it recomputes.
func (p *PsatdAlgorithm) InitializeCoefficients(f *FieldData) {
	p.checkExtents(f)
	key := p.keyFor(f)
	if p.ready && key == p.key {
		return
	}

	c := SpeedOfLight
	dt := p.dt
	p.C = make([][]float64, p.modes)
	p.Sck = make([][]float64, p.modes)
	p.X1 = make([][]float64, p.modes)
	p.X2 = make([][]float64, p.modes)
	p.X3 = make([][]float64, p.modes)
	for m := 0; m < p.modes; m++ {
		n := f.Nkr * f.Nkz
		C := make([]float64, n)
		Sck := make([]float64, n)
		X1 := make([]float64, n)
		X2 := make([]float64, n)
		X3 := make([]float64, n)
		kr := p.kr[m]
		parallel.For(n, func(lo, hi int) {
			for idx := lo; idx < hi; idx++ {
				ir, iz := idx/f.Nkz, idx%f.Nkz
				k2 := kr[ir]*kr[ir] + p.kz[iz]*p.kz[iz]
				if k2 == 0 {
					// Analytical k -> 0 limits.
					C[idx] = 1
					Sck[idx] = dt
					X1[idx] = 0.5 * dt * dt / Eps0
					X2[idx] = c * c * dt * dt / (6 * Eps0)
					X3[idx] = -c * c * dt * dt / (3 * Eps0)
					continue
				}
				knorm := math.Sqrt(k2)
				C[idx] = math.Cos(c * knorm * dt)
				Sck[idx] = math.Sin(c*knorm*dt) / (c * knorm)
				X1[idx] = (1 - C[idx]) / (Eps0 * c * c * k2)
				X2[idx] = (1 - Sck[idx]/dt) / (Eps0 * k2)
				X3[idx] = (C[idx] - Sck[idx]/dt) / (Eps0 * k2)
			}
		})
		p.C[m], p.Sck[m], p.X1[m], p.X2[m], p.X3[m] = C, Sck, X1, X2, X3
	}
	p.key = key
	p.ready = true
}

// PushSpectralFields advances E and B in place over one time step. J and
// rho (old and new) are read as the source terms. The update of each
// (mode, k) pair is independent of every other pair.
//
// The transverse components are carried in the rotating basis
// F+/- = (Fr +/- i*Ftheta)/2 with F+/- on Hankel orders m+/-1 and the scalar
// components on order m; in that basis the curl and gradient are algebraic:
//
//	(curl F)+ =  i*(kr/2)*Fz - kz*F+      (grad s)+ = -(kr/2)*s
//	(curl F)- =  i*(kr/2)*Fz + kz*F-      (grad s)- = +(kr/2)*s
//	(curl F)z = -i*kr*(F+ + F-)           (grad s)z =  i*kz*s
//
// which satisfy div(curl F) = 0 and curl(curl F) = grad(div F) - laplace(F)
// identically, with div F = kr*(F+ - F-) + i*kz*Fz.
func (p *PsatdAlgorithm) PushSpectralFields(f *FieldData) {
	p.checkExtents(f)
	if !p.ready || p.keyFor(f) != p.key {
		panic("spectral: PushSpectralFields called before InitializeCoefficients")
	}
	c2 := SpeedOfLight * SpeedOfLight
	invEps0 := 1 / Eps0

	for m := 0; m < p.modes; m++ {
		ep, em, ez := f.Slice(Ep, m), f.Slice(Em, m), f.Slice(Ez, m)
		bp, bm, bz := f.Slice(Bp, m), f.Slice(Bm, m), f.Slice(Bz, m)
		jp, jm, jz := f.Slice(Jp, m), f.Slice(Jm, m), f.Slice(Jz, m)
		rhoOld, rhoNew := f.Slice(RhoOld, m), f.Slice(RhoNew, m)
		C, Sck := p.C[m], p.Sck[m]
		X1, X2, X3 := p.X1[m], p.X2[m], p.X3[m]
		kr := p.kr[m]

		parallel.For(f.Nkr*f.Nkz, func(lo, hi int) {
			for idx := lo; idx < hi; idx++ {
				ir, iz := idx/f.Nkz, idx%f.Nkz
				khr := complex(0.5*kr[ir], 0) // kr/2
				kfr := complex(kr[ir], 0)
				kz := complex(p.kz[iz], 0)
				cC := complex(C[idx], 0)
				cS := complex(Sck[idx], 0)
				cX1 := complex(X1[idx], 0)

				epOld, emOld, ezOld := ep[idx], em[idx], ez[idx]
				bpOld, bmOld, bzOld := bp[idx], bm[idx], bz[idx]

				// Charge-conserving source term X2*rho_new - X3*rho_old.
				rho := complex(X2[idx], 0)*rhoNew[idx] - complex(X3[idx], 0)*rhoOld[idx]

				ep[idx] = cC*epOld +
					cS*(complex(0, c2)*khr*bzOld-complex(c2, 0)*kz*bpOld-complex(invEps0, 0)*jp[idx]) +
					khr*rho
				em[idx] = cC*emOld +
					cS*(complex(0, c2)*khr*bzOld+complex(c2, 0)*kz*bmOld-complex(invEps0, 0)*jm[idx]) -
					khr*rho
				ez[idx] = cC*ezOld +
					cS*(complex(0, -c2)*kfr*(bpOld+bmOld)-complex(invEps0, 0)*jz[idx]) -
					complex(0, 1)*kz*rho

				bp[idx] = cC*bpOld -
					cS*(complex(0, 1)*khr*ezOld-kz*epOld) +
					cX1*(complex(0, 1)*khr*jz[idx]-kz*jp[idx])
				bm[idx] = cC*bmOld -
					cS*(complex(0, 1)*khr*ezOld+kz*emOld) +
					cX1*(complex(0, 1)*khr*jz[idx]+kz*jm[idx])
				bz[idx] = cC*bzOld +
					cS*complex(0, 1)*kfr*(epOld+emOld) -
					cX1*complex(0, 1)*kfr*(jp[idx]+jm[idx])
			}
		})
	}
}

// ComputeSpectralDivE computes div(E) in spectral space by contracting the
// transformed E components with the (modified) wavenumbers,
// div E = kr*(E+ - E-) + i*kz*Ez, one output block per azimuthal mode. Used
// as a diagnostic and as a charge-conservation check.
func (p *PsatdAlgorithm) ComputeSpectralDivE(f *FieldData, divE [][]complex128) {
	p.checkExtents(f)
	if len(divE) != p.modes {
		panic(fmt.Sprintf("spectral: divE needs %d mode blocks, got %d", p.modes, len(divE)))
	}
	for m := 0; m < p.modes; m++ {
		if len(divE[m]) != f.Nkr*f.Nkz {
			panic(fmt.Sprintf("spectral: divE mode %d extent mismatch: want %d, got %d",
				m, f.Nkr*f.Nkz, len(divE[m])))
		}
		ep, em, ez := f.Slice(Ep, m), f.Slice(Em, m), f.Slice(Ez, m)
		kr := p.kr[m]
		out := divE[m]
		parallel.For(f.Nkr*f.Nkz, func(lo, hi int) {
			for idx := lo; idx < hi; idx++ {
				ir, iz := idx/f.Nkz, idx%f.Nkz
				out[idx] = complex(kr[ir], 0)*(ep[idx]-em[idx]) +
					complex(0, p.kz[iz])*ez[idx]
			}
		})
	}
}

func (p *PsatdAlgorithm) checkExtents(f *FieldData) {
	if f.NModes != p.modes {
		panic(fmt.Sprintf("spectral: field data carries %d modes, algorithm configured for %d",
			f.NModes, p.modes))
	}
	if f.Nkz != len(p.kz) {
		panic(fmt.Sprintf("spectral: field data Nkz=%d does not match wavenumber grid %d",
			f.Nkz, len(p.kz)))
	}
	for m, kr := range p.kr {
		if len(kr) != f.Nkr {
			panic(fmt.Sprintf("spectral: mode %d has %d radial wavenumbers, field data Nkr=%d",
				m, len(kr), f.Nkr))
		}
	}
}
