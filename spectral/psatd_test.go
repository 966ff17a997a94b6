package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testAlg builds an algorithm over explicit radial wavenumber grids, which
// lets tests place k values (including k=0) exactly.
func testAlg(t *testing.T, kr [][]float64, nz int, dz, dt float64) (*PsatdAlgorithm, *FieldData) {
	t.Helper()
	ks := NewKSpace(nz, dz)
	p := NewPsatdAlgorithm(ks, kr, -1, true, dt)
	f := NewFieldData(len(kr), len(kr[0]), nz)
	return p, f
}

func TestInitializeCoefficientsIdempotent(t *testing.T) {
	p, f := testAlg(t, [][]float64{{0.7, 1.9}, {1.1, 2.3}}, 8, 0.02, 1e-11)
	p.InitializeCoefficients(f)

	snapshot := make([][]float64, len(p.C))
	for m := range p.C {
		snapshot[m] = append([]float64(nil), p.C[m]...)
	}
	p.InitializeCoefficients(f)
	assert.Equal(t, snapshot, p.C)
}

func TestSetTimeStepTriggersRecompute(t *testing.T) {
	p, f := testAlg(t, [][]float64{{0.7, 1.9}}, 4, 0.02, 1e-11)
	p.InitializeCoefficients(f)
	c0 := p.C[0][0]

	p.SetTimeStep(2e-11)
	p.InitializeCoefficients(f)
	assert.NotEqual(t, c0, p.C[0][0])
}

func TestCoefficientZeroModeLimits(t *testing.T) {
	const dt = 3e-12
	// One axial cell gives kz = 0; a kr entry of 0 lands exactly on k = 0.
	p, f := testAlg(t, [][]float64{{0, 2.5}}, 1, 0.1, dt)
	p.InitializeCoefficients(f)

	c2 := SpeedOfLight * SpeedOfLight
	assert.Equal(t, 1.0, p.C[0][0])
	assert.Equal(t, dt, p.Sck[0][0])
	assert.InDelta(t, 0.5*dt*dt/Eps0, p.X1[0][0], 1e-12*p.X1[0][0])
	assert.InDelta(t, c2*dt*dt/(6*Eps0), p.X2[0][0], 1e-6*p.X2[0][0])
	assert.InDelta(t, -c2*dt*dt/(3*Eps0), p.X3[0][0], 1e-6*math.Abs(p.X3[0][0]))

	// The k > 0 entry takes the trigonometric branch.
	k := 2.5
	assert.InDelta(t, math.Cos(SpeedOfLight*k*dt), p.C[0][1], 1e-13)
}

func TestRequiredNumberOfFields(t *testing.T) {
	p, _ := testAlg(t, [][]float64{{1}}, 1, 0.1, 1e-12)
	assert.Equal(t, NumFields, p.RequiredNumberOfFields())
	assert.Equal(t, 11, NumFields)
}

func TestPushKeepsZeroFieldsZero(t *testing.T) {
	p, f := testAlg(t, [][]float64{{0.4, 1.2}, {0.9, 3.0}}, 8, 0.05, 1e-11)
	p.InitializeCoefficients(f)
	p.PushSpectralFields(f)
	for fi := FieldIndex(0); fi < FieldIndex(NumFields); fi++ {
		for m := 0; m < f.NModes; m++ {
			for _, v := range f.Slice(fi, m) {
				assert.Zero(t, v)
			}
		}
	}
}

// With a half period per step (c*k*dt = pi) and no sources, the PSATD update
// negates every field component exactly.
func TestPushHalfPeriodNegatesFields(t *testing.T) {
	const k = 1.0
	dt := math.Pi / (SpeedOfLight * k)
	p, f := testAlg(t, [][]float64{{k}}, 1, 0.1, dt)
	p.InitializeCoefficients(f)

	orig := map[FieldIndex]complex128{
		Ep: complex(0.3, -1.1), Em: complex(-0.7, 0.2), Ez: complex(1.5, 0.4),
		Bp: complex(-2e-9, 1e-9), Bm: complex(3e-9, 0), Bz: complex(0, -4e-9),
	}
	for fi, v := range orig {
		f.Set(fi, 0, 0, 0, v)
	}
	p.PushSpectralFields(f)
	for fi, v := range orig {
		got := f.At(fi, 0, 0, 0)
		assert.InDelta(t, -real(v), real(got), 1e-6, "field %d", fi)
		assert.InDelta(t, -imag(v), imag(got), 1e-6, "field %d", fi)
	}
}

// Gauss's law is preserved by the push when the sources satisfy charge
// continuity; with J = 0 and rho constant in time this is exact.
func TestPushPreservesGaussLaw(t *testing.T) {
	kr := [][]float64{{0.8, 2.1, 4.4}}
	p, f := testAlg(t, kr, 8, 0.03, 2e-11)
	p.InitializeCoefficients(f)

	// Arbitrary E and B.
	n := f.Nkr * f.Nkz
	for idx := 0; idx < n; idx++ {
		ir, iz := idx/f.Nkz, idx%f.Nkz
		f.Set(Ep, 0, ir, iz, complex(math.Sin(float64(idx)), 0.3))
		f.Set(Em, 0, ir, iz, complex(0.2, math.Cos(float64(2*idx))))
		f.Set(Ez, 0, ir, iz, complex(-0.8, 0.1*float64(iz)))
		f.Set(Bp, 0, ir, iz, complex(1e-9, -2e-9))
		f.Set(Bz, 0, ir, iz, complex(0, 3e-9))
	}

	// rho consistent with div E at both time levels.
	divE := [][]complex128{make([]complex128, n)}
	p.ComputeSpectralDivE(f, divE)
	for idx, d := range divE[0] {
		rho := complex(Eps0, 0) * d
		f.Slice(RhoOld, 0)[idx] = rho
		f.Slice(RhoNew, 0)[idx] = rho
	}

	p.PushSpectralFields(f)

	after := [][]complex128{make([]complex128, n)}
	p.ComputeSpectralDivE(f, after)
	for idx := range divE[0] {
		scale := 1 + math.Abs(real(divE[0][idx])) + math.Abs(imag(divE[0][idx]))
		assert.InDelta(t, real(divE[0][idx]), real(after[0][idx]), 1e-9*scale, "idx=%d", idx)
		assert.InDelta(t, imag(divE[0][idx]), imag(after[0][idx]), 1e-9*scale, "idx=%d", idx)
	}
}

func TestSpectralDivEFormula(t *testing.T) {
	kr := [][]float64{{1.5, 3.0}}
	p, f := testAlg(t, kr, 4, 0.25, 1e-12)
	f.Set(Ep, 0, 1, 1, complex(2, 0))
	f.Set(Em, 0, 1, 1, complex(0.5, 0))
	f.Set(Ez, 0, 1, 1, complex(0, 1))

	divE := [][]complex128{make([]complex128, f.Nkr*f.Nkz)}
	p.ComputeSpectralDivE(f, divE)

	kz := NewKSpace(4, 0.25).Kz[1]
	want := complex(3.0*(2-0.5), 0) + complex(0, kz)*complex(0, 1)
	got := divE[0][1*f.Nkz+1]
	assert.InDelta(t, real(want), real(got), 1e-12)
	assert.InDelta(t, imag(want), imag(got), 1e-12)
}

func TestPushBeforeInitializePanics(t *testing.T) {
	p, f := testAlg(t, [][]float64{{1}}, 2, 0.1, 1e-12)
	assert.Panics(t, func() { p.PushSpectralFields(f) })
}

func TestExtentMismatchPanics(t *testing.T) {
	p, _ := testAlg(t, [][]float64{{1, 2}}, 4, 0.1, 1e-12)
	wrong := NewFieldData(1, 3, 4)
	assert.Panics(t, func() { p.InitializeCoefficients(wrong) })

	twoModes := NewFieldData(2, 2, 4)
	assert.Panics(t, func() { p.InitializeCoefficients(twoModes) })
}

func TestBadAlgorithmConfigPanics(t *testing.T) {
	ks := NewKSpace(4, 0.1)
	assert.Panics(t, func() { NewPsatdAlgorithm(ks, nil, -1, true, 1e-12) })
	assert.Panics(t, func() { NewPsatdAlgorithm(ks, [][]float64{{1}}, -1, true, 0) })
	p, _ := testAlg(t, [][]float64{{1}}, 4, 0.1, 1e-12)
	assert.Panics(t, func() { p.SetTimeStep(-1) })
}
