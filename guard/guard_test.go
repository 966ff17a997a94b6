package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plasmakit/picmesh/grid"
)

func baseOptions() Options {
	return Options{
		Solver:          FiniteDifference,
		DepositionOrder: grid.IntVect{2, 2, 2},
		FDOrder:         grid.IntVect{2, 2, 2},
		SpectralOrder:   grid.IntVect{16, 16, 16},
	}
}

func allWidths(w Widths) []grid.IntVect {
	return []grid.IntVect{
		w.FieldSolver, w.FieldSolverF, w.FieldGather, w.UpdateAux,
		w.MovingWindow, w.AllocEB, w.AllocJRho, w.AllocF,
	}
}

func TestPlanDeterministic(t *testing.T) {
	opt := baseOptions()
	assert.Equal(t, Plan(opt), Plan(opt))
}

func TestWidthsNeverNegative(t *testing.T) {
	opt := Options{Solver: FiniteDifference} // all orders zero
	for _, v := range allWidths(Plan(opt)) {
		assert.True(t, v.AllGE(grid.ZeroVect()), "width %v is negative", v)
	}
}

func TestMonotonicInOrder(t *testing.T) {
	cases := []struct {
		name   string
		bump   func(*Options)
	}{
		{"deposition", func(o *Options) { o.DepositionOrder = grid.IntVect{4, 4, 4} }},
		{"fd solver", func(o *Options) { o.FDOrder = grid.IntVect{4, 4, 4} }},
		{"spectral", func(o *Options) {
			o.Solver = Spectral
			o.SpectralOrder = grid.IntVect{32, 32, 32}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lowOpt := baseOptions()
			highOpt := baseOptions()
			if tc.name == "spectral" {
				lowOpt.Solver = Spectral
			}
			tc.bump(&highOpt)
			low, high := allWidths(Plan(lowOpt)), allWidths(Plan(highOpt))
			for i := range low {
				assert.True(t, high[i].AllGE(low[i]),
					"width %d decreased: %v -> %v", i, low[i], high[i])
			}
		})
	}
}

func TestSafeDominatesUnsafe(t *testing.T) {
	configs := []func(*Options){
		func(o *Options) {},
		func(o *Options) { o.Solver = Spectral },
		func(o *Options) { o.Subcycling = true; o.MaxLevel = 2 },
		func(o *Options) { o.NCICorrector = true; o.NCIStencil = 4 },
		func(o *Options) { o.MovingWindow = true; o.MovingWindowAxis = 2 },
		func(o *Options) { o.AuxNodal = true },
		func(o *Options) { o.Solver = Spectral; o.Galilean = [3]float64{0, 0, 0.9} },
	}
	for _, mod := range configs {
		unsafe := baseOptions()
		mod(&unsafe)
		safe := unsafe
		safe.SafeGuardCells = true
		uw, sw := allWidths(Plan(unsafe)), allWidths(Plan(safe))
		for i := range uw {
			assert.True(t, sw[i].AllGE(uw[i]),
				"safe width %d %v below unsafe %v", i, sw[i], uw[i])
		}
	}
}

func TestAllocationEvenForEB(t *testing.T) {
	opt := baseOptions()
	opt.DepositionOrder = grid.IntVect{1, 3, 3}
	w := Plan(opt)
	for d := 0; d < 3; d++ {
		assert.Zero(t, w.AllocEB[d]%2, "AllocEB[%d]=%d is odd", d, w.AllocEB[d])
	}
	// J/rho keep the raw deposition reach.
	assert.Equal(t, grid.IntVect{1, 3, 3}, w.AllocJRho)
}

func TestMovingWindowWidth(t *testing.T) {
	opt := baseOptions()
	opt.MovingWindow = true
	opt.MovingWindowAxis = 2
	w := Plan(opt)
	assert.Equal(t, grid.IntVect{0, 0, 1}, w.MovingWindow)
}

func TestNCIWidensZOnly(t *testing.T) {
	plain := Plan(baseOptions())
	opt := baseOptions()
	opt.NCICorrector = true
	opt.NCIStencil = 4
	w := Plan(opt)
	assert.Equal(t, plain.AllocEB[0], w.AllocEB[0])
	assert.Equal(t, plain.AllocEB[1], w.AllocEB[1])
	assert.Greater(t, w.AllocEB[2], plain.AllocEB[2])
}

func TestSubcyclingWidensOnlyWithRefinement(t *testing.T) {
	opt := baseOptions()
	opt.Subcycling = true
	assert.Equal(t, Plan(baseOptions()).AllocJRho, Plan(opt).AllocJRho)
	opt.MaxLevel = 1
	assert.Equal(t, grid.IntVect{3, 3, 3}, Plan(opt).AllocJRho)
}

func TestFilterPassesWidenSourceAllocation(t *testing.T) {
	opt := baseOptions()
	base := Plan(opt)

	opt.FilterPasses = grid.IntVect{4, 1, 2}
	w := Plan(opt)
	assert.Equal(t, base.AllocJRho.Add(opt.FilterPasses), w.AllocJRho)
	assert.Equal(t, base.AllocEB, w.AllocEB)
	assert.Equal(t, base.FieldGather, w.FieldGather)

	// Negative pass counts clamp to zero instead of shrinking the plan.
	opt.FilterPasses = grid.IntVect{-3, -3, -3}
	assert.Equal(t, base.AllocJRho, Plan(opt).AllocJRho)
}

func TestExtraGuardCellForNodalAux(t *testing.T) {
	opt := baseOptions()
	opt.AuxNodal = true
	opt.Nodal = false
	w := Plan(opt)
	assert.Equal(t, grid.UnitVect(1), w.Extra)

	opt.Nodal = true
	assert.Equal(t, grid.ZeroVect(), Plan(opt).Extra)
}

func TestSpectralSolverWidths(t *testing.T) {
	opt := baseOptions()
	opt.Solver = Spectral
	w := Plan(opt)
	// The spectral exchange covers the transform-domain overlap.
	assert.Equal(t, grid.IntVect{8, 8, 8}, w.FieldSolver)
	// All spectral allocations share a width; F matches E/B.
	assert.Equal(t, w.AllocEB, w.AllocF)
	assert.True(t, w.AllocJRho.AllGE(w.FieldSolver))

	// A Galilean drift widens the drift axis by one cell.
	opt.Galilean = [3]float64{0, 0, 0.5}
	wg := Plan(opt)
	assert.Equal(t, grid.IntVect{8, 8, 9}, wg.FieldSolver)
}

func TestExchangeNeverExceedsAllocation(t *testing.T) {
	for _, safeFlag := range []bool{false, true} {
		opt := baseOptions()
		opt.SafeGuardCells = safeFlag
		opt.AuxNodal = true
		w := Plan(opt)
		assert.True(t, w.AllocEB.AllGE(w.FieldSolver))
		assert.True(t, w.AllocEB.AllGE(w.FieldGather))
		assert.True(t, w.AllocEB.AllGE(w.UpdateAux))
		assert.True(t, w.AllocEB.AllGE(w.MovingWindow))
	}
}

func TestBadConfigurationPanics(t *testing.T) {
	opt := baseOptions()
	opt.MovingWindowAxis = 3
	assert.Panics(t, func() { Plan(opt) })

	opt = baseOptions()
	opt.Solver = SolverKind(9)
	assert.Panics(t, func() { Plan(opt) })

	opt = baseOptions()
	opt.NCIStencil = -1
	assert.Panics(t, func() { Plan(opt) })
}
