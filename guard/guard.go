// Package guard computes the number of guard (halo) cells needed for the
// allocation of the field arrays and required before each stage of the PIC
// loop. Planning is a pure function of the run configuration; the halo
// exchange itself is performed by the mesh-communication collaborator using
// the widths produced here.
package guard

import (
	"fmt"

	"github.com/plasmakit/picmesh/grid"
)

// SolverKind selects the Maxwell solver family.
type SolverKind uint8

const (
	FiniteDifference SolverKind = iota
	Spectral
)

// Options describes the run configuration consumed by Plan. Zero values are
// valid defaults except for the stencil orders, which must be set.
type Options struct {
	Solver SolverKind

	// Subcycling of the fine levels: particles perform two pushes before
	// being redistributed, which widens the deposition reach by one cell.
	Subcycling bool

	// Godfrey NCI corrector; widens the exchange along z by NCIStencil cells.
	NCICorrector bool
	NCIStencil   int

	// Nodal is true when the field solver samples all components at nodes.
	// AuxNodal is true when the auxiliary gather grid is nodal; combined with
	// a staggered solver this needs one extra fine-grid cell to interpolate.
	Nodal    bool
	AuxNodal bool

	MovingWindow     bool
	MovingWindowAxis int

	// DepositionOrder is the particle shape order per axis, which sets the
	// deposition and gather stencil reach.
	DepositionOrder grid.IntVect

	// FilterPasses is the per-direction bilinear current-smoothing pass
	// count. Each pass reaches one cell further, so the deposited sources
	// need that many additional guard cells. Zero disables the filter.
	FilterPasses grid.IntVect

	// FDOrder is the finite-difference solver order per axis (2 for the
	// classic Yee and nodal schemes). The solver reads order/2 cells.
	FDOrder grid.IntVect

	// SpectralOrder is the PSATD order per axis; the spectral solver's halo
	// must cover the overlap of the local transform domain, order/2 cells.
	SpectralOrder grid.IntVect

	MaxLevel int

	// Galilean comoving-frame velocity; any nonzero component widens the
	// spectral allocation by one cell along that axis.
	Galilean [3]float64

	// SafeGuardCells forces every exchange width up to the corresponding
	// allocation width, trading memory and communication volume for
	// guaranteed correctness under untested feature combinations.
	SafeGuardCells bool
}

// Widths is the per-stage guard-cell plan. Exchange widths size the halo
// exchange before a stage; allocation widths size the arrays themselves.
type Widths struct {
	// Exchanged before the field solve, for E/B and for the scalar
	// potential-correction field F.
	FieldSolver  grid.IntVect
	FieldSolverF grid.IntVect
	// Exchanged before the field gather onto particles.
	FieldGather grid.IntVect
	// Exchanged before updating the auxiliary grid.
	UpdateAux grid.IntVect
	// Exchanged on every field before shifting the moving window.
	MovingWindow grid.IntVect

	// Extra fine-grid cell needed when the aux grid is nodal but the solver
	// is staggered (momentum-conserving gather with an FDTD solver).
	Extra grid.IntVect

	// Allocation widths: E/B, the deposited sources J/rho, and F.
	AllocEB   grid.IntVect
	AllocJRho grid.IntVect
	AllocF    grid.IntVect
}

// Plan computes the guard-cell widths for a configuration. It is
// deterministic, performs no I/O, and never returns negative widths.
func Plan(opt Options) Widths {
	if opt.MovingWindowAxis < 0 || opt.MovingWindowAxis > 2 {
		panic(fmt.Sprintf("guard: moving window axis must be 0..2, got %d", opt.MovingWindowAxis))
	}
	if opt.Solver != FiniteDifference && opt.Solver != Spectral {
		panic(fmt.Sprintf("guard: unknown solver kind %d", opt.Solver))
	}
	if opt.NCIStencil < 0 {
		panic(fmt.Sprintf("guard: NCI stencil must be non-negative, got %d", opt.NCIStencil))
	}

	var w Widths

	// Deposition reach. With subcycling on a refined hierarchy the fine
	// particles push twice before redistribution, so they may deposit one
	// cell further out.
	ngTmp := opt.DepositionOrder.Clamp()
	if opt.Subcycling && opt.MaxLevel > 0 {
		ngTmp = ngTmp.Add(grid.UnitVect(1))
	}

	// E/B allocation is rounded up to an even count so the coarse/fine
	// interpolation never splits a cell pair. J/rho are only averaged fine
	// to coarse and keep the raw reach.
	w.AllocEB = roundUpEven(ngTmp)
	w.AllocJRho = ngTmp.Add(opt.FilterPasses.Clamp())
	if opt.NCICorrector {
		z := ngTmp[2] + opt.NCIStencil
		w.AllocEB[2] = z + z%2
	}

	// Solver exchange width.
	switch opt.Solver {
	case FiniteDifference:
		w.FieldSolver = halfOrder(opt.FDOrder)
	case Spectral:
		// The spectral update reads the full overlap of the local transform
		// domain; a Galilean shift drifts the comoving stencil one more cell.
		w.FieldSolver = halfOrder(opt.SpectralOrder)
		for d := 0; d < 3; d++ {
			if opt.Galilean[d] != 0 {
				w.FieldSolver[d]++
			}
		}
		// All spectral-field allocations share one width to avoid staging
		// copies between differently-sized arrays.
		w.AllocEB = roundUpEven(w.AllocEB.Max(w.FieldSolver))
		w.AllocJRho = w.AllocJRho.Max(w.FieldSolver)
	}
	w.FieldSolverF = w.FieldSolver

	if opt.AuxNodal && !opt.Nodal {
		w.Extra = grid.UnitVect(1)
	}

	if opt.MovingWindow {
		w.MovingWindow[opt.MovingWindowAxis] = 1
	}

	w.FieldGather = w.Extra.Add(ngTmp)
	w.UpdateAux = w.Extra.Add(w.FieldSolver)

	// Allocation must cover every exchange.
	w.AllocEB = w.AllocEB.
		Max(w.FieldSolver).
		Max(w.FieldGather).
		Max(w.UpdateAux).
		Max(w.MovingWindow)
	w.AllocJRho = w.AllocJRho.Max(w.MovingWindow)
	w.AllocF = w.AllocEB

	// Exchanges never exceed what is allocated.
	w.FieldGather = w.FieldGather.Min(w.AllocEB)
	w.UpdateAux = w.UpdateAux.Min(w.AllocEB)

	if opt.SafeGuardCells {
		w.FieldSolver = w.AllocEB
		w.FieldSolverF = w.AllocF
		w.FieldGather = w.AllocEB
		w.UpdateAux = w.AllocEB
		w.MovingWindow = w.AllocEB
	}

	w.FieldSolver = w.FieldSolver.Clamp()
	w.FieldSolverF = w.FieldSolverF.Clamp()
	w.FieldGather = w.FieldGather.Clamp()
	w.UpdateAux = w.UpdateAux.Clamp()
	w.MovingWindow = w.MovingWindow.Clamp()
	w.AllocEB = w.AllocEB.Clamp()
	w.AllocJRho = w.AllocJRho.Clamp()
	w.AllocF = w.AllocF.Clamp()
	return w
}

func roundUpEven(v grid.IntVect) grid.IntVect {
	for d := 0; d < 3; d++ {
		v[d] += v[d] % 2
	}
	return v
}

func halfOrder(v grid.IntVect) grid.IntVect {
	for d := 0; d < 3; d++ {
		v[d] = v[d] / 2
		if v[d] < 0 {
			v[d] = 0
		}
	}
	return v
}
