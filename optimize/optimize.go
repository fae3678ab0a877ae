// Package optimize simplifies symbolic-regression programs and refits
// their numerical constants against training data. Simplification runs
// through the symbolic engine, refitting through a derivative-free
// minimizer; both are best effort, and any failure to re-express the result
// in the caller's operator palette leaves the original program untouched.
package optimize

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/gpexpr/expr"
	"github.com/cwbudde/gpexpr/opt"
	"github.com/cwbudde/gpexpr/program"
	"github.com/cwbudde/gpexpr/sym"
)

const (
	defaultIters   = 200
	defaultPopSize = 20
	defaultSeed    = 42

	// boundsSpan scales the search box around each initial constant.
	boundsSpan = 10
)

// Config collects everything Optimize needs besides the data.
type Config struct {
	// Palette maps the canonical operation kinds onto the operators the
	// surrounding evolutionary system actually evolved with.
	Palette program.Palette

	// ForceCoefficients injects a unit coefficient around every top-level
	// additive term so each term's scale is refit even when simplification
	// collapsed it to exactly 1. The residue of the injected coefficients
	// is simplified away again after refitting.
	ForceCoefficients bool

	// NFeatures is the number of input features.
	NFeatures int

	// NProgramSum is the number of weighted copies of the program summed
	// per row; see the block layout documented on newCost. Values below 2
	// mean a single unweighted program.
	NProgramSum int

	// Metric scores predictions; its sign decides the direction of
	// improvement.
	Metric Metric

	// Minimizer refits free parameters. Defaults to the mayfly adapter
	// with deterministic seeding.
	Minimizer opt.Optimizer
}

// Optimize simplifies a program and refits its numerical constants against
// the data, returning a new, independent program.
//
// Optimization is best effort: if the simplified form cannot be expressed
// with the palette, or parameter re-injection does not line up, the
// original program is returned unchanged. A non-converged numeric result is
// accepted as-is.
func Optimize(p program.Program, cfg Config, X [][]float64, y, w []float64) program.Program {
	out, err := run(p, cfg, X, y, w)
	if err != nil {
		slog.Debug("program optimization abandoned, keeping original", "err", err)
		return p
	}
	return out
}

func run(p program.Program, cfg Config, X [][]float64, y, w []float64) (program.Program, error) {
	ge, err := sym.FromProgram(p)
	if err != nil {
		return nil, err
	}
	tree, err := sym.ToExpr(sym.Simplify(ge))
	if err != nil {
		return nil, err
	}
	if cfg.ForceCoefficients {
		tree = expr.InjectCoefficients(tree)
	}

	eval, params, err := expr.Compile(tree, divFunc(cfg.Palette))
	if err != nil {
		return nil, err
	}

	refit := params
	if len(params) > 0 {
		minimizer := cfg.Minimizer
		if minimizer == nil {
			minimizer = opt.NewMayfly(defaultIters, defaultPopSize, defaultSeed)
		}
		cost := newCost(eval, X, y, w, cfg.Metric, cfg.NProgramSum, cfg.NFeatures)
		lower, upper := opt.BoundsAround(params, boundsSpan)
		refit, _ = minimizer.Run(cost, lower, upper, len(params))
	}

	pro, err := reparse(tree, cfg.Palette, refit)
	if err != nil {
		return nil, err
	}

	if cfg.ForceCoefficients {
		// Fold the refitted unit coefficients back into the constants they
		// scale by simplifying once more, this time with no parameters.
		ge, err := sym.FromProgram(pro)
		if err != nil {
			return nil, err
		}
		tree, err := sym.ToExpr(sym.Simplify(ge))
		if err != nil {
			return nil, err
		}
		pro, err = reparse(tree, cfg.Palette, nil)
		if err != nil {
			return nil, err
		}
	}
	return pro, nil
}

// reparse flattens the tree and enforces the reconstruction invariant: the
// parameter list must be fully drained, otherwise the refitted constants
// did not land in the positions the extraction saw.
func reparse(tree expr.Expr, pal program.Palette, params []float64) (program.Program, error) {
	pro, rest, err := program.FromExpr(tree, pal, params)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("parameter re-injection left %d values unconsumed", len(rest))
	}
	return pro, nil
}

// divFunc picks the protected division used for the evaluable form: the
// palette's own division when it carries an implementation, the built-in
// guard otherwise.
func divFunc(pal program.Palette) func(a, b float64) float64 {
	if fn := pal[program.KindDiv]; fn != nil && fn.Apply != nil {
		return func(a, b float64) float64 { return fn.Apply(a, b) }
	}
	return program.ProtectedDiv
}
