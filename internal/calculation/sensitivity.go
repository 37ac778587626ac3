package calculation

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// DefaultSweepHorizons are the horizons compared when none are given.
var DefaultSweepHorizons = []float64{5, 10, 15, 20}

// DefaultSweepValues returns the default variations around base for kind:
// fixed horizons, the rate from -1 to +2 points (positive rates only), or
// the contribution scaled by 0.5, 1, 1.5 and 2.
func DefaultSweepValues(kind domain.SweepKind, base domain.Parameters) ([]float64, error) {
	switch kind {
	case domain.SweepHorizon:
		return append([]float64(nil), DefaultSweepHorizons...), nil
	case domain.SweepRate:
		var rates []float64
		for _, delta := range []float64{-1, 0, 1, 2} {
			if r := base.AnnualRate + delta; r > 0 {
				rates = append(rates, r)
			}
		}
		return rates, nil
	case domain.SweepContribution:
		var out []float64
		for _, k := range []float64{0.5, 1, 1.5, 2} {
			out = append(out, base.MonthlyContribution*k)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown sweep kind %q", kind)
	}
}

// RunSweep evaluates FutureValue at each value of the varied parameter,
// holding the rest of base fixed. Evaluations run in parallel; points are
// returned in the order of values. An empty values slice selects
// DefaultSweepValues.
func RunSweep(ctx context.Context, kind domain.SweepKind, base domain.Parameters, values []float64) (*domain.Sweep, error) {
	if len(values) == 0 {
		var err error
		if values, err = DefaultSweepValues(kind, base); err != nil {
			return nil, err
		}
	}

	apply, err := sweepSetter(kind)
	if err != nil {
		return nil, err
	}

	points := make([]domain.SweepPoint, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := apply(base, v)
			fv, err := FutureValue(p.InitialCapital, p.MonthlyContribution, p.AnnualRate, p.HorizonYears)
			if err != nil {
				return fmt.Errorf("%s sweep at %g: %w", kind, v, err)
			}
			points[i] = domain.SweepPoint{Input: v, FutureValue: fv}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &domain.Sweep{Kind: kind, Base: base, Points: points}, nil
}

func sweepSetter(kind domain.SweepKind) (func(domain.Parameters, float64) domain.Parameters, error) {
	switch kind {
	case domain.SweepHorizon:
		return func(p domain.Parameters, v float64) domain.Parameters { p.HorizonYears = v; return p }, nil
	case domain.SweepRate:
		return func(p domain.Parameters, v float64) domain.Parameters { p.AnnualRate = v; return p }, nil
	case domain.SweepContribution:
		return func(p domain.Parameters, v float64) domain.Parameters { p.MonthlyContribution = v; return p }, nil
	default:
		return nil, fmt.Errorf("unknown sweep kind %q", kind)
	}
}
