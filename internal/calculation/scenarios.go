package calculation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cgfgestion/investment-simulator/internal/domain"
	"github.com/cgfgestion/investment-simulator/pkg/dateutil"
)

// DefaultAssumptions lists the modeling assumptions printed with every report.
var DefaultAssumptions = []string{
	"Annual rate is nominal and compounded monthly (rate / 12 per month)",
	"Contributions are credited at the end of each month",
	"Horizons are truncated to whole months",
	"Horizon searches stop at 100 years (1200 months)",
	"No taxes, fees, or currency effects are modeled",
}

// ReportOptions carries presentation metadata into RunSimulations.
type ReportOptions struct {
	Company  string
	Currency string
}

// RunSimulations solves every simulation in config and gathers trajectories,
// breakdowns, and requested sweeps into a report. A simulation whose inputs are
// invalid or whose result is not representable is kept in the report with its
// error message; any other failure aborts the run.
func (ce *CalculationEngine) RunSimulations(ctx context.Context, config *domain.Configuration, opts ReportOptions) (*domain.Report, error) {
	report := &domain.Report{
		Company:     opts.Company,
		Currency:    opts.Currency,
		Client:      config.Client,
		GeneratedAt: nowFunc(),
		Assumptions: DefaultAssumptions,
	}

	solved := make(map[string]domain.Parameters, len(config.Simulations))
	for _, sim := range config.Simulations {
		entry, err := ce.runSimulation(ctx, sim, report.GeneratedAt)
		if err != nil {
			return nil, fmt.Errorf("simulation %q: %w", sim.Name, err)
		}
		if entry.Result != nil {
			solved[sim.Name] = entry.Result.Parameters
		}
		report.Entries = append(report.Entries, *entry)
	}

	for _, req := range config.Sweeps {
		base, ok := solved[req.Simulation]
		if !ok {
			sim := config.SimulationByName(req.Simulation)
			if sim == nil {
				return nil, fmt.Errorf("sweep references unknown simulation %q", req.Simulation)
			}
			base = sim.Parameters
		}
		sweep, err := RunSweep(ctx, req.Kind, base, req.Values)
		if err != nil {
			return nil, fmt.Errorf("sweep %s of %q: %w", req.Kind, req.Simulation, err)
		}
		report.Sweeps = append(report.Sweeps, *sweep)
	}

	return report, nil
}

func (ce *CalculationEngine) runSimulation(ctx context.Context, sim domain.Simulation, start time.Time) (*domain.ReportEntry, error) {
	entry := &domain.ReportEntry{Name: sim.Name}

	mode, err := domain.ParseMode(sim.Mode)
	if err != nil {
		entry.Error, entry.Err = err.Error(), err
		return entry, nil
	}

	res, err := ce.Solve(ctx, mode, sim.Parameters)
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrComputation) {
			ce.Logger.Warnf("simulation %q not computed: %v", sim.Name, err)
			entry.Error, entry.Err = err.Error(), err
			return entry, nil
		}
		return nil, err
	}
	entry.Result = res

	if mode == domain.ModeMonthlyContribution {
		eq := domain.EquivalentsOf(res.Value)
		entry.Equivalents = &eq
	}

	if !res.Reachable() {
		return entry, nil
	}
	replay := res.Parameters
	if res.Horizon != nil {
		// replay to the first whole month that meets the target
		replay.HorizonYears = float64(res.Horizon.Months()) / 12
	}
	points, err := Trajectory(replay)
	if err != nil {
		// e.g. a zero-rate horizon beyond the 100 year replay limit
		ce.Logger.Debugf("no trajectory for %q: %v", sim.Name, err)
		return entry, nil
	}
	entry.Monthly = points
	entry.Yearly = YearlyPoints(points)
	entry.Breakdown = BreakdownOf(points)
	maturity := dateutil.MaturityDate(start, len(points)-1)
	entry.MaturityDate = &maturity
	return entry, nil
}
