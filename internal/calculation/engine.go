package calculation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cgfgestion/investment-simulator/internal/cache"
	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// Logger receives engine diagnostics. Implementations must be safe for
// concurrent use because sweeps solve in parallel.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine dispatches a simulation to the annuity formula that
// solves for its unknown parameter. It holds no simulation state; the
// optional cache memoizes results by mode and inputs.
type CalculationEngine struct {
	Cache  cache.Store
	Logger Logger
}

// NewCalculationEngine creates an engine with no cache and a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SetCache installs a result cache. nil disables caching.
func (ce *CalculationEngine) SetCache(s cache.Store) {
	ce.Cache = s
}

// Solve computes the unknown parameter selected by mode. The unknown field of
// params is ignored; the returned Result carries params with it filled in.
// An unreachable horizon is a successful result with Horizon.Unreachable set.
func (ce *CalculationEngine) Solve(ctx context.Context, mode domain.Mode, params domain.Parameters) (*domain.Result, error) {
	params = clearUnknown(mode, params)
	key := cacheKey(mode, params)

	if ce.Cache != nil {
		cached, ok, err := ce.Cache.Get(ctx, key)
		switch {
		case err != nil:
			ce.Logger.Warnf("cache read failed for %s: %v", key, err)
		case ok:
			var res domain.Result
			if err := json.Unmarshal([]byte(cached), &res); err == nil {
				ce.Logger.Debugf("cache hit for %s", key)
				// inflation is reporting-only and not part of the key
				res.Parameters.InflationRate = params.InflationRate
				return &res, nil
			}
			ce.Logger.Warnf("discarding unreadable cache entry %s", key)
		}
	}

	res, err := solve(mode, params)
	if err != nil {
		ce.Logger.Debugf("solve %s failed: %v", mode, err)
		return nil, err
	}
	ce.Logger.Infof("solved %s = %.2f", mode, res.Value)

	if ce.Cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := ce.Cache.Set(ctx, key, string(b)); err != nil {
				ce.Logger.Warnf("cache write failed for %s: %v", key, err)
			}
		}
	}
	return res, nil
}

func solve(mode domain.Mode, p domain.Parameters) (*domain.Result, error) {
	res := &domain.Result{Mode: mode, Parameters: p}
	switch mode {
	case domain.ModeFutureValue:
		v, err := FutureValue(p.InitialCapital, p.MonthlyContribution, p.AnnualRate, p.HorizonYears)
		if err != nil {
			return nil, err
		}
		res.Value = v
		res.Parameters.TargetValue = v
	case domain.ModeMonthlyContribution:
		v, err := RequiredContribution(p.TargetValue, p.InitialCapital, p.AnnualRate, p.HorizonYears)
		if err != nil {
			return nil, err
		}
		res.Value = v
		res.Parameters.MonthlyContribution = v
	case domain.ModeInitialCapital:
		v, err := RequiredInitialCapital(p.TargetValue, p.MonthlyContribution, p.AnnualRate, p.HorizonYears)
		if err != nil {
			return nil, err
		}
		res.Value = v
		res.Parameters.InitialCapital = v
	case domain.ModeHorizon:
		h, err := RequiredHorizon(p.TargetValue, p.InitialCapital, p.MonthlyContribution, p.AnnualRate)
		if err != nil {
			return nil, err
		}
		res.Horizon = &h
		if !h.Unreachable {
			res.Value = h.Years
			res.Parameters.HorizonYears = h.Years
		}
	default:
		return nil, &ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown calculation mode %q", mode)}
	}
	return res, nil
}

// clearUnknown zeroes the field the mode solves for so that it cannot leak
// into the cache key or the result.
func clearUnknown(mode domain.Mode, p domain.Parameters) domain.Parameters {
	switch mode {
	case domain.ModeFutureValue:
		p.TargetValue = 0
	case domain.ModeMonthlyContribution:
		p.MonthlyContribution = 0
	case domain.ModeInitialCapital:
		p.InitialCapital = 0
	case domain.ModeHorizon:
		p.HorizonYears = 0
	}
	return p
}

func cacheKey(mode domain.Mode, p domain.Parameters) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return string(mode) + "|" + f(p.InitialCapital) + "|" + f(p.MonthlyContribution) + "|" +
		f(p.TargetValue) + "|" + f(p.AnnualRate) + "|" + f(p.HorizonYears)
}
