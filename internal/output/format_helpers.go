package output

import (
	"fmt"
	"math"

	"github.com/cgfgestion/investment-simulator/internal/domain"
	"github.com/cgfgestion/investment-simulator/pkg/decimal"
)

// dateLayout is used for every calendar date shown to clients.
const dateLayout = "2 January 2006"

// FormatCurrency renders an amount rounded to whole units with grouped
// thousands, e.g. "1 500 000 FCFA".
func FormatCurrency(amount float64, currency string) string {
	return decimal.NewMoney(amount).Format(currency)
}

// FormatPercentage formats a percentage value with 2 decimals.
func FormatPercentage(v float64) string { return fmt.Sprintf("%.2f%%", v) }

// FormatYears renders an input horizon in years as "X years Y months",
// truncated to whole months the way the engine counts them.
func FormatYears(years float64) string {
	months := int(math.Floor(years*12 + 1e-9))
	return fmt.Sprintf("%d years %d months", months/12, months%12)
}

// FormatHorizon renders a solved horizon, counting a partial month as a full one.
func FormatHorizon(h domain.Horizon) string {
	y, m := h.YearsAndMonths()
	return fmt.Sprintf("%d years %d months", y, m)
}

// FormatResultValue renders the solved value for its mode.
func FormatResultValue(res *domain.Result, currency string) string {
	if res.Mode == domain.ModeHorizon {
		if !res.Reachable() {
			return "target not reachable within 100 years"
		}
		if res.Horizon != nil {
			return FormatHorizon(*res.Horizon)
		}
		return FormatYears(res.Value)
	}
	if res.Mode == domain.ModeMonthlyContribution || res.Mode == domain.ModeInitialCapital {
		return FormatRequiredAmount(res.Value, currency)
	}
	return FormatCurrency(res.Value, currency)
}

// FormatRequiredAmount renders an amount the client must pay, rounded up to
// whole units so that paying it reaches the target.
func FormatRequiredAmount(amount float64, currency string) string {
	return decimal.NewMoney(amount).Required().Format(currency)
}

// parameterRow is one labelled input of a solved simulation.
type parameterRow struct {
	Label string
	Value string
}

// parameterRows lists the solved parameter set in presentation order.
func parameterRows(res *domain.Result, currency string) []parameterRow {
	p := res.Parameters
	horizon := FormatYears(p.HorizonYears)
	if res.Horizon != nil && !res.Horizon.Unreachable {
		horizon = FormatHorizon(*res.Horizon)
	}
	rows := []parameterRow{
		{"Initial capital", FormatCurrency(p.InitialCapital, currency)},
		{"Monthly contribution", FormatCurrency(p.MonthlyContribution, currency)},
		{"Target value", FormatCurrency(p.TargetValue, currency)},
		{"Annual rate", FormatPercentage(p.AnnualRate)},
		{"Horizon", horizon},
	}
	if p.InflationRate != 0 {
		rows = append(rows, parameterRow{"Inflation", FormatPercentage(p.InflationRate)})
	}
	return rows
}

// FormatSweepInput renders a sweep input value for its kind.
func FormatSweepInput(kind domain.SweepKind, v float64, currency string) string {
	switch kind {
	case domain.SweepHorizon:
		return FormatYears(v)
	case domain.SweepRate:
		return FormatPercentage(v)
	default:
		return FormatCurrency(v, currency)
	}
}

func intToString(i int) string { return fmt.Sprintf("%d", i) }
