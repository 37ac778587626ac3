package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/cgfgestion/investment-simulator/pkg/decimal"
)

// Mode selects which of the five simulation parameters is unknown and
// therefore produced by the engine.
type Mode string

const (
	ModeFutureValue         Mode = "future_value"
	ModeMonthlyContribution Mode = "monthly_contribution"
	ModeInitialCapital      Mode = "initial_capital"
	ModeHorizon             Mode = "horizon"
)

// modeAliases maps user-friendly synonyms to canonical modes.
var modeAliases = map[string]Mode{
	"future_value":         ModeFutureValue,
	"future-value":         ModeFutureValue,
	"fv":                   ModeFutureValue,
	"final":                ModeFutureValue,
	"monthly_contribution": ModeMonthlyContribution,
	"monthly-contribution": ModeMonthlyContribution,
	"contribution":         ModeMonthlyContribution,
	"pmt":                  ModeMonthlyContribution,
	"initial_capital":      ModeInitialCapital,
	"initial-capital":      ModeInitialCapital,
	"initial":              ModeInitialCapital,
	"pv":                   ModeInitialCapital,
	"horizon":              ModeHorizon,
	"years":                ModeHorizon,
	"n":                    ModeHorizon,
}

// ParseMode resolves a mode name or alias, case-insensitively.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown calculation mode %q", s)
}

// Modes returns the canonical modes in presentation order.
func Modes() []Mode {
	return []Mode{ModeFutureValue, ModeMonthlyContribution, ModeInitialCapital, ModeHorizon}
}

// Label returns a human-readable name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFutureValue:
		return "Final Value"
	case ModeMonthlyContribution:
		return "Monthly Contribution"
	case ModeInitialCapital:
		return "Initial Capital"
	case ModeHorizon:
		return "Investment Horizon"
	default:
		return string(m)
	}
}

// Parameters is the simulation parameter set. Exactly one field is unknown
// for a given Mode; its value is ignored on input.
// AnnualRate and InflationRate are percentages; InflationRate only affects
// the real value column of trajectories.
type Parameters struct {
	InitialCapital      float64 `yaml:"initial_capital" json:"initial_capital"`
	MonthlyContribution float64 `yaml:"monthly_contribution" json:"monthly_contribution"`
	TargetValue         float64 `yaml:"target_value" json:"target_value"`
	AnnualRate          float64 `yaml:"annual_rate" json:"annual_rate"`
	HorizonYears        float64 `yaml:"horizon_years" json:"horizon_years"`
	InflationRate       float64 `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
}

// Horizon is the outcome of a horizon search. Unreachable marks a target
// that cannot be met within the search ceiling; it is not an error.
type Horizon struct {
	Years       float64 `json:"years"`
	Unreachable bool    `json:"unreachable"`
}

// UnreachableHorizon returns the distinguished unreachable marker.
func UnreachableHorizon() Horizon { return Horizon{Unreachable: true} }

// monthTolerance absorbs float noise in values such as 31.0/12*12.
const monthTolerance = 1e-9

// Months returns the first whole month at which the horizon is complete, or
// -1 when unreachable. A fractional horizon rounds up.
func (h Horizon) Months() int {
	if h.Unreachable {
		return -1
	}
	return int(math.Ceil(h.Years*12 - monthTolerance))
}

// YearsAndMonths splits a finite horizon into whole years and remaining months.
func (h Horizon) YearsAndMonths() (int, int) {
	if h.Unreachable {
		return 0, 0
	}
	m := h.Months()
	return m / 12, m % 12
}

func (h Horizon) String() string {
	if h.Unreachable {
		return "unreachable"
	}
	y, m := h.YearsAndMonths()
	return fmt.Sprintf("%d years %d months (%.2f years)", y, m, h.Years)
}

// Result is the outcome of one engine call: the solved parameter set and the
// derived value. Horizon is set only for ModeHorizon.
type Result struct {
	Mode       Mode       `json:"mode"`
	Parameters Parameters `json:"parameters"`
	Value      float64    `json:"value"`
	Horizon    *Horizon   `json:"horizon,omitempty"`
}

// Reachable reports whether the result carries a usable value.
func (r *Result) Reachable() bool {
	return r.Horizon == nil || !r.Horizon.Unreachable
}

// ContributionEquivalents holds a monthly contribution restated per quarter and per year.
type ContributionEquivalents struct {
	Monthly   float64 `json:"monthly"`
	Quarterly float64 `json:"quarterly"`
	Yearly    float64 `json:"yearly"`
}

// EquivalentsOf restates a required monthly contribution over longer periods.
// The monthly figure is first rounded up to whole currency units, the amount a
// client actually pays, so every restated figure still meets the target.
func EquivalentsOf(monthly float64) ContributionEquivalents {
	m := decimal.NewMoney(monthly).Required()
	return ContributionEquivalents{
		Monthly:   m.Float(),
		Quarterly: m.Quarterly().Float(),
		Yearly:    m.Annual().Float(),
	}
}
