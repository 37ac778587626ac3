package calculation

import (
	"math"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// field is one supplied parameter together with its domain check.
type field struct {
	name  string
	value float64
	check func(float64) string
}

func nonNegative(label string) func(float64) string {
	return func(v float64) string {
		if v < 0 {
			return label + " cannot be negative"
		}
		return ""
	}
}

func initialCapitalField(v float64) field {
	return field{"initial_capital", v, nonNegative("initial capital")}
}

func contributionField(v float64) field {
	return field{"monthly_contribution", v, nonNegative("monthly contribution")}
}

func targetField(v float64) field {
	return field{"target_value", v, nonNegative("target value")}
}

func rateField(v float64) field {
	return field{"annual_rate", v, func(v float64) string {
		if v < MinAnnualRate {
			return "annual rate cannot be less than -100%"
		}
		return ""
	}}
}

func horizonField(v float64) field {
	return field{"horizon_years", v, func(v float64) string {
		if v < 0 {
			return "horizon cannot be negative"
		}
		if v > MaxHorizonYears {
			return "horizon cannot exceed 100 years"
		}
		return ""
	}}
}

// validate checks fields in order and returns the first violation.
func validate(fields ...field) error {
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Field: f.name, Value: f.value, Reason: "must be a finite number"}
		}
		if reason := f.check(f.value); reason != "" {
			return &ValidationError{Field: f.name, Value: f.value, Reason: reason}
		}
	}
	return nil
}

// ValidateParameters checks the four parameters that are inputs for mode.
func ValidateParameters(mode domain.Mode, p domain.Parameters) error {
	switch mode {
	case domain.ModeFutureValue:
		return validate(initialCapitalField(p.InitialCapital), contributionField(p.MonthlyContribution), rateField(p.AnnualRate), horizonField(p.HorizonYears))
	case domain.ModeMonthlyContribution:
		return validate(targetField(p.TargetValue), initialCapitalField(p.InitialCapital), rateField(p.AnnualRate), horizonField(p.HorizonYears))
	case domain.ModeInitialCapital:
		return validate(targetField(p.TargetValue), contributionField(p.MonthlyContribution), rateField(p.AnnualRate), horizonField(p.HorizonYears))
	case domain.ModeHorizon:
		return validate(targetField(p.TargetValue), initialCapitalField(p.InitialCapital), contributionField(p.MonthlyContribution), rateField(p.AnnualRate))
	default:
		return &ValidationError{Field: "mode", Reason: "unknown calculation mode " + string(mode)}
	}
}
