package calculation

import (
	"math"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

const (
	// MaxHorizonYears is the longest horizon accepted as input.
	MaxHorizonYears = 100
	// MaxHorizonMonths bounds the horizon search.
	MaxHorizonMonths = MaxHorizonYears * 12
	// MinAnnualRate is the lowest nominal annual rate accepted, in percent.
	MinAnnualRate = -100
)

// MonthlyRate converts a nominal annual percentage into the monthly compounding rate.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / 100 / 12
}

// Months converts a horizon in years to whole months, truncating.
func Months(horizonYears float64) int {
	return int(math.Floor(horizonYears * 12))
}

// growthFactor returns (1+r)^n.
func growthFactor(monthlyRate float64, months int) float64 {
	return math.Pow(1+monthlyRate, float64(months))
}

// annuityFactor is the future value of an ordinary annuity of 1 per month,
// contributions credited at month end.
func annuityFactor(monthlyRate float64, months int) float64 {
	if monthlyRate == 0 {
		return float64(months)
	}
	return (growthFactor(monthlyRate, months) - 1) / monthlyRate
}

// FutureValue returns the capital at the end of the horizon from an initial
// capital plus a constant monthly contribution.
func FutureValue(initialCapital, monthlyContribution, annualRate, horizonYears float64) (float64, error) {
	if err := validate(
		initialCapitalField(initialCapital),
		contributionField(monthlyContribution),
		rateField(annualRate),
		horizonField(horizonYears),
	); err != nil {
		return 0, err
	}
	if horizonYears == 0 {
		return initialCapital, nil
	}

	months := Months(horizonYears)
	r := MonthlyRate(annualRate)

	fvCapital := initialCapital * growthFactor(r, months)
	fvContrib := monthlyContribution * annuityFactor(r, months)
	return finite("future value", fvCapital+fvContrib)
}

// RequiredContribution returns the monthly contribution needed to reach the
// target from the initial capital. It is never negative.
func RequiredContribution(targetValue, initialCapital, annualRate, horizonYears float64) (float64, error) {
	if err := validate(
		targetField(targetValue),
		initialCapitalField(initialCapital),
		rateField(annualRate),
		horizonField(horizonYears),
	); err != nil {
		return 0, err
	}
	if horizonYears == 0 {
		return 0, nil
	}

	months := Months(horizonYears)
	r := MonthlyRate(annualRate)

	fvCapital, err := finite("required contribution", initialCapital*growthFactor(r, months))
	if err != nil {
		return 0, err
	}
	remaining := targetValue - fvCapital
	if remaining <= 0 {
		return 0, nil
	}
	if months == 0 {
		return 0, &ComputationError{Operation: "required contribution", Reason: "horizon shorter than one whole month"}
	}
	if r == 0 {
		return finite("required contribution", math.Max((targetValue-initialCapital)/float64(months), 0))
	}
	return finite("required contribution", remaining/annuityFactor(r, months))
}

// RequiredInitialCapital returns the capital needed at time zero to reach the
// target given the monthly contribution. It is never negative.
func RequiredInitialCapital(targetValue, monthlyContribution, annualRate, horizonYears float64) (float64, error) {
	if err := validate(
		targetField(targetValue),
		contributionField(monthlyContribution),
		rateField(annualRate),
		horizonField(horizonYears),
	); err != nil {
		return 0, err
	}
	if horizonYears == 0 {
		return math.Max(targetValue, 0), nil
	}

	months := Months(horizonYears)
	r := MonthlyRate(annualRate)

	fvContrib, err := finite("required initial capital", monthlyContribution*annuityFactor(r, months))
	if err != nil {
		return 0, err
	}
	if targetValue <= fvContrib {
		return 0, nil
	}
	if r == 0 {
		return targetValue - fvContrib, nil
	}
	return finite("required initial capital", (targetValue-fvContrib)/growthFactor(r, months))
}

// RequiredHorizon returns the time needed to reach the target. With a non-zero
// rate the answer is found by stepping month by month up to MaxHorizonMonths,
// so it has whole-month granularity; a target not met by then is reported as
// an unreachable horizon, not as an error.
func RequiredHorizon(targetValue, initialCapital, monthlyContribution, annualRate float64) (domain.Horizon, error) {
	if err := validate(
		targetField(targetValue),
		initialCapitalField(initialCapital),
		contributionField(monthlyContribution),
		rateField(annualRate),
	); err != nil {
		return domain.Horizon{}, err
	}

	if annualRate == 0 {
		if monthlyContribution == 0 {
			if targetValue <= initialCapital {
				return domain.Horizon{}, nil
			}
			return domain.UnreachableHorizon(), nil
		}
		years, err := finite("required horizon", math.Max((targetValue-initialCapital)/monthlyContribution/12, 0))
		if err != nil {
			return domain.Horizon{}, err
		}
		return domain.Horizon{Years: years}, nil
	}

	if targetValue <= initialCapital {
		return domain.Horizon{}, nil
	}

	r := MonthlyRate(annualRate)
	current := initialCapital
	for month := 1; month <= MaxHorizonMonths; month++ {
		current = current*(1+r) + monthlyContribution
		if current >= targetValue {
			return domain.Horizon{Years: float64(month) / 12}, nil
		}
	}
	return domain.UnreachableHorizon(), nil
}

func finite(op string, v float64) (float64, error) {
	if math.IsNaN(v) {
		return 0, &ComputationError{Operation: op, Reason: "result is not a number"}
	}
	if math.IsInf(v, 0) {
		return 0, &ComputationError{Operation: op, Reason: "result overflows"}
	}
	return v, nil
}
