package calculation

import (
	"math"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// Trajectory replays the monthly compounding step from month 0 through the
// horizon. Point k holds the value after k month-end contributions; the last
// point agrees with FutureValue up to floating point rounding.
func Trajectory(p domain.Parameters) ([]domain.MonthPoint, error) {
	if err := ValidateParameters(domain.ModeFutureValue, p); err != nil {
		return nil, err
	}
	if err := validate(field{"inflation_rate", p.InflationRate, func(v float64) string {
		if v < MinAnnualRate {
			return "inflation rate cannot be less than -100%"
		}
		return ""
	}}); err != nil {
		return nil, err
	}

	months := Months(p.HorizonYears)
	r := MonthlyRate(p.AnnualRate)
	inflation := MonthlyRate(p.InflationRate)

	points := make([]domain.MonthPoint, 0, months+1)
	value := p.InitialCapital
	invested := p.InitialCapital
	for m := 0; m <= months; m++ {
		if m > 0 {
			value = value*(1+r) + p.MonthlyContribution
			invested += p.MonthlyContribution
		}
		if math.IsInf(value, 0) || math.IsNaN(value) {
			return nil, &ComputationError{Operation: "trajectory", Reason: "value overflows"}
		}
		realValue := value
		if inflation != 0 {
			realValue = value / math.Pow(1+inflation, float64(m))
		}
		points = append(points, domain.MonthPoint{
			Month:     m,
			Year:      float64(m) / 12,
			Value:     value,
			Invested:  invested,
			Interest:  value - invested,
			RealValue: realValue,
		})
	}
	return points, nil
}

// YearlyPoints keeps month 0, every twelfth month, and the final month.
func YearlyPoints(points []domain.MonthPoint) []domain.MonthPoint {
	var out []domain.MonthPoint
	for i, pt := range points {
		if pt.Month%12 == 0 || i == len(points)-1 {
			out = append(out, pt)
		}
	}
	return out
}

// BreakdownOf splits the final point of a trajectory into invested capital
// and interest.
func BreakdownOf(points []domain.MonthPoint) domain.Breakdown {
	if len(points) == 0 {
		return domain.Breakdown{}
	}
	last := points[len(points)-1]
	return domain.Breakdown{
		TotalInvested: last.Invested,
		TotalInterest: last.Interest,
		FinalValue:    last.Value,
	}
}
