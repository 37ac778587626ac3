package domain

// MonthPoint is one step of a month-by-month replay of the compounding rule
// value = value*(1+r) + contribution.
type MonthPoint struct {
	Month     int     `json:"month"`
	Year      float64 `json:"year"`
	Value     float64 `json:"value"`
	Invested  float64 `json:"invested"`
	Interest  float64 `json:"interest"`
	RealValue float64 `json:"real_value"` // deflated by the inflation rate, equals Value when none
}

// Breakdown splits a final value into capital put in and interest earned.
type Breakdown struct {
	TotalInvested float64 `json:"total_invested"`
	TotalInterest float64 `json:"total_interest"`
	FinalValue    float64 `json:"final_value"`
}

// InterestShare returns the fraction of the final value that is interest, or 0.
func (b Breakdown) InterestShare() float64 {
	if b.FinalValue <= 0 {
		return 0
	}
	return b.TotalInterest / b.FinalValue
}

// SweepKind names the parameter varied in a sensitivity sweep.
type SweepKind string

const (
	SweepHorizon      SweepKind = "horizon"
	SweepRate         SweepKind = "rate"
	SweepContribution SweepKind = "contribution"
)

// SweepPoint is one evaluation of the future value at a varied input.
type SweepPoint struct {
	Input       float64 `json:"input"`
	FutureValue float64 `json:"future_value"`
}

// Sweep is a sensitivity table for one varied parameter.
type Sweep struct {
	Kind   SweepKind    `json:"kind"`
	Base   Parameters   `json:"base"`
	Points []SweepPoint `json:"points"`
}
