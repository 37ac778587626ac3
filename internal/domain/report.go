package domain

import "time"

// ReportEntry is one solved simulation with the data needed to present it.
// MaturityDate is the end of the plan's last month, counted from the month
// after the report date; it is unset when there is no trajectory. Err keeps
// the typed failure behind Error for callers that classify it.
type ReportEntry struct {
	Name         string                   `json:"name"`
	Result       *Result                  `json:"result,omitempty"`
	Error        string                   `json:"error,omitempty"`
	Err          error                    `json:"-"`
	Breakdown    Breakdown                `json:"breakdown"`
	Equivalents  *ContributionEquivalents `json:"equivalents,omitempty"`
	MaturityDate *time.Time               `json:"maturity_date,omitempty"`
	Yearly       []MonthPoint             `json:"yearly,omitempty"`
	Monthly      []MonthPoint             `json:"-"`
}

// Failed reports whether the simulation could not be solved.
func (e *ReportEntry) Failed() bool { return e.Error != "" }

// Report is everything a formatter renders for one client.
type Report struct {
	Company     string        `json:"company"`
	Currency    string        `json:"currency"`
	Client      ClientInfo    `json:"client"`
	GeneratedAt time.Time     `json:"generated_at"`
	Assumptions []string      `json:"assumptions,omitempty"`
	Entries     []ReportEntry `json:"entries"`
	Sweeps      []Sweep       `json:"sweeps,omitempty"`
}
