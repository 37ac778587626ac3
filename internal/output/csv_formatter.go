package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// CSVTrajectoryExporter writes one row per simulated month of every solved
// simulation.
type CSVTrajectoryExporter struct{}

func (c CSVTrajectoryExporter) Name() string      { return "csv" }
func (c CSVTrajectoryExporter) Extension() string { return "csv" }

func (c CSVTrajectoryExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Simulation", "Month", "Year", "Value", "Invested", "Interest", "RealValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range report.Entries {
		for _, pt := range e.Monthly {
			row := []string{
				e.Name,
				intToString(pt.Month),
				floatToString(pt.Year, 4),
				floatToString(pt.Value, 2),
				floatToString(pt.Invested, 2),
				floatToString(pt.Interest, 2),
				floatToString(pt.RealValue, 2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVSummarizer implements the summary CSV output (one row per simulation).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "summary-csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Simulation", "Mode", "Value", "Reachable", "InitialCapital", "MonthlyContribution", "TargetValue", "AnnualRate", "HorizonYears", "TotalInvested", "TotalInterest", "Error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range report.Entries {
		if e.Failed() {
			row := make([]string, len(header))
			row[0] = e.Name
			row[len(row)-1] = e.Error
			if err := w.Write(row); err != nil {
				return nil, err
			}
			continue
		}
		res, p := e.Result, e.Result.Parameters
		row := []string{
			e.Name,
			string(res.Mode),
			floatToString(res.Value, 2),
			strconv.FormatBool(res.Reachable()),
			floatToString(p.InitialCapital, 2),
			floatToString(p.MonthlyContribution, 2),
			floatToString(p.TargetValue, 2),
			floatToString(p.AnnualRate, 4),
			floatToString(p.HorizonYears, 4),
			floatToString(e.Breakdown.TotalInvested, 2),
			floatToString(e.Breakdown.TotalInterest, 2),
			"",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func floatToString(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }
