package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// ConsoleFormatter renders the full text report: assumptions, every
// simulation with its parameters, equivalents, breakdown and yearly table,
// then the sensitivity sweeps.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	cur := report.Currency

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "INVESTMENT SIMULATION REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	if report.Company != "" {
		fmt.Fprintf(&buf, "Prepared by: %s\n", report.Company)
	}
	writeClient(&buf, report.Client)
	fmt.Fprintf(&buf, "Generated:   %s\n", report.GeneratedAt.Format("2 January 2006 15:04"))
	fmt.Fprintln(&buf)

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	for i, e := range report.Entries {
		fmt.Fprintf(&buf, "SIMULATION %d: %s\n", i+1, e.Name)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		if e.Failed() {
			fmt.Fprintf(&buf, "Not computed: %s\n\n", e.Error)
			continue
		}
		writeEntry(&buf, e, cur)
		fmt.Fprintln(&buf)
	}

	for _, s := range report.Sweeps {
		writeSweep(&buf, s, cur)
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}

func writeClient(w io.Writer, c domain.ClientInfo) {
	if c.Name != "" {
		fmt.Fprintf(w, "Client:      %s\n", c.Name)
	}
	if c.Advisor != "" {
		fmt.Fprintf(w, "Advisor:     %s\n", c.Advisor)
	}
	if c.Country != "" {
		fmt.Fprintf(w, "Country:     %s\n", c.Country)
	}
}

func writeEntry(w io.Writer, e domain.ReportEntry, cur string) {
	res := e.Result
	fmt.Fprintf(w, "%s: %s\n", res.Mode.Label(), FormatResultValue(res, cur))
	if !res.Reachable() {
		fmt.Fprintln(w, "The target cannot be reached with these contributions and this rate.")
		fmt.Fprintln(w, "Consider a larger monthly contribution or a higher rate.")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Parameters:")
	for _, row := range parameterRows(res, cur) {
		fmt.Fprintf(w, "  %-22s %s\n", row.Label, row.Value)
	}

	if eq := e.Equivalents; eq != nil {
		fmt.Fprintln(w, "Equivalent contributions:")
		fmt.Fprintf(w, "  %-22s %s\n", "Monthly", FormatCurrency(eq.Monthly, cur))
		fmt.Fprintf(w, "  %-22s %s\n", "Quarterly", FormatCurrency(eq.Quarterly, cur))
		fmt.Fprintf(w, "  %-22s %s\n", "Yearly", FormatCurrency(eq.Yearly, cur))
	}

	if len(e.Yearly) == 0 {
		return
	}
	b := e.Breakdown
	fmt.Fprintln(w, "Breakdown:")
	fmt.Fprintf(w, "  %-22s %s\n", "Total invested", FormatCurrency(b.TotalInvested, cur))
	fmt.Fprintf(w, "  %-22s %s (%s of final value)\n", "Interest earned", FormatCurrency(b.TotalInterest, cur), FormatPercentage(b.InterestShare()*100))
	fmt.Fprintf(w, "  %-22s %s\n", "Final value", FormatCurrency(b.FinalValue, cur))
	if e.MaturityDate != nil {
		fmt.Fprintf(w, "  %-22s %s\n", "Maturity date", e.MaturityDate.Format(dateLayout))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-8s %22s %22s %22s %22s\n", "Month", "Value", "Invested", "Interest", "Real value")
	for _, pt := range e.Yearly {
		fmt.Fprintf(w, "%-8d %22s %22s %22s %22s\n", pt.Month,
			FormatCurrency(pt.Value, cur),
			FormatCurrency(pt.Invested, cur),
			FormatCurrency(pt.Interest, cur),
			FormatCurrency(pt.RealValue, cur))
	}
}

func writeSweep(w io.Writer, s domain.Sweep, cur string) {
	fmt.Fprintf(w, "SENSITIVITY: %s\n", strings.ToUpper(string(s.Kind)))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, pt := range s.Points {
		fmt.Fprintf(w, "  %-22s %s\n", FormatSweepInput(s.Kind, pt.Input, cur), FormatCurrency(pt.FutureValue, cur))
	}
}

// ConsoleSummaryFormatter provides a concise one line per simulation summary.
type ConsoleSummaryFormatter struct{}

func (c ConsoleSummaryFormatter) Name() string      { return "console-lite" }
func (c ConsoleSummaryFormatter) Extension() string { return "txt" }

func (c ConsoleSummaryFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INVESTMENT SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, e := range report.Entries {
		if e.Failed() {
			fmt.Fprintf(&buf, "%s: error: %s\n", e.Name, e.Error)
			continue
		}
		fmt.Fprintf(&buf, "%s: %s = %s\n", e.Name, e.Result.Mode.Label(), FormatResultValue(e.Result, report.Currency))
	}
	if h := AnalyzeEntries(report); h.EntryName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Most interest-driven: %s (%s of %s)\n", h.EntryName, FormatPercentage(h.InterestShare*100), FormatCurrency(h.FinalValue, report.Currency))
	}
	return buf.Bytes(), nil
}
