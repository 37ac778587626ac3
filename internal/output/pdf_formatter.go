package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFFormatter renders the client-facing A4 report: header, client block,
// then per simulation its parameters, result, equivalents, yearly table and
// charts.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string      { return "pdf" }
func (p PDFFormatter) Extension() string { return "pdf" }

func (p PDFFormatter) Format(report *domain.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetModificationDate(report.GeneratedAt)
	pdf.SetTitle("Investment Simulation Report", true)

	r := &pdfReport{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), report: report}
	r.addTitle()
	for _, e := range report.Entries {
		r.addEntry(e)
	}
	if len(report.Sweeps) > 0 {
		r.addSweeps()
	}
	r.addAssumptions()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	report *domain.Report
}

func (r *pdfReport) money(v float64) string { return FormatCurrency(v, r.report.Currency) }

func (r *pdfReport) addTitle() {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, r.tr("Investment Simulation Report"), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	line := fmt.Sprintf("Generated: %s", r.report.GeneratedAt.Format(dateLayout))
	if r.report.Company != "" {
		line = r.report.Company + " | " + line
	}
	r.pdf.CellFormat(contentWidth, 7, r.tr(line), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	c := r.report.Client
	var rows [][]string
	for _, kv := range [][2]string{{"Client", c.Name}, {"Advisor", c.Advisor}, {"Advisor email", c.AdvisorEmail}, {"Country", c.Country}} {
		if kv[1] != "" {
			rows = append(rows, []string{kv[0], kv[1]})
		}
	}
	if len(rows) > 0 {
		r.drawSectionHeader("Client")
		widths := []float64{50, contentWidth - 50}
		for _, row := range rows {
			r.drawTableRow(row, widths, false)
		}
		r.pdf.Ln(4)
	}
}

func (r *pdfReport) addEntry(e domain.ReportEntry) {
	if r.pdf.GetY() > 200 {
		r.pdf.AddPage()
	}
	r.drawSectionHeader(e.Name)
	if e.Failed() {
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetTextColor(176, 0, 32)
		r.pdf.MultiCell(contentWidth, 5, r.tr("Not computed: "+e.Error), "", "L", false)
		r.pdf.Ln(4)
		return
	}

	res := e.Result
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, r.tr(fmt.Sprintf("%s: %s", res.Mode.Label(), FormatResultValue(res, r.report.Currency))), "", 1, "L", false, 0, "")
	if !res.Reachable() {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.MultiCell(contentWidth, 5, r.tr("The target cannot be reached within 100 years with these contributions and this rate."), "", "L", false)
	}
	if e.MaturityDate != nil {
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.CellFormat(contentWidth, 6, r.tr("Maturity date: "+e.MaturityDate.Format(dateLayout)), "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(2)

	widths := []float64{60, 60}
	r.drawTableHeader([]string{"Parameter", "Value"}, widths)
	for _, row := range parameterRows(res, r.report.Currency) {
		r.drawTableRow([]string{row.Label, row.Value}, widths, false)
	}
	if eq := e.Equivalents; eq != nil {
		r.pdf.Ln(3)
		r.drawTableHeader([]string{"Contribution", "Amount"}, widths)
		r.drawTableRow([]string{"Monthly", r.money(eq.Monthly)}, widths, false)
		r.drawTableRow([]string{"Quarterly", r.money(eq.Quarterly)}, widths, false)
		r.drawTableRow([]string{"Yearly", r.money(eq.Yearly)}, widths, false)
	}

	if len(e.Yearly) > 0 {
		r.pdf.Ln(3)
		cols := []float64{20, 40, 40, 40, 40}
		r.drawTableHeader([]string{"Month", "Value", "Invested", "Interest", "Real value"}, cols)
		for _, pt := range e.Yearly {
			if r.pdf.GetY() > 270 {
				r.pdf.AddPage()
				r.drawTableHeader([]string{"Month", "Value", "Invested", "Interest", "Real value"}, cols)
			}
			r.drawTableRow([]string{
				intToString(pt.Month),
				r.money(pt.Value),
				r.money(pt.Invested),
				r.money(pt.Interest),
				r.money(pt.RealValue),
			}, cols, false)
		}
		b := e.Breakdown
		r.drawTableRow([]string{"Total", r.money(b.FinalValue), r.money(b.TotalInvested), r.money(b.TotalInterest), ""}, cols, true)
		r.pdf.Ln(3)
		r.addCharts(e)
	}
	r.pdf.Ln(6)
}

func (r *pdfReport) addSweeps() {
	r.pdf.AddPage()
	for _, s := range r.report.Sweeps {
		r.drawSectionHeader("Sensitivity: " + string(s.Kind))
		widths := []float64{60, 60}
		r.drawTableHeader([]string{"Input", "Future value"}, widths)
		for _, pt := range s.Points {
			r.drawTableRow([]string{FormatSweepInput(s.Kind, pt.Input, r.report.Currency), r.money(pt.FutureValue)}, widths, false)
		}
		r.pdf.Ln(6)
	}
}

func (r *pdfReport) addAssumptions() {
	if len(r.report.Assumptions) == 0 {
		return
	}
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	for _, a := range r.report.Assumptions {
		r.pdf.MultiCell(contentWidth, 4.5, r.tr("• "+a), "", "L", false)
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 9, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, r.tr(header), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}
	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, r.tr(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
