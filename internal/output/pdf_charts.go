package output

import (
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

const (
	chartHeight   = 60.0
	chartWidth    = 110.0
	pieRadius     = 22.0
	pieArcSegment = 2.0 // degrees per polygon edge
)

type rgb struct{ r, g, b int }

var (
	valueColor    = rgb{0, 51, 102}
	investedColor = rgb{120, 144, 156}
	interestColor = rgb{46, 139, 87}
)

// chartBox is the plotting area of a chart on the page, in mm.
type chartBox struct {
	X, Y, W, H float64
}

// scaleSeries maps (month, amount) pairs into box coordinates. Month 0 sits on
// the left edge and the last month on the right; amounts run from 0 at the
// bottom to top at the upper edge.
func scaleSeries(box chartBox, points []domain.MonthPoint, amount func(domain.MonthPoint) float64, top float64) []fpdf.PointType {
	if len(points) == 0 {
		return nil
	}
	last := float64(points[len(points)-1].Month)
	out := make([]fpdf.PointType, len(points))
	for i, pt := range points {
		x := box.X
		if last > 0 {
			x += box.W * float64(pt.Month) / last
		}
		y := box.Y + box.H
		if top > 0 {
			y -= box.H * math.Max(amount(pt), 0) / top
		}
		out[i] = fpdf.PointType{X: x, Y: y}
	}
	return out
}

// pieSlice is one sector of the breakdown pie, angles in degrees clockwise
// from twelve o'clock.
type pieSlice struct {
	Label      string
	Amount     float64
	Share      float64
	Start, End float64
	color      rgb
}

// breakdownSlices splits the final value into its invested and interest
// sectors. Negative interest, from a negative rate, draws no sector.
func breakdownSlices(b domain.Breakdown) []pieSlice {
	invested := math.Max(b.TotalInvested, 0)
	interest := math.Max(b.TotalInterest, 0)
	total := invested + interest
	if total <= 0 {
		return nil
	}
	var slices []pieSlice
	start := 0.0
	for _, s := range []pieSlice{
		{Label: "Invested", Amount: invested, color: investedColor},
		{Label: "Interest", Amount: interest, color: interestColor},
	} {
		if s.Amount == 0 {
			continue
		}
		s.Share = s.Amount / total
		s.Start = start
		s.End = start + 360*s.Share
		start = s.End
		slices = append(slices, s)
	}
	return slices
}

// sectorPolygon approximates a pie sector with straight edges.
func sectorPolygon(cx, cy, radius, start, end float64) []fpdf.PointType {
	pts := []fpdf.PointType{{X: cx, Y: cy}}
	for a := start; ; a += pieArcSegment {
		if a > end {
			a = end
		}
		rad := a * math.Pi / 180
		pts = append(pts, fpdf.PointType{X: cx + radius*math.Sin(rad), Y: cy - radius*math.Cos(rad)})
		if a == end {
			break
		}
	}
	return pts
}

// addCharts draws the portfolio evolution next to the invested/interest pie.
func (r *pdfReport) addCharts(e domain.ReportEntry) {
	if len(e.Yearly) < 2 {
		return
	}
	if r.pdf.GetY()+chartHeight+20 > 297-marginBottom {
		r.pdf.AddPage()
	}
	top := r.pdf.GetY() + 2
	r.drawEvolutionChart(chartBox{X: marginLeft + 12, Y: top + 6, W: chartWidth - 12, H: chartHeight - 12}, e.Yearly)
	r.drawBreakdownPie(marginLeft+chartWidth+25+pieRadius, top+6+pieRadius, e.Breakdown)
	r.pdf.SetY(top + chartHeight + 4)
}

func (r *pdfReport) drawEvolutionChart(box chartBox, points []domain.MonthPoint) {
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.Text(box.X, box.Y-2, r.tr("Portfolio evolution"))

	peak := 0.0
	for _, pt := range points {
		peak = math.Max(peak, math.Max(pt.Value, pt.Invested))
	}

	r.pdf.SetDrawColor(180, 180, 180)
	r.pdf.SetLineWidth(0.2)
	r.pdf.Line(box.X, box.Y+box.H, box.X+box.W, box.Y+box.H)
	r.pdf.Line(box.X, box.Y, box.X, box.Y+box.H)

	r.pdf.SetFont("Arial", "", 7)
	r.pdf.SetTextColor(110, 110, 110)
	r.pdf.Text(box.X-11, box.Y+2, r.tr(compactAmount(peak)))
	r.pdf.Text(box.X-3, box.Y+box.H, "0")
	lastMonth := points[len(points)-1].Month
	r.pdf.Text(box.X+box.W-10, box.Y+box.H+4, r.tr(FormatYears(float64(lastMonth)/12)))

	series := []struct {
		label  string
		amount func(domain.MonthPoint) float64
		color  rgb
	}{
		{"Value", func(p domain.MonthPoint) float64 { return p.Value }, valueColor},
		{"Invested", func(p domain.MonthPoint) float64 { return p.Invested }, investedColor},
	}
	r.pdf.SetLineWidth(0.6)
	for i, s := range series {
		pts := scaleSeries(box, points, s.amount, peak)
		r.pdf.SetDrawColor(s.color.r, s.color.g, s.color.b)
		for j := 1; j < len(pts); j++ {
			r.pdf.Line(pts[j-1].X, pts[j-1].Y, pts[j].X, pts[j].Y)
		}
		lx := box.X + 4 + float64(i)*30
		r.pdf.Line(lx, box.Y+box.H+8, lx+6, box.Y+box.H+8)
		r.pdf.Text(lx+8, box.Y+box.H+9, r.tr(s.label))
	}
	r.pdf.SetLineWidth(0.2)
}

func (r *pdfReport) drawBreakdownPie(cx, cy float64, b domain.Breakdown) {
	slices := breakdownSlices(b)
	if len(slices) == 0 {
		return
	}
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.Text(cx-pieRadius, cy-pieRadius-2, r.tr("Invested vs interest"))

	r.pdf.SetDrawColor(255, 255, 255)
	for _, s := range slices {
		r.pdf.SetFillColor(s.color.r, s.color.g, s.color.b)
		r.pdf.Polygon(sectorPolygon(cx, cy, pieRadius, s.Start, s.End), "FD")
	}

	r.pdf.SetFont("Arial", "", 7)
	for i, s := range slices {
		y := cy + pieRadius + 5 + float64(i)*4
		r.pdf.SetFillColor(s.color.r, s.color.g, s.color.b)
		r.pdf.Rect(cx-pieRadius, y-2.5, 3, 3, "F")
		r.pdf.Text(cx-pieRadius+5, y, r.tr(s.Label+" "+FormatPercentage(100*s.Share)))
	}
}

// compactAmount shortens axis labels, e.g. 7928815 -> "7.9M".
func compactAmount(v float64) string {
	switch {
	case v >= 1e9:
		return trimFloat(v/1e9) + "B"
	case v >= 1e6:
		return trimFloat(v/1e6) + "M"
	case v >= 1e3:
		return trimFloat(v/1e3) + "k"
	default:
		return trimFloat(v)
	}
}

func trimFloat(v float64) string {
	s := floatToString(math.Round(v*10)/10, 1)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
