// Package export renders inspection results to shareable file formats:
// a PDF report with the sector map, an Excel workbook with per-sector hole
// tables, and QR-coded plate labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"plateinspect/internal/model"
	"plateinspect/internal/sector"
)

// Report bundles everything the exporters need about an inspection.
type Report struct {
	Plate model.Plate
	Holes model.Snapshot
	Index *sector.AssignmentIndex
}

// statusColor represents an RGB color for a hole status.
type statusColor struct {
	R, G, B int
}

// statusColors mirrors the color scheme used in the UI plate canvas widget.
var statusColors = map[model.HoleStatus]statusColor{
	model.StatusPending:    {R: 158, G: 158, B: 158}, // gray
	model.StatusProcessing: {R: 33, G: 150, B: 243},  // blue
	model.StatusQualified:  {R: 76, G: 175, B: 80},   // green
	model.StatusDefective:  {R: 244, G: 67, B: 54},   // red
	model.StatusBlind:      {R: 255, G: 235, B: 59},  // yellow
	model.StatusTieRod:     {R: 121, G: 85, B: 72},   // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF report of the inspection: a plate map page with
// the four sector wedges and status-colored holes, followed by a summary
// page with per-sector statistics.
func ExportPDF(path string, rep Report) error {
	if rep.Index == nil || rep.Index.Total() == 0 {
		return fmt.Errorf("no holes to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlatePage(pdf, rep)

	pdf.AddPage()
	renderSummaryPage(pdf, rep)

	return pdf.OutputFileAndClose(path)
}

// renderPlatePage draws the sector map on the current PDF page.
func renderPlatePage(pdf *fpdf.Fpdf, rep Report) {
	stats := sector.AggregateAll(rep.Index)
	overall := overallStats(stats)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Inspection Report: %s (%.0f x %.0f mm)", rep.Plate.Name, rep.Plate.Width, rep.Plate.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Holes: %d | Inspected: %d | Progress: %.1f%% | Qualified rate: %.1f%%",
		overall.Total, overall.Inspected(), overall.Progress(), overall.QualifiedRate())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	// Drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	min, max := rep.Holes.Bounds()
	worldW := max.X - min.X
	worldH := max.Y - min.Y
	if worldW <= 0 {
		worldW = 1
	}
	if worldH <= 0 {
		worldH = 1
	}

	scale := math.Min(drawWidth/worldW, drawHeight/worldH) * 0.9
	canvasW := worldW * scale
	canvasH := worldH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop + (drawHeight-canvasH)/2

	// World-to-page transform. Page Y grows downward, plate Y grows upward.
	toPage := func(p model.Point2D) (float64, float64) {
		return offsetX + (p.X-min.X)*scale, offsetY + (max.Y-p.Y)*scale
	}

	// Sector wedges behind the holes.
	center := rep.Index.Center()
	radius := math.Hypot(worldW, worldH) / 2
	for _, q := range sector.Quadrants {
		wedge := sector.Wedge(q, center, radius)
		pts := make([]fpdf.PointType, len(wedge.Points))
		for i, p := range wedge.Points {
			x, y := toPage(p)
			pts[i] = fpdf.PointType{X: x, Y: y}
		}
		col := q.Color()
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetLineWidth(0.2)
		pdf.SetAlpha(0.25, "Normal")
		pdf.Polygon(pts, "FD")
		pdf.SetAlpha(1.0, "Normal")
	}

	// Axis lines through the plate center.
	cx, cy := toPage(center)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.3)
	pdf.Line(offsetX, cy, offsetX+canvasW, cy)
	pdf.Line(cx, offsetY, cx, offsetY+canvasH)

	// Holes, colored by status.
	for _, h := range rep.Holes {
		col, ok := statusColors[h.Status]
		if !ok {
			col = statusColors[model.StatusPending]
		}
		x, y := toPage(h.Position())
		r := math.Max(h.Radius*scale, 0.4)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.1)
		pdf.Circle(x, y, r, "FD")
	}

	// Sector labels at the wedge midpoints.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(40, 40, 40)
	for _, q := range sector.Quadrants {
		start, end := q.AngleRange()
		mid := (start + end) / 2 * math.Pi / 180
		lp := model.Point2D{
			X: center.X + radius*0.7*math.Cos(mid),
			Y: center.Y + radius*0.7*math.Sin(mid),
		}
		x, y := toPage(lp)
		label := q.String()
		w := pdf.GetStringWidth(label)
		pdf.SetXY(x-w/2, y-2)
		pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	drawStatusLegend(pdf, offsetY+canvasH+4)
}

// drawStatusLegend renders a compact status color legend.
func drawStatusLegend(pdf *fpdf.Fpdf, startY float64) {
	statuses := []model.HoleStatus{
		model.StatusPending, model.StatusProcessing, model.StatusQualified,
		model.StatusDefective, model.StatusBlind, model.StatusTieRod,
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	xPos := marginLeft

	for _, s := range statuses {
		col := statusColors[s]
		label := s.String()
		labelW := pdf.GetStringWidth(label) + 6

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 4
	}
}

// renderSummaryPage draws the per-sector statistics page.
func renderSummaryPage(pdf *fpdf.Fpdf, rep Report) {
	stats := sector.AggregateAll(rep.Index)
	overall := overallStats(stats)

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Sector Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Plate", fmt.Sprintf("%s (%.0f x %.0f mm)", rep.Plate.Name, rep.Plate.Width, rep.Plate.Height)},
		{"Total Holes", fmt.Sprintf("%d", overall.Total)},
		{"Inspected", fmt.Sprintf("%d (%.1f%%)", overall.Inspected(), overall.Progress())},
		{"Qualified Rate", fmt.Sprintf("%.1f%%", overall.QualifiedRate())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(100, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-sector breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sector Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{35, 25, 25, 28, 28, 22, 25, 30, 30}
	headers := []string{"Sector", "Holes", "Pending", "Processing", "Qualified", "Defective", "Blind", "Tie Rod", "Progress"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, q := range sector.Quadrants {
		st := stats[i]
		xPos = marginLeft
		rowData := []string{
			q.String(),
			fmt.Sprintf("%d", st.Total),
			fmt.Sprintf("%d", st.Pending),
			fmt.Sprintf("%d", st.Processing),
			fmt.Sprintf("%d", st.Qualified),
			fmt.Sprintf("%d", st.Defective),
			fmt.Sprintf("%d", st.Blind),
			fmt.Sprintf("%d", st.TieRod),
			fmt.Sprintf("%.1f%%", st.Progress()),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Defect warning
	if overall.Defective > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("WARNING: %d defective hole(s)", overall.Defective), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PlateInspect - Tube Sheet Inspection Console", "", 0, "C", false, 0, "")
}

// overallStats sums the four per-sector stats into a plate total.
func overallStats(stats [4]model.SectorStats) model.SectorStats {
	var total model.SectorStats
	for _, st := range stats {
		total.Total += st.Total
		total.Pending += st.Pending
		total.Processing += st.Processing
		total.Qualified += st.Qualified
		total.Defective += st.Defective
		total.Blind += st.Blind
		total.TieRod += st.TieRod
	}
	return total
}
