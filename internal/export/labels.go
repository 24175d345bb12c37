package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"plateinspect/internal/sector"
)

// LabelInfo holds the data encoded into each sector label's QR code.
// Scanning the label on the shop floor pulls up the sector's inspection
// state without opening the console.
type LabelInfo struct {
	Plate     string  `json:"plate"`
	Sector    string  `json:"sector"`
	Holes     int     `json:"holes"`
	Qualified int     `json:"qualified"`
	Defective int     `json:"defective"`
	Blind     int     `json:"blind"`
	Progress  float64 `json:"progress_pct"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelsPerPage   = labelCols * 10
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per sector, laid out
// on a standard label sheet format (Avery 5160 / 3 columns x 10 rows on
// US Letter).
func ExportLabels(path string, rep Report) error {
	labels := CollectLabelInfos(rep)
	if len(labels) == 0 {
		return fmt.Errorf("no holes to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Sector, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s_%s", info.Plate, info.Sector)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Sector name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate plate name if too long
	title := fmt.Sprintf("%s - %s", info.Plate, info.Sector)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	// Hole counts
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	counts := fmt.Sprintf("%d holes, %d qualified", info.Holes, info.Qualified)
	pdf.CellFormat(textW, 3.5, counts, "", 1, "L", false, 0, "")

	// Defect and progress info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	detail := fmt.Sprintf("%d defective, %d blind | %.0f%% done", info.Defective, info.Blind, info.Progress)
	pdf.CellFormat(textW, 3, detail, "", 1, "L", false, 0, "")

	// Defect flag
	if info.Defective > 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(textW, 3, "CONTAINS DEFECTS", "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from an inspection report,
// one entry per non-empty sector.
func CollectLabelInfos(rep Report) []LabelInfo {
	if rep.Index == nil {
		return nil
	}
	stats := sector.AggregateAll(rep.Index)

	var labels []LabelInfo
	for i, q := range sector.Quadrants {
		st := stats[i]
		if st.Total == 0 {
			continue
		}
		labels = append(labels, LabelInfo{
			Plate:     rep.Plate.Name,
			Sector:    q.String(),
			Holes:     st.Total,
			Qualified: st.Qualified,
			Defective: st.Defective,
			Blind:     st.Blind,
			Progress:  st.Progress(),
		})
	}
	return labels
}
