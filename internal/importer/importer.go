// Package importer loads hole patterns into the inspection console: DXF
// plate drawings, plus CSV and Excel hole tables with automatic delimiter
// detection, flexible column mapping, and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"plateinspect/internal/model"
)

// defaultHoleRadius is used when a hole table carries no radius or diameter
// column (tube sheet drill patterns usually have one uniform bore).
const defaultHoleRadius = 8.8 // mm

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Holes    model.Snapshot
	Plate    model.Plate
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	X        int
	Y        int
	Radius   int
	Diameter int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "id", "hole", "hole id", "name", "no", "number", "tag"},
	"x":        {"x", "x (mm)", "pos x", "center x", "cx", "x_mm"},
	"y":        {"y", "y (mm)", "pos y", "center y", "cy", "y_mm"},
	"radius":   {"radius", "r", "r (mm)"},
	"diameter": {"diameter", "dia", "d", "d (mm)", "bore"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (label, x, y, diameter) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:    -1,
		X:        -1,
		Y:        -1,
		Radius:   -1,
		Diameter: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "label":
						if mapping.Label == -1 {
							mapping.Label = i
						}
					case "x":
						if mapping.X == -1 {
							mapping.X = i
						}
					case "y":
						if mapping.Y == -1 {
							mapping.Y = i
						}
					case "radius":
						if mapping.Radius == -1 {
							mapping.Radius = i
						}
					case "diameter":
						if mapping.Diameter == -1 {
							mapping.Diameter = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:    0,
			X:        1,
			Y:        2,
			Diameter: 3,
			Radius:   -1,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a hole from a row using the given column mapping.
// Returns the hole, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (*model.Hole, string, string) {
	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return nil, fmt.Sprintf("%s: Missing X value", rowLabel), ""
	}
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid X '%s'", rowLabel, xStr), ""
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return nil, fmt.Sprintf("%s: Missing Y value", rowLabel), ""
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid Y '%s'", rowLabel, yStr), ""
	}

	radius := defaultHoleRadius
	var warning string
	if rStr := getCell(row, mapping.Radius); rStr != "" {
		r, err := strconv.ParseFloat(rStr, 64)
		if err != nil || r <= 0 {
			warning = fmt.Sprintf("%s: Invalid radius '%s', using default", rowLabel, rStr)
		} else {
			radius = r
		}
	} else if dStr := getCell(row, mapping.Diameter); dStr != "" {
		d, err := strconv.ParseFloat(dStr, 64)
		if err != nil || d <= 0 {
			warning = fmt.Sprintf("%s: Invalid diameter '%s', using default", rowLabel, dStr)
		} else {
			radius = d / 2
		}
	}

	hole := model.NewHole(x, y, radius)
	if label := getCell(row, mapping.Label); label != "" {
		hole.ID = label
	}
	return hole, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports holes from a CSV hole table.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	finishPlate(&result, path)
	return result
}

// ImportCSVFromReader imports holes from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", nil)
	finishPlate(&result, "")
	return result
}

// ImportExcel imports holes from an Excel (.xlsx) hole table.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	result = importFromRows(rows, "Row", nil)
	finishPlate(&result, path)
	return result
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into holes.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if the first row is numeric (positional mapping)
		if len(rows[0]) >= 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				// First column after label is not numeric: likely an
				// unrecognized header. Skip it but keep positional mapping.
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		hole, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if seen[hole.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate hole ID '%s'", rowLabel, hole.ID))
			continue
		}
		seen[hole.ID] = true

		result.Holes = append(result.Holes, hole)
	}

	return result
}

// finishPlate fills in plate metadata from the imported holes when the
// source format carries no explicit plate outline (hole tables don't).
func finishPlate(result *ImportResult, path string) {
	if len(result.Holes) == 0 {
		return
	}
	min, max := result.Holes.Bounds()
	// Pad by the largest hole radius so boundary holes sit inside the plate.
	var pad float64
	for _, h := range result.Holes {
		if h.Radius > pad {
			pad = h.Radius
		}
	}
	name := "Imported plate"
	if path != "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	result.Plate = model.Plate{
		Name:   name,
		Width:  (max.X - min.X) + 2*pad,
		Height: (max.Y - min.Y) + 2*pad,
		Source: path,
	}
}
