package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"plateinspect/internal/model"
)

// plateCircleRatio separates drill holes from the plate boundary when both
// are drawn as CIRCLE entities: a circle at least this many times the median
// hole radius is treated as the plate outline, not a hole.
const plateCircleRatio = 10.0

// ImportDXF imports a tube-sheet drawing. CIRCLE entities become holes
// (center + radius); LWPOLYLINE, LINE, and ARC entities are treated as the
// plate outline and contribute only to the plate's bounding dimensions.
// Oversized circles are reclassified as the plate boundary.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	type circle struct {
		x, y, r float64
	}
	var circles []circle

	// Outline extent accumulated from non-circle geometry.
	outline := newExtent()

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Circle:
			circles = append(circles, circle{x: e.Center[0], y: e.Center[1], r: e.Radius})

		case *entity.LwPolyline:
			for _, v := range e.Vertices {
				outline.add(v[0], v[1])
			}

		case *entity.Line:
			outline.add(e.Start[0], e.Start[1])
			outline.add(e.End[0], e.End[1])

		case *entity.Arc:
			for _, p := range arcToPoints(e, 32) {
				outline.add(p.X, p.Y)
			}

		default:
			// Unsupported entity types are silently skipped
		}
	}

	if len(circles) == 0 {
		result.Errors = append(result.Errors, "No CIRCLE entities found in DXF file")
		return result
	}

	// Median radius separates holes from a plate boundary drawn as a circle.
	radii := make([]float64, len(circles))
	for i, c := range circles {
		radii[i] = c.r
	}
	sort.Float64s(radii)
	median := radii[len(radii)/2]

	for _, c := range circles {
		if median > 0 && c.r >= median*plateCircleRatio {
			outline.add(c.x-c.r, c.y-c.r)
			outline.add(c.x+c.r, c.y+c.r)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Circle r=%.1f treated as plate boundary", c.r))
			continue
		}
		if c.r <= 0 {
			result.Warnings = append(result.Warnings, "Skipped degenerate circle (radius 0)")
			continue
		}
		result.Holes = append(result.Holes, model.NewHole(c.x, c.y, c.r))
	}

	if len(result.Holes) == 0 {
		result.Errors = append(result.Errors, "No hole circles found in DXF file")
		return result
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if outline.valid {
		result.Plate = model.Plate{
			Name:   name,
			Width:  outline.maxX - outline.minX,
			Height: outline.maxY - outline.minY,
			Source: path,
		}
	} else {
		// No outline geometry: fall back to the hole extent.
		result.Warnings = append(result.Warnings, "No plate outline in DXF, using hole extent")
		finishPlate(&result, path)
	}

	return result
}

// extent accumulates an axis-aligned bounding box.
type extent struct {
	valid                  bool
	minX, minY, maxX, maxY float64
}

func newExtent() *extent {
	return &extent{}
}

func (e *extent) add(x, y float64) {
	if !e.valid {
		e.minX, e.maxX = x, x
		e.minY, e.maxY = y, y
		e.valid = true
		return
	}
	e.minX = math.Min(e.minX, x)
	e.minY = math.Min(e.minY, y)
	e.maxX = math.Max(e.maxX, x)
	e.maxY = math.Max(e.maxY, y)
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []model.Point2D {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startDeg := a.Angle[0]
	endDeg := a.Angle[1]

	startRad := startDeg * math.Pi / 180
	endRad := endDeg * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Point2D, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Point2D{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}
