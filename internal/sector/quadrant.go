// Package sector implements the plate sector partitioning engine: quadrant
// classification, the hole-to-sector assignment index, per-sector statistics,
// overlay geometry, and the coordinator that keeps the overview and detail
// views in agreement.
//
// All angles use the mathematical convention: degrees counter-clockwise from
// the positive X axis, with Y increasing upward. Rendering surfaces that use
// a screen convention (Y down) must apply their own flip at the drawing
// boundary; nothing in this package ever does.
package sector

import "image/color"

// Quadrant identifies one of the four fixed 90° sectors around the plate
// center. The zero value is QuadrantI.
type Quadrant int

const (
	QuadrantI   Quadrant = iota // [0°, 90°)   — upper right
	QuadrantII                  // [90°, 180°) — upper left
	QuadrantIII                 // [180°, 270°) — lower left
	QuadrantIV                  // [270°, 360°) — lower right

	numQuadrants = 4
)

// Quadrants lists all four quadrants in angle order.
var Quadrants = [numQuadrants]Quadrant{QuadrantI, QuadrantII, QuadrantIII, QuadrantIV}

func (q Quadrant) String() string {
	switch q {
	case QuadrantII:
		return "Sector II"
	case QuadrantIII:
		return "Sector III"
	case QuadrantIV:
		return "Sector IV"
	default:
		return "Sector I"
	}
}

// AngleRange returns the half-open [start, end) angle range in degrees.
// The four ranges tile [0, 360) exactly.
func (q Quadrant) AngleRange() (start, end float64) {
	s := float64(q) * 90.0
	return s, s + 90.0
}

// Valid reports whether q is one of the four defined quadrants.
func (q Quadrant) Valid() bool {
	return q >= QuadrantI && q <= QuadrantIV
}

// quadrantColors follows the palette used for placed parts in the canvas
// widgets so sector overlays and legends stay visually consistent.
var quadrantColors = [numQuadrants]color.NRGBA{
	{R: 76, G: 175, B: 80, A: 90},   // green
	{R: 33, G: 150, B: 243, A: 90},  // blue
	{R: 255, G: 152, B: 0, A: 90},   // orange
	{R: 156, G: 39, B: 176, A: 90},  // purple
}

// Color returns the sector's display color.
func (q Quadrant) Color() color.NRGBA {
	if !q.Valid() {
		return quadrantColors[0]
	}
	return quadrantColors[q]
}

// Info is derived display metadata for one sector. It is never authoritative:
// counts come from the assignment index, angles from the quadrant itself.
type Info struct {
	Quadrant   Quadrant
	Label      string
	Color      color.NRGBA
	StartAngle float64
	EndAngle   float64
	Count      int
}

// InfoFor builds display metadata for a quadrant with the given hole count.
func InfoFor(q Quadrant, count int) Info {
	start, end := q.AngleRange()
	return Info{
		Quadrant:   q,
		Label:      q.String(),
		Color:      q.Color(),
		StartAngle: start,
		EndAngle:   end,
		Count:      count,
	}
}
