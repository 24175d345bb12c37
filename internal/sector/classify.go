package sector

import (
	"math"

	"plateinspect/internal/model"
)

// Center derives the reference point for quadrant classification: the
// midpoint of the bounding box of all hole centers. This is deliberately not
// the centroid — a locally dense hole pattern must not pull the sector origin
// off the plate center. An empty snapshot yields (0, 0) so callers never
// branch on a missing center.
func Center(holes model.Snapshot) model.Point2D {
	if len(holes) == 0 {
		return model.Point2D{}
	}
	min, max := holes.Bounds()
	return model.Point2D{
		X: (min.X + max.X) / 2,
		Y: (min.Y + max.Y) / 2,
	}
}

// ClassifyPosition assigns the point (x, y) to a quadrant relative to center.
//
// This function and ClassifyAngle are the only places quadrant membership is
// decided. The sign comparisons below are chosen so that every axis point
// lands in the same quadrant ClassifyAngle puts its atan2 angle in:
//
//	dx > 0, dy = 0 →   0° → QuadrantI
//	dx = 0, dy > 0 →  90° → QuadrantII
//	dx < 0, dy = 0 → 180° → QuadrantIII
//	dx = 0, dy < 0 → 270° → QuadrantIV
//
// A point exactly on the center classifies as QuadrantI (atan2(0,0) = 0).
func ClassifyPosition(x, y float64, center model.Point2D) Quadrant {
	dx := x - center.X
	dy := y - center.Y
	switch {
	case dx > 0 && dy >= 0:
		return QuadrantI
	case dx <= 0 && dy > 0:
		return QuadrantII
	case dx < 0 && dy <= 0:
		return QuadrantIII
	case dx >= 0 && dy < 0:
		return QuadrantIV
	}
	// dx == 0 && dy == 0: the center itself.
	return QuadrantI
}

// ClassifyAngle assigns an angle in degrees to its quadrant. The angle is
// normalized to [0, 360) first, then matched against the half-open ranges
// declared on Quadrant.
func ClassifyAngle(deg float64) Quadrant {
	deg = NormalizeAngle(deg)
	for _, q := range Quadrants {
		start, end := q.AngleRange()
		if deg >= start && deg < end {
			return q
		}
	}
	// Unreachable: the ranges tile [0, 360).
	return QuadrantI
}

// AngleOf returns the angle of (x, y) around center in degrees, normalized
// to [0, 360).
func AngleOf(x, y float64, center model.Point2D) float64 {
	return NormalizeAngle(math.Atan2(y-center.Y, x-center.X) * 180 / math.Pi)
}

// NormalizeAngle maps any angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg == 360 {
		// A tiny negative input can round up to exactly 360 above.
		deg = 0
	}
	return deg
}
