package sector

import (
	"math"

	"plateinspect/internal/model"
)

// wedgeArcSegments is the number of line segments used to approximate the
// 90° arc of a wedge. 24 keeps the chord error invisible at screen scale.
const wedgeArcSegments = 24

// DrawablePath is a closed polygon in plate coordinates (mm, Y up).
// Rendering surfaces convert it to their own coordinate space with a single
// named transform; they never rebuild the geometry.
type DrawablePath struct {
	Points []model.Point2D
}

// DrawableRect is an axis-aligned rectangle in plate coordinates.
type DrawableRect struct {
	Min model.Point2D
	Max model.Point2D
}

// Width returns the rectangle width.
func (r DrawableRect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the rectangle height.
func (r DrawableRect) Height() float64 { return r.Max.Y - r.Min.Y }

// Wedge builds the pie-slice overlay polygon for a quadrant: the center
// point followed by arc points from the quadrant's declared start angle to
// its end angle at the given radius. The angles are taken verbatim from
// Quadrant.AngleRange so the overlay can never disagree with the classifier
// about where a sector begins.
func Wedge(q Quadrant, center model.Point2D, radius float64) DrawablePath {
	start, end := q.AngleRange()

	pts := make([]model.Point2D, 0, wedgeArcSegments+2)
	pts = append(pts, center)
	for i := 0; i <= wedgeArcSegments; i++ {
		deg := start + (end-start)*float64(i)/float64(wedgeArcSegments)
		rad := deg * math.Pi / 180
		pts = append(pts, model.Point2D{
			X: center.X + radius*math.Cos(rad),
			Y: center.Y + radius*math.Sin(rad),
		})
	}
	return DrawablePath{Points: pts}
}

// Bounds returns the bounding rectangle of the given holes, for rendering
// surfaces where a circular wedge misrepresents a non-circular hole extent.
// An empty slice yields a zero rectangle.
func Bounds(holes []*model.Hole) DrawableRect {
	if len(holes) == 0 {
		return DrawableRect{}
	}
	min := model.Point2D{X: holes[0].X, Y: holes[0].Y}
	max := min
	for _, h := range holes[1:] {
		if h.X < min.X {
			min.X = h.X
		}
		if h.Y < min.Y {
			min.Y = h.Y
		}
		if h.X > max.X {
			max.X = h.X
		}
		if h.Y > max.Y {
			max.Y = h.Y
		}
	}
	return DrawableRect{Min: min, Max: max}
}
