package sector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateinspect/internal/model"
)

func TestWedge_AnglesMatchQuadrantRange(t *testing.T) {
	center := model.Point2D{X: 100, Y: 50}
	const radius = 200.0

	for _, q := range Quadrants {
		start, end := q.AngleRange()
		path := Wedge(q, center, radius)

		require.GreaterOrEqual(t, len(path.Points), 3, "%v wedge too short", q)
		assert.Equal(t, center, path.Points[0], "%v wedge must start at the center", q)

		first := path.Points[1]
		last := path.Points[len(path.Points)-1]

		gotStart := AngleOf(first.X, first.Y, center)
		gotEnd := AngleOf(last.X, last.Y, center)
		// The end arc point sits at the range end, which normalizes into
		// the next quadrant's range (360 wraps to 0).
		assert.InDelta(t, start, gotStart, 1e-9, "%v start angle", q)
		assert.InDelta(t, NormalizeAngle(end), gotEnd, 1e-9, "%v end angle", q)
	}
}

func TestWedge_ArcPointsOnRadius(t *testing.T) {
	center := model.Point2D{X: -30, Y: 12}
	const radius = 150.0

	path := Wedge(QuadrantIII, center, radius)
	for i, p := range path.Points[1:] {
		d := math.Hypot(p.X-center.X, p.Y-center.Y)
		assert.InDeltaf(t, radius, d, 1e-9, "arc point %d off radius", i)
	}
}

func TestWedge_InteriorPointsClassifyToOwnQuadrant(t *testing.T) {
	// Midpoints of the arc (strictly inside the half-open range) must
	// classify back to the wedge's own quadrant: the overlay and the
	// classifier share one convention.
	center := model.Point2D{}
	for _, q := range Quadrants {
		path := Wedge(q, center, 100)
		mid := path.Points[len(path.Points)/2]
		assert.Equal(t, q, ClassifyPosition(mid.X, mid.Y, center),
			"wedge midpoint of %v classifies elsewhere", q)
	}
}

func TestBounds_HoleExtent(t *testing.T) {
	holes := []*model.Hole{
		{ID: "a", X: 10, Y: 40},
		{ID: "b", X: 25, Y: 15},
		{ID: "c", X: 18, Y: 60},
	}
	r := Bounds(holes)
	assert.Equal(t, model.Point2D{X: 10, Y: 15}, r.Min)
	assert.Equal(t, model.Point2D{X: 25, Y: 60}, r.Max)
	assert.Equal(t, 15.0, r.Width())
	assert.Equal(t, 45.0, r.Height())
}

func TestBounds_Empty(t *testing.T) {
	r := Bounds(nil)
	assert.Zero(t, r.Width())
	assert.Zero(t, r.Height())
}
