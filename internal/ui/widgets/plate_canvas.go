// Package widgets provides the custom Fyne canvas widgets for the plate
// overview and the sector detail view. Both pull geometry from the sector
// coordinator and never keep their own copy of the partition.
package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"plateinspect/internal/model"
	"plateinspect/internal/sector"
)

// Status colors — the same palette the PDF report uses.
var statusColors = map[model.HoleStatus]color.NRGBA{
	model.StatusPending:    {R: 158, G: 158, B: 158, A: 255}, // gray
	model.StatusProcessing: {R: 33, G: 150, B: 243, A: 255},  // blue
	model.StatusQualified:  {R: 76, G: 175, B: 80, A: 255},   // green
	model.StatusDefective:  {R: 244, G: 67, B: 54, A: 255},   // red
	model.StatusBlind:      {R: 255, G: 235, B: 59, A: 255},  // yellow
	model.StatusTieRod:     {R: 121, G: 85, B: 72, A: 255},   // brown
}

func statusColor(s model.HoleStatus) color.NRGBA {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[model.StatusPending]
}

// plateView holds the world-to-screen mapping for one rendered frame.
// The plate uses the mathematical convention (Y up); the screen uses Y down,
// so the transform flips Y exactly once, here and nowhere else.
type plateView struct {
	min, max model.Point2D
	scale    float32
	offX     float32
	offY     float32
}

func fitView(min, max model.Point2D, size fyne.Size) plateView {
	worldW := max.X - min.X
	worldH := max.Y - min.Y
	if worldW <= 0 {
		worldW = 1
	}
	if worldH <= 0 {
		worldH = 1
	}

	scaleX := float64(size.Width) * 0.92 / worldW
	scaleY := float64(size.Height) * 0.92 / worldH
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	canvasW := float32(worldW * scale)
	canvasH := float32(worldH * scale)
	return plateView{
		min:   min,
		max:   max,
		scale: float32(scale),
		offX:  (size.Width - canvasW) / 2,
		offY:  (size.Height - canvasH) / 2,
	}
}

// worldToScreen maps a plate point to widget coordinates, flipping Y.
func (v plateView) worldToScreen(p model.Point2D) fyne.Position {
	x := v.offX + float32(p.X-v.min.X)*v.scale
	y := v.offY + float32(v.max.Y-p.Y)*v.scale
	return fyne.NewPos(x, y)
}

// screenToWorld is the inverse mapping, used for tap hit testing.
func (v plateView) screenToWorld(pos fyne.Position) model.Point2D {
	return model.Point2D{
		X: v.min.X + float64((pos.X-v.offX)/v.scale),
		Y: v.max.Y - float64((pos.Y-v.offY)/v.scale),
	}
}

// PlateCanvas renders the full plate: every hole colored by status, the four
// sector overlays, and the axis cross through the center. Tapping a point
// selects the sector it falls in.
type PlateCanvas struct {
	widget.BaseWidget
	coord      *sector.Coordinator
	showLabels bool

	// OnSectorTapped is called with the sector under a tap.
	OnSectorTapped func(sector.Quadrant)
}

func NewPlateCanvas(coord *sector.Coordinator) *PlateCanvas {
	pc := &PlateCanvas{coord: coord, showLabels: true}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetShowLabels toggles the sector name labels.
func (pc *PlateCanvas) SetShowLabels(show bool) {
	pc.showLabels = show
	pc.Refresh()
}

// Tapped classifies the tapped point against the plate center and reports
// the sector. Taps before a plate is loaded are ignored.
func (pc *PlateCanvas) Tapped(ev *fyne.PointEvent) {
	if pc.coord.State() == sector.StateUnloaded || pc.OnSectorTapped == nil {
		return
	}
	min, max := pc.coord.Snapshot().Bounds()
	view := fitView(min, max, pc.Size())
	world := view.screenToWorld(ev.Position)
	q := sector.ClassifyPosition(world.X, world.Y, pc.coord.Center())
	pc.OnSectorTapped(q)
}

func (pc *PlateCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &plateCanvasRenderer{pc: pc}
}

type plateCanvasRenderer struct {
	pc      *PlateCanvas
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *plateCanvasRenderer) rebuild() {
	r.objects = nil

	coord := r.pc.coord
	if coord.State() == sector.StateUnloaded {
		hint := canvas.NewText("No plate loaded. Import a DXF, CSV, or Excel hole table.", color.Gray{Y: 128})
		hint.TextSize = 13
		hint.Move(fyne.NewPos(r.size.Width/2-150, r.size.Height/2))
		r.objects = append(r.objects, hint)
		return
	}

	snapshot := coord.Snapshot()
	min, max := snapshot.Bounds()
	view := fitView(min, max, r.size)
	center := coord.Center()
	selected, hasSelected := coord.Selected()

	// Sector tint rectangles. Each quadrant's share of the plate bounding
	// box is itself a rectangle with one corner at the center.
	corners := [4]model.Point2D{
		view.max,                                // I: upper right
		{X: view.min.X, Y: view.max.Y},          // II: upper left
		view.min,                                // III: lower left
		{X: view.max.X, Y: view.min.Y},          // IV: lower right
	}
	for i, q := range sector.Quadrants {
		col := q.Color()
		if hasSelected && q == selected {
			col.A = 160
		}
		r.addQuadRect(view, center, corners[i], col)
	}

	// Axis cross through the center.
	c := view.worldToScreen(center)
	left := view.worldToScreen(model.Point2D{X: view.min.X, Y: center.Y})
	right := view.worldToScreen(model.Point2D{X: view.max.X, Y: center.Y})
	top := view.worldToScreen(model.Point2D{X: center.X, Y: view.max.Y})
	bottom := view.worldToScreen(model.Point2D{X: center.X, Y: view.min.Y})
	for _, pair := range [][2]fyne.Position{{left, right}, {top, bottom}} {
		line := canvas.NewLine(color.NRGBA{R: 60, G: 60, B: 60, A: 200})
		line.StrokeWidth = 1.5
		line.Position1 = pair[0]
		line.Position2 = pair[1]
		r.objects = append(r.objects, line)
	}

	// Holes, colored by status.
	for _, h := range snapshot {
		pos := view.worldToScreen(h.Position())
		radius := float32(h.Radius) * view.scale
		if radius < 1.5 {
			radius = 1.5
		}
		circle := canvas.NewCircle(statusColor(h.Status))
		circle.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 120}
		circle.StrokeWidth = 0.5
		circle.Resize(fyne.NewSize(radius*2, radius*2))
		circle.Move(fyne.NewPos(pos.X-radius, pos.Y-radius))
		r.objects = append(r.objects, circle)
	}

	// Center marker.
	marker := canvas.NewCircle(color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	marker.Resize(fyne.NewSize(6, 6))
	marker.Move(fyne.NewPos(c.X-3, c.Y-3))
	r.objects = append(r.objects, marker)

	// Sector labels with live counts.
	if r.pc.showLabels {
		for _, info := range coord.Infos() {
			mid := (info.StartAngle + info.EndAngle) / 2
			r.addSectorLabel(view, center, mid, fmt.Sprintf("%s (%d)", info.Label, info.Count))
		}
	}
}

// addQuadRect tints the axis-aligned rectangle between the center and a
// bounding-box corner.
func (r *plateCanvasRenderer) addQuadRect(view plateView, center, corner model.Point2D, col color.NRGBA) {
	a := view.worldToScreen(center)
	b := view.worldToScreen(corner)
	x, w := a.X, b.X-a.X
	if w < 0 {
		x, w = b.X, -w
	}
	y, h := a.Y, b.Y-a.Y
	if h < 0 {
		y, h = b.Y, -h
	}
	rect := canvas.NewRectangle(col)
	rect.Resize(fyne.NewSize(w, h))
	rect.Move(fyne.NewPos(x, y))
	r.objects = append(r.objects, rect)
}

// addSectorLabel places a label along the given mid-sector angle.
func (r *plateCanvasRenderer) addSectorLabel(view plateView, center model.Point2D, angleDeg float64, text string) {
	radius := (view.max.X - view.min.X + view.max.Y - view.min.Y) / 5
	rad := angleDeg * math.Pi / 180
	p := model.Point2D{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
	pos := view.worldToScreen(p)

	label := canvas.NewText(text, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	label.TextSize = 12
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Move(fyne.NewPos(pos.X-float32(len(text))*3, pos.Y-8))
	r.objects = append(r.objects, label)
}

func (r *plateCanvasRenderer) Layout(size fyne.Size) {
	r.size = size
	r.rebuild()
}

func (r *plateCanvasRenderer) Refresh() {
	r.size = r.pc.Size()
	r.rebuild()
	canvas.Refresh(r.pc)
}

func (r *plateCanvasRenderer) Destroy()                     {}
func (r *plateCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *plateCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(400, 300) }
