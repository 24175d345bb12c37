package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"plateinspect/internal/sector"
)

// SectorCanvas renders the detail view of the selected sector: only that
// sector's holes, auto-fit to their extent, inside the sector's wedge
// outline. With no selection it shows a hint instead.
type SectorCanvas struct {
	widget.BaseWidget
	coord *sector.Coordinator

	quadrant    sector.Quadrant
	hasQuadrant bool
}

func NewSectorCanvas(coord *sector.Coordinator) *SectorCanvas {
	sc := &SectorCanvas{coord: coord}
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetSector switches the detail view to the given sector.
func (sc *SectorCanvas) SetSector(q sector.Quadrant) {
	sc.quadrant = q
	sc.hasQuadrant = true
	sc.Refresh()
}

// ClearSector empties the detail view.
func (sc *SectorCanvas) ClearSector() {
	sc.hasQuadrant = false
	sc.Refresh()
}

func (sc *SectorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &sectorCanvasRenderer{sc: sc}
}

type sectorCanvasRenderer struct {
	sc      *SectorCanvas
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *sectorCanvasRenderer) rebuild() {
	r.objects = nil

	sc := r.sc
	if !sc.hasQuadrant {
		hint := canvas.NewText("Tap a sector to inspect it.", color.Gray{Y: 128})
		hint.TextSize = 13
		hint.Move(fyne.NewPos(r.size.Width/2-80, r.size.Height/2))
		r.objects = append(r.objects, hint)
		return
	}

	holes := sc.coord.Entities(sc.quadrant)
	if len(holes) == 0 {
		hint := canvas.NewText(sc.quadrant.String()+" has no holes.", color.Gray{Y: 128})
		hint.TextSize = 13
		hint.Move(fyne.NewPos(r.size.Width/2-70, r.size.Height/2))
		r.objects = append(r.objects, hint)
		return
	}

	// Fit to this sector's holes only, not the full plate.
	rect := sector.Bounds(holes)
	view := fitView(rect.Min, rect.Max, r.size)

	// Background tint in the sector color.
	tint := sc.quadrant.Color()
	tint.A = 40
	bg := canvas.NewRectangle(tint)
	bg.Resize(r.size)
	r.objects = append(r.objects, bg)

	// Wedge boundary through the detail view, drawn as straight segments.
	radius := (rect.Width() + rect.Height()) // comfortably past the extent
	wedge := sc.coord.Overlay(sc.quadrant, radius)
	edge := sc.quadrant.Color()
	edge.A = 255
	for i := 1; i < len(wedge.Points); i++ {
		line := canvas.NewLine(edge)
		line.StrokeWidth = 2
		line.Position1 = view.worldToScreen(wedge.Points[i-1])
		line.Position2 = view.worldToScreen(wedge.Points[i])
		r.objects = append(r.objects, line)
	}

	// Holes at detail scale, colored by status.
	for _, h := range holes {
		pos := view.worldToScreen(h.Position())
		radius := float32(h.Radius) * view.scale
		if radius < 2.5 {
			radius = 2.5
		}
		circle := canvas.NewCircle(statusColor(h.Status))
		circle.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 160}
		circle.StrokeWidth = 1
		circle.Resize(fyne.NewSize(radius*2, radius*2))
		circle.Move(fyne.NewPos(pos.X-radius, pos.Y-radius))
		r.objects = append(r.objects, circle)
	}

	// Title in the corner.
	title := canvas.NewText(sc.quadrant.String(), color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	title.TextSize = 14
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Move(fyne.NewPos(8, 6))
	r.objects = append(r.objects, title)
}

func (r *sectorCanvasRenderer) Layout(size fyne.Size) {
	r.size = size
	r.rebuild()
}

func (r *sectorCanvasRenderer) Refresh() {
	r.size = r.sc.Size()
	r.rebuild()
	canvas.Refresh(r.sc)
}

func (r *sectorCanvasRenderer) Destroy()                     {}
func (r *sectorCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *sectorCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(300, 300) }
