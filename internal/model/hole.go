package model

import "github.com/google/uuid"

// HoleStatus represents the inspection state of a single hole.
type HoleStatus int

const (
	StatusPending    HoleStatus = iota // Not yet inspected
	StatusProcessing                   // Probe currently measuring
	StatusQualified                    // Measured within tolerance
	StatusDefective                    // Measured out of tolerance
	StatusBlind                        // Hole could not be probed
	StatusTieRod                       // Tie-rod position, excluded from measurement
)

func (s HoleStatus) String() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusQualified:
		return "Qualified"
	case StatusDefective:
		return "Defective"
	case StatusBlind:
		return "Blind"
	case StatusTieRod:
		return "Tie Rod"
	default:
		return "Pending"
	}
}

// Terminal reports whether the status is a final inspection outcome.
// Terminal statuses are never overwritten by the detection run.
func (s HoleStatus) Terminal() bool {
	switch s {
	case StatusQualified, StatusDefective, StatusBlind, StatusTieRod:
		return true
	}
	return false
}

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Hole represents a single drilled hole on the tube sheet.
// Position and radius are fixed once loaded; only Status mutates
// during an inspection run.
type Hole struct {
	ID     string     `json:"id"`
	X      float64    `json:"x"` // mm
	Y      float64    `json:"y"` // mm
	Radius float64    `json:"radius"` // mm
	Status HoleStatus `json:"status"`
}

func NewHole(x, y, radius float64) *Hole {
	return &Hole{
		ID:     uuid.New().String()[:8],
		X:      x,
		Y:      y,
		Radius: radius,
		Status: StatusPending,
	}
}

// Position returns the hole center as a point.
func (h *Hole) Position() Point2D {
	return Point2D{X: h.X, Y: h.Y}
}

// Snapshot is the ordered hole collection handed to the sector coordinator.
// The slice and the holes it points to are owned by whoever loaded them;
// the coordinator mutates hole statuses in place but never adds or removes.
type Snapshot []*Hole

// Find returns the hole with the given ID, or nil.
func (s Snapshot) Find(id string) *Hole {
	for _, h := range s {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// Bounds returns the min and max corners of all hole centers.
// An empty snapshot yields two zero points.
func (s Snapshot) Bounds() (min, max Point2D) {
	if len(s) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: s[0].X, Y: s[0].Y}
	max = min
	for _, h := range s[1:] {
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
	return min, max
}

// StatusChangeEvent is pushed by the detection engine when a hole's
// inspection state changes. Generation tags the coordinator load the
// event was produced against; stale events are dropped.
type StatusChangeEvent struct {
	HoleID     string
	NewStatus  HoleStatus
	Generation uint64
}

// Plate holds metadata about the loaded tube sheet.
type Plate struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
	Source string  `json:"source,omitempty"` // Import file path
}
