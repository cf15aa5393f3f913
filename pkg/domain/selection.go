package domain

import (
	"fmt"
	"math"
	"strings"
)

// SelectionType is the kind of geometric result an automaton builds toward.
type SelectionType int8

const (
	// NoSelection marks automatons that never produce a selection (pure tracking).
	NoSelection SelectionType = iota - 1
	// PointSelection selects a single point.
	PointSelection
	// RectSelection selects a rectangle (2 points).
	RectSelection
	// PolygonSelection selects a polygon (many points).
	PolygonSelection
)

var selectionTypeNames = map[SelectionType]string{
	NoSelection:      "none",
	PointSelection:   "point",
	RectSelection:    "rect",
	PolygonSelection: "polygon",
}

func (t SelectionType) String() string {
	if name, ok := selectionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SelectionType(%d)", int8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t SelectionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SelectionType) UnmarshalText(b []byte) error {
	parsed, err := ParseSelectionType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseSelectionType resolves a selection type by name.
func ParseSelectionType(s string) (SelectionType, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, name := range selectionTypeNames {
		if name == want {
			return t, nil
		}
	}
	return NoSelection, fmt.Errorf("unknown selection type %q", s)
}

// Point is a device (pixel or cell) position. The automatons never interpret it.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PointF is a position in host (data) coordinates.
type PointF struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p PointF) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// RectF is an axis-aligned rectangle in host coordinates.
// Normalized rectangles have non-negative Width and Height.
type RectF struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints returns the normalized rectangle spanned by two corners.
func RectFromPoints(a, b PointF) RectF {
	return RectF{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Selection is the completed result reported by a consumer on End.
type Selection struct {
	Type   SelectionType `json:"type"`
	Points []PointF      `json:"points"`
}

// Point returns the selected point of a PointSelection.
func (s Selection) Point() (PointF, bool) {
	if s.Type != PointSelection || len(s.Points) == 0 {
		return PointF{}, false
	}
	return s.Points[0], true
}

// Rect returns the normalized rectangle of a RectSelection, spanned by the
// first and last buffered corner.
func (s Selection) Rect() (RectF, bool) {
	if s.Type != RectSelection || len(s.Points) < 2 {
		return RectF{}, false
	}
	return RectFromPoints(s.Points[0], s.Points[len(s.Points)-1]), true
}
