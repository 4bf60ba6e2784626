package collision

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector2 is a position in the logical track space.
type Vector2 = mgl64.Vec2

// Vec creates a Vector2
func Vec(x, y float64) Vector2 {
	return Vector2{x, y}
}

// Rect is an axis-aligned collider defined by its centre and full extents.
// Track colliders are built once at load; the player's lookahead collider is
// recreated every frame.
type Rect struct {
	Position Vector2 // Centre of the rectangle
	Width    float64
	Height   float64
}

// NewRect creates a rectangle centred on (x, y)
func NewRect(x, y, width, height float64) Rect {
	return Rect{Position: Vec(x, y), Width: width, Height: height}
}

// At returns a copy of the rectangle moved to the given centre.
func (r Rect) At(position Vector2) Rect {
	r.Position = position
	return r
}

// Validate reports a zero-area or non-finite rectangle.
func (r Rect) Validate() error {
	if !(r.Width > 0) || !(r.Height > 0) {
		return fmt.Errorf("rect %s has non-positive extents", r)
	}
	if math.IsInf(r.Position.X(), 0) || math.IsInf(r.Position.Y(), 0) ||
		math.IsNaN(r.Position.X()) || math.IsNaN(r.Position.Y()) {
		return fmt.Errorf("rect %s has a non-finite centre", r)
	}
	return nil
}

// Min returns the lower-left corner.
func (r Rect) Min() Vector2 {
	return Vec(r.Position.X()-r.Width/2, r.Position.Y()-r.Height/2)
}

// Max returns the upper-right corner.
func (r Rect) Max() Vector2 {
	return Vec(r.Position.X()+r.Width/2, r.Position.Y()+r.Height/2)
}

// Overlap reports whether a and b intersect on both axes. Touching edges count.
func Overlap(a, b Rect) bool {
	return math.Abs(a.Position[0]-b.Position[0]) <= (a.Width+b.Width)/2 &&
		math.Abs(a.Position[1]-b.Position[1]) <= (a.Height+b.Height)/2
}

// Overlaps is the method form of Overlap.
func (r Rect) Overlaps(other Rect) bool {
	return Overlap(r, other)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g), %g x %g", r.Position.X(), r.Position.Y(), r.Width, r.Height)
}
