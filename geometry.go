package framecore

// Point represents a 2D point or vector in layout space.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size represents 2D dimensions in layout space.
type Size struct {
	Width, Height float32
}

// Sz is a convenience function to create a Size.
func Sz(w, h float32) Size {
	return Size{Width: w, Height: h}
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect creates a rectangle from origin coordinates and dimensions.
func NewRect(x, y, w, h float32) Rect {
	return Rect{Origin: Pt(x, y), Size: Sz(w, h)}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.IsEmpty()
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float32 {
	return r.Origin.X + r.Size.Width
}

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float32 {
	return r.Origin.Y + r.Size.Height
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.MaxX() &&
		p.Y >= r.Origin.Y && p.Y < r.MaxY()
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Origin.X < o.MaxX() && o.Origin.X < r.MaxX() &&
		r.Origin.Y < o.MaxY() && o.Origin.Y < r.MaxY()
}

// Translate returns the rectangle shifted by the given vector.
func (r Rect) Translate(d Point) Rect {
	return Rect{Origin: r.Origin.Add(d), Size: r.Size}
}

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle acts as the identity.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := minf(r.Origin.X, o.Origin.X)
	y0 := minf(r.Origin.Y, o.Origin.Y)
	x1 := maxf(r.MaxX(), o.MaxX())
	y1 := maxf(r.MaxY(), o.MaxY())
	return NewRect(x0, y0, x1-x0, y1-y0)
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
