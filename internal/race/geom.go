package race

// Point is a position in world pixels.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rect is an axis-aligned pixel rectangle, half-open on the right and bottom.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// RectAt builds the integer rectangle anchored at (x, y), truncating the
// anchor the same way sprite blits do.
func RectAt(x, y float64, w, h int) Rect {
	x0, y0 := int(x), int(y)
	return Rect{X0: x0, Y0: y0, X1: x0 + w, Y1: y0 + h}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= float64(r.X0) && p.X < float64(r.X1) &&
		p.Y >= float64(r.Y0) && p.Y < float64(r.Y1)
}

func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
