package stroke

// Element is one operation of a path. A path is a flat []Element; each
// contour starts with a MoveTo and may end with a Close.
type Element interface {
	isElement()
}

// MoveTo starts a new contour at Point.
type MoveTo struct{ Point Point }

func (MoveTo) isElement() {}

// LineTo draws a straight line to Point.
type LineTo struct{ Point Point }

func (LineTo) isElement() {}

// QuadTo draws a quadratic Bezier curve through Control to Point.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isElement() {}

// CubicTo draws a cubic Bezier curve through Control1 and Control2 to
// Point.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isElement() {}

// Close closes the current contour back to its MoveTo point.
type Close struct{}

func (Close) isElement() {}

// endPoint returns the endpoint of a path element, or the zero point
// for Close.
func endPoint(el Element) Point {
	switch e := el.(type) {
	case MoveTo:
		return e.Point
	case LineTo:
		return e.Point
	case QuadTo:
		return e.Point
	case CubicTo:
		return e.Point
	default:
		return Point{}
	}
}

// builder accumulates path elements.
type builder struct {
	elements []Element
}

func newBuilder() *builder {
	return &builder{elements: make([]Element, 0, 64)}
}

func (b *builder) isEmpty() bool {
	return len(b.elements) == 0
}

func (b *builder) moveTo(p Point) {
	b.elements = append(b.elements, MoveTo{Point: p})
}

func (b *builder) lineTo(p Point) {
	b.elements = append(b.elements, LineTo{Point: p})
}

func (b *builder) quadTo(c, p Point) {
	b.elements = append(b.elements, QuadTo{Control: c, Point: p})
}

func (b *builder) cubicTo(c1, c2, p Point) {
	b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: p})
}

func (b *builder) close() {
	b.elements = append(b.elements, Close{})
}

// appendPath appends another builder's elements verbatim.
func (b *builder) appendPath(other *builder) {
	b.elements = append(b.elements, other.elements...)
}
