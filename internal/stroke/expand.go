// Package stroke converts stroked paths into fillable outlines.
//
// Expansion builds two offset paths, forward at +width/2 and backward
// at -width/2 perpendicular to the tangent, and welds them together
// with caps and joins, following the tiny-skia/kurbo approach. Curves
// are flattened to line segments within a configurable tolerance before
// offsetting.
//
// textatlas uses this to render glyph outline strokes: the glyph's
// contours are expanded with a square cap, a round join, and a miter
// limit of zero, then filled like any other path.
package stroke

import "math"

// Cap specifies the shape of open stroke endpoints.
type Cap int

const (
	// CapButt ends the stroke flat, exactly at the endpoint.
	CapButt Cap = iota
	// CapRound ends the stroke with a semicircle.
	CapRound
	// CapSquare ends the stroke with a half-square extending width/2
	// beyond the endpoint.
	CapSquare
)

// Join specifies how stroke segments connect at corners.
type Join int

const (
	// JoinMiter connects segments with a sharp corner, limited by the
	// miter limit.
	JoinMiter Join = iota
	// JoinRound connects segments with a circular arc.
	JoinRound
	// JoinBevel connects segments with a straight edge.
	JoinBevel
)

// Style describes a stroke.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// Expander converts stroked paths to fill paths.
type Expander struct {
	style     Style
	tolerance float64

	forward  *builder
	backward *builder
	output   *builder

	startPt   Point
	startNorm Vec
	startTan  Vec
	lastPt    Point
	lastTan   Vec
	lastNorm  Vec // normal at lastPt, scaled by radius; feeds the end cap

	joinThresh float64
}

// NewExpander creates an expander for the given style.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:     style,
		tolerance: 0.25,
	}
}

// SetTolerance sets the curve flattening tolerance. Smaller values
// yield more segments and a closer fit.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand converts a stroked path into a fill path tracing the stroke's
// boundary.
func (e *Expander) Expand(elements []Element) []Element {
	e.reset()

	for _, el := range elements {
		switch elem := el.(type) {
		case MoveTo:
			e.finish()
			e.startPt = elem.Point
			e.lastPt = elem.Point
		case LineTo:
			if elem.Point != e.lastPt {
				tangent := elem.Point.Sub(e.lastPt)
				e.doJoin(tangent)
				e.lastTan = tangent
				e.doLine(tangent, elem.Point)
			}
		case QuadTo:
			if elem.Control != e.lastPt || elem.Point != e.lastPt {
				e.doFlattened(flattenQuad(e.lastPt, elem.Control, elem.Point, e.tolerance))
			}
		case CubicTo:
			if elem.Control1 != e.lastPt || elem.Control2 != e.lastPt || elem.Point != e.lastPt {
				e.doFlattened(flattenCubic(e.lastPt, elem.Control1, elem.Control2, elem.Point, e.tolerance))
			}
		case Close:
			if e.lastPt != e.startPt {
				tangent := e.startPt.Sub(e.lastPt)
				e.doJoin(tangent)
				e.lastTan = tangent
				e.doLine(tangent, e.startPt)
			}
			e.finishClosed()
		}
	}

	e.finish()
	return e.output.elements
}

func (e *Expander) reset() {
	e.forward = newBuilder()
	e.backward = newBuilder()
	e.output = newBuilder()
	e.startPt = Point{}
	e.startNorm = Vec{}
	e.startTan = Vec{}
	e.lastPt = Point{}
	e.lastTan = Vec{}
	e.lastNorm = Vec{}
	e.joinThresh = 2.0 * e.tolerance / e.style.Width
}

// doFlattened runs join+line over a flattened polyline.
func (e *Expander) doFlattened(points []Point) {
	for i := 1; i < len(points); i++ {
		tangent := points[i].Sub(points[i-1])
		if tangent.LengthSquared() > 1e-10 {
			e.doJoin(tangent)
			e.lastTan = tangent
			e.doLine(tangent, points[i])
		}
	}
}

// doJoin connects the incoming segment (tangent tan0) to the previous
// one, or starts the offset paths for the first segment.
func (e *Expander) doJoin(tan0 Vec) {
	scale := 0.5 * e.style.Width / tan0.Length()
	norm := tan0.Perp().Scale(scale)
	p0 := e.lastPt

	if e.forward.isEmpty() {
		e.forward.moveTo(p0.Add(norm.Neg()))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Near-collinear segments skip the join shape but still connect
	// both offset paths, otherwise gaps appear where tangents repeat.
	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case JoinBevel:
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
	case JoinMiter:
		e.miterJoin(p0, norm, ab, cd, cross, dot, hypot)
	case JoinRound:
		e.roundJoinAt(p0, norm, cross, dot)
	}
}

// miterJoin applies a miter join, falling back to a bevel when the
// miter limit is exceeded.
func (e *Expander) miterJoin(p0 Point, norm, ab, cd Vec, cross, dot, hypot float64) {
	miterLimitSq := e.style.MiterLimit * e.style.MiterLimit
	if 2.0*hypot < (hypot+dot)*miterLimitSq {
		lastScale := 0.5 * e.style.Width / ab.Length()
		lastNorm := ab.Perp().Scale(lastScale)

		if cross > 0.0 {
			fpLast := p0.Add(lastNorm.Neg())
			fpThis := p0.Add(norm.Neg())
			h := ab.Cross(fpThis.Sub(fpLast)) / cross
			miterPt := fpThis.Add(cd.Scale(-h))
			e.forward.lineTo(miterPt)
			e.backward.lineTo(p0)
		} else if cross < 0.0 {
			fpLast := p0.Add(lastNorm)
			fpThis := p0.Add(norm)
			h := ab.Cross(fpThis.Sub(fpLast)) / cross
			miterPt := fpThis.Add(cd.Scale(-h))
			e.backward.lineTo(miterPt)
			e.forward.lineTo(p0)
		}
	}
	e.forward.lineTo(p0.Add(norm.Neg()))
	e.backward.lineTo(p0.Add(norm))
}

// roundJoinAt applies a round join on the outer side of the turn.
func (e *Expander) roundJoinAt(p0 Point, norm Vec, cross, dot float64) {
	lastScale := 0.5 * e.style.Width / e.lastTan.Length()
	lastNorm := e.lastTan.Perp().Scale(lastScale)

	angle := math.Atan2(cross, dot)
	if angle > 0.0 {
		e.backward.lineTo(p0.Add(norm))
		e.arc(e.forward, p0, lastNorm.Neg(), angle)
	} else {
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.arc(e.backward, p0, lastNorm.Neg(), -angle)
	}
}

// doLine extends both offset paths along a line segment.
func (e *Expander) doLine(tangent Vec, p1 Point) {
	scale := 0.5 * e.style.Width / tangent.Length()
	norm := tangent.Perp().Scale(scale)

	e.forward.lineTo(p1.Add(norm.Neg()))
	e.backward.lineTo(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish completes an open subpath with end caps.
func (e *Expander) finish() {
	if e.forward.isEmpty() {
		return
	}

	e.output.appendPath(e.forward)

	// End cap. lastNorm points toward the backward path; the cap wants
	// the normal pointing from the forward path, hence the negation.
	if len(e.backward.elements) > 0 {
		e.applyCap(e.lastPt, e.lastNorm.Neg(), false)
	}

	e.appendReversed(e.backward)
	e.applyCap(e.startPt, e.startNorm, true)

	e.forward = newBuilder()
	e.backward = newBuilder()
}

// finishClosed completes a closed subpath: the forward path closes on
// itself and the backward path forms a separate reversed contour.
func (e *Expander) finishClosed() {
	if e.forward.isEmpty() {
		return
	}

	e.doJoin(e.startTan)

	e.output.appendPath(e.forward)
	e.output.close()

	backElems := e.backward.elements
	if len(backElems) > 0 {
		e.output.moveTo(endPoint(backElems[len(backElems)-1]))
	}
	e.appendReversed(e.backward)
	e.output.close()

	e.forward = newBuilder()
	e.backward = newBuilder()
}

// applyCap draws the configured cap at center, with norm pointing from
// the side just drawn toward the side being connected.
func (e *Expander) applyCap(center Point, norm Vec, closePath bool) {
	switch e.style.Cap {
	case CapButt:
		if closePath {
			e.output.close()
		} else {
			e.output.lineTo(center.Add(norm.Neg()))
		}

	case CapRound:
		e.arc(e.output, center, norm, math.Pi)
		if closePath {
			e.output.close()
		}

	case CapSquare:
		p1 := capCorner(center, norm, Point{X: 1, Y: 1})
		p2 := capCorner(center, norm, Point{X: -1, Y: 1})
		e.output.lineTo(p1)
		e.output.lineTo(p2)
		if closePath {
			e.output.close()
		} else {
			e.output.lineTo(capCorner(center, norm, Point{X: -1, Y: 0}))
		}
	}
}

// arc appends a circular arc of the given signed angle starting at
// center+norm, approximated by cubic Beziers of at most 90 degrees.
func (e *Expander) arc(out *builder, center Point, norm Vec, angle float64) {
	numSegments := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if numSegments < 1 {
		numSegments = 1
	}

	angleStep := angle / float64(numSegments)
	currentAngle := norm.Angle()
	radius := norm.Length()

	for i := 0; i < numSegments; i++ {
		arcSegment(out, center, radius, currentAngle, currentAngle+angleStep)
		currentAngle += angleStep
	}
}

// arcSegment appends one cubic Bezier approximating an arc of at most
// 90 degrees from angle a0 to a1.
func arcSegment(out *builder, center Point, radius, a0, a1 float64) {
	da := a1 - a0
	alpha := math.Sin(da) * (math.Sqrt(4+3*math.Tan(da/2)*math.Tan(da/2)) - 1) / 3

	cos0, sin0 := math.Cos(a0), math.Sin(a0)
	cos1, sin1 := math.Cos(a1), math.Sin(a1)

	p1 := Point{X: center.X + radius*cos0, Y: center.Y + radius*sin0}
	p2 := Point{X: center.X + radius*cos1, Y: center.Y + radius*sin1}

	c1 := Point{X: p1.X - alpha*radius*sin0, Y: p1.Y + alpha*radius*cos0}
	c2 := Point{X: p2.X + alpha*radius*sin1, Y: p2.Y - alpha*radius*cos1}

	out.cubicTo(c1, c2, p2)
}

// capCorner maps a unit-square corner through the cap's frame:
// [norm.X, norm.Y; -norm.Y, norm.X] plus center.
func capCorner(center Point, norm Vec, p Point) Point {
	return Point{
		X: norm.X*p.X - norm.Y*p.Y + center.X,
		Y: norm.Y*p.X + norm.X*p.Y + center.Y,
	}
}

// appendReversed appends path elements in reverse order, walking
// endpoints backwards.
func (e *Expander) appendReversed(pb *builder) {
	elems := pb.elements
	for i := len(elems) - 1; i >= 1; i-- {
		endPt := endPoint(elems[i-1])
		switch el := elems[i].(type) {
		case LineTo:
			e.output.lineTo(endPt)
		case QuadTo:
			e.output.quadTo(el.Control, endPt)
		case CubicTo:
			e.output.cubicTo(el.Control2, el.Control1, endPt)
		}
	}
}

// flattenQuad flattens a quadratic Bezier to a polyline within tol.
func flattenQuad(p0, p1, p2 Point, tol float64) []Point {
	points := []Point{p0}
	var rec func(p0, p1, p2 Point)
	rec = func(p0, p1, p2 Point) {
		if distanceToSegment(p1, p0, p2) < tol {
			points = append(points, p2)
			return
		}
		q0 := p0.Lerp(p1, 0.5)
		q1 := p1.Lerp(p2, 0.5)
		q2 := q0.Lerp(q1, 0.5)
		rec(p0, q0, q2)
		rec(q2, q1, p2)
	}
	rec(p0, p1, p2)
	return points
}

// flattenCubic flattens a cubic Bezier to a polyline within tol using
// de Casteljau subdivision.
func flattenCubic(p0, p1, p2, p3 Point, tol float64) []Point {
	points := []Point{p0}
	var rec func(p0, p1, p2, p3 Point)
	rec = func(p0, p1, p2, p3 Point) {
		d1 := distanceToSegment(p1, p0, p3)
		d2 := distanceToSegment(p2, p0, p3)
		if math.Max(d1, d2) < tol {
			points = append(points, p3)
			return
		}
		q0 := p0.Lerp(p1, 0.5)
		q1 := p1.Lerp(p2, 0.5)
		q2 := p2.Lerp(p3, 0.5)
		r0 := q0.Lerp(q1, 0.5)
		r1 := q1.Lerp(q2, 0.5)
		s := r0.Lerp(r1, 0.5)
		rec(p0, q0, r0, s)
		rec(s, r1, q2, p3)
	}
	rec(p0, p1, p2, p3)
	return points
}
