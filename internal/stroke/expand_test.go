package stroke

import (
	"math"
	"testing"
)

// pathBounds returns the bounding box over all points of a path,
// control points included.
func pathBounds(elements []Element) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(p Point) {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	for _, el := range elements {
		switch e := el.(type) {
		case MoveTo:
			grow(e.Point)
		case LineTo:
			grow(e.Point)
		case QuadTo:
			grow(e.Control)
			grow(e.Point)
		case CubicTo:
			grow(e.Control1)
			grow(e.Control2)
			grow(e.Point)
		}
	}
	return
}

func countOps(elements []Element) (moves, closes int) {
	for _, el := range elements {
		switch el.(type) {
		case MoveTo:
			moves++
		case Close:
			closes++
		}
	}
	return
}

func TestExpand_SimpleLine(t *testing.T) {
	e := NewExpander(Style{Width: 2, Cap: CapButt, Join: JoinMiter, MiterLimit: 4})
	out := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 0}},
	})

	if len(out) == 0 {
		t.Fatal("expanded path is empty")
	}

	// A 2-wide horizontal stroke with butt caps covers [0,10]x[-1,1].
	minX, minY, maxX, maxY := pathBounds(out)
	const eps = 1e-9
	if math.Abs(minX-0) > eps || math.Abs(maxX-10) > eps {
		t.Errorf("x bounds [%f, %f], want [0, 10]", minX, maxX)
	}
	if math.Abs(minY+1) > eps || math.Abs(maxY-1) > eps {
		t.Errorf("y bounds [%f, %f], want [-1, 1]", minY, maxY)
	}
}

func TestExpand_SquareCapExtends(t *testing.T) {
	e := NewExpander(Style{Width: 2, Cap: CapSquare, Join: JoinRound})
	out := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 0}},
	})

	// Square caps extend width/2 beyond both endpoints.
	minX, _, maxX, _ := pathBounds(out)
	const eps = 1e-9
	if math.Abs(minX+1) > eps || math.Abs(maxX-11) > eps {
		t.Errorf("x bounds [%f, %f], want [-1, 11]", minX, maxX)
	}
}

func TestExpand_RoundCapStaysInRadius(t *testing.T) {
	e := NewExpander(Style{Width: 2, Cap: CapRound, Join: JoinRound})
	out := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 0}},
	})

	minX, minY, maxX, maxY := pathBounds(out)
	// Bezier control points may poke slightly past the true circle.
	const slack = 0.2
	if minX < -1-slack || maxX > 11+slack {
		t.Errorf("x bounds [%f, %f] exceed cap radius", minX, maxX)
	}
	if minY < -1-slack || maxY > 1+slack {
		t.Errorf("y bounds [%f, %f] exceed stroke width", minY, maxY)
	}
}

func TestExpand_ClosedSquare(t *testing.T) {
	e := NewExpander(Style{Width: 2, Join: JoinRound})
	out := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 10}},
		LineTo{Point: Point{X: 0, Y: 10}},
		Close{},
	})

	// A closed contour strokes to two contours: outer boundary plus
	// inner hole.
	moves, closes := countOps(out)
	if moves != 2 || closes != 2 {
		t.Errorf("got %d contours with %d closes, want 2 and 2", moves, closes)
	}

	minX, minY, maxX, maxY := pathBounds(out)
	const slack = 0.2
	if minX < -1-slack || minY < -1-slack || maxX > 11+slack || maxY > 11+slack {
		t.Errorf("bounds [%f,%f]x[%f,%f] exceed stroked square", minX, maxX, minY, maxY)
	}
	if maxX < 10.9 || maxY < 10.9 {
		t.Errorf("bounds [%f,%f]x[%f,%f] miss the outer edge", minX, maxX, minY, maxY)
	}
}

func TestExpand_MultipleSubpaths(t *testing.T) {
	e := NewExpander(Style{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4})
	out := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 5, Y: 0}},
		MoveTo{Point: Point{X: 0, Y: 10}},
		LineTo{Point: Point{X: 5, Y: 10}},
	})

	moves, _ := countOps(out)
	if moves != 2 {
		t.Errorf("got %d contours, want 2", moves)
	}
}

func TestExpand_Empty(t *testing.T) {
	e := NewExpander(Style{Width: 2})

	if out := e.Expand(nil); len(out) != 0 {
		t.Errorf("nil path expanded to %d elements", len(out))
	}
	// A bare MoveTo has no geometry to stroke.
	out := e.Expand([]Element{MoveTo{Point: Point{X: 3, Y: 4}}})
	if len(out) != 0 {
		t.Errorf("lone MoveTo expanded to %d elements", len(out))
	}
}

func TestExpand_ZeroLengthSegmentsSkipped(t *testing.T) {
	e := NewExpander(Style{Width: 2, Join: JoinRound})
	out := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 0}},
	})

	minX, _, maxX, _ := pathBounds(out)
	if math.IsNaN(minX) || math.IsNaN(maxX) {
		t.Fatal("zero-length segment produced NaN geometry")
	}
	if len(out) == 0 {
		t.Fatal("expanded path is empty")
	}
}

func TestExpand_Curves(t *testing.T) {
	e := NewExpander(Style{Width: 2, Cap: CapButt, Join: JoinRound})
	e.SetTolerance(0.1)

	quad := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		QuadTo{Control: Point{X: 5, Y: 10}, Point: Point{X: 10, Y: 0}},
	})
	if len(quad) < 4 {
		t.Errorf("stroked quadratic has %d elements, want several", len(quad))
	}

	cubic := e.Expand([]Element{
		MoveTo{Point: Point{X: 0, Y: 0}},
		CubicTo{
			Control1: Point{X: 3, Y: 10},
			Control2: Point{X: 7, Y: 10},
			Point:    Point{X: 10, Y: 0},
		},
	})
	if len(cubic) < 4 {
		t.Errorf("stroked cubic has %d elements, want several", len(cubic))
	}

	// The stroked curve encloses the curve's extremes.
	_, _, _, maxY := pathBounds(cubic)
	if maxY < 7 {
		t.Errorf("stroked cubic max y %f, want above the curve apex", maxY)
	}
}

func TestFlattenQuad(t *testing.T) {
	pts := flattenQuad(Point{X: 0, Y: 0}, Point{X: 5, Y: 10}, Point{X: 10, Y: 0}, 0.1)

	if len(pts) < 3 {
		t.Fatalf("got %d points, want a subdivided polyline", len(pts))
	}
	if pts[0] != (Point{X: 0, Y: 0}) {
		t.Errorf("first point %+v, want origin", pts[0])
	}
	if last := pts[len(pts)-1]; last != (Point{X: 10, Y: 0}) {
		t.Errorf("last point %+v, want curve end", last)
	}
	// x must be monotonic for this curve.
	for i := 1; i < len(pts); i++ {
		if pts[i].X < pts[i-1].X {
			t.Fatalf("point %d: x %f decreased", i, pts[i].X)
		}
	}
}

func TestFlattenCubic(t *testing.T) {
	pts := flattenCubic(
		Point{X: 0, Y: 0}, Point{X: 0, Y: 5},
		Point{X: 10, Y: 5}, Point{X: 10, Y: 0},
		0.1,
	)
	if len(pts) < 3 {
		t.Fatalf("got %d points, want a subdivided polyline", len(pts))
	}
	if pts[0] != (Point{}) || pts[len(pts)-1] != (Point{X: 10, Y: 0}) {
		t.Errorf("endpoints %+v .. %+v, want (0,0) .. (10,0)", pts[0], pts[len(pts)-1])
	}
}

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"above midpoint", Point{X: 5, Y: 3}, Point{}, Point{X: 10, Y: 0}, 3},
		{"beyond end", Point{X: 13, Y: 0}, Point{}, Point{X: 10, Y: 0}, 3},
		{"before start", Point{X: -4, Y: 0}, Point{}, Point{X: 10, Y: 0}, 4},
		{"degenerate segment", Point{X: 3, Y: 4}, Point{}, Point{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := distanceToSegment(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distanceToSegment: got %f, want %f", got, tt.want)
			}
		})
	}
}
