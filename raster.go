package textatlas

import (
	"image"
	"image/draw"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	"github.com/gogpu/textatlas/internal/stroke"
)

// defaultMaskCacheSize is the soft limit for cached coverage masks.
const defaultMaskCacheSize = 1024

// strokeTolerance is the curve flattening tolerance for stroke
// expansion, in pixels.
const strokeTolerance = 0.1

// mask is a rasterized glyph: alpha coverage plus its placement
// relative to the glyph origin on the baseline. Left is the x
// coordinate of the bitmap's left edge; Top is the y coordinate of its
// top edge in the Y-up layout space. Dimensions are zero for
// whitespace and other invisible glyphs; callers skip those.
type mask struct {
	alpha  *image.Alpha
	width  int
	height int
	left   int
	top    int
}

// empty reports whether the mask has no coverage.
func (m *mask) empty() bool {
	return m.width == 0 || m.height == 0
}

// maskKey identifies a rasterized mask in the cache. strokeMilli is the
// stroke width in thousandths of a pixel, or -1 for the fill variant.
type maskKey struct {
	font        *Font
	gid         font.GID
	size        float32
	strokeMilli int32
}

// rasterizer converts glyph ids into coverage masks. Masks are cached
// by (font, glyph, size, stroke width); cached masks are read-only and
// shared between recomputations.
//
// rasterizer is not safe for concurrent use.
type rasterizer struct {
	masks *lruCache[maskKey, *mask]
	vec   vector.Rasterizer
}

func newRasterizer(cacheSize int) *rasterizer {
	return &rasterizer{
		masks: newLRUCache[maskKey, *mask](cacheSize),
	}
}

// fill rasterizes the fill outline of a glyph at the given pixel size.
func (r *rasterizer) fill(fnt *Font, face *font.Face, gid font.GID, size float32) *mask {
	key := maskKey{font: fnt, gid: gid, size: size, strokeMilli: -1}
	return r.masks.getOrCreate(key, func() *mask {
		path := glyphPath(face, gid, size)
		return r.rasterizePath(path)
	})
}

// strokeOutline rasterizes the stroked outline of a glyph: the glyph's
// contours expanded by the stroke width with a square cap, a round
// join, and a miter limit of zero.
func (r *rasterizer) strokeOutline(fnt *Font, face *font.Face, gid font.GID, size, width float32) *mask {
	if width <= 0 {
		return &mask{}
	}
	key := maskKey{
		font:        fnt,
		gid:         gid,
		size:        size,
		strokeMilli: int32(math.Round(float64(width) * 1000)),
	}
	return r.masks.getOrCreate(key, func() *mask {
		path := glyphPath(face, gid, size)
		if len(path) == 0 {
			return &mask{}
		}
		expander := stroke.NewExpander(stroke.Style{
			Width:      float64(width),
			Cap:        stroke.CapSquare,
			Join:       stroke.JoinRound,
			MiterLimit: 0,
		})
		expander.SetTolerance(strokeTolerance)
		return r.rasterizePath(expander.Expand(path))
	})
}

// glyphPath extracts a glyph's outline as a path in pixel space,
// Y up, origin at the baseline. Returns nil for glyphs without outline
// data (whitespace, and bitmap/color glyphs, which fonts validated at
// load are not expected to contain).
func glyphPath(face *font.Face, gid font.GID, size float32) []stroke.Element {
	data := face.GlyphData(gid)
	outline, ok := data.(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return nil
	}

	// Font units scale to pixels by size/upem.
	scale := float64(size) / float64(face.Upem())

	pt := func(p opentype.SegmentPoint) stroke.Point {
		return stroke.Point{X: float64(p.X) * scale, Y: float64(p.Y) * scale}
	}

	path := make([]stroke.Element, 0, len(outline.Segments)+8)
	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			// Font contours are implicitly closed.
			if open {
				path = append(path, stroke.Close{})
			}
			path = append(path, stroke.MoveTo{Point: pt(seg.Args[0])})
			open = true
		case opentype.SegmentOpLineTo:
			path = append(path, stroke.LineTo{Point: pt(seg.Args[0])})
		case opentype.SegmentOpQuadTo:
			path = append(path, stroke.QuadTo{
				Control: pt(seg.Args[0]),
				Point:   pt(seg.Args[1]),
			})
		case opentype.SegmentOpCubeTo:
			path = append(path, stroke.CubicTo{
				Control1: pt(seg.Args[0]),
				Control2: pt(seg.Args[1]),
				Point:    pt(seg.Args[2]),
			})
		}
	}
	if open {
		path = append(path, stroke.Close{})
	}
	return path
}

// rasterizePath fills a Y-up path into an alpha mask with integer
// placement. The bounding box is taken over all on-curve and control
// points, so it may overestimate curved edges by a transparent pixel.
func (r *rasterizer) rasterizePath(path []stroke.Element) *mask {
	if len(path) == 0 {
		return &mask{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p stroke.Point) {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	for _, el := range path {
		switch e := el.(type) {
		case stroke.MoveTo:
			grow(e.Point)
		case stroke.LineTo:
			grow(e.Point)
		case stroke.QuadTo:
			grow(e.Control)
			grow(e.Point)
		case stroke.CubicTo:
			grow(e.Control1)
			grow(e.Control2)
			grow(e.Point)
		}
	}
	if minX > maxX || minY > maxY {
		return &mask{}
	}

	left := int(math.Floor(minX))
	bottom := int(math.Floor(minY))
	right := int(math.Ceil(maxX))
	top := int(math.Ceil(maxY))

	width := right - left
	height := top - bottom
	if width <= 0 || height <= 0 {
		return &mask{}
	}

	// Rasterize with the Y axis flipped into image rows: pixel
	// (0, 0) is the top-left of the bounding box.
	fx := func(x float64) float32 { return float32(x - float64(left)) }
	fy := func(y float64) float32 { return float32(float64(top) - y) }

	r.vec.Reset(width, height)
	r.vec.DrawOp = draw.Src
	for _, el := range path {
		switch e := el.(type) {
		case stroke.MoveTo:
			r.vec.MoveTo(fx(e.Point.X), fy(e.Point.Y))
		case stroke.LineTo:
			r.vec.LineTo(fx(e.Point.X), fy(e.Point.Y))
		case stroke.QuadTo:
			r.vec.QuadTo(
				fx(e.Control.X), fy(e.Control.Y),
				fx(e.Point.X), fy(e.Point.Y),
			)
		case stroke.CubicTo:
			r.vec.CubeTo(
				fx(e.Control1.X), fy(e.Control1.Y),
				fx(e.Control2.X), fy(e.Control2.Y),
				fx(e.Point.X), fy(e.Point.Y),
			)
		case stroke.Close:
			r.vec.ClosePath()
		}
	}

	alpha := image.NewAlpha(image.Rect(0, 0, width, height))
	r.vec.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	return &mask{
		alpha:  alpha,
		width:  width,
		height: height,
		left:   left,
		top:    top,
	}
}
