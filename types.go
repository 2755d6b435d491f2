package textatlas

import "image/color"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// ObjectID identifies one text object across recomputation passes.
// The identifier is assigned by the caller (an entity id, a widget id);
// the pipeline only requires it to be stable for the object's lifetime.
type ObjectID uint64

// Section is a run of text sharing one style. An ordered sequence of
// sections forms a text object's content; the order is also the
// rendering order within a line.
type Section struct {
	// Text is the literal section content. Newlines break lines;
	// sections are concatenated with no separator semantics beyond
	// what the text itself contains.
	Text string

	// Color is the fill color. The alpha channel is ignored; per-pixel
	// alpha comes from glyph coverage.
	Color color.RGBA

	// Outline, when non-nil, adds a stroked outline behind the fill.
	Outline *Outline
}

// Outline describes a stroked outline drawn behind a section's fill
// glyphs. The stroke uses a square cap, a round join, and a miter limit
// of zero.
type Outline struct {
	// Width is the stroke width in pixels, before display scaling.
	Width float32

	// Color is the outline color. The alpha channel is ignored.
	Color color.RGBA
}

// Style selects the font and pixel size for a whole text object.
type Style struct {
	// Font is the handle of the font to shape and rasterize with.
	Font FontHandle

	// Size is the requested pixel size. The effective shaping size is
	// Size divided by the pipeline's display scale factor.
	Size float32
}

// Justify specifies horizontal justification of lines within the text
// block's width.
type Justify int

const (
	// JustifyLeft aligns lines to the left edge (default).
	JustifyLeft Justify = iota
	// JustifyCenter centers each line horizontally.
	JustifyCenter
	// JustifyRight aligns lines to the right edge.
	JustifyRight
)

// String returns the string representation of the justification.
func (j Justify) String() string {
	switch j {
	case JustifyLeft:
		return "Left"
	case JustifyCenter:
		return "Center"
	case JustifyRight:
		return "Right"
	default:
		return unknownStr
	}
}

// Anchor is a normalized point in [-0.5, 0.5] per axis describing where
// the text block's origin sits relative to its bounding box. The zero
// value centers the block on the origin; (-0.5, -0.5) places the origin
// at the bottom-left corner.
type Anchor struct {
	X, Y float32
}

// Anchor presets, matching the usual sprite anchor conventions.
var (
	AnchorCenter      = Anchor{0, 0}
	AnchorBottomLeft  = Anchor{-0.5, -0.5}
	AnchorBottomRight = Anchor{0.5, -0.5}
	AnchorTopLeft     = Anchor{-0.5, 0.5}
	AnchorTopRight    = Anchor{0.5, 0.5}
	AnchorLeft        = Anchor{-0.5, 0}
	AnchorRight       = Anchor{0.5, 0}
	AnchorTop         = Anchor{0, 0.5}
	AnchorBottom      = Anchor{0, -0.5}
)

// Layer discriminates the two depth layers a glyph bitmap can land on.
// Outline glyphs render behind fill glyphs at the same position.
type Layer int

const (
	// LayerFill is the front layer holding the glyph fills.
	LayerFill Layer = iota
	// LayerOutline is the back layer holding stroked outlines.
	LayerOutline
)

// String returns the string representation of the layer.
func (l Layer) String() string {
	switch l {
	case LayerFill:
		return "Fill"
	case LayerOutline:
		return "Outline"
	default:
		return unknownStr
	}
}

// Z returns the depth offset downstream renderers use to order the
// layers: 0 for the fill layer, -0.001 for the outline layer behind it.
func (l Layer) Z() float32 {
	if l == LayerOutline {
		return -0.001
	}
	return 0
}

// Text is the full renderable content of one text object. The pipeline
// treats it as read-only.
type Text struct {
	Sections []Section
	Style    Style
	Justify  Justify
	Anchor   Anchor
}

// ComposedImage is one composed atlas bitmap plus its placement offset
// relative to the text object's origin. Z carries the layer ordering
// (see Layer.Z).
type ComposedImage struct {
	X, Y, Z float32
	Layer   Layer
	Pix     *Pixmap
}

// glyphImage is a single colorized glyph bitmap with its line-local
// placement. X and Y are later shifted by the anchor, justification and
// line offsets; Layer decides which atlas the bitmap composes into.
type glyphImage struct {
	X, Y  float32
	Layer Layer
	Pix   *Pixmap
}

// line accumulates the glyph images of one layout line. Width is the
// shaped advance sum up to, not including, the breaking newline.
type line struct {
	glyphs []glyphImage
	width  float32
}
