package textatlas

import (
	"github.com/chewxy/math32"
	"github.com/go-text/typesetting/font"
)

// layoutText turns a shaped cluster stream into positioned glyph
// bitmaps. Glyph positions are in a Y-up space relative to the text
// object's origin, per the object's justification and anchor.
//
// Each glyph is rasterized at the effective size and colorized with its
// section's colors. Sections with an outline produce a stroked bitmap
// on the back layer before the fill bitmap, so outlines always render
// behind fills. Invisible glyphs (whitespace) advance the cursor but
// produce no bitmaps.
func layoutText(
	r *rasterizer,
	fnt *Font,
	face *font.Face,
	clusters []glyphCluster,
	metrics lineMetrics,
	txt *Text,
	size float32,
	scaleFactor float32,
) []glyphImage {
	lineHeight := metrics.LineHeight()

	var lines []line
	var cur line
	var x float32

	for _, cluster := range clusters {
		// Explicit breaks close the line; the newline itself renders
		// nothing and advances nothing.
		if cluster.Newline {
			cur.width = x
			lines = append(lines, cur)
			cur = line{}
			x = 0
			continue
		}

		section := &txt.Sections[cluster.Section]
		for _, g := range cluster.Glyphs {
			if o := section.Outline; o != nil {
				strokeWidth := o.Width / scaleFactor
				m := r.strokeOutline(fnt, face, g.GID, size, strokeWidth)
				if !m.empty() {
					cur.glyphs = append(cur.glyphs, glyphImage{
						X:     x + float32(m.left),
						Y:     metrics.Descent - float32(m.height) + float32(m.top),
						Layer: LayerOutline,
						Pix:   colorize(m, o.Color),
					})
				}
			}

			m := r.fill(fnt, face, g.GID, size)
			if !m.empty() {
				cur.glyphs = append(cur.glyphs, glyphImage{
					X:     x + float32(m.left),
					Y:     metrics.Descent - float32(m.height) + float32(m.top),
					Layer: LayerFill,
					Pix:   colorize(m, section.Color),
				})
			}

			x += g.Advance
		}
	}
	cur.width = x
	lines = append(lines, cur)

	// Block extents: width is the widest line, height spans the first
	// line's ascent to the last line's descent.
	var textWidth float32
	for i := range lines {
		textWidth = math32.Max(textWidth, lines[i].width)
	}
	textHeight := metrics.Ascent + metrics.Descent + float32(len(lines)-1)*lineHeight

	anchorX := -txt.Anchor.X*textWidth - textWidth/2
	anchorY := -txt.Anchor.Y*textHeight - textHeight/2

	var out []glyphImage
	for i := range lines {
		var padding float32
		switch txt.Justify {
		case JustifyCenter:
			padding = (textWidth - lines[i].width) / 2
		case JustifyRight:
			padding = textWidth - lines[i].width
		}

		// Lines are laid out top to bottom; the last line's baseline
		// sits at the block's bottom edge plus descent.
		lineY := anchorY + float32(len(lines)-1-i)*lineHeight

		for _, g := range lines[i].glyphs {
			g.X += anchorX + padding
			g.Y += lineY
			out = append(out, g)
		}
	}
	return out
}
