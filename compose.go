package textatlas

import (
	"github.com/chewxy/math32"
)

// composeImages flattens positioned glyph bitmaps into at most two
// atlas images, one per layer. The outline atlas comes first so
// downstream consumers draw it before (behind) the fill atlas.
func composeImages(glyphs []glyphImage) []ComposedImage {
	var outline, fill []glyphImage
	for _, g := range glyphs {
		if g.Layer == LayerOutline {
			outline = append(outline, g)
		} else {
			fill = append(fill, g)
		}
	}

	var out []ComposedImage
	if img, ok := composeLayer(outline, LayerOutline); ok {
		out = append(out, img)
	}
	if img, ok := composeLayer(fill, LayerFill); ok {
		out = append(out, img)
	}
	return out
}

// composeLayer blends one layer's glyph bitmaps into a single atlas
// sized to their joint bounding box. The returned offset is the
// bottom-left corner of the box in the glyphs' Y-up space. Returns
// false when the layer has no glyphs.
func composeLayer(glyphs []glyphImage, layer Layer) (ComposedImage, bool) {
	if len(glyphs) == 0 {
		return ComposedImage{}, false
	}

	xMin := math32.Inf(1)
	xMax := math32.Inf(-1)
	yMin := math32.Inf(1)
	yMax := math32.Inf(-1)
	for _, g := range glyphs {
		xMin = math32.Min(xMin, g.X)
		xMax = math32.Max(xMax, g.X+float32(g.Pix.Width()))
		yMin = math32.Min(yMin, g.Y)
		yMax = math32.Max(yMax, g.Y+float32(g.Pix.Height()))
	}

	totalWidth := int(math32.Ceil(xMax - xMin))
	totalHeight := int(math32.Ceil(yMax - yMin))

	atlas := NewPixmap(totalWidth, totalHeight)
	dst := atlas.data

	for _, g := range glyphs {
		w := g.Pix.Width()
		h := g.Pix.Height()
		src := g.Pix.data

		// Glyph positions are Y-up with the offset at the bitmap's
		// bottom edge; atlas rows run top-down.
		destX := int(math32.Round(g.X - xMin))
		destY := totalHeight - h - int(math32.Round(g.Y-yMin))

		for sy := 0; sy < h; sy++ {
			for sx := 0; sx < w; sx++ {
				si := (sy*w + sx) * 4
				di := ((destY+sy)*totalWidth + destX + sx) * 4

				srcA := int(src[si+3])
				dstA := int(dst[di+3])

				dst[di] = uint8((int(src[si])*(255-dstA) + int(dst[di])*(255-srcA)) / 255)
				dst[di+1] = uint8((int(src[si+1])*(255-dstA) + int(dst[di+1])*(255-srcA)) / 255)
				dst[di+2] = uint8((int(src[si+2])*(255-dstA) + int(dst[di+2])*(255-srcA)) / 255)
				dst[di+3] = uint8(255 - (255-srcA)*(255-dstA)/255)
			}
		}
	}

	return ComposedImage{
		X:     xMin,
		Y:     yMin,
		Z:     layer.Z(),
		Layer: layer,
		Pix:   atlas,
	}, true
}
