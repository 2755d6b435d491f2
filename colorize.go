package textatlas

import "image/color"

// colorize converts a coverage mask into an RGBA pixmap with flat
// color channels: every pixel carries the section color's R, G and B
// unchanged and the coverage value as alpha. Colors are not
// premultiplied, so fully transparent pixels still hold the color,
// which keeps bilinear sampling at glyph edges from bleeding toward
// black.
func colorize(m *mask, c color.RGBA) *Pixmap {
	p := NewPixmap(m.width, m.height)
	if m.empty() {
		return p
	}
	cov := m.alpha.Pix
	stride := m.alpha.Stride
	dst := p.data
	for y := 0; y < m.height; y++ {
		row := cov[y*stride : y*stride+m.width]
		for x, a := range row {
			i := (y*m.width + x) * 4
			dst[i] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = a
		}
	}
	return p
}
