package textatlas

import (
	"image"
	"image/png"
	"io"
	"os"
)

// Pixmap is a rectangular RGBA pixel buffer, 4 bytes per pixel in
// row-major order. It is the interchange format between the glyph
// colorizer, the atlas compositor, and downstream texture uploads.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a zero-initialized (fully transparent) pixmap with
// the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap in pixels.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap in pixels.
func (p *Pixmap) Height() int {
	return p.height
}

// Empty reports whether the pixmap has no pixels.
func (p *Pixmap) Empty() bool {
	return p.width == 0 || p.height == 0
}

// Data returns the raw pixel data (RGBA, row-major). The slice aliases
// the pixmap's storage; mutating it mutates the pixmap.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// RGBA returns an image.RGBA view sharing the pixmap's storage.
func (p *Pixmap) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// EncodePNG writes the pixmap as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.RGBA())
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return p.EncodePNG(f)
}
