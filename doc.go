// Package textatlas renders styled, multi-section, multi-line text into
// composed RGBA bitmaps for real-time rendering pipelines.
//
// The pipeline turns a font, a sequence of styled text sections, and a
// pixel size into at most two atlas images per text object: a fill layer
// and, when any section requests one, a stroked outline layer rendered
// behind it.
//
//   - Shaping: sections are shaped as one continuous run via
//     go-text/typesetting (HarfBuzz), with every glyph cluster tagged by
//     its originating section.
//   - Rasterization: glyph outlines are filled (or stroke-expanded and
//     then filled) into alpha coverage masks.
//   - Layout: lines break on explicit newlines; each line is justified
//     and the whole block is placed relative to a normalized anchor.
//   - Compositing: per layer, glyph bitmaps are alpha-over blended into
//     a minimal bounding atlas image.
//
// # Example usage
//
//	data, _ := os.ReadFile("Roboto-Regular.ttf")
//	fnt, err := textatlas.NewFont(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := textatlas.NewFontStore()
//	handle := store.Add(fnt)
//
//	p := textatlas.New(store)
//	p.Upsert(1, &textatlas.Text{
//	    Sections: []textatlas.Section{{
//	        Text:  "Hello\nWorld",
//	        Color: color.RGBA{R: 255, A: 255},
//	    }},
//	    Style: textatlas.Style{Font: handle, Size: 32},
//	})
//	p.Update()
//
//	for _, img := range p.Images(1) {
//	    // img.Pix is the composed RGBA bitmap, (img.X, img.Y, img.Z)
//	    // is its placement offset relative to the object origin.
//	    _ = img
//	}
//
// # Coordinate System
//
// Layout runs in a Y-up coordinate space: glyph and atlas offsets grow
// upward, matching font metrics. Pixel rows inside a Pixmap grow downward
// as usual; the compositor performs the flip.
//
// # Concurrency
//
// A Pipeline is owned by a single goroutine; run one Update pass per
// frame. Distinct Pipeline instances share nothing and may run in
// parallel. Font values are immutable and safe to share.
package textatlas
