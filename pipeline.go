package textatlas

import (
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xlanguage "golang.org/x/text/language"
)

// config holds pipeline construction options.
type config struct {
	language      language.Language
	scaleFactor   float32
	maskCacheSize int
}

// Option configures a Pipeline at construction time.
type Option func(*config)

// WithLanguage sets the language used for shaping. The default is
// English.
func WithLanguage(tag xlanguage.Tag) Option {
	return func(c *config) {
		c.language = language.NewLanguage(tag.String())
	}
}

// WithScaleFactor sets the initial display scale factor. Non-positive
// values are ignored. The default is 1.
func WithScaleFactor(f float32) Option {
	return func(c *config) {
		if f > 0 {
			c.scaleFactor = f
		}
	}
}

// WithMaskCacheSize sets the soft limit on cached glyph coverage
// masks. Non-positive values are ignored.
func WithMaskCacheSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maskCacheSize = n
		}
	}
}

// Pipeline renders text objects into composed RGBA atlas images and
// caches the result per object. Objects are registered with Upsert,
// recomputed by Update and read back with Images; recomputation only
// happens for objects whose inputs changed since the last Update.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	lookup FontLookup

	language    language.Language
	scaleFactor float32

	shaper shaping.HarfbuzzShaper
	raster *rasterizer

	texts   map[ObjectID]*Text
	images  map[ObjectID][]ComposedImage
	pending map[ObjectID]struct{}
}

// New creates a pipeline that resolves font handles through lookup.
func New(lookup FontLookup, opts ...Option) *Pipeline {
	cfg := config{
		language:      language.NewLanguage("en"),
		scaleFactor:   1,
		maskCacheSize: defaultMaskCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Pipeline{
		lookup:      lookup,
		language:    cfg.language,
		scaleFactor: cfg.scaleFactor,
		raster:      newRasterizer(cfg.maskCacheSize),
		texts:       make(map[ObjectID]*Text),
		images:      make(map[ObjectID][]ComposedImage),
		pending:     make(map[ObjectID]struct{}),
	}
}

// ScaleFactor returns the current display scale factor.
func (p *Pipeline) ScaleFactor() float32 {
	return p.scaleFactor
}

// SetScaleFactor updates the display scale factor and marks every
// object for recomputation. Returns true when the factor changed.
// Non-positive values are rejected.
func (p *Pipeline) SetScaleFactor(f float32) bool {
	if f <= 0 || f == p.scaleFactor {
		return false
	}
	p.scaleFactor = f
	for id := range p.texts {
		p.pending[id] = struct{}{}
	}
	return true
}

// Upsert registers a text object or replaces its content, marking it
// for recomputation on the next Update. The pipeline keeps the
// provided Text and treats it as read-only.
func (p *Pipeline) Upsert(id ObjectID, text *Text) {
	p.texts[id] = text
	p.pending[id] = struct{}{}
}

// MarkChanged marks a registered object for recomputation, for callers
// that mutate a Text in place. Unknown ids are ignored.
func (p *Pipeline) MarkChanged(id ObjectID) {
	if _, ok := p.texts[id]; ok {
		p.pending[id] = struct{}{}
	}
}

// Remove unregisters an object and drops its composed images.
func (p *Pipeline) Remove(id ObjectID) {
	delete(p.texts, id)
	delete(p.images, id)
	delete(p.pending, id)
}

// Update recomputes every pending object. Objects whose font handle
// does not resolve stay pending and are retried on the next Update, so
// fonts may be registered after the objects that use them.
func (p *Pipeline) Update() {
	for id := range p.pending {
		text := p.texts[id]

		fnt, ok := p.lookup.Lookup(text.Style.Font)
		if !ok {
			Logger().Warn("textatlas: font not loaded yet",
				"object", id, "font", text.Style.Font)
			continue
		}

		images := p.render(fnt, text)
		if len(images) == 0 {
			delete(p.images, id)
		} else {
			p.images[id] = images
		}
		delete(p.pending, id)

		Logger().Debug("textatlas: recomputed text object",
			"object", id, "images", len(images))
	}
}

// Images returns the composed images of an object, or nil when the
// object is unknown, renders to nothing, or has not been computed yet.
// The outline image, when present, precedes the fill image. Returned
// images are shared; callers must not mutate them.
func (p *Pipeline) Images(id ObjectID) []ComposedImage {
	return p.images[id]
}

// render runs the full pass for one object: shape, rasterize, lay out,
// compose.
func (p *Pipeline) render(fnt *Font, text *Text) []ComposedImage {
	size := text.Style.Size / p.scaleFactor

	face := fnt.face()
	clusters, metrics := shapeSections(&p.shaper, face, text.Sections, size, p.language)
	if len(clusters) == 0 {
		return nil
	}

	glyphs := layoutText(p.raster, fnt, face, clusters, metrics, text, size, p.scaleFactor)
	return composeImages(glyphs)
}
