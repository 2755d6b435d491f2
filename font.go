package textatlas

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
)

// Font is an immutable handle to a parsed font. One Font can be shared
// by any number of text objects and pipelines; the pipeline borrows it
// per recomputation and never mutates it.
type Font struct {
	data []byte
	font *font.Font
	name string
}

// NewFont parses font data (TTF or OTF). The data slice is copied
// internally and can be reused after this call.
//
// Returns ErrEmptyFontData for empty input and an error wrapping
// ErrInvalidFont when the data cannot be parsed. A font that fails here
// is never rendered; there is no retry path.
func NewFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFont, err)
	}

	return &Font{
		data: dataCopy,
		font: face.Font,
		name: face.Describe().Family,
	}, nil
}

// NewFontFromFile loads a Font from a font file path.
func NewFontFromFile(path string) (*Font, error) {
	// #nosec G304 -- font file path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("textatlas: read font file: %w", err)
	}
	return NewFont(data)
}

// Name returns the font family name.
func (f *Font) Name() string {
	return f.name
}

// face creates a shaping/rasterization face for one recomputation.
// font.Face is not safe for concurrent use; font.NewFace is cheap, so
// each recompute gets its own instance over the shared read-only Font.
func (f *Font) face() *font.Face {
	return font.NewFace(f.font)
}

// FontHandle is an opaque identifier for a font held by an external
// asset store. Handles are resolved through a FontLookup on every pass;
// an unresolvable handle defers recomputation instead of failing it.
type FontHandle uint64

// FontLookup resolves font handles. Implementations are typically thin
// views over the host application's asset store.
type FontLookup interface {
	// Lookup returns the font for handle, or false while the font is
	// not (yet) loaded.
	Lookup(h FontHandle) (*Font, bool)
}

// FontLookupFunc adapts a function to the FontLookup interface.
type FontLookupFunc func(FontHandle) (*Font, bool)

// Lookup implements FontLookup.
func (f FontLookupFunc) Lookup(h FontHandle) (*Font, bool) {
	return f(h)
}

// FontStore is a minimal in-memory FontLookup for hosts without an
// asset system of their own.
//
// FontStore is not safe for concurrent use; guard it externally or
// confine it to the pipeline's goroutine.
type FontStore struct {
	fonts map[FontHandle]*Font
	next  FontHandle
}

// NewFontStore creates an empty font store.
func NewFontStore() *FontStore {
	return &FontStore{fonts: make(map[FontHandle]*Font)}
}

// Add stores a font and returns its new handle.
func (s *FontStore) Add(f *Font) FontHandle {
	s.next++
	s.fonts[s.next] = f
	return s.next
}

// Remove drops the font for handle, if present.
func (s *FontStore) Remove(h FontHandle) {
	delete(s.fonts, h)
}

// Lookup implements FontLookup.
func (s *FontStore) Lookup(h FontHandle) (*Font, bool) {
	f, ok := s.fonts[h]
	return f, ok
}
