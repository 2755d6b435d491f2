package textatlas

import "errors"

// Sentinel errors for textatlas.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("textatlas: empty font data")

	// ErrInvalidFont is returned when font data cannot be parsed.
	// A font that fails to parse is never rendered; there is no retry.
	ErrInvalidFont = errors.New("textatlas: invalid font")
)
