package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFont is returned when a layout is built without any usable font.
	ErrNoFont = errors.New("text: no font")

	// ErrInvalidLocale is returned when a Locale property cannot be parsed
	// as a BCP 47 tag.
	ErrInvalidLocale = errors.New("text: invalid locale")
)
