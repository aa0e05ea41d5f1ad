package text

import (
	"github.com/ZRonchy/vellum/font"
	"github.com/ZRonchy/vellum/rgba"
)

// Style carries the appearance of a text section: font handle, size and
// color. It is a plain comparable value; two styles are equal iff all three
// fields compare equal. The font handle is an opaque token owned by an
// external font.Registry — copying or dropping a Style never touches the
// font resource itself.
//
// FontSize is in points and is expected to be positive, but the model does
// not enforce that; out-of-range values are forwarded as data for the
// typesetting layer to deal with.
type Style struct {
	Font     font.Handle
	FontSize float64
	Color    rgba.Color
}

// DefaultStyle returns the style applied when nothing else is specified:
// no font loaded, 12pt, opaque white.
func DefaultStyle() Style {
	return Style{FontSize: 12.0, Color: rgba.White}
}

// NewStyle constructs a style from its three fields.
func NewStyle(f font.Handle, sizePt float64, col rgba.Color) Style {
	return Style{Font: f, FontSize: sizePt, Color: col}
}

// WithFont returns a copy of s using the given font, leaving s untouched.
func (s Style) WithFont(f font.Handle) Style {
	s.Font = f
	return s
}

// WithFontSize returns a copy of s using the given size, leaving s untouched.
func (s Style) WithFontSize(sizePt float64) Style {
	s.FontSize = sizePt
	return s
}

// WithColor returns a copy of s using the given color, leaving s untouched.
func (s Style) WithColor(col rgba.Color) Style {
	s.Color = col
	return s
}
