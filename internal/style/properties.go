package style

import (
	"fmt"

	"github.com/gompdf/htmlflow/internal/parser/css"
)

const pxToPt = 0.75

// ParseFontSize converts a pt or px font size to points.
func ParseFontSize(value string) (float64, bool) {
	n, unit, ok := css.Length(value)
	if !ok {
		return 0, false
	}
	switch unit {
	case "pt":
		return n, true
	case "px":
		return n * pxToPt, true
	}
	return 0, false
}

// ParseLineHeight converts a line height to a multiplier of a 12pt font.
// A bare number already is a multiplier.
func ParseLineHeight(value string) (float64, bool) {
	n, unit, ok := css.Length(value)
	if !ok {
		return 0, false
	}
	switch unit {
	case "pt":
		return n / DefaultFontSize, true
	case "px":
		return n * pxToPt / DefaultFontSize, true
	case "":
		return n, true
	}
	return 0, false
}

// IsBold interprets a font-weight value. Unknown values are not bold.
func IsBold(value string) bool {
	if kw, ok := css.Keyword(value); ok {
		return kw == "bold" || kw == "bolder"
	}
	if n, unit, ok := css.Length(value); ok && unit == "" {
		return n >= 700
	}
	return false
}

// IsItalic interprets a font-style value.
func IsItalic(value string) bool {
	kw, ok := css.Keyword(value)
	return ok && (kw == "italic" || kw == "oblique")
}

// IsUnderline interprets a text-decoration value.
func IsUnderline(value string) bool {
	kw, ok := css.Keyword(value)
	return ok && kw == "underline"
}

// Align is a horizontal alignment. AlignNone leaves the current alignment.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	}
	return "none"
}

// ParseAlign interprets a text-align value.
func ParseAlign(value string) (Align, bool) {
	kw, ok := css.Keyword(value)
	if !ok {
		return AlignNone, false
	}
	switch kw {
	case "left", "start":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right", "end":
		return AlignRight, true
	case "justify":
		return AlignJustify, true
	}
	return AlignNone, false
}

// MarshalText implements encoding.TextMarshaler.
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Align) UnmarshalText(text []byte) error {
	v, ok := ParseAlign(string(text))
	if !ok {
		return fmt.Errorf("unknown alignment %q", text)
	}
	*a = v
	return nil
}

// TextAlign returns the text-align of a declaration set.
func TextAlign(decls css.Declarations) (Align, bool) {
	v, ok := decls.Get("text-align")
	if !ok {
		return AlignNone, false
	}
	return ParseAlign(v)
}
