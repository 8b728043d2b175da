package style

import (
	"fmt"
	"image/color"
)

// Weight is the font weight of a span.
type Weight uint8

const (
	WeightNormal Weight = iota
	WeightLight
	WeightBold
)

func (w Weight) String() string {
	switch w {
	case WeightLight:
		return "light"
	case WeightBold:
		return "bold"
	}
	return "normal"
}

// Position is the vertical text position of a span.
type Position uint8

const (
	PositionNormal Position = iota
	PositionSuperscript
	PositionSubscript
)

func (p Position) String() string {
	switch p {
	case PositionSuperscript:
		return "super"
	case PositionSubscript:
		return "sub"
	}
	return "normal"
}

// Default text metrics.
const (
	DefaultFontSize   = 12.0
	DefaultLineHeight = 1.2
)

// Descriptor is the resolved visual style of a text span. It is a value;
// every change produces a new Descriptor.
type Descriptor struct {
	FontSize      float64
	Weight        Weight
	Italic        bool
	Underline     bool
	Strikethrough bool
	Position      Position
	Color         color.RGBA
	// Background with zero alpha means no background.
	Background color.RGBA
	LineHeight float64
}

// DefaultDescriptor returns the style of unstyled text.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		FontSize:   DefaultFontSize,
		Color:      color.RGBA{A: 255},
		LineHeight: DefaultLineHeight,
	}
}

// Bold reports whether the weight is bold.
func (d Descriptor) Bold() bool {
	return d.Weight == WeightBold
}

// HasBackground reports whether a background color is set.
func (d Descriptor) HasBackground() bool {
	return d.Background.A != 0
}

func (d Descriptor) String() string {
	s := fmt.Sprintf("%gpt %s", d.FontSize, d.Weight)
	if d.Italic {
		s += " italic"
	}
	if d.Underline {
		s += " underline"
	}
	if d.Strikethrough {
		s += " strike"
	}
	if d.Position != PositionNormal {
		s += " " + d.Position.String()
	}
	if d.Color != (color.RGBA{A: 255}) {
		s += fmt.Sprintf(" color=#%02x%02x%02x", d.Color.R, d.Color.G, d.Color.B)
	}
	if d.HasBackground() {
		s += fmt.Sprintf(" bg=#%02x%02x%02x", d.Background.R, d.Background.G, d.Background.B)
	}
	if d.LineHeight != DefaultLineHeight {
		s += fmt.Sprintf(" lh=%g", d.LineHeight)
	}
	return s
}

// TextRule transforms a descriptor. Tag defaults are expressed as rules so
// that they patch only what they name.
type TextRule func(Descriptor) Descriptor

// Chain combines rules, applied left to right.
func Chain(rules ...TextRule) TextRule {
	return func(d Descriptor) Descriptor {
		for _, r := range rules {
			d = r(d)
		}
		return d
	}
}

// FontSize sets the font size in points.
func FontSize(pt float64) TextRule {
	return func(d Descriptor) Descriptor {
		d.FontSize = pt
		return d
	}
}

// Bold sets a bold weight.
func Bold() TextRule {
	return func(d Descriptor) Descriptor {
		d.Weight = WeightBold
		return d
	}
}

// Light sets a light weight.
func Light() TextRule {
	return func(d Descriptor) Descriptor {
		d.Weight = WeightLight
		return d
	}
}

// Italic turns on italics.
func Italic() TextRule {
	return func(d Descriptor) Descriptor {
		d.Italic = true
		return d
	}
}

// Underline turns on underlining.
func Underline() TextRule {
	return func(d Descriptor) Descriptor {
		d.Underline = true
		return d
	}
}

// Strikethrough turns on strike-out.
func Strikethrough() TextRule {
	return func(d Descriptor) Descriptor {
		d.Strikethrough = true
		return d
	}
}

// Superscript raises the text.
func Superscript() TextRule {
	return func(d Descriptor) Descriptor {
		d.Position = PositionSuperscript
		return d
	}
}

// Subscript lowers the text.
func Subscript() TextRule {
	return func(d Descriptor) Descriptor {
		d.Position = PositionSubscript
		return d
	}
}

// TextColor sets the font color.
func TextColor(c color.RGBA) TextRule {
	return func(d Descriptor) Descriptor {
		d.Color = c
		return d
	}
}
