package style

import (
	"maps"

	"golang.org/x/net/html/atom"

	"github.com/gompdf/htmlflow/internal/parser/css"
)

// Padding is container padding in points.
type Padding struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Add returns the sum of two paddings.
func (p Padding) Add(o Padding) Padding {
	return Padding{p.Top + o.Top, p.Right + o.Right, p.Bottom + o.Bottom, p.Left + o.Left}
}

// Frame is the container styling of a block: padding around its content and
// the horizontal alignment of its lines.
type Frame struct {
	Padding Padding
	Align   Align
}

// ContainerRule transforms the frame of a container before its children are
// laid out.
type ContainerRule func(Frame) Frame

// PadVertical adds top and bottom padding.
func PadVertical(v float64) ContainerRule {
	return func(f Frame) Frame {
		f.Padding.Top += v
		f.Padding.Bottom += v
		return f
	}
}

// PadLeft adds left padding.
func PadLeft(v float64) ContainerRule {
	return func(f Frame) Frame {
		f.Padding.Left += v
		return f
	}
}

// Pad adds padding on all sides.
func Pad(p Padding) ContainerRule {
	return func(f Frame) Frame {
		f.Padding = f.Padding.Add(p)
		return f
	}
}

// AlignTo sets the horizontal alignment.
func AlignTo(a Align) ContainerRule {
	return func(f Frame) Frame {
		if a != AlignNone {
			f.Align = a
		}
		return f
	}
}

// DefaultListIndent is the width in points of a list marker cell.
const DefaultListIndent = 26.0

// Config holds the style tables used during layout. A Config is treated as
// immutable once built; the With methods return modified copies.
type Config struct {
	// Base is the style of text outside any styled element.
	Base Descriptor
	// TagStyles patch the inherited style of text inside a tag.
	TagStyles map[atom.Atom]TextRule
	// TagContainers style the container of a block tag.
	TagContainers map[atom.Atom]ContainerRule
	// ClassStyles replace the resolved style of a leaf carrying the class.
	ClassStyles map[string]Descriptor
	// ClassContainers style the container of an element carrying the class.
	ClassContainers map[string]ContainerRule
	// ClassAlign aligns the paragraphs governed by an element with the class.
	ClassAlign map[string]Align
	// ListIndent is the width of the list marker cell.
	ListIndent float64
}

// DefaultConfig returns a fresh copy of the default style tables.
func DefaultConfig() Config {
	return Config{
		Base: DefaultDescriptor(),
		TagStyles: map[atom.Atom]TextRule{
			atom.H1:     Chain(FontSize(24), Bold()),
			atom.H2:     Chain(FontSize(18), Bold()),
			atom.H3:     Chain(FontSize(14.04), Bold()),
			atom.H4:     Chain(FontSize(12), Bold()),
			atom.H5:     Chain(FontSize(9.96), Bold()),
			atom.H6:     Chain(FontSize(8.04), Bold()),
			atom.B:      Bold(),
			atom.Strong: Bold(),
			atom.I:      Italic(),
			atom.Em:     Italic(),
			atom.Small:  Light(),
			atom.Strike: Strikethrough(),
			atom.Del:    Strikethrough(),
			atom.S:      Strikethrough(),
			atom.U:      Underline(),
			atom.A:      Underline(),
			atom.Sup:    Superscript(),
			atom.Sub:    Subscript(),
			atom.P:      FontSize(12),
		},
		TagContainers: map[atom.Atom]ContainerRule{
			atom.P:  PadVertical(6),
			atom.Ul: PadLeft(30),
			atom.Ol: PadLeft(30),
		},
		ClassStyles: map[string]Descriptor{},
		ClassContainers: map[string]ContainerRule{
			"ql-align-center": AlignTo(AlignCenter),
			"ql-align-right":  AlignTo(AlignRight),
			"ql-align-left":   AlignTo(AlignLeft),
		},
		ClassAlign: map[string]Align{
			"ql-align-center":  AlignCenter,
			"ql-align-right":   AlignRight,
			"ql-align-left":    AlignLeft,
			"ql-align-justify": AlignJustify,
		},
		ListIndent: DefaultListIndent,
	}
}

// Clone returns a copy that shares no tables with c.
func (c Config) Clone() Config {
	c.TagStyles = maps.Clone(c.TagStyles)
	c.TagContainers = maps.Clone(c.TagContainers)
	c.ClassStyles = maps.Clone(c.ClassStyles)
	c.ClassContainers = maps.Clone(c.ClassContainers)
	c.ClassAlign = maps.Clone(c.ClassAlign)
	return c
}

// WithTagStyle returns a copy with the text rule of tag replaced.
func (c Config) WithTagStyle(tag atom.Atom, rule TextRule) Config {
	c = c.Clone()
	if c.TagStyles == nil {
		c.TagStyles = map[atom.Atom]TextRule{}
	}
	c.TagStyles[tag] = rule
	return c
}

// WithTagContainer returns a copy with the container rule of tag replaced.
func (c Config) WithTagContainer(tag atom.Atom, rule ContainerRule) Config {
	c = c.Clone()
	if c.TagContainers == nil {
		c.TagContainers = map[atom.Atom]ContainerRule{}
	}
	c.TagContainers[tag] = rule
	return c
}

// WithClassStyle returns a copy where leaves with class use d.
func (c Config) WithClassStyle(class string, d Descriptor) Config {
	c = c.Clone()
	if c.ClassStyles == nil {
		c.ClassStyles = map[string]Descriptor{}
	}
	c.ClassStyles[class] = d
	return c
}

// WithClassContainer returns a copy with the container rule of class replaced.
func (c Config) WithClassContainer(class string, rule ContainerRule) Config {
	c = c.Clone()
	if c.ClassContainers == nil {
		c.ClassContainers = map[string]ContainerRule{}
	}
	c.ClassContainers[class] = rule
	return c
}

// WithClassAlign returns a copy with the paragraph alignment of class set.
func (c Config) WithClassAlign(class string, a Align) Config {
	c = c.Clone()
	if c.ClassAlign == nil {
		c.ClassAlign = map[string]Align{}
	}
	c.ClassAlign[class] = a
	return c
}

// WithListIndent returns a copy with the list marker width set.
func (c Config) WithListIndent(indent float64) Config {
	c.ListIndent = indent
	return c
}

// ApplyContainer applies the container rules for an element: the tag rule,
// then the rule of every class in order, then the inline text-align when the
// element is a block.
func (c *Config) ApplyContainer(f Frame, tag atom.Atom, classes []string, inline css.Declarations, block bool) Frame {
	if rule, ok := c.TagContainers[tag]; ok && rule != nil {
		f = rule(f)
	}
	for _, class := range classes {
		if rule, ok := c.ClassContainers[class]; ok && rule != nil {
			f = rule(f)
		}
	}
	if block {
		if a, ok := TextAlign(inline); ok {
			f = AlignTo(a)(f)
		}
	}
	return f
}

// ClassAlignment returns the alignment of the first class that has one.
func (c *Config) ClassAlignment(classes []string) (Align, bool) {
	for _, class := range classes {
		if a, ok := c.ClassAlign[class]; ok && a != AlignNone {
			return a, true
		}
	}
	return AlignNone, false
}

// ClassStyle returns the override of the last class in order that has one.
func (c *Config) ClassStyle(classes []string) (Descriptor, bool) {
	var (
		d     Descriptor
		found bool
	)
	for _, class := range classes {
		if s, ok := c.ClassStyles[class]; ok {
			d, found = s, true
		}
	}
	return d, found
}
