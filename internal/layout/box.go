package layout

import (
	"golang.org/x/net/html/atom"

	"github.com/gompdf/htmlflow/internal/parser/html"
	"github.com/gompdf/htmlflow/internal/style"
)

// Unit is one element of the layout tree handed to a renderer: a Box, a
// Paragraph, a Blank line or an Image. Units stack vertically.
type Unit interface {
	// Source returns the node the unit was built from.
	Source() html.NodeID
}

// Box is a container with padding and alignment whose children stack
// vertically without overlap.
type Box struct {
	Node     html.NodeID
	Tag      atom.Atom
	Frame    style.Frame
	Children []Unit
}

// Paragraph is one run of inline content laid out as wrapped lines.
type Paragraph struct {
	// Node is the block or list item governing the paragraph.
	Node html.NodeID
	// Marker is printed in a cell of MarkerWidth left of the body.
	Marker      ListMarker
	MarkerWidth float64
	Align       style.Align
	Spans       []Span
}

// Span is styled text. A line break is a span holding "\n".
type Span struct {
	Text  string
	Style style.Descriptor
}

// IsBreak reports whether the span is a forced line break.
func (s Span) IsBreak() bool {
	return s.Text == "\n"
}

// Blank is an empty line that keeps the vertical space of an empty block.
type Blank struct {
	Node  html.NodeID
	Style style.Descriptor
}

// BlankText is the content of a blank line.
const BlankText = "\u00a0"

// Image is an image element with the bytes returned by the resolver.
type Image struct {
	Node html.NodeID
	Src  string
	Alt  string
	Data []byte
}

func (b *Box) Source() html.NodeID       { return b.Node }
func (p *Paragraph) Source() html.NodeID { return p.Node }
func (b *Blank) Source() html.NodeID     { return b.Node }
func (i *Image) Source() html.NodeID     { return i.Node }

// Text returns the concatenated text of the paragraph body.
func (p *Paragraph) Text() string {
	n := 0
	for _, s := range p.Spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range p.Spans {
		b = append(b, s.Text...)
	}
	return string(b)
}

// Walk visits u and all units below it depth first.
func Walk(u Unit, fn func(Unit)) {
	if u == nil {
		return
	}
	fn(u)
	if b, ok := u.(*Box); ok {
		for _, c := range b.Children {
			Walk(c, fn)
		}
	}
}

// Paragraphs returns all paragraphs below u in document order.
func Paragraphs(u Unit) []*Paragraph {
	var out []*Paragraph
	Walk(u, func(c Unit) {
		if p, ok := c.(*Paragraph); ok {
			out = append(out, p)
		}
	})
	return out
}
