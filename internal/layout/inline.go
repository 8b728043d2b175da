package layout

import (
	"go.uber.org/zap"

	"github.com/gompdf/htmlflow/internal/parser/html"
	"github.com/gompdf/htmlflow/internal/style"
)

// buildParagraph turns one run of inline sibling nodes into a paragraph.
// The governing node is the list item above the run or, failing that, the
// nearest block. A run without one cannot be placed and yields nil.
func (l *docLayout) buildParagraph(nodes []html.NodeID) *Paragraph {
	if len(nodes) == 0 {
		return nil
	}
	doc := l.doc

	gov := listItemFor(doc, nodes[0])
	if gov == html.NoNode {
		gov = doc.Closest(nodes[0], doc.IsBlock)
	}
	if gov == html.NoNode {
		l.log.Debug("Inline run without block context", zap.Int("nodes", len(nodes)))
		return nil
	}

	p := &Paragraph{
		Node:   gov,
		Marker: ListMarkerFor(doc, gov),
		Align:  l.paragraphAlign(gov),
	}
	// content of a list outside any item keeps the marker cell empty
	if p.Marker.Kind != MarkerNone || doc.Closest(gov, doc.IsList) != html.NoNode {
		p.MarkerWidth = l.cfg.ListIndent
	}

	for _, id := range nodes {
		l.collectSpans(id, &p.Spans)
	}
	p.Spans = trimSpans(p.Spans)
	return p
}

// collectSpans appends the spans of the leaves below id in document order.
func (l *docLayout) collectSpans(id html.NodeID, out *[]Span) {
	doc := l.doc
	switch {
	case doc.IsText(id):
		if text := doc.Node(id).Data; text != "" {
			*out = append(*out, Span{Text: text, Style: l.res.Resolve(doc, id)})
		}
	case doc.IsBreak(id):
		*out = append(*out, Span{Text: "\n", Style: l.res.Resolve(doc, id)})
	case doc.IsElement(id):
		for _, c := range doc.Children(id) {
			l.collectSpans(c, out)
		}
	}
}

// trimSpans strips whitespace from the start of the paragraph up to the
// first visible text and from its end back to the last one. Breaks stop the
// trimming. Spans left empty are dropped.
func trimSpans(spans []Span) []Span {
	for i := range spans {
		if spans[i].IsBreak() {
			break
		}
		spans[i].Text = html.TrimLeftSpace(spans[i].Text)
		if spans[i].Text != "" {
			break
		}
	}
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].IsBreak() {
			break
		}
		spans[i].Text = html.TrimRightSpace(spans[i].Text)
		if spans[i].Text != "" {
			break
		}
	}
	out := spans[:0]
	for _, s := range spans {
		if s.Text != "" {
			out = append(out, s)
		}
	}
	return out
}

// paragraphAlign walks from the governing node to the root, applying the
// alignment of every element on the way. Outer elements are applied later
// and so override inner ones. Within one element an inline text-align on a
// block wins over class alignments.
func (l *docLayout) paragraphAlign(gov html.NodeID) style.Align {
	doc := l.doc
	align := style.AlignNone
	for cur := gov; cur != html.NoNode; cur = doc.Parent(cur) {
		if a, ok := l.elementAlign(cur); ok {
			align = a
		}
	}
	return align
}

func (l *docLayout) elementAlign(id html.NodeID) (style.Align, bool) {
	doc := l.doc
	if !doc.IsElement(id) {
		return style.AlignNone, false
	}
	if doc.IsBlock(id) {
		if decls, ok := doc.InlineStyles(id); ok {
			if a, ok := style.TextAlign(decls); ok {
				return a, true
			}
		}
	}
	return l.cfg.ClassAlignment(doc.Classes(id))
}
