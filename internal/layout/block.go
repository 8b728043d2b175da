package layout

import (
	"strings"

	"go.uber.org/zap"

	"github.com/gompdf/htmlflow/internal/parser/html"
	"github.com/gompdf/htmlflow/internal/style"
)

// compose builds the unit of node id. Head elements and inline nodes
// without content produce nothing. Children are grouped into block-like
// nodes, each composed on its own, and runs of inline siblings, each
// becoming one paragraph. A block without children gets a blank line so
// that it still takes vertical space; a block whose children carry no
// content produces an empty box.
func (l *docLayout) compose(id html.NodeID) Unit {
	doc := l.doc
	if doc.IsHead(id) {
		return nil
	}
	block := doc.IsBlock(id)
	if !block && !doc.HasContent(id) {
		return nil
	}
	if doc.IsImage(id) {
		return l.image(id)
	}

	n := doc.Node(id)
	inline, _ := doc.InlineStyles(id)
	box := &Box{
		Node:  id,
		Tag:   n.Tag,
		Frame: l.cfg.ApplyContainer(style.Frame{}, n.Tag, doc.Classes(id), inline, block),
	}

	children := doc.Children(id)
	if len(children) == 0 {
		if block {
			box.Children = append(box.Children, &Blank{Node: id, Style: l.res.Resolve(doc, id)})
		} else if p := l.buildParagraph([]html.NodeID{id}); p != nil {
			// a childless inline node with content is its own paragraph
			box.Children = append(box.Children, p)
		}
		return box
	}

	var run []html.NodeID
	flush := func() {
		if len(run) == 0 {
			return
		}
		if l.runHasContent(run) {
			if p := l.buildParagraph(run); p != nil {
				box.Children = append(box.Children, p)
			}
		}
		run = nil
	}

	for _, c := range children {
		if l.isBlockLike(c) {
			flush()
			if u := l.compose(c); u != nil {
				box.Children = append(box.Children, u)
			}
			continue
		}
		run = append(run, c)
	}
	flush()
	return box
}

// isBlockLike reports whether a child is laid out on its own rather than
// as part of an inline run.
func (l *docLayout) isBlockLike(id html.NodeID) bool {
	doc := l.doc
	if doc.IsElement(id) && doc.IsBlock(id) {
		return true
	}
	return doc.IsLineLevel(id) && doc.HasBlockDescendant(id)
}

func (l *docLayout) runHasContent(run []html.NodeID) bool {
	for _, id := range run {
		if l.doc.HasContent(id) {
			return true
		}
	}
	return false
}

// image resolves an img element. When the source cannot be resolved the
// alt text is laid out instead, if there is any.
func (l *docLayout) image(id html.NodeID) Unit {
	doc := l.doc
	src, _ := doc.Attr(id, "src")
	src = strings.TrimSpace(src)
	alt, _ := doc.Attr(id, "alt")

	if src != "" && l.e.images != nil {
		data, err := l.e.images(src)
		if err == nil && len(data) > 0 {
			return &Image{Node: id, Src: src, Alt: alt, Data: data}
		}
		l.log.Debug("Unresolved image", zap.String("src", src), zap.Error(err))
	} else if src != "" {
		l.log.Debug("No image resolver", zap.String("src", src))
	}

	alt = strings.TrimSpace(html.CollapseWhitespace(alt))
	if alt == "" {
		return nil
	}
	p := &Paragraph{
		Node:  id,
		Align: l.paragraphAlign(id),
		Spans: []Span{{Text: alt, Style: l.res.Resolve(doc, id)}},
	}
	return p
}
