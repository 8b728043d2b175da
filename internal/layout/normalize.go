package layout

import (
	"strings"

	"github.com/gompdf/htmlflow/internal/parser/css"
	"github.com/gompdf/htmlflow/internal/parser/html"
)

// slice is a path of inline ancestors ending in either one block element or
// one run of inline siblings.
type slice struct {
	chain []html.NodeID
	block html.NodeID
	run   []html.NodeID
}

type normalizer struct {
	src *html.Document
	dst *html.Document
}

// Normalize returns a copy of src in which no line-level node mixes block
// and inline content. A line-level node holding a block descendant is
// replaced by one sibling per slice of its content. Each slice repeats the
// inline ancestors down to a block element or to a run of inline nodes,
// so the styling context of both sides survives the split. Slices with no
// content are dropped and the outer whitespace of every run is trimmed.
// src is not modified. Normalizing a normalized document changes nothing.
func Normalize(src *html.Document) *html.Document {
	n := &normalizer{
		src: src,
		dst: &html.Document{Stylesheets: src.Stylesheets},
	}
	n.dst.Root = n.visit(src.Root, html.NoNode)
	return n.dst
}

func (n *normalizer) visit(id, parent html.NodeID) html.NodeID {
	if parent != html.NoNode && n.src.IsLineLevel(id) && n.src.HasBlockDescendant(id) {
		var slices []slice
		n.collect(id, nil, &slices)
		for _, s := range slices {
			n.materialize(s, parent)
		}
		return html.NoNode
	}

	cp := n.dst.AddNode(parent, *n.src.Node(id))
	for _, c := range n.src.Children(id) {
		n.visit(c, cp)
	}
	return cp
}

// collect appends the slices of the subtree rooted at id in document order.
func (n *normalizer) collect(id html.NodeID, chain []html.NodeID, out *[]slice) {
	chain = append(chain[:len(chain):len(chain)], id)

	var run []html.NodeID
	flush := func() {
		if len(run) > 0 {
			*out = append(*out, slice{chain: chain, block: html.NoNode, run: run})
			run = nil
		}
	}

	for _, c := range n.src.Children(id) {
		switch {
		case n.src.IsElement(c) && n.src.IsBlock(c):
			flush()
			*out = append(*out, slice{chain: chain, block: c})
		case n.src.HasBlockDescendant(c):
			flush()
			n.collect(c, chain, out)
		default:
			run = append(run, c)
		}
	}
	flush()
}

func (n *normalizer) materialize(s slice, parent html.NodeID) {
	if s.block == html.NoNode && !n.runHasContent(s.run) {
		return
	}

	cur := parent
	for _, a := range s.chain {
		cur = n.dst.AddNode(cur, *n.src.Node(a))
	}
	if s.block != html.NoNode {
		n.visit(s.block, cur)
		return
	}

	copies := make([]html.NodeID, 0, len(s.run))
	for _, r := range s.run {
		copies = append(copies, n.dst.CopySubtree(n.src, r, cur))
	}
	trimRun(n.dst, copies)
}

func (n *normalizer) runHasContent(run []html.NodeID) bool {
	for _, id := range run {
		if n.src.HasContent(id) {
			return true
		}
	}
	return false
}

// trimRun removes leading whitespace up to the first text with content
// and trailing whitespace after the last one.
func trimRun(doc *html.Document, run []html.NodeID) {
	texts := runTexts(doc, run)
	for _, id := range texts {
		t := doc.Node(id)
		t.Data = html.TrimLeftSpace(t.Data)
		if t.Data != "" {
			break
		}
	}
	for i := len(texts) - 1; i >= 0; i-- {
		t := doc.Node(texts[i])
		t.Data = html.TrimRightSpace(t.Data)
		if t.Data != "" {
			break
		}
	}
}

func runTexts(doc *html.Document, run []html.NodeID) []html.NodeID {
	var texts []html.NodeID
	for _, r := range run {
		doc.Walk(r, func(id html.NodeID) bool {
			if doc.IsText(id) {
				texts = append(texts, id)
			}
			return true
		})
	}
	return texts
}

// CacheInlineStyles parses the style attribute of every node once and
// caches non-empty results on the node.
func CacheInlineStyles(doc *html.Document) {
	doc.Walk(doc.Root, func(id html.NodeID) bool {
		if v, ok := doc.Attr(id, "style"); ok && strings.TrimSpace(v) != "" {
			doc.SetInlineStyles(id, css.ParseDeclarations(v))
		}
		return true
	})
}
