package html

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gompdf/htmlflow/internal/parser/css"
)

var blockTags = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Div: true, atom.P: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
	atom.Nav: true, atom.Aside: true, atom.Main: true, atom.Blockquote: true,
	atom.Pre: true, atom.Hr: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Tr: true, atom.Td: true, atom.Th: true, atom.Caption: true,
	atom.Figure: true, atom.Figcaption: true, atom.Address: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Form: true, atom.Fieldset: true,
	atom.Img: true,
}

// IsBlockTag reports whether elements with tag always start a new line.
func IsBlockTag(tag atom.Atom) bool {
	return blockTags[tag]
}

// IsElement reports whether id is an element node.
func (d *Document) IsElement(id NodeID) bool {
	return d.nodes[id].Type == html.ElementNode
}

// IsText reports whether id is a text node.
func (d *Document) IsText(id NodeID) bool {
	return d.nodes[id].Type == html.TextNode
}

// IsBlock reports whether id is a block element. The document node counts
// as a block.
func (d *Document) IsBlock(id NodeID) bool {
	n := &d.nodes[id]
	switch n.Type {
	case html.DocumentNode:
		return true
	case html.ElementNode:
		return IsBlockTag(n.Tag)
	}
	return false
}

// IsLineLevel reports whether id takes part in inline flow.
func (d *Document) IsLineLevel(id NodeID) bool {
	n := &d.nodes[id]
	if n.Parent == NoNode {
		return false
	}
	switch n.Type {
	case html.ElementNode:
		return !IsBlockTag(n.Tag)
	case html.TextNode:
		return true
	}
	return false
}

func (d *Document) isTag(id NodeID, tag atom.Atom) bool {
	n := &d.nodes[id]
	return n.Type == html.ElementNode && n.Tag == tag
}

// IsList reports whether id is a ul or ol element.
func (d *Document) IsList(id NodeID) bool {
	return d.isTag(id, atom.Ul) || d.isTag(id, atom.Ol)
}

// IsOrderedList reports whether id is an ol element.
func (d *Document) IsOrderedList(id NodeID) bool {
	return d.isTag(id, atom.Ol)
}

// IsListItem reports whether id is a li element.
func (d *Document) IsListItem(id NodeID) bool {
	return d.isTag(id, atom.Li)
}

// IsBreak reports whether id is a br element.
func (d *Document) IsBreak(id NodeID) bool {
	return d.isTag(id, atom.Br)
}

// IsHead reports whether id is the head element.
func (d *Document) IsHead(id NodeID) bool {
	return d.isTag(id, atom.Head)
}

// IsImage reports whether id is an img element.
func (d *Document) IsImage(id NodeID) bool {
	return d.isTag(id, atom.Img)
}

// HasBlockDescendant reports whether any node below id is a block element.
func (d *Document) HasBlockDescendant(id NodeID) bool {
	for _, c := range d.nodes[id].Children {
		if (d.IsElement(c) && d.IsBlock(c)) || d.HasBlockDescendant(c) {
			return true
		}
	}
	return false
}

// HasContent reports whether id renders anything: text other than ASCII
// whitespace, a line break, an image with a source, or an element holding
// any of these. Head content never counts.
func (d *Document) HasContent(id NodeID) bool {
	n := &d.nodes[id]
	switch n.Type {
	case html.TextNode:
		return HasText(n.Data)
	case html.ElementNode:
		switch n.Tag {
		case atom.Head:
			return false
		case atom.Br:
			return true
		case atom.Img:
			src, _ := d.Attr(id, "src")
			return strings.TrimSpace(src) != ""
		}
	case html.DocumentNode:
	default:
		return false
	}
	for _, c := range n.Children {
		if d.HasContent(c) {
			return true
		}
	}
	return false
}

// HasText reports whether s has a character other than ASCII whitespace.
func HasText(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return true
		}
	}
	return false
}

// TrimLeftSpace removes leading ASCII whitespace.
func TrimLeftSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

// TrimRightSpace removes trailing ASCII whitespace.
func TrimRightSpace(s string) string {
	i := len(s)
	for i > 0 && isSpace(s[i-1]) {
		i--
	}
	return s[:i]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// Attr returns the value of attribute key on id.
func (d *Document) Attr(id NodeID, key string) (string, bool) {
	for _, a := range d.nodes[id].Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Classes returns the tokens of the class attribute in source order.
func (d *Document) Classes(id NodeID) []string {
	v, ok := d.Attr(id, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// IntAttr parses an integer attribute such as ol start.
func (d *Document) IntAttr(id NodeID, key string) (int, bool) {
	v, ok := d.Attr(id, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	return n, err == nil
}

// InlineStyles returns the cached declarations of the style attribute. The
// second result is false while no non-empty cache entry exists.
func (d *Document) InlineStyles(id NodeID) (css.Declarations, bool) {
	s := d.nodes[id].styles
	return s, s != nil
}

// SetInlineStyles caches parsed declarations on id. An existing entry is
// never replaced and an empty set is never stored.
func (d *Document) SetInlineStyles(id NodeID, decls css.Declarations) {
	n := &d.nodes[id]
	if n.styles != nil || decls.Len() == 0 {
		return
	}
	n.styles = decls
}

// Ancestors returns the path from id up to the root, id first.
func (d *Document) Ancestors(id NodeID) []NodeID {
	var path []NodeID
	for cur := id; cur != NoNode; cur = d.nodes[cur].Parent {
		path = append(path, cur)
	}
	return path
}

// Closest returns the nearest node at or above id for which match is true.
func (d *Document) Closest(id NodeID, match func(NodeID) bool) NodeID {
	for cur := id; cur != NoNode; cur = d.nodes[cur].Parent {
		if match(cur) {
			return cur
		}
	}
	return NoNode
}

// Text returns the concatenated text below id.
func (d *Document) Text(id NodeID) string {
	var b strings.Builder
	d.Walk(id, func(c NodeID) bool {
		if d.IsText(c) {
			b.WriteString(d.nodes[c].Data)
		}
		return true
	})
	return b.String()
}
