package html

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/gompdf/htmlflow/internal/parser/css"
)

// NodeID references a node inside its Document.
type NodeID int32

// NoNode is the null reference.
const NoNode NodeID = -1

// Node represents an HTML node in the document arena. Parent is a
// navigation reference only; ownership runs from the root down.
type Node struct {
	Type     html.NodeType
	Tag      atom.Atom
	Data     string
	Attr     []html.Attribute
	Parent   NodeID
	Children []NodeID

	styles css.Declarations
}

// Document represents a parsed HTML document held in a node arena.
// Pointers returned by Node are invalidated by AddNode and CopySubtree.
type Document struct {
	nodes []Node
	Root  NodeID

	// Stylesheets holds the text of <style> elements dropped during import.
	Stylesheets []string
}

// NewDocument returns a document holding only a document node.
func NewDocument() *Document {
	d := &Document{}
	d.Root = d.AddNode(NoNode, Node{Type: html.DocumentNode})
	return d
}

// Len returns the number of nodes in the arena.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Node returns the node for id.
func (d *Document) Node(id NodeID) *Node {
	return &d.nodes[id]
}

// Parent returns the parent of id, or NoNode.
func (d *Document) Parent(id NodeID) NodeID {
	if id == NoNode {
		return NoNode
	}
	return d.nodes[id].Parent
}

// Children returns the ordered children of id.
func (d *Document) Children(id NodeID) []NodeID {
	return d.nodes[id].Children
}

// AddNode appends a copy of proto without its children under parent and
// returns the new id. A parent of NoNode creates a detached node.
func (d *Document) AddNode(parent NodeID, proto Node) NodeID {
	id := NodeID(len(d.nodes))
	n := Node{
		Type:   proto.Type,
		Tag:    proto.Tag,
		Data:   proto.Data,
		Attr:   append([]html.Attribute(nil), proto.Attr...),
		Parent: parent,
		styles: proto.styles,
	}
	d.nodes = append(d.nodes, n)
	if parent != NoNode {
		d.nodes[parent].Children = append(d.nodes[parent].Children, id)
	}
	return id
}

// CopySubtree deep-copies node id of src under parent and returns the id of
// the copy.
func (d *Document) CopySubtree(src *Document, id, parent NodeID) NodeID {
	cp := d.AddNode(parent, src.nodes[id])
	for _, c := range src.nodes[id].Children {
		d.CopySubtree(src, c, cp)
	}
	return cp
}

// Walk visits id and its descendants in document order. Returning false
// from fn skips the children of that node.
func (d *Document) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range d.nodes[id].Children {
		d.Walk(c, fn)
	}
}

// Find returns the first node in document order for which match is true.
func (d *Document) Find(match func(*Node) bool) NodeID {
	found := NoNode
	d.Walk(d.Root, func(id NodeID) bool {
		if found != NoNode {
			return false
		}
		if match(&d.nodes[id]) {
			found = id
			return false
		}
		return true
	})
	return found
}

// FindTag returns the first element with the given tag.
func (d *Document) FindTag(tag atom.Atom) NodeID {
	return d.Find(func(n *Node) bool {
		return n.Type == html.ElementNode && n.Tag == tag
	})
}

// Parser represents an HTML parser
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new HTML parser
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("html")}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// ParseBytes parses HTML bytes of unknown encoding. The charset is taken from
// contentType when given, otherwise sniffed from the content.
func (p *Parser) ParseBytes(content []byte, contentType string) (*Document, error) {
	r, err := charset.NewReader(bytes.NewReader(content), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}
	return p.Parse(r)
}

// Parse parses UTF-8 HTML from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	doc.Root = p.convertNode(doc, node, NoNode, false)
	p.log.Debug("Parsed document", zap.Int("nodes", doc.Len()), zap.Int("stylesheets", len(doc.Stylesheets)))
	return doc, nil
}

// convertNode imports n and its children into doc. Doctype, script and
// template subtrees are dropped, style elements only contribute their text
// to Stylesheets. Whitespace runs in text collapse to one space outside pre.
func (p *Parser) convertNode(doc *Document, n *html.Node, parent NodeID, pre bool) NodeID {
	switch n.Type {
	case html.DoctypeNode, html.RawNode:
		return NoNode
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Template, atom.Noscript:
			return NoNode
		case atom.Style:
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
					b.WriteString("\n")
				}
			}
			if text := strings.TrimSpace(b.String()); text != "" {
				doc.Stylesheets = append(doc.Stylesheets, text)
			}
			return NoNode
		case atom.Pre:
			pre = true
		}
	}

	proto := Node{
		Type: n.Type,
		Tag:  n.DataAtom,
		Data: n.Data,
		Attr: n.Attr,
	}
	switch n.Type {
	case html.ElementNode:
		proto.Data = strings.ToLower(n.Data)
	case html.TextNode:
		if !pre {
			proto.Data = CollapseWhitespace(n.Data)
		}
	}

	id := doc.AddNode(parent, proto)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.convertNode(doc, c, id, pre)
	}
	return id
}

// CollapseWhitespace replaces every run of ASCII whitespace with a single
// space. Other characters, including non-breaking spaces, are kept.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteByte(s[i])
	}
	return b.String()
}

// Render renders the document back to HTML
func (d *Document) Render(w io.Writer) error {
	return d.RenderNode(w, d.Root)
}

// RenderNode renders the subtree rooted at id.
func (d *Document) RenderNode(w io.Writer, id NodeID) error {
	return html.Render(w, d.toHTML(id))
}

// String renders the document, returning the error text on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return err.Error()
	}
	return buf.String()
}

func (d *Document) toHTML(id NodeID) *html.Node {
	n := &d.nodes[id]
	node := &html.Node{
		Type:     n.Type,
		DataAtom: n.Tag,
		Data:     n.Data,
		Attr:     n.Attr,
	}
	for _, c := range n.Children {
		node.AppendChild(d.toHTML(c))
	}
	return node
}
