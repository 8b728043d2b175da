package layout

import (
	"strconv"

	"github.com/gompdf/htmlflow/internal/parser/html"
)

// MarkerKind says which prefix a paragraph gets.
type MarkerKind uint8

const (
	MarkerNone MarkerKind = iota
	MarkerBullet
	MarkerNumber
)

// ListMarker is the prefix of a paragraph inside a list item. Ordinal is
// only meaningful for MarkerNumber.
type ListMarker struct {
	Kind    MarkerKind
	Ordinal int
}

// Bullet is the marker text of unordered list items.
const Bullet = "\u2022  "

// Text returns the printed prefix.
func (m ListMarker) Text() string {
	switch m.Kind {
	case MarkerBullet:
		return Bullet
	case MarkerNumber:
		return strconv.Itoa(m.Ordinal) + ". "
	}
	return ""
}

// ListMarkerFor computes the marker of list item li from its nearest
// enclosing list. Items of an ol are numbered from the list's start
// attribute, 1 by default, counting in document order the items of that
// list only; items of nested lists are not counted.
func ListMarkerFor(doc *html.Document, li html.NodeID) ListMarker {
	if li == html.NoNode || !doc.IsListItem(li) {
		return ListMarker{}
	}
	list := doc.Closest(doc.Parent(li), doc.IsList)
	if list == html.NoNode {
		return ListMarker{}
	}
	if !doc.IsOrderedList(list) {
		return ListMarker{Kind: MarkerBullet}
	}

	start, ok := doc.IntAttr(list, "start")
	if !ok {
		start = 1
	}
	index, found := 0, false
	doc.Walk(list, func(id html.NodeID) bool {
		switch {
		case found:
			return false
		case id == li:
			found = true
			return false
		case id != list && doc.IsList(id):
			return false
		case doc.IsListItem(id):
			index++
		}
		return true
	})
	return ListMarker{Kind: MarkerNumber, Ordinal: start + index}
}

// listItemFor returns the list item governing id: the nearest li at or
// above id that is reached before any list element.
func listItemFor(doc *html.Document, id html.NodeID) html.NodeID {
	for cur := id; cur != html.NoNode; cur = doc.Parent(cur) {
		if doc.IsList(cur) {
			return html.NoNode
		}
		if doc.IsListItem(cur) {
			return cur
		}
	}
	return html.NoNode
}
