package layout

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders a layout tree as indented text, one unit or span per line.
func Dump(u Unit) string {
	if u == nil {
		return ""
	}
	tree := treeprint.NewWithRoot(label(u))
	dumpChildren(tree, u)
	return tree.String()
}

func dumpChildren(tree treeprint.Tree, u Unit) {
	switch v := u.(type) {
	case *Box:
		for _, c := range v.Children {
			if b, ok := c.(*Box); ok && len(b.Children) > 0 {
				dumpChildren(tree.AddBranch(label(c)), c)
				continue
			}
			if p, ok := c.(*Paragraph); ok && len(p.Spans) > 0 {
				dumpChildren(tree.AddBranch(label(c)), c)
				continue
			}
			tree.AddNode(label(c))
		}
	case *Paragraph:
		for _, s := range v.Spans {
			tree.AddNode(fmt.Sprintf("%q %s", s.Text, s.Style))
		}
	}
}

func label(u Unit) string {
	switch v := u.(type) {
	case *Box:
		name := v.Tag.String()
		if name == "" {
			name = "document"
		}
		var b strings.Builder
		b.WriteString("box ")
		b.WriteString(name)
		if p := v.Frame.Padding; p != (Box{}).Frame.Padding {
			fmt.Fprintf(&b, " pad=%g,%g,%g,%g", p.Top, p.Right, p.Bottom, p.Left)
		}
		if v.Frame.Align != 0 {
			fmt.Fprintf(&b, " align=%s", v.Frame.Align)
		}
		return b.String()
	case *Paragraph:
		s := "paragraph"
		if v.Marker.Kind != MarkerNone {
			s += fmt.Sprintf(" marker=%q", v.Marker.Text())
		}
		if v.Align != 0 {
			s += fmt.Sprintf(" align=%s", v.Align)
		}
		return s
	case *Blank:
		return "blank"
	case *Image:
		return fmt.Sprintf("image %s (%d bytes)", v.Src, len(v.Data))
	}
	return fmt.Sprintf("%T", u)
}
