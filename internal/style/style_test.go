package style

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html/atom"

	"github.com/gompdf/htmlflow/internal/parser/css"
	"github.com/gompdf/htmlflow/internal/parser/html"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#abc", color.RGBA{170, 187, 204, 255}, true},
		{"#A0B1C2", color.RGBA{160, 177, 194, 255}, true},
		{"rgb(999,-10,40)", color.RGBA{255, 0, 40, 255}, true},
		{"rgb( 1 , 2 , 3 )", color.RGBA{1, 2, 3, 255}, true},
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{"Navy", color.RGBA{0, 0, 128, 255}, true},
		{"#abcd", color.RGBA{}, false},
		{"#ggg", color.RGBA{}, false},
		{"rgb(1,2)", color.RGBA{}, false},
		{"rgb(10%,0,0)", color.RGBA{}, false},
		{"hsl(1,2,3)", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueParsers(t *testing.T) {
	pt, ok := ParseFontSize("16px")
	assert.True(t, ok)
	assert.InDelta(t, 12, pt, 1e-9)

	pt, ok = ParseFontSize("9pt")
	assert.True(t, ok)
	assert.InDelta(t, 9, pt, 1e-9)

	_, ok = ParseFontSize("2em")
	assert.False(t, ok)

	lh, ok := ParseLineHeight("18pt")
	assert.True(t, ok)
	assert.InDelta(t, 1.5, lh, 1e-9)

	lh, ok = ParseLineHeight("32px")
	assert.True(t, ok)
	assert.InDelta(t, 2, lh, 1e-9)

	lh, ok = ParseLineHeight("1.4")
	assert.True(t, ok)
	assert.InDelta(t, 1.4, lh, 1e-9)

	for _, v := range []string{"bold", "bolder", "700", "900"} {
		assert.True(t, IsBold(v), v)
	}
	for _, v := range []string{"normal", "lighter", "400", "heavy"} {
		assert.False(t, IsBold(v), v)
	}
	assert.True(t, IsItalic("oblique"))
	assert.False(t, IsItalic("normal"))

	a, ok := ParseAlign("Center")
	assert.True(t, ok)
	assert.Equal(t, AlignCenter, a)
	_, ok = ParseAlign("middle")
	assert.False(t, ok)
}

func TestApplyDeclarations(t *testing.T) {
	r := NewResolver(DefaultConfig(), zaptest.NewLogger(t))

	d := r.ApplyDeclarations(DefaultDescriptor(), css.ParseDeclarations(
		"font-size: 16px; font-weight: 700; font-style: italic; text-decoration: underline; "+
			"color: #f00; background-color: yellow; line-height: 1.5; text-align: center; float: left"))

	assert.InDelta(t, 12, d.FontSize, 1e-9)
	assert.True(t, d.Bold())
	assert.True(t, d.Italic)
	assert.True(t, d.Underline)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, d.Color)
	assert.True(t, d.HasBackground())
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, d.Background)
	assert.InDelta(t, 1.5, d.LineHeight, 1e-9)

	// malformed values keep the prior value
	d2 := r.ApplyDeclarations(d, css.ParseDeclarations("font-size: big; color: nope; line-height: x"))
	assert.Equal(t, d, d2)

	// normal weight and style reset what an ancestor set
	d3 := r.ApplyDeclarations(d, css.ParseDeclarations("font-weight: normal; font-style: normal"))
	assert.False(t, d3.Bold())
	assert.False(t, d3.Italic)
}

func parseDoc(t *testing.T, src string) *html.Document {
	t.Helper()
	doc, err := html.NewParser(zaptest.NewLogger(t)).ParseString(src)
	require.NoError(t, err)
	doc.Walk(doc.Root, func(id html.NodeID) bool {
		if v, ok := doc.Attr(id, "style"); ok {
			doc.SetInlineStyles(id, css.ParseDeclarations(v))
		}
		return true
	})
	return doc
}

func firstText(doc *html.Document, under html.NodeID) html.NodeID {
	found := html.NoNode
	doc.Walk(under, func(id html.NodeID) bool {
		if found == html.NoNode && doc.IsText(id) {
			found = id
		}
		return found == html.NoNode
	})
	return found
}

func TestResolveCascade(t *testing.T) {
	r := NewResolver(DefaultConfig(), zaptest.NewLogger(t))

	t.Run("nested tags compose", func(t *testing.T) {
		doc := parseDoc(t, `<p><b><i>text</i></b></p>`)
		d := r.Resolve(doc, firstText(doc, doc.FindTag(atom.I)))
		assert.True(t, d.Bold())
		assert.True(t, d.Italic)
		assert.InDelta(t, 12, d.FontSize, 1e-9)
	})

	t.Run("descendant inline wins", func(t *testing.T) {
		doc := parseDoc(t, `<div style="color: red; font-size: 20pt"><span style="color: blue">x</span></div>`)
		d := r.Resolve(doc, firstText(doc, doc.FindTag(atom.Span)))
		assert.Equal(t, color.RGBA{0, 0, 255, 255}, d.Color)
		assert.InDelta(t, 20, d.FontSize, 1e-9)
	})

	t.Run("inline overrides tag default on same node", func(t *testing.T) {
		doc := parseDoc(t, `<h1 style="font-size: 10pt">x</h1>`)
		d := r.Resolve(doc, firstText(doc, doc.FindTag(atom.H1)))
		assert.InDelta(t, 10, d.FontSize, 1e-9)
		assert.True(t, d.Bold())
	})

	t.Run("heading defaults", func(t *testing.T) {
		doc := parseDoc(t, `<h3>x</h3><sup>y</sup>`)
		d := r.Resolve(doc, firstText(doc, doc.FindTag(atom.H3)))
		assert.InDelta(t, 14.04, d.FontSize, 1e-9)
		assert.Equal(t, PositionSuperscript, r.Resolve(doc, firstText(doc, doc.FindTag(atom.Sup))).Position)
	})
}

func TestResolveClassOverride(t *testing.T) {
	theme := DefaultDescriptor()
	theme.FontSize = 30
	theme.Color = color.RGBA{0, 128, 0, 255}
	cfg := DefaultConfig().WithClassStyle("theme", theme)
	r := NewResolver(cfg, zaptest.NewLogger(t))

	doc := parseDoc(t, `<p><b><span class="theme" style="color: red; font-size: 8pt">x</span></b><i class="theme"><u>y</u></i></p>`)

	got := r.Resolve(doc, firstText(doc, doc.FindTag(atom.Span)))
	assert.Equal(t, theme, got, "leaf class replaces the cascade")

	// the class sits on an ancestor of the owning element, not on the leaf
	got = r.Resolve(doc, firstText(doc, doc.FindTag(atom.U)))
	assert.True(t, got.Underline)
	assert.True(t, got.Italic)
	assert.InDelta(t, 12, got.FontSize, 1e-9)
}

func TestApplyContainerOrder(t *testing.T) {
	cfg := DefaultConfig().
		WithClassContainer("wide", PadLeft(5)).
		WithClassContainer("right", AlignTo(AlignRight))

	f := cfg.ApplyContainer(Frame{}, atom.P, []string{"ql-align-center", "wide", "right"}, nil, true)
	assert.Equal(t, Padding{Top: 6, Bottom: 6, Left: 5}, f.Padding)
	assert.Equal(t, AlignRight, f.Align, "class rules run in class order")

	inline := css.ParseDeclarations("text-align: left")
	f = cfg.ApplyContainer(Frame{}, atom.P, []string{"right"}, inline, true)
	assert.Equal(t, AlignLeft, f.Align, "inline text-align runs last")

	f = cfg.ApplyContainer(Frame{}, atom.Span, []string{"right"}, inline, false)
	assert.Equal(t, AlignRight, f.Align, "inline text-align applies to blocks only")
}

func TestConfigIsImmutable(t *testing.T) {
	base := DefaultConfig()
	derived := base.WithClassAlign("x", AlignRight).WithListIndent(40)

	_, ok := base.ClassAlign["x"]
	assert.False(t, ok)
	assert.Equal(t, DefaultListIndent, base.ListIndent)
	assert.Equal(t, 40.0, derived.ListIndent)

	a, ok := derived.ClassAlignment([]string{"nope", "x", "ql-align-center"})
	assert.True(t, ok)
	assert.Equal(t, AlignRight, a)
}

func TestLoadConfig(t *testing.T) {
	log := zaptest.NewLogger(t)

	cfg, err := LoadConfig(strings.NewReader(`
list_indent: 40
tags:
  h1: "font-size: 30pt"
classes:
  warning: "color: red; font-weight: bold"
containers:
  blockquote: {padding: {left: 20}, align: center}
class_containers:
  boxed: {padding: {top: 2, bottom: 2}}
class_align:
  lead: justify
`), DefaultConfig(), log)
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.ListIndent)
	assert.InDelta(t, 30, cfg.TagStyles[atom.H1](DefaultDescriptor()).FontSize, 1e-9)
	assert.False(t, cfg.TagStyles[atom.H1](DefaultDescriptor()).Bold(), "file entry replaces the default rule")
	assert.True(t, cfg.ClassStyles["warning"].Bold())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, cfg.ClassStyles["warning"].Color)
	assert.Equal(t, Frame{Padding: Padding{Left: 20}, Align: AlignCenter}, cfg.TagContainers[atom.Blockquote](Frame{}))
	assert.Equal(t, Padding{Top: 2, Bottom: 2}, cfg.ClassContainers["boxed"](Frame{}).Padding)
	assert.Equal(t, AlignJustify, cfg.ClassAlign["lead"])

	empty, err := LoadConfig(strings.NewReader(""), DefaultConfig(), log)
	require.NoError(t, err)
	assert.Equal(t, DefaultListIndent, empty.ListIndent)
}

func TestLoadConfigReportsAllErrors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader(`
list_indent: -1
tags:
  notatag: "color: red"
classes:
  empty: ";;"
class_align:
  x: sideways
`), DefaultConfig(), zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)

	_, err = LoadConfig(strings.NewReader("unknown_key: 1"), DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestWithStylesheet(t *testing.T) {
	sheet := css.NewParser(zaptest.NewLogger(t)).ParseString(`.lead { font-size: 14pt; text-align: justify }`)
	cfg := DefaultConfig().WithStylesheet(sheet, zaptest.NewLogger(t))

	assert.InDelta(t, 14, cfg.ClassStyles["lead"].FontSize, 1e-9)
	assert.Equal(t, AlignJustify, cfg.ClassAlign["lead"])
}
