package layout

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html/atom"

	"github.com/gompdf/htmlflow/internal/parser/html"
	"github.com/gompdf/htmlflow/internal/style"
)

func parse(t *testing.T, src string) *html.Document {
	t.Helper()
	doc, err := html.NewParser(zaptest.NewLogger(t)).ParseString(src)
	require.NoError(t, err)
	return doc
}

func layoutOf(t *testing.T, src string, opts Options) Unit {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	return NewEngine(opts).Layout(parse(t, src))
}

func texts(ps []*Paragraph) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Text())
	}
	return out
}

func count[T Unit](u Unit) int {
	n := 0
	Walk(u, func(c Unit) {
		if _, ok := c.(T); ok {
			n++
		}
	})
	return n
}

func TestEmptyBlockKeepsBlankLine(t *testing.T) {
	u := layoutOf(t, `<p></p>`, Options{})
	assert.Equal(t, 1, count[*Blank](u))
	assert.Empty(t, Paragraphs(u))
}

func TestBlockWithEmptyChildrenHasNoBlank(t *testing.T) {
	for _, src := range []string{`<p> </p>`, `<p><b></b></p>`, `<p><s></s></p>`, "<div>\n <!-- c -->\n</div>"} {
		t.Run(src, func(t *testing.T) {
			u := layoutOf(t, src, Options{})
			assert.Equal(t, 0, count[*Blank](u))
			assert.Equal(t, 0, count[*Paragraph](u))
		})
	}
}

func TestNonBreakingSpaceIsContent(t *testing.T) {
	u := layoutOf(t, `<p>&nbsp;</p>`, Options{})
	ps := Paragraphs(u)
	require.Len(t, ps, 1)
	assert.Equal(t, "\u00a0", ps[0].Text())
	assert.Equal(t, 0, count[*Blank](u))
}

func TestWhitespaceOnlyRunsDropped(t *testing.T) {
	u := layoutOf(t, "<div>\n  <p>a</p>\n  <p> b </p>\n</div>", Options{})
	assert.Equal(t, []string{"a", "b"}, texts(Paragraphs(u)))
}

func TestNormalizeSplitsInlineAroundBlocks(t *testing.T) {
	doc := parse(t, `<div><s>a<div>b</div>c</s></div>`)
	norm := Normalize(doc)

	assert.Contains(t, norm.String(), `<div><s>a</s><s><div>b</div></s><s>c</s></div>`)
	assert.Equal(t, norm.String(), Normalize(norm).String())
	// the source document is untouched
	assert.Contains(t, doc.String(), `<s>a<div>b</div>c</s>`)
}

func TestNormalizeDropsEmptyRunSlices(t *testing.T) {
	doc := parse(t, "<div><b> <div>x</div> </b></div>")
	assert.Contains(t, Normalize(doc).String(), `<div><b><div>x</div></b></div>`)
}

func TestNormalizeKeepsNestedMarkupInRuns(t *testing.T) {
	doc := parse(t, `<div><b> a<i>x</i> <div>b</div></b></div>`)
	assert.Contains(t, Normalize(doc).String(), `<div><b>a<i>x</i></b><b><div>b</div></b></div>`)

	ps := Paragraphs(layoutOf(t, `<div><b> a<i>x</i> <div>b</div></b></div>`, Options{}))
	require.Equal(t, []string{"ax", "b"}, texts(ps))
	require.Len(t, ps[0].Spans, 2)
	assert.True(t, ps[0].Spans[0].Style.Bold())
	assert.False(t, ps[0].Spans[0].Style.Italic)
	assert.True(t, ps[0].Spans[1].Style.Bold())
	assert.True(t, ps[0].Spans[1].Style.Italic)
}

func TestSplitKeepsInlineStyle(t *testing.T) {
	u := layoutOf(t, `<div><s>a<div>b</div>c</s></div>`, Options{})
	ps := Paragraphs(u)
	require.Equal(t, []string{"a", "b", "c"}, texts(ps))
	for _, p := range ps {
		require.Len(t, p.Spans, 1)
		assert.True(t, p.Spans[0].Style.Strikethrough, p.Text())
	}
}

func TestInlineCascade(t *testing.T) {
	u := layoutOf(t, `<p><b>x<i>y</i></b>z<br>w</p>`, Options{})
	ps := Paragraphs(u)
	require.Len(t, ps, 1)
	spans := ps[0].Spans
	require.Len(t, spans, 5)

	assert.Equal(t, "x", spans[0].Text)
	assert.Equal(t, style.WeightBold, spans[0].Style.Weight)
	assert.False(t, spans[0].Style.Italic)

	assert.Equal(t, "y", spans[1].Text)
	assert.True(t, spans[1].Style.Bold())
	assert.True(t, spans[1].Style.Italic)

	assert.Equal(t, "z", spans[2].Text)
	assert.Equal(t, style.WeightNormal, spans[2].Style.Weight)

	assert.True(t, spans[3].IsBreak())
	assert.Equal(t, "w", spans[4].Text)
}

func TestHeadingsAndInlineStyles(t *testing.T) {
	u := layoutOf(t, `<h1>T</h1><p style="color:#f00; font-size:10pt">x <u>y</u></p>`, Options{})
	ps := Paragraphs(u)
	require.Len(t, ps, 2)

	h := ps[0].Spans[0].Style
	assert.InDelta(t, 24, h.FontSize, 1e-9)
	assert.True(t, h.Bold())

	x := ps[1].Spans[0].Style
	assert.InDelta(t, 10, x.FontSize, 1e-9)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, x.Color)
	assert.False(t, x.Underline)
	assert.True(t, ps[1].Spans[1].Style.Underline)
}

func TestClassStyleOverrides(t *testing.T) {
	cfg := style.DefaultConfig().WithClassStyle("hl", style.Descriptor{
		FontSize:   20,
		Color:      color.RGBA{0, 0, 255, 255},
		LineHeight: 1,
	})
	u := layoutOf(t, `<p><b><span class="hl">x</span></b>y</p>`, Options{Styles: &cfg})
	spans := Paragraphs(u)[0].Spans
	require.Len(t, spans, 2)

	assert.InDelta(t, 20, spans[0].Style.FontSize, 1e-9)
	assert.False(t, spans[0].Style.Bold(), "override replaces the inherited style")
	assert.InDelta(t, style.DefaultFontSize, spans[1].Style.FontSize, 1e-9)
}

func TestOrderedListMarkers(t *testing.T) {
	u := layoutOf(t, `<ol start="3"><li>a</li><!-- c --><li>b</li></ol>`, Options{})
	ps := Paragraphs(u)
	require.Len(t, ps, 2)

	assert.Equal(t, ListMarker{Kind: MarkerNumber, Ordinal: 3}, ps[0].Marker)
	assert.Equal(t, "3. ", ps[0].Marker.Text())
	assert.Equal(t, "4. ", ps[1].Marker.Text())
	assert.InDelta(t, style.DefaultListIndent, ps[0].MarkerWidth, 1e-9)
}

func TestOrdinalCountsItemsOfEnclosingList(t *testing.T) {
	u := layoutOf(t, `<ol><div><li>a</li></div><li>b<ol><li>x</li><li>y</li></ol></li><li>c</li></ol>`, Options{})
	ps := Paragraphs(u)
	require.Equal(t, []string{"a", "b", "x", "y", "c"}, texts(ps))

	var markers []string
	for _, p := range ps {
		markers = append(markers, p.Marker.Text())
	}
	assert.Equal(t, []string{"1. ", "2. ", "1. ", "2. ", "3. "}, markers)
}

func TestNestedListMarkers(t *testing.T) {
	u := layoutOf(t, `<ul><li>a<ol><li>b</li><li>c</li></ol></li><li>d</li></ul>`, Options{})
	ps := Paragraphs(u)
	require.Equal(t, []string{"a", "b", "c", "d"}, texts(ps))

	assert.Equal(t, Bullet, ps[0].Marker.Text())
	assert.Equal(t, "1. ", ps[1].Marker.Text())
	assert.Equal(t, "2. ", ps[2].Marker.Text())
	assert.Equal(t, Bullet, ps[3].Marker.Text())
}

func TestListItemGovernsNestedBlocks(t *testing.T) {
	u := layoutOf(t, `<ul><li><p>a</p></li><p>x</p></ul><p>b</p>`, Options{})
	ps := Paragraphs(u)
	require.Equal(t, []string{"a", "x", "b"}, texts(ps))
	assert.Equal(t, MarkerBullet, ps[0].Marker.Kind)
	assert.Equal(t, MarkerNone, ps[1].Marker.Kind)
	assert.InDelta(t, style.DefaultListIndent, ps[1].MarkerWidth, 1e-9, "list content outside items keeps the marker cell")
	assert.Equal(t, MarkerNone, ps[2].Marker.Kind)
	assert.Zero(t, ps[2].MarkerWidth)
}

func TestListContainerPadding(t *testing.T) {
	u := layoutOf(t, `<ul><li>a</li></ul>`, Options{})
	var ul *Box
	Walk(u, func(c Unit) {
		if b, ok := c.(*Box); ok && b.Tag == atom.Ul {
			ul = b
		}
	})
	require.NotNil(t, ul)
	assert.InDelta(t, 30, ul.Frame.Padding.Left, 1e-9)
}

func TestParagraphAlignment(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want style.Align
	}{
		{"none", `<p>x</p>`, style.AlignNone},
		{"class", `<p class="ql-align-center">x</p>`, style.AlignCenter},
		{"inherited", `<div class="ql-align-right"><p>x</p></div>`, style.AlignRight},
		{"inline over class", `<p class="ql-align-justify" style="text-align:center">x</p>`, style.AlignCenter},
		{"outer class over inner class", `<div class="ql-align-right"><p class="ql-align-center">x</p></div>`, style.AlignRight},
		{"outer inline over inner class", `<div style="text-align:right"><p class="ql-align-center">x</p></div>`, style.AlignRight},
		{"outer class over inner inline", `<div class="ql-align-justify"><p style="text-align:center">x</p></div>`, style.AlignJustify},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := Paragraphs(layoutOf(t, tt.src, Options{}))
			require.Len(t, ps, 1)
			assert.Equal(t, tt.want, ps[0].Align)
		})
	}
}

func TestInlineTextAlignOnlyOnBlocks(t *testing.T) {
	u := layoutOf(t, `<p><span style="text-align:right">x</span></p>`, Options{})
	assert.Equal(t, style.AlignNone, Paragraphs(u)[0].Align)
}

func TestDocumentStylesheet(t *testing.T) {
	src := `<html><head><style>.big { font-size: 20pt; text-align: right }</style></head>
<body><p class="big">x</p></body></html>`
	u := layoutOf(t, src, Options{})
	ps := Paragraphs(u)
	require.Len(t, ps, 1)
	assert.InDelta(t, 20, ps[0].Spans[0].Style.FontSize, 1e-9)
	assert.Equal(t, style.AlignRight, ps[0].Align)
}

func TestHeadSkipped(t *testing.T) {
	u := layoutOf(t, `<html><head><title>T</title></head><body><p>x</p></body></html>`, Options{})
	assert.Equal(t, []string{"x"}, texts(Paragraphs(u)))
}

func TestImages(t *testing.T) {
	images := func(src string) ([]byte, error) {
		if src == "logo.png" {
			return []byte{1, 2, 3}, nil
		}
		return nil, errors.New("not found")
	}

	u := layoutOf(t, `<p><img src="logo.png"></p><p><img src="gone.png" alt="Gone"></p><p><img src="gone.png"></p>`,
		Options{Images: images})

	var imgs []*Image
	Walk(u, func(c Unit) {
		if i, ok := c.(*Image); ok {
			imgs = append(imgs, i)
		}
	})
	require.Len(t, imgs, 1)
	assert.Equal(t, "logo.png", imgs[0].Src)
	assert.Equal(t, []byte{1, 2, 3}, imgs[0].Data)

	assert.Equal(t, []string{"Gone"}, texts(Paragraphs(u)))
	assert.Equal(t, 0, count[*Blank](u))
}

func TestLayoutLeavesDocumentUntouched(t *testing.T) {
	doc := parse(t, `<div><b>a<div>b</div></b></div>`)
	before := doc.String()
	NewEngine(Options{Logger: zaptest.NewLogger(t)}).Layout(doc)
	assert.Equal(t, before, doc.String())
}

func TestDump(t *testing.T) {
	u := layoutOf(t, `<ol><li>a</li></ol>`, Options{})
	out := Dump(u)
	assert.True(t, strings.HasPrefix(out, "box document"))
	assert.Contains(t, out, `box ol pad=0,0,0,30`)
	assert.Contains(t, out, `paragraph marker="1. "`)
	assert.Contains(t, out, `"a" 12pt normal`)
}
