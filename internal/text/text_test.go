package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/htmlflow/internal/style"
)

// fixed measures every byte as 1pt wide.
var fixed = MeasureFunc(func(s string, _ style.Descriptor) float64 {
	return float64(len(s))
})

func words(l Line) []string {
	var out []string
	for _, t := range l.Tokens {
		out = append(out, t.Text)
	}
	return out
}

func TestTokenize(t *testing.T) {
	d := style.DefaultDescriptor()
	tokens := Tokenize([]Run{{Text: "ab  c\nd", Style: d}, {Text: "e\u00a0f", Style: d}}, fixed)
	require.Len(t, tokens, 6)

	assert.Equal(t, "ab", tokens[0].Text)
	assert.True(t, tokens[1].Space)
	assert.InDelta(t, 2, tokens[1].Width, 1e-9)
	assert.Equal(t, "c", tokens[2].Text)
	assert.True(t, tokens[3].Break)
	assert.Equal(t, "d", tokens[4].Text)
	assert.Equal(t, "e\u00a0f", tokens[5].Text, "non-breaking space joins words")
}

func TestWrap(t *testing.T) {
	d := style.DefaultDescriptor()
	tokens := Tokenize([]Run{{Text: "aaa bbb ccc dddddddddd e", Style: d}}, fixed)
	lines := Wrap(tokens, 8)
	require.Len(t, lines, 4)

	assert.Equal(t, []string{"aaa", " ", "bbb"}, words(lines[0]))
	assert.InDelta(t, 7, lines[0].Width, 1e-9)
	assert.False(t, lines[0].Hard)
	assert.Equal(t, []string{"ccc"}, words(lines[1]), "trailing space dropped")
	assert.Equal(t, []string{"dddddddddd"}, words(lines[2]), "overlong word keeps its own line")
	assert.Equal(t, []string{"e"}, words(lines[3]))
	assert.True(t, lines[3].Hard)

	assert.InDelta(t, d.FontSize, lines[0].Ascent, 1e-9)
	assert.InDelta(t, d.FontSize*d.LineHeight, lines[0].Height, 1e-9)
}

func TestWrapBreaks(t *testing.T) {
	d := style.DefaultDescriptor()
	big := d
	big.FontSize = 20

	tokens := Tokenize([]Run{{Text: "a", Style: d}, {Text: "\n", Style: d}, {Text: "\n", Style: big}, {Text: "b", Style: d}, {Text: "\n", Style: d}}, fixed)
	lines := Wrap(tokens, 100)
	require.Len(t, lines, 3)

	assert.Equal(t, []string{"a"}, words(lines[0]))
	assert.True(t, lines[0].Hard)
	assert.Empty(t, lines[1].Tokens)
	assert.InDelta(t, 24, lines[1].Height, 1e-9, "empty line takes the height of its break")
	assert.Equal(t, []string{"b"}, words(lines[2]))
}

func TestWrapOnlyBreak(t *testing.T) {
	d := style.DefaultDescriptor()
	lines := Wrap(Tokenize([]Run{{Text: "\n", Style: d}}, fixed), 100)
	require.Len(t, lines, 1)
	assert.Empty(t, lines[0].Tokens)
	assert.Empty(t, Wrap(nil, 100))
}

func TestSizeAndRise(t *testing.T) {
	d := style.Superscript()(style.DefaultDescriptor())
	assert.InDelta(t, 8.4, Size(d), 1e-9)
	assert.Less(t, Rise(d), 0.0)

	d = style.Subscript()(style.DefaultDescriptor())
	assert.Greater(t, Rise(d), 0.0)
	assert.Zero(t, Rise(style.DefaultDescriptor()))
}

func TestEncode(t *testing.T) {
	e := NewEncoder()
	assert.Equal(t, "plain", e.Encode("plain"))
	assert.Equal(t, "caf\xe9", e.Encode("caf\u00e9"))
	assert.Equal(t, "caf\xe9", e.Encode("cafe\u0301"))
	assert.Equal(t, "\x95 \x80", e.Encode("\u2022 \u20ac"))
	assert.Equal(t, "a?b", e.Encode("a\u4e2db"))
}
