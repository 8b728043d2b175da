// Package text breaks styled runs into measured tokens and wraps them into
// lines of a given width.
package text

import (
	"github.com/gompdf/htmlflow/internal/style"
)

// Measurer returns the advance width of s set in style d.
type Measurer interface {
	Width(s string, d style.Descriptor) float64
}

// MeasureFunc adapts a function to a Measurer.
type MeasureFunc func(s string, d style.Descriptor) float64

func (f MeasureFunc) Width(s string, d style.Descriptor) float64 { return f(s, d) }

// Run is text sharing one style.
type Run struct {
	Text  string
	Style style.Descriptor
}

// Token is a word, a run of spaces or a forced break.
type Token struct {
	Text  string
	Style style.Descriptor
	Width float64
	Space bool
	Break bool
}

// Line is one wrapped line. Width excludes trailing spaces, which are
// dropped. Hard is set when the line was ended by a break or by the end of
// the paragraph.
type Line struct {
	Tokens []Token
	Width  float64
	Ascent float64
	Height float64
	Hard   bool
}

// Spaces returns the number of space tokens on the line.
func (l Line) Spaces() int {
	n := 0
	for _, t := range l.Tokens {
		if t.Space {
			n++
		}
	}
	return n
}

// Size returns the font size text of style d is set in. Raised and
// lowered text is set smaller.
func Size(d style.Descriptor) float64 {
	if d.Position != style.PositionNormal {
		return d.FontSize * 0.7
	}
	return d.FontSize
}

// Rise returns the baseline shift of style d, negative meaning up.
func Rise(d style.Descriptor) float64 {
	switch d.Position {
	case style.PositionSuperscript:
		return -0.35 * d.FontSize
	case style.PositionSubscript:
		return 0.15 * d.FontSize
	}
	return 0
}

// Tokenize splits runs into words, space runs and breaks and measures
// them. Newlines inside text break the line. Only ASCII blanks separate
// words, so non-breaking spaces stay part of their word.
func Tokenize(runs []Run, m Measurer) []Token {
	var tokens []Token
	for _, run := range runs {
		s := run.Text
		start := 0
		for start < len(s) {
			c := s[start]
			if c == '\n' {
				tokens = append(tokens, Token{Text: "\n", Style: run.Style, Break: true})
				start++
				continue
			}
			space := isBlank(c)
			end := start + 1
			for end < len(s) && s[end] != '\n' && isBlank(s[end]) == space {
				end++
			}
			word := s[start:end]
			tokens = append(tokens, Token{
				Text:  word,
				Style: run.Style,
				Width: m.Width(word, run.Style),
				Space: space,
			})
			start = end
		}
	}
	return tokens
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f'
}

// Wrap fills lines greedily up to maxWidth. A word wider than maxWidth is
// placed on a line of its own. Spaces at the start of a wrapped line are
// dropped. A break at the very end of the tokens does not open an empty
// line.
func Wrap(tokens []Token, maxWidth float64) []Line {
	var (
		lines []Line
		cur   Line
		words int
	)
	emit := func(hard bool, fallback style.Descriptor) {
		for len(cur.Tokens) > 0 && cur.Tokens[len(cur.Tokens)-1].Space {
			cur.Tokens = cur.Tokens[:len(cur.Tokens)-1]
		}
		cur.Width, cur.Ascent, cur.Height = 0, 0, 0
		for _, t := range cur.Tokens {
			cur.Width += t.Width
			cur.Ascent = max(cur.Ascent, t.Style.FontSize)
			cur.Height = max(cur.Height, t.Style.FontSize*t.Style.LineHeight)
		}
		if len(cur.Tokens) == 0 {
			cur.Ascent = fallback.FontSize
			cur.Height = fallback.FontSize * fallback.LineHeight
		}
		cur.Hard = hard
		lines = append(lines, cur)
		cur, words = Line{}, 0
	}

	for _, t := range tokens {
		switch {
		case t.Break:
			emit(true, t.Style)
		case t.Space:
			if len(cur.Tokens) == 0 && len(lines) > 0 && !lines[len(lines)-1].Hard {
				continue
			}
			cur.Tokens = append(cur.Tokens, t)
			cur.Width += t.Width
		default:
			if words > 0 && cur.Width+t.Width > maxWidth {
				emit(false, t.Style)
			}
			cur.Tokens = append(cur.Tokens, t)
			cur.Width += t.Width
			words++
		}
	}
	if words > 0 {
		emit(true, style.Descriptor{})
	}
	return lines
}
