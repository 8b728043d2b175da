package css

import (
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	data string
}

// lex splits a property value into tokens, dropping whitespace and comments.
// It reports false when the lexer stops on anything but the end of input.
func lex(value string) ([]token, bool) {
	l := css.NewLexer(parse.NewInputString(value))
	var tokens []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return tokens, l.Err() == io.EOF
		case css.WhitespaceToken, css.CommentToken:
			continue
		}
		tokens = append(tokens, token{tt: tt, data: string(data)})
	}
}

// Length parses a single numeric value such as "12pt", "16px", "1.5" or
// "50%". The unit is returned lowercased; it is empty for a bare number and
// "%" for a percentage.
func Length(value string) (float64, string, bool) {
	tokens, ok := lex(value)
	if !ok || len(tokens) != 1 {
		return 0, "", false
	}
	tok := tokens[0]
	switch tok.tt {
	case css.NumberToken:
		n, err := strconv.ParseFloat(tok.data, 64)
		return n, "", err == nil
	case css.PercentageToken:
		n, err := strconv.ParseFloat(strings.TrimSuffix(tok.data, "%"), 64)
		return n, "%", err == nil
	case css.DimensionToken:
		num, unit := parse.Dimension([]byte(tok.data))
		if num == 0 || unit == 0 {
			return 0, "", false
		}
		n, err := strconv.ParseFloat(tok.data[:num], 64)
		return n, strings.ToLower(tok.data[num : num+unit]), err == nil
	}
	return 0, "", false
}

// Keyword returns the lowercased identifier when value is exactly one.
func Keyword(value string) (string, bool) {
	tokens, ok := lex(value)
	if !ok || len(tokens) != 1 || tokens[0].tt != css.IdentToken {
		return "", false
	}
	return strings.ToLower(tokens[0].data), true
}

// Keywords returns all identifiers of a space separated list, lowercased.
// Non-identifier tokens are ignored.
func Keywords(value string) []string {
	tokens, _ := lex(value)
	var words []string
	for _, tok := range tokens {
		if tok.tt == css.IdentToken {
			words = append(words, strings.ToLower(tok.data))
		}
	}
	return words
}

// Hash returns the digits of a "#..." value without the leading '#'.
func Hash(value string) (string, bool) {
	tokens, ok := lex(value)
	if !ok || len(tokens) != 1 || tokens[0].tt != css.HashToken {
		return "", false
	}
	return strings.TrimPrefix(tokens[0].data, "#"), true
}

// Function parses a functional notation with numeric arguments, for
// example "rgb(10, 20, 30)". The name is lowercased and has no parenthesis.
// Percentage arguments are returned as their numeric value.
func Function(value string) (string, []float64, bool) {
	tokens, ok := lex(value)
	if !ok || len(tokens) < 2 || tokens[0].tt != css.FunctionToken {
		return "", nil, false
	}
	name := strings.ToLower(strings.TrimSuffix(tokens[0].data, "("))
	if tokens[len(tokens)-1].tt != css.RightParenthesisToken {
		return "", nil, false
	}

	var args []float64
	expectArg := true
	for _, tok := range tokens[1 : len(tokens)-1] {
		switch tok.tt {
		case css.NumberToken, css.PercentageToken:
			if !expectArg {
				return "", nil, false
			}
			n, err := strconv.ParseFloat(strings.TrimSuffix(tok.data, "%"), 64)
			if err != nil {
				return "", nil, false
			}
			args = append(args, n)
			expectArg = false
		case css.CommaToken:
			if expectArg {
				return "", nil, false
			}
			expectArg = true
		default:
			return "", nil, false
		}
	}
	if expectArg && len(args) > 0 {
		return "", nil, false
	}
	return name, args, true
}
