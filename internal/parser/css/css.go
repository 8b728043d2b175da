package css

import (
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Declaration represents a CSS declaration (property-value pair)
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Declarations is an ordered property map. A property keeps the position of
// its first occurrence and the value of its last one.
type Declarations []Declaration

// Get returns the value of a property.
func (d Declarations) Get(property string) (string, bool) {
	for i := range d {
		if d[i].Property == property {
			return d[i].Value, true
		}
	}
	return "", false
}

// Len returns the number of distinct properties.
func (d Declarations) Len() int {
	return len(d)
}

// Each calls fn for every property in declaration order.
func (d Declarations) Each(fn func(property, value string)) {
	for _, decl := range d {
		fn(decl.Property, decl.Value)
	}
}

func (d Declarations) set(decl Declaration) Declarations {
	for i := range d {
		if d[i].Property == decl.Property {
			d[i].Value = decl.Value
			d[i].Important = decl.Important
			return d
		}
	}
	return append(d, decl)
}

// ParseDeclarations parses the body of a style attribute. Pieces without a
// colon, with an empty name or with an empty value are skipped.
func ParseDeclarations(text string) Declarations {
	text = removeComments(text)
	declarationStrings := strings.Split(text, ";")
	var result Declarations

	for _, declStr := range declarationStrings {
		declStr = strings.TrimSpace(declStr)
		if declStr == "" {
			continue
		}

		parts := strings.SplitN(declStr, ":", 2)
		if len(parts) != 2 {
			continue
		}

		property := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		important := false
		if strings.HasSuffix(value, "!important") {
			important = true
			value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		}
		if property == "" || value == "" {
			continue
		}

		result = result.set(Declaration{
			Property:  property,
			Value:     value,
			Important: important,
		})
	}

	return result
}

// Rule is a stylesheet rule bound to a single class selector.
type Rule struct {
	Class        string
	Declarations Declarations
}

// Stylesheet holds the class rules of a document stylesheet in source order.
type Stylesheet struct {
	Rules []Rule
}

// Parser parses document stylesheets.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css")}
}

// ParseString parses CSS from a string
func (p *Parser) ParseString(content string) *Stylesheet {
	sheet := &Stylesheet{}
	parser := css.NewParser(parse.NewInputString(content), false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				// end of input
				return sheet
			}
			p.log.Debug("CSS parse error", zap.Error(parser.Err()))

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))
			skipBlock(parser)

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			decls := parseDeclarationBlock(parser)
			if decls.Len() == 0 {
				p.log.Debug("Skipping rule without declarations", zap.Strings("selectors", selectors))
				continue
			}
			for _, selector := range selectors {
				class, ok := singleClass(selector)
				if !ok {
					p.log.Debug("Unsupported selector", zap.String("selector", selector))
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{Class: class, Declarations: decls})
			}
		}
	}
}

// Parse parses CSS from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Stylesheet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.ParseString(string(content)), nil
}

// parseSelectors splits the selector of a ruleset on commas.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for _, s := range strings.Split(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarationBlock reads declarations until the end of the ruleset.
func parseDeclarationBlock(parser *css.Parser) Declarations {
	var decls Declarations
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.EndRulesetGrammar:
			return decls
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return decls
			}
		case css.DeclarationGrammar:
			if decl, ok := declaration(string(data), parser.Values()); ok {
				decls = decls.set(decl)
			}
		}
	}
}

func declaration(property string, values []css.Token) (Declaration, bool) {
	var sb strings.Builder
	for _, v := range values {
		sb.Write(v.Data)
	}
	value := strings.TrimSpace(sb.String())

	important := false
	if strings.HasSuffix(value, "!important") {
		important = true
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
	}
	if property == "" || value == "" {
		return Declaration{}, false
	}
	return Declaration{Property: property, Value: value, Important: important}, true
}

// skipBlock consumes an at-rule block including nested rulesets.
func skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

func singleClass(selector string) (string, bool) {
	if len(selector) < 2 || selector[0] != '.' {
		return "", false
	}
	name := selector[1:]
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80 {
			continue
		}
		return "", false
	}
	return name, true
}

// removeComments drops CSS comments, leaving every other token as written.
func removeComments(content string) string {
	if !strings.Contains(content, "/*") {
		return content
	}

	l := css.NewLexer(parse.NewInputString(content))
	var result strings.Builder
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return result.String()
		case css.CommentToken:
			continue
		}
		result.Write(data)
	}
}
