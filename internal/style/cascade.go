package style

import (
	"go.uber.org/zap"
	xhtml "golang.org/x/net/html"

	"github.com/gompdf/htmlflow/internal/parser/css"
	"github.com/gompdf/htmlflow/internal/parser/html"
)

// Resolver computes the effective style of text leaves.
type Resolver struct {
	cfg Config
	log *zap.Logger
}

// NewResolver creates a resolver over cfg.
func NewResolver(cfg Config, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{cfg: cfg, log: log.Named("style")}
}

// Config returns the style tables of the resolver.
func (r *Resolver) Config() *Config {
	return &r.cfg
}

// ApplyDeclarations merges inline declarations into d.
func (r *Resolver) ApplyDeclarations(d Descriptor, decls css.Declarations) Descriptor {
	return ApplyDeclarations(d, decls, r.log)
}

// ApplyDeclarations merges declarations into d in declaration order.
// Unknown properties and unparseable values leave d unchanged and are only
// logged.
func ApplyDeclarations(d Descriptor, decls css.Declarations, log *zap.Logger) Descriptor {
	if log == nil {
		log = zap.NewNop()
	}
	for _, decl := range decls {
		switch decl.Property {
		case "font-size":
			if pt, ok := ParseFontSize(decl.Value); ok {
				d.FontSize = pt
			} else {
				log.Debug("Unparseable font size", zap.String("value", decl.Value))
			}
		case "font-weight":
			if IsBold(decl.Value) {
				d.Weight = WeightBold
			} else {
				d.Weight = WeightNormal
			}
		case "font-style":
			d.Italic = IsItalic(decl.Value)
		case "text-decoration":
			if IsUnderline(decl.Value) {
				d.Underline = true
			}
		case "color":
			if c, ok := ParseColor(decl.Value); ok {
				d.Color = c
			} else {
				log.Debug("Unparseable color", zap.String("value", decl.Value))
			}
		case "background-color":
			if c, ok := ParseColor(decl.Value); ok {
				d.Background = c
			} else {
				log.Debug("Unparseable background color", zap.String("value", decl.Value))
			}
		case "line-height":
			if lh, ok := ParseLineHeight(decl.Value); ok {
				d.LineHeight = lh
			} else {
				log.Debug("Unparseable line height", zap.String("value", decl.Value))
			}
		case "text-align":
			// consumed by container and paragraph alignment
		default:
			log.Debug("Unrecognized inline CSS property", zap.String("property", decl.Property), zap.String("value", decl.Value))
		}
	}
	return d
}

// Resolve returns the style of leaf, a text node or a br element. The tag
// rule and then the cached inline declarations of every node on the path
// are folded from the root down. A class style of the element owning the
// leaf replaces the result entirely.
func (r *Resolver) Resolve(doc *html.Document, leaf html.NodeID) Descriptor {
	path := doc.Ancestors(leaf)

	d := r.cfg.Base
	for i := len(path) - 1; i >= 0; i-- {
		id := path[i]
		n := doc.Node(id)
		if n.Type != xhtml.ElementNode {
			continue
		}
		if rule, ok := r.cfg.TagStyles[n.Tag]; ok && rule != nil {
			d = rule(d)
		}
		if decls, ok := doc.InlineStyles(id); ok {
			d = r.ApplyDeclarations(d, decls)
		}
	}

	owner := leaf
	if !doc.IsElement(owner) {
		owner = doc.Parent(owner)
	}
	if owner != html.NoNode {
		if cs, ok := r.cfg.ClassStyle(doc.Classes(owner)); ok {
			return cs
		}
	}
	return d
}

// WithStylesheet returns a copy of c extended by the class rules of sheet.
// A rule's text properties become a class style resolved against the base
// style and its text-align becomes a class alignment.
func (c Config) WithStylesheet(sheet *css.Stylesheet, log *zap.Logger) Config {
	if sheet == nil || len(sheet.Rules) == 0 {
		return c
	}
	c = c.Clone()
	if c.ClassStyles == nil {
		c.ClassStyles = map[string]Descriptor{}
	}
	if c.ClassAlign == nil {
		c.ClassAlign = map[string]Align{}
	}
	for _, rule := range sheet.Rules {
		base, ok := c.ClassStyles[rule.Class]
		if !ok {
			base = c.Base
		}
		text := make(css.Declarations, 0, rule.Declarations.Len())
		for _, decl := range rule.Declarations {
			if decl.Property == "text-align" {
				if a, ok := ParseAlign(decl.Value); ok {
					c.ClassAlign[rule.Class] = a
				}
				continue
			}
			text = append(text, decl)
		}
		if len(text) > 0 {
			c.ClassStyles[rule.Class] = ApplyDeclarations(base, text, log)
		}
	}
	return c
}
