package layout

import (
	"go.uber.org/zap"

	"github.com/gompdf/htmlflow/internal/parser/css"
	"github.com/gompdf/htmlflow/internal/parser/html"
	"github.com/gompdf/htmlflow/internal/style"
)

// ImageResolver maps the src of an image element to its bytes.
type ImageResolver func(src string) ([]byte, error)

// Options represents options for the layout engine
type Options struct {
	// Styles holds the style tables. The zero value means style.DefaultConfig().
	Styles *style.Config
	// Images resolves image sources. Images are skipped when nil.
	Images ImageResolver
	Logger *zap.Logger
}

// Engine turns parsed documents into layout trees. An Engine holds no
// per-document state and may be shared between goroutines.
type Engine struct {
	cfg    style.Config
	images ImageResolver
	log    *zap.Logger
}

// NewEngine creates a new layout engine
func NewEngine(options Options) *Engine {
	e := &Engine{
		images: options.Images,
		log:    options.Logger,
	}
	if options.Styles != nil {
		e.cfg = options.Styles.Clone()
	} else {
		e.cfg = style.DefaultConfig()
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.log = e.log.Named("layout")
	return e
}

// Config returns the style tables the engine starts every document with.
func (e *Engine) Config() style.Config {
	return e.cfg.Clone()
}

// docLayout is the state of one Layout call.
type docLayout struct {
	e   *Engine
	doc *html.Document
	cfg *style.Config
	res *style.Resolver
	log *zap.Logger
}

// Layout normalizes doc, caches its inline styles and composes the layout
// tree from the document node down. Class rules of the document's own
// stylesheets extend the style tables for this document only. doc itself
// is not modified.
func (e *Engine) Layout(doc *html.Document) Unit {
	norm := Normalize(doc)
	CacheInlineStyles(norm)

	cfg := e.cfg
	if len(norm.Stylesheets) > 0 {
		parser := css.NewParser(e.log)
		for _, text := range norm.Stylesheets {
			cfg = cfg.WithStylesheet(parser.ParseString(text), e.log)
		}
	}

	res := style.NewResolver(cfg, e.log)
	l := &docLayout{
		e:   e,
		doc: norm,
		cfg: res.Config(),
		res: res,
		log: e.log,
	}

	u := l.compose(norm.Root)
	if u == nil {
		return &Box{Node: norm.Root}
	}
	e.log.Debug("Composed layout", zap.Int("nodes", norm.Len()), zap.Int("paragraphs", len(Paragraphs(u))))
	return u
}
