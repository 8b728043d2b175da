package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/gompdf/htmlflow/internal/layout"
	"github.com/gompdf/htmlflow/internal/pagination"
	"github.com/gompdf/htmlflow/internal/parser/css"
	"github.com/gompdf/htmlflow/internal/parser/html"
	"github.com/gompdf/htmlflow/internal/render/pdf"
	"github.com/gompdf/htmlflow/internal/res"
	"github.com/gompdf/htmlflow/internal/style"
)

// Converter is the main API for converting HTML to PDF
type Converter struct {
	options Options
	log     *zap.Logger
}

// New creates a new HTML to PDF converter with default options
func New(opts ...Option) *Converter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a new HTML to PDF converter with the specified options
func NewWithOptions(options Options) *Converter {
	log := options.Logger
	if log == nil {
		log = zap.NewNop()
		if options.Debug {
			if dev, err := zap.NewDevelopment(); err == nil {
				log = dev
			}
		}
	}
	return &Converter{
		options: options,
		log:     log,
	}
}

// Options returns a copy of the converter's options.
func (c *Converter) Options() Options {
	return c.options
}

func (c *Converter) newLoader(base string) *res.Loader {
	loader := res.NewLoader(base, c.log)
	for _, path := range c.options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return loader
}

// styles builds the style tables: the configured or default tables, then
// the style file, then the user agent stylesheet.
func (c *Converter) styles() (style.Config, error) {
	cfg := style.DefaultConfig()
	if c.options.Styles != nil {
		cfg = c.options.Styles.Clone()
	}
	if c.options.StyleFile != "" {
		var err error
		cfg, err = style.LoadConfigFile(c.options.StyleFile, cfg, c.log)
		if err != nil {
			return cfg, err
		}
	}
	if c.options.UserAgentStylesheet != "" {
		sheet := css.NewParser(c.log).ParseString(c.options.UserAgentStylesheet)
		cfg = cfg.WithStylesheet(sheet, c.log)
	}
	return cfg, nil
}

func (c *Converter) layout(ctx context.Context, doc *html.Document, loader *res.Loader) (layout.Unit, error) {
	cfg, err := c.styles()
	if err != nil {
		return nil, err
	}
	engine := layout.NewEngine(layout.Options{
		Styles: &cfg,
		Images: loader.ImageResolver(ctx),
		Logger: c.log,
	})
	return engine.Layout(doc), nil
}

func (c *Converter) renderOptions() pdf.RenderOptions {
	width, height := c.options.PageWidth, c.options.PageHeight
	orientation := "P"
	if c.options.PageOrientation == PageOrientationLandscape {
		orientation = "L"
	} else if width > height {
		width, height = height, width
	}
	return pdf.RenderOptions{
		Title:       c.options.Title,
		Author:      c.options.Author,
		Subject:     c.options.Subject,
		Keywords:    c.options.Keywords,
		Creator:     "htmlflow",
		Producer:    "htmlflow",
		PageSize:    pagination.PageSize{Width: width, Height: height, Name: "Custom"},
		Orientation: orientation,
		Margins: pagination.Margins{
			Top:    c.options.MarginTop,
			Right:  c.options.MarginRight,
			Bottom: c.options.MarginBottom,
			Left:   c.options.MarginLeft,
		},
	}
}

func (c *Converter) render(ctx context.Context, doc *html.Document, loader *res.Loader, w io.Writer) error {
	root, err := c.layout(ctx, doc, loader)
	if err != nil {
		return err
	}

	renderer := pdf.NewRenderer(c.log)
	renderer.RenderBackgrounds = c.options.RenderBackgrounds
	if c.options.FontFamily != "" {
		renderer.FontFamily = pdf.FontFamily(c.options.FontFamily)
	}
	if err := renderer.Render(root, w, c.renderOptions()); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func (c *Converter) parse(content []byte, contentType string) (*html.Document, error) {
	doc, err := html.NewParser(c.log).ParseBytes(content, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Layout parses HTML and returns its layout tree without rendering it.
func (c *Converter) Layout(htmlContent string) (layout.Unit, error) {
	doc, err := c.parse([]byte(htmlContent), "text/html; charset=utf-8")
	if err != nil {
		return nil, err
	}
	return c.layout(context.Background(), doc, c.newLoader(""))
}

// Dump returns the layout tree of HTML as indented text.
func (c *Converter) Dump(htmlContent string) (string, error) {
	root, err := c.Layout(htmlContent)
	if err != nil {
		return "", err
	}
	return layout.Dump(root), nil
}

// DumpFile returns the layout tree of an HTML file as indented text.
func (c *Converter) DumpFile(inputPath string) (string, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML file: %w", err)
	}
	doc, err := c.parse(content, "")
	if err != nil {
		return "", err
	}
	root, err := c.layout(context.Background(), doc, c.newLoader(inputPath))
	if err != nil {
		return "", err
	}
	return layout.Dump(root), nil
}

// Convert converts HTML to PDF and writes the result to the specified writer
func (c *Converter) Convert(htmlContent string, output io.Writer) error {
	doc, err := c.parse([]byte(htmlContent), "text/html; charset=utf-8")
	if err != nil {
		return err
	}
	return c.render(context.Background(), doc, c.newLoader(""), output)
}

// ConvertToFile converts HTML to PDF and writes the result to the specified file
func (c *Converter) ConvertToFile(htmlContent, outputPath string) error {
	doc, err := c.parse([]byte(htmlContent), "text/html; charset=utf-8")
	if err != nil {
		return err
	}
	return c.writeFile(context.Background(), doc, c.newLoader(""), outputPath)
}

func (c *Converter) writeFile(ctx context.Context, doc *html.Document, loader *res.Loader, outputPath string) error {
	var buf bytes.Buffer
	if err := c.render(ctx, doc, loader, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}
	return nil
}

// ConvertFile converts an HTML file to PDF and writes the result to the
// specified file. The file's charset is detected from its content, and
// relative image sources resolve against its directory.
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}
	doc, err := c.parse(content, "")
	if err != nil {
		return err
	}
	return c.writeFile(context.Background(), doc, c.newLoader(inputPath), outputPath)
}

// ConvertURL converts an HTML URL to PDF and writes the result to the specified file
func (c *Converter) ConvertURL(url, outputPath string) error {
	return c.ConvertURLContext(context.Background(), url, outputPath)
}

// ConvertURLContext is ConvertURL with a context bounding every request.
func (c *Converter) ConvertURLContext(ctx context.Context, url, outputPath string) error {
	loader := c.newLoader(url)
	resource, err := loader.LoadHTML(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to load HTML from URL: %w", err)
	}
	doc, err := c.parse(resource.Data, resource.MimeType)
	if err != nil {
		return err
	}
	return c.writeFile(ctx, doc, loader, outputPath)
}

// ConvertBytes converts HTML bytes of any charset to PDF bytes
func (c *Converter) ConvertBytes(htmlContent []byte) ([]byte, error) {
	doc, err := c.parse(htmlContent, "")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.render(context.Background(), doc, c.newLoader(""), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WithOptions returns a new converter with the specified options
func (c *Converter) WithOptions(options Options) *Converter {
	return NewWithOptions(options)
}

// WithOption returns a new converter with the specified option set
func (c *Converter) WithOption(option Option) *Converter {
	newOptions := c.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// AddResourcePath adds a path to search for resources
func (c *Converter) AddResourcePath(path string) *Converter {
	newOptions := c.options
	newOptions.ResourcePaths = append(append([]string(nil), newOptions.ResourcePaths...), path)
	return NewWithOptions(newOptions)
}

// SetPageSize sets the page size
func (c *Converter) SetPageSize(width, height float64) *Converter {
	return c.WithOption(WithPageSize(width, height))
}

// SetMargins sets the page margins
func (c *Converter) SetMargins(top, right, bottom, left float64) *Converter {
	return c.WithOption(WithMargins(top, right, bottom, left))
}

// SetDebug sets the debug mode
func (c *Converter) SetDebug(debug bool) *Converter {
	return c.WithOption(WithDebug(debug))
}

// SetTitle sets the document title
func (c *Converter) SetTitle(title string) *Converter {
	return c.WithOption(WithTitle(title))
}

// SetAuthor sets the document author
func (c *Converter) SetAuthor(author string) *Converter {
	return c.WithOption(WithAuthor(author))
}

// SetSubject sets the document subject
func (c *Converter) SetSubject(subject string) *Converter {
	return c.WithOption(WithSubject(subject))
}

// SetKeywords sets the document keywords
func (c *Converter) SetKeywords(keywords string) *Converter {
	return c.WithOption(WithKeywords(keywords))
}
