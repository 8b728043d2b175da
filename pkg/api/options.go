package api

import (
	"go.uber.org/zap"

	"github.com/gompdf/htmlflow/internal/pagination"
	"github.com/gompdf/htmlflow/internal/style"
)

// Options represents configuration options for the HTML to PDF converter
type Options struct {
	// Page dimensions
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape
	PageOrientation PageOrientation

	// Page margins. All zero means one inch on every side.
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Debug logs diagnostics to stderr when no Logger is set.
	Debug  bool
	Logger *zap.Logger

	// When false, span backgrounds will not be painted
	RenderBackgrounds bool
	// FontFamily names the text font, e.g. "serif" or "Courier".
	FontFamily string

	// Resource paths searched for images not found relative to the document
	ResourcePaths []string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string

	// Styles replaces the default style tables.
	Styles *style.Config
	// StyleFile is a YAML style file loaded on top of Styles.
	StyleFile string
	// UserAgentStylesheet holds class rules applied to every document
	// before the document's own style elements.
	UserAgentStylesheet string
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		PageWidth:       PageSizeA4Width,
		PageHeight:      PageSizeA4Height,
		PageOrientation: PageOrientationPortrait,

		// 1 inch = 72 points
		MarginTop:    72,
		MarginRight:  72,
		MarginBottom: 72,
		MarginLeft:   72,

		RenderBackgrounds: true,
		FontFamily:        "Helvetica",
		ResourcePaths:     []string{},
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithPageSizeName sets one of the named page sizes: A3, A4, A5, Letter
// or Legal.
func WithPageSizeName(name string) (Option, error) {
	size, err := pagination.LookupPageSize(name)
	if err != nil {
		return nil, err
	}
	return WithPageSize(size.Width, size.Height), nil
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithLogger sets the logger used by every stage of the conversion.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithBackgrounds turns painting of span backgrounds on or off.
func WithBackgrounds(on bool) Option {
	return func(o *Options) {
		o.RenderBackgrounds = on
	}
}

// WithFontFamily sets the text font family.
func WithFontFamily(family string) Option {
	return func(o *Options) {
		o.FontFamily = family
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithStyles replaces the default style tables.
func WithStyles(cfg style.Config) Option {
	return func(o *Options) {
		c := cfg.Clone()
		o.Styles = &c
	}
}

// WithStyleFile loads a YAML style file on top of the style tables.
func WithStyleFile(path string) Option {
	return func(o *Options) {
		o.StyleFile = path
	}
}

// WithUserAgentStylesheet sets the user agent stylesheet
func WithUserAgentStylesheet(stylesheet string) Option {
	return func(o *Options) {
		o.UserAgentStylesheet = stylesheet
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// Standard page sizes in points (1/72 inch)
const (
	// A series
	PageSizeA0Width  = 2383.94
	PageSizeA0Height = 3370.39
	PageSizeA1Width  = 1683.78
	PageSizeA1Height = 2383.94
	PageSizeA2Width  = 1190.55
	PageSizeA2Height = 1683.78
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28
	PageSizeA6Width  = 297.64
	PageSizeA6Height = 419.53

	// US Letter and Legal
	PageSizeLetterWidth  = 612.0
	PageSizeLetterHeight = 792.0
	PageSizeLegalWidth   = 612.0
	PageSizeLegalHeight  = 1008.0
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}
