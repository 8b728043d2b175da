// Package htmlflow turns rich-text HTML into a tree of styled paragraphs
// and renders that tree to PDF.
package htmlflow

import (
	"github.com/gompdf/htmlflow/pkg/api"
)

type Converter = api.Converter
type Options = api.Options
type Option = api.Option
type PageOrientation = api.PageOrientation

func New(opts ...Option) *Converter             { return api.New(opts...) }
func NewWithOptions(options Options) *Converter { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	WithPageSize            = api.WithPageSize
	WithPageSizeName        = api.WithPageSizeName
	WithMargins             = api.WithMargins
	WithDebug               = api.WithDebug
	WithLogger              = api.WithLogger
	WithBackgrounds         = api.WithBackgrounds
	WithFontFamily          = api.WithFontFamily
	WithResourcePath        = api.WithResourcePath
	WithTitle               = api.WithTitle
	WithAuthor              = api.WithAuthor
	WithSubject             = api.WithSubject
	WithKeywords            = api.WithKeywords
	WithStyles              = api.WithStyles
	WithStyleFile           = api.WithStyleFile
	WithUserAgentStylesheet = api.WithUserAgentStylesheet
	WithPageSizeA4          = api.WithPageSizeA4
	WithPageSizeLetter      = api.WithPageSizeLetter
	WithPageSizeLegal       = api.WithPageSizeLegal
	WithPageOrientation     = api.WithPageOrientation
)

const (
	PageSizeA0Width  = api.PageSizeA0Width
	PageSizeA0Height = api.PageSizeA0Height
	PageSizeA1Width  = api.PageSizeA1Width
	PageSizeA1Height = api.PageSizeA1Height
	PageSizeA2Width  = api.PageSizeA2Width
	PageSizeA2Height = api.PageSizeA2Height
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height
	PageSizeA6Width  = api.PageSizeA6Width
	PageSizeA6Height = api.PageSizeA6Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)
