// Package pagination places vertically stacked content on fixed size pages.
package pagination

import (
	"fmt"
	"strings"
)

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

var pageSizes = []PageSize{PageSizeA4, PageSizeLetter, PageSizeLegal, PageSizeA3, PageSizeA5}

// LookupPageSize returns the standard page size called name, ignoring case.
func LookupPageSize(name string) (PageSize, error) {
	for _, s := range pageSizes {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return PageSize{}, fmt.Errorf("unknown page size %q", name)
}

// Landscape returns the size with its longer side horizontal.
func (s PageSize) Landscape() PageSize {
	if s.Height > s.Width {
		s.Width, s.Height = s.Height, s.Width
	}
	return s
}

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins are one inch on every side.
var DefaultMargins = Margins{Top: 72, Right: 72, Bottom: 72, Left: 72}

// Paginator is a cursor moving down the content area of the current page.
// Content that does not fit below the cursor moves to a new page, which is
// announced through the callback given to NewPaginator.
type Paginator struct {
	PageSize PageSize
	Margins  Margins

	newPage func()
	pages   int
	y       float64
}

// NewPaginator creates a new paginator. newPage is called whenever a page
// is started, including the first one.
func NewPaginator(pageSize PageSize, margins Margins, newPage func()) *Paginator {
	if newPage == nil {
		newPage = func() {}
	}
	return &Paginator{
		PageSize: pageSize,
		Margins:  margins,
		newPage:  newPage,
	}
}

// ContentWidth returns the width between the side margins.
func (p *Paginator) ContentWidth() float64 {
	return p.PageSize.Width - p.Margins.Left - p.Margins.Right
}

// ContentHeight returns the height between the top and bottom margins.
func (p *Paginator) ContentHeight() float64 {
	return p.PageSize.Height - p.Margins.Top - p.Margins.Bottom
}

// Pages returns the number of pages started so far.
func (p *Paginator) Pages() int {
	return p.pages
}

// Y returns the cursor position on the current page.
func (p *Paginator) Y() float64 {
	return p.y
}

func (p *Paginator) start() {
	p.pages++
	p.y = p.Margins.Top
	p.newPage()
}

func (p *Paginator) bottom() float64 {
	return p.PageSize.Height - p.Margins.Bottom
}

// Reserve claims h points of vertical space and returns the top of the
// claimed area. Space that does not fit is taken from a new page unless the
// current page is still empty, in which case it overflows.
func (p *Paginator) Reserve(h float64) float64 {
	if p.pages == 0 {
		p.start()
	}
	if p.y+h > p.bottom() && p.y > p.Margins.Top {
		p.start()
	}
	y := p.y
	p.y += h
	return y
}

// Skip moves the cursor down by h points of padding. Padding never starts
// a page; what does not fit on the current page is dropped.
func (p *Paginator) Skip(h float64) {
	if p.pages == 0 {
		p.start()
	}
	p.y = min(p.y+h, p.bottom())
}
