package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPageSize(t *testing.T) {
	s, err := LookupPageSize("letter")
	require.NoError(t, err)
	assert.Equal(t, PageSizeLetter, s)

	_, err = LookupPageSize("B7")
	assert.Error(t, err)

	l := PageSizeA4.Landscape()
	assert.Equal(t, PageSizeA4.Height, l.Width)
	assert.Equal(t, l, l.Landscape())
}

func TestPaginatorReserve(t *testing.T) {
	started := 0
	p := NewPaginator(PageSize{Width: 200, Height: 100}, Margins{Top: 10, Right: 20, Bottom: 10, Left: 30}, func() { started++ })
	assert.InDelta(t, 150, p.ContentWidth(), 1e-9)
	assert.InDelta(t, 80, p.ContentHeight(), 1e-9)
	assert.Zero(t, p.Pages())

	assert.InDelta(t, 10, p.Reserve(50), 1e-9)
	assert.Equal(t, 1, started)
	assert.InDelta(t, 60, p.Reserve(30), 1e-9)

	// does not fit below 90
	assert.InDelta(t, 10, p.Reserve(20), 1e-9)
	assert.Equal(t, 2, p.Pages())

	// taller than a page on an empty page overflows in place
	p.Skip(100)
	assert.InDelta(t, 90, p.Y(), 1e-9)
	assert.InDelta(t, 10, p.Reserve(500), 1e-9)
	assert.Equal(t, 3, started)
}
