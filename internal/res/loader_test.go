package res

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestLoadDataURL(t *testing.T) {
	l := NewLoader("", zaptest.NewLogger(t))

	res, err := l.Load(context.Background(), "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Equal(t, ResourceTypeImage, res.Type)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), res.Data)

	res, err = l.Load(context.Background(), "data:image/svg+xml,%3Csvg%2F%3E")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", res.GetString())

	_, err = l.Load(context.Background(), "data:nocomma")
	assert.Error(t, err)
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.bin"), pngHeader, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("<p>x</p>"), 0o644))

	l := NewLoader(filepath.Join(dir, "page.html"), zaptest.NewLogger(t))
	ctx := context.Background()

	res, err := l.LoadImage(ctx, "logo.bin")
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MimeType, "sniffed from content")

	_, err = l.LoadImage(ctx, "page.html")
	assert.Error(t, err)

	res, err = l.LoadHTML(ctx, "page.html")
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeHTML, res.Type)

	_, err = l.Load(ctx, "missing.png")
	assert.Error(t, err)
}

func TestLoadSearchPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon.svg"), []byte("<svg/>"), 0o644))

	l := NewLoader(t.TempDir(), zaptest.NewLogger(t))
	l.AddSearchPath(dir)

	data, err := l.ImageResolver(context.Background())("img/icon.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}

func TestLoadRemote(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/docs/index.html", zaptest.NewLogger(t))
	ctx := context.Background()

	res, err := l.LoadImage(ctx, "../img/a.png")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/img/a.png", res.URL)
	assert.Equal(t, pngHeader, res.Data)

	_, err = l.LoadImage(ctx, "../img/a.png")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "served from cache")

	_, err = l.Load(ctx, "../missing.png")
	assert.Error(t, err)
}
