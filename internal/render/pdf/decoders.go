package pdf

// Register a broad set of image decoders so image.Decode can handle many formats.
// These are blank imports to hook into the init() of respective packages.
import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// svgScale is the raster resolution of SVG images relative to their size
// in points.
const svgScale = 2

// maxSVGSize bounds the rasterized side of an SVG in pixels.
const maxSVGSize = 4096

// defaultSVGSize is used for SVGs without a usable view box.
const defaultSVGSize = 100

// preparedImage is image data in a format fpdf can embed. Width and Height
// are the intrinsic size in points; zero means the size fpdf reports.
type preparedImage struct {
	Type   string
	Data   []byte
	Width  float64
	Height float64
}

// prepareImage converts image bytes into JPEG or 8-bit PNG data. JPEGs pass
// through unchanged, SVGs are rasterized and every other decodable format is
// re-encoded as PNG.
func prepareImage(data []byte) (preparedImage, error) {
	if isSVG(data) {
		return rasterizeSVG(data)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return preparedImage{}, errors.New("unknown image format")
	}
	switch kind.Extension {
	case "jpg":
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return preparedImage{}, fmt.Errorf("invalid jpeg: %w", err)
		}
		return preparedImage{Type: "JPG", Data: data}, nil
	case "png", "gif", "bmp", "tif", "webp":
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return preparedImage{}, fmt.Errorf("failed to decode %s: %w", kind.Extension, err)
		}
		return encodePNG(img, 0, 0)
	}
	return preparedImage{}, fmt.Errorf("unsupported image format %s", kind.MIME.Value)
}

// encodePNG flattens img to 8-bit NRGBA and encodes it as PNG.
func encodePNG(img image.Image, width, height float64) (preparedImage, error) {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return preparedImage{}, err
	}
	return preparedImage{Type: "PNG", Data: buf.Bytes(), Width: width, Height: height}, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// rasterizeSVG draws an SVG at svgScale times its view box size, or
// smaller when that exceeds maxSVGSize.
func rasterizeSVG(data []byte) (preparedImage, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return preparedImage{}, fmt.Errorf("failed to parse svg: %w", err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = defaultSVGSize, defaultSVGSize
	}
	scale := min(float64(svgScale), maxSVGSize/max(w, h))
	pw := max(int(w*scale+0.5), 1)
	ph := max(int(h*scale+0.5), 1)

	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	icon.SetTarget(0, 0, float64(pw), float64(ph))
	scanner := rasterx.NewScannerGV(pw, ph, img, img.Bounds())
	raster := rasterx.NewDasher(pw, ph, scanner)
	icon.Draw(raster, 1.0)

	return encodePNG(img, w, h)
}
