package style

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gompdf/htmlflow/internal/parser/css"
)

// ParseColor parses "#rgb", "#rrggbb", "rgb(r, g, b)" and the CSS named
// colors. rgb channels are clamped to [0, 255]. The result is always opaque.
func ParseColor(value string) (color.RGBA, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return color.RGBA{}, false
	}

	if hex, ok := css.Hash(value); ok {
		return parseHex(hex)
	}
	if name, args, ok := css.Function(value); ok {
		if name != "rgb" || len(args) != 3 || strings.Contains(value, "%") {
			return color.RGBA{}, false
		}
		return color.RGBA{R: channel(args[0]), G: channel(args[1]), B: channel(args[2]), A: 255}, true
	}
	if name, ok := css.Keyword(value); ok {
		if c, found := colornames.Map[name]; found {
			return c, true
		}
	}
	return color.RGBA{}, false
}

func parseHex(hex string) (color.RGBA, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
