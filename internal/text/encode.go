package text

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoder converts UTF-8 text to the single-byte encoding used by the
// standard PDF fonts. Characters without a code point are replaced.
type Encoder struct {
	cm       *charmap.Charmap
	fallback byte
}

// NewEncoder returns an encoder for Windows-1252 replacing unknown
// characters with '?'.
func NewEncoder() *Encoder {
	return &Encoder{cm: charmap.Windows1252, fallback: '?'}
}

// Encode returns s in the encoder's charset. Combining sequences are
// composed first so that decomposed accented letters survive.
func (e *Encoder) Encode(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	s = norm.NFC.String(s)
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if c, ok := e.cm.EncodeRune(r); ok {
			b = append(b, c)
			continue
		}
		b = append(b, e.fallback)
	}
	return string(b)
}
