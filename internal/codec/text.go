package codec

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	utf16LE  = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf8Text = unicode.UTF8
	latin1   = charmap.ISO8859_1
)

// DecodeText decodes a text frame payload.
//
// The leading byte is not treated as a full ID3v2 encoding marker. A zero
// followed by a zero selects UTF-16LE, a zero followed by anything else selects
// UTF-8 and any other leading byte means the whole payload is ISO-8859-1.
// Decoding is best effort; malformed input never fails.
func DecodeText(payload []byte) (string, error) {
	if len(payload) > 0 && payload[0] == 0 {
		if len(payload) > 1 && payload[1] == 0 {
			units := payload[2:]
			return decodeWith(utf16LE, units[:len(units)&^1]), nil
		}
		return decodeWith(utf8Text, payload[1:]), nil
	}
	return decodeWith(latin1, payload), nil
}

func decodeWith(enc encoding.Encoding, b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		// The decoders replace invalid input, so this only guards against
		// transformer failures.
		return string(b)
	}
	return string(out)
}
