package rendering

import (
	"encoding/xml"
	"strings"
)

// EscapeXML escapes text for use in WordprocessingML character data.
// Characters that XML 1.0 cannot represent are dropped.
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/8)
	_ = xml.EscapeText(&result, []byte(strings.Map(xmlSafeRune, text)))
	return result.String()
}

// xmlSafeRune maps runes outside the XML 1.0 Char production to -1 (dropped)
func xmlSafeRune(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20:
		return -1
	case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return -1
	default:
		return r
	}
}
