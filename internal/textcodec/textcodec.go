// Package textcodec implements the transport encoding for free-text task fields.
//
// Text is sent as unpadded URL-safe base64 of its UTF-8 bytes, which survives the
// "$;"-delimited wire payloads. Decoding also understands two older formats still
// present in stored data: backslash escapes and three fixed sentinel strings that
// stood in for a double quote, an apostrophe and a newline.
package textcodec

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Legacy sentinels. Decode only.
const (
	legacyQuote      = "280d382c-f23e-4631-8551-f43661405497"
	legacyApostrophe = "e6f23f57-6cad-451b-8306-7939e25542dc"
	legacyNewline    = "a7f3d0a1-2b5e-4c6d-8e9f-1a2b3c4d5e6f"
)

var (
	escaper = strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	unescaper = strings.NewReplacer(
		`\\`, `\`,
		`\"`, `"`,
		`\'`, `'`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	legacyReplacer = strings.NewReplacer(
		legacyQuote, `"`,
		legacyApostrophe, `'`,
		legacyNewline, "\n",
	)
)

// Encode returns the transport form of text. Input that is not valid UTF-8
// cannot be represented faithfully and falls back to backslash escaping.
func Encode(text string) string {
	if text == "" {
		return text
	}
	if !utf8.ValidString(text) {
		return escaper.Replace(text)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(text))
}

// Decode reverses Encode and understands the legacy formats.
func Decode(encoded string) string {
	if encoded == "" {
		return encoded
	}

	if isBase64Alphabet(encoded) {
		if decoded, ok := decodeBase64(encoded); ok {
			return decoded
		}
	}

	if hasLegacySentinel(encoded) {
		return legacyReplacer.Replace(encoded)
	}

	if strings.Contains(encoded, `\`) {
		return unescaper.Replace(encoded)
	}

	return encoded
}

// Clean decodes text and then strips sentinels left over from double encoding.
func Clean(text string) string {
	if text == "" {
		return text
	}
	return legacyReplacer.Replace(Decode(text))
}

func hasLegacySentinel(s string) bool {
	return strings.Contains(s, legacyQuote) ||
		strings.Contains(s, legacyApostrophe) ||
		strings.Contains(s, legacyNewline)
}

func isBase64Alphabet(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return len(s) > 0
}

func decodeBase64(s string) (string, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}
