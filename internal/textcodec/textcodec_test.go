package textcodec_test

import (
	"testing"

	"doneUI/internal/textcodec"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []string{
		"",
		"a",
		"simple task",
		`say "hello"`,
		"it's done",
		"line one\nline two\r\n\ttabbed",
		`back\slash \n not a newline`,
		"Купить молоко 🥛",
		"日本語のタスク",
		"$; delimiter inside body $;",
		"a,b,c",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			encoded := textcodec.Encode(s)
			assert.Equal(t, s, textcodec.Decode(encoded))
			assert.Equal(t, s, textcodec.Clean(encoded))
		})
	}
}

func TestEncode_IsDelimiterSafe(t *testing.T) {
	encoded := textcodec.Encode("quote \" apostrophe ' newline \n delimiter $; comma ,")
	assert.NotContains(t, encoded, "$;")
	assert.NotContains(t, encoded, ",")
	assert.NotContains(t, encoded, "=")
	assert.Regexp(t, `^[A-Za-z0-9_-]+$`, encoded)
}

func TestEncode_InvalidUTF8FallsBackToEscaping(t *testing.T) {
	encoded := textcodec.Encode("bad \xff \"quoted\"\n")
	assert.Equal(t, "bad \xff \\\"quoted\\\"\\n", encoded)
	assert.Equal(t, "bad \xff \"quoted\"\n", textcodec.Decode(encoded))
}

func TestDecode_LegacySentinels(t *testing.T) {
	legacy := "He said 280d382c-f23e-4631-8551-f43661405497hi280d382c-f23e-4631-8551-f43661405497" +
		" e6f23f57-6cad-451b-8306-7939e25542dcok" +
		"a7f3d0a1-2b5e-4c6d-8e9f-1a2b3c4d5e6fnext"

	assert.Equal(t, "He said \"hi\" 'ok\nnext", textcodec.Decode(legacy))
}

func TestDecode_BackslashEscapes(t *testing.T) {
	assert.Equal(t, "a\nb\tc 'd' \"e\" \\", textcodec.Decode(`a\nb\tc \'d\' \"e\" \\`))
}

func TestDecode_PlainTextUntouched(t *testing.T) {
	assert.Equal(t, "Buy milk today", textcodec.Decode("Buy milk today"))
	// Base64 alphabet but not valid base64: left as is.
	assert.Equal(t, "Hello", textcodec.Decode("Hello"))
}

func TestClean_StripsDoubleEncodedSentinels(t *testing.T) {
	inner := "x 280d382c-f23e-4631-8551-f43661405497 y"
	assert.Equal(t, `x " y`, textcodec.Clean(textcodec.Encode(inner)))
}
