package vtmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeUTF8ASCII(t *testing.T) {
	cp, n, ok := decodeUTF8([]byte("A"))
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, 'A', cp.Rune)
}

func TestDecodeUTF8Multibyte(t *testing.T) {
	// U+00E9 'é' encoded as 0xC3 0xA9
	cp, n, ok := decodeUTF8([]byte{0xC3, 0xA9})
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, 'é', cp.Rune)
}

func TestDecodeUTF8Wide(t *testing.T) {
	// U+4E2D '中' is East-Asian Wide.
	cp, n, ok := decodeUTF8([]byte("中"))
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.True(t, cp.Wide)
}

func TestDecodeUTF8Overlong(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL.
	cp, n, ok := decodeUTF8([]byte{0xC0, 0x80})
	assert.False(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, ReplacementCodepoint, cp)
}

func TestDecodeUTF8Surrogate(t *testing.T) {
	// 0xED 0xA0 0x80 encodes U+D800, a lone surrogate.
	cp, n, ok := decodeUTF8([]byte{0xED, 0xA0, 0x80})
	assert.False(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, ReplacementCodepoint, cp)
}

func TestDecodeUTF8Truncated(t *testing.T) {
	// Leading byte of a 3-byte sequence with only 1 byte available.
	_, n, ok := decodeUTF8([]byte{0xE4})
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestDecodeUTF8InvalidContinuation(t *testing.T) {
	cp, n, ok := decodeUTF8([]byte{0xC3, 0x20})
	assert.False(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, ReplacementCodepoint, cp)
}

func TestEncodeUTF8RoundTrip(t *testing.T) {
	for _, r := range []rune{'A', 'é', '中', 0x10000} {
		buf := encodeUTF8(nil, r)
		cp, n, ok := decodeUTF8(buf)
		assert.True(t, ok)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, r, cp.Rune)
	}
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("中文"))
}
