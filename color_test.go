package vtmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColorDefault(t *testing.T) {
	fg := ResolveColor(Default, DefaultTheme, true)
	assert.Equal(t, DefaultTheme.Foreground, fg)

	bg := ResolveColor(Default, DefaultTheme, false)
	assert.Equal(t, DefaultTheme.Background, bg)
}

func TestResolveColorPaletteBase16(t *testing.T) {
	got := ResolveColor(Palette(1), DefaultTheme, true)
	assert.Equal(t, DefaultTheme.Palette[1], got)
}

func TestResolveColorPaletteCube(t *testing.T) {
	// Index 16 is the cube's black corner (0,0,0).
	got := ResolveColor(Palette(16), DefaultTheme, true)
	assert.Equal(t, RGBColor{0, 0, 0}, got)

	// Index 231 is the cube's white corner (5,5,5) -> 55+5*40=255.
	got = ResolveColor(Palette(231), DefaultTheme, true)
	assert.Equal(t, RGBColor{255, 255, 255}, got)
}

func TestResolveColorPaletteGrayscale(t *testing.T) {
	got := ResolveColor(Palette(232), DefaultTheme, true)
	assert.Equal(t, RGBColor{8, 8, 8}, got)

	got = ResolveColor(Palette(255), DefaultTheme, true)
	assert.Equal(t, RGBColor{238, 238, 238}, got)
}

func TestResolveColorRGB(t *testing.T) {
	got := ResolveColor(RGB(10, 20, 30), DefaultTheme, true)
	assert.Equal(t, RGBColor{10, 20, 30}, got)
}

func TestParseHexColorShort(t *testing.T) {
	assert.Equal(t, RGBColor{0xAB, 0xCD, 0xEF}, parseHexColor("#abcdef"))
}

func TestParseHexColorRGBForm(t *testing.T) {
	assert.Equal(t, RGBColor{0xFF, 0x00, 0x80}, parseHexColor("rgb:ff/00/80"))
}

func TestParseHexColorInvalid(t *testing.T) {
	assert.Equal(t, RGBColor{}, parseHexColor("not-a-color"))
}

func TestCellStyleHas(t *testing.T) {
	s := CellStyle{Attr: AttrBold | AttrUnderline}
	assert.True(t, s.Has(AttrBold))
	assert.True(t, s.Has(AttrBold|AttrUnderline))
	assert.False(t, s.Has(AttrItalic))
}

func TestCellStyleReset(t *testing.T) {
	s := CellStyle{Attr: AttrBold, Fg: Palette(1), Bg: Palette(2)}
	assert.Equal(t, CellStyle{}, s.Reset())
}
