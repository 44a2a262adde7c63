package vtmux

// ColorKind discriminates the tagged union in Color.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorPalette
	ColorRGB
)

// Color is a tagged union of the terminal color forms: the theme default,
// an xterm-256 palette index, or a direct 24-bit RGB triple. Structural
// equality (==) is the style-comparison rule spec §3 requires.
type Color struct {
	Kind    ColorKind
	Index   uint8 // valid when Kind == ColorPalette
	R, G, B uint8 // valid when Kind == ColorRGB
}

// Default is the unset/theme-resolved color.
var Default = Color{Kind: ColorDefault}

// Palette constructs a 256-color palette reference.
func Palette(index uint8) Color {
	return Color{Kind: ColorPalette, Index: index}
}

// RGB constructs a direct 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Attr is a bitset of SGR rendering attributes, per spec §3 CellStyle.
type Attr uint32

const (
	AttrBold Attr = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrUnderlineDouble
	AttrUnderlineCurly
	AttrUnderlineDotted
	AttrUnderlineDashed
	AttrBlinkSlow
	AttrBlinkRapid
	AttrReverse
	AttrConceal
	AttrCrossedOut
	AttrFramed
	AttrEncircled
	AttrOverlined
)

// underlineAttrs is every underline-variant bit; SGR 24 clears all of them
// and SGR 21 or the other underline codes replace the whole group.
const underlineAttrs = AttrUnderline | AttrUnderlineDouble | AttrUnderlineCurly | AttrUnderlineDotted | AttrUnderlineDashed

// CellStyle is the full visual style of a cell: attribute bits plus
// foreground/background color. It doubles as the cursor's "brush" — the
// style applied to newly inserted cells (spec Glossary).
type CellStyle struct {
	Attr Attr
	Fg   Color
	Bg   Color
}

// Has reports whether every bit in a is set.
func (s CellStyle) Has(a Attr) bool {
	return s.Attr&a == a
}

// Reset returns the default style (spec §4.4 SGR 0).
func (s CellStyle) Reset() CellStyle {
	return CellStyle{}
}
