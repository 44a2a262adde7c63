package vtmux

// RGBColor is a concrete resolved color, the renderer's unit of work once
// Default/Palette references have been looked up against a Theme.
type RGBColor struct {
	R, G, B uint8
}

// Theme supplies the renderer's only inputs besides window geometry and
// focus (spec §6): a 16-entry palette, default fg/bg, and cursor colors.
// Palette entries 16..255 are computed, not stored, per the xterm 6×6×6 +
// grayscale formula (spec Glossary).
type Theme struct {
	Palette         [16]RGBColor
	Foreground      RGBColor
	Background      RGBColor
	CursorForeground RGBColor
	CursorBackground RGBColor
}

// DefaultTheme mirrors common xterm defaults.
var DefaultTheme = Theme{
	Palette: [16]RGBColor{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	},
	Foreground:       RGBColor{229, 229, 229},
	Background:       RGBColor{0, 0, 0},
	CursorForeground: RGBColor{0, 0, 0},
	CursorBackground: RGBColor{229, 229, 229},
}

// xterm256 resolves a 256-color palette index against a theme. 0-15 are the
// theme-configurable entries; 16-231 are a 6×6×6 color cube; 232-255 are a
// 24-step grayscale ramp (spec Glossary: "Palette entry").
func xterm256(theme Theme, index uint8) RGBColor {
	switch {
	case index < 16:
		return theme.Palette[index]
	case index < 232:
		i := int(index) - 16
		r := i / 36
		g := (i / 6) % 6
		b := i % 6
		return RGBColor{cubeLevel(r), cubeLevel(g), cubeLevel(b)}
	default:
		gray := uint8(8 + (int(index)-232)*10)
		return RGBColor{gray, gray, gray}
	}
}

func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(55 + n*40)
}

// ResolveColor turns a tagged Color into a concrete RGBColor against theme,
// choosing the fg or bg default depending on isForeground (spec §4.8
// normalize). Exported for the render package, which has no other access to
// theme resolution.
func ResolveColor(c Color, theme Theme, isForeground bool) RGBColor {
	return resolve(c, theme, isForeground)
}

func resolve(c Color, theme Theme, isForeground bool) RGBColor {
	switch c.Kind {
	case ColorRGB:
		return RGBColor{c.R, c.G, c.B}
	case ColorPalette:
		return xterm256(theme, c.Index)
	default:
		if isForeground {
			return theme.Foreground
		}
		return theme.Background
	}
}

// parseHexColor parses "#rrggbb" or "rgb:rr/gg/bb" (spec §4.5 OSC 10/11/12).
// Invalid input resolves to black (spec §6 Theme).
func parseHexColor(s string) RGBColor {
	hex := func(a, b byte) (uint8, bool) {
		av, aok := hexDigit(a)
		bv, bok := hexDigit(b)
		if !aok || !bok {
			return 0, false
		}
		return av<<4 | bv, true
	}

	if len(s) == 7 && s[0] == '#' {
		r, rok := hex(s[1], s[2])
		g, gok := hex(s[3], s[4])
		b, bok := hex(s[5], s[6])
		if rok && gok && bok {
			return RGBColor{r, g, b}
		}
		return RGBColor{}
	}

	if len(s) >= 10 && s[:4] == "rgb:" {
		parts := splitN(s[4:], '/', 3)
		if len(parts) == 3 {
			ok := true
			vals := [3]uint8{}
			for i, p := range parts {
				if len(p) < 2 {
					ok = false
					break
				}
				v, voK := hex(p[0], p[1])
				if !voK {
					ok = false
					break
				}
				vals[i] = v
			}
			if ok {
				return RGBColor{vals[0], vals[1], vals[2]}
			}
		}
	}

	return RGBColor{}
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

func splitN(s string, sep byte, n int) []string {
	out := make([]string, 0, n)
	start := 0
	for i := 0; i < len(s) && len(out) < n-1; i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
