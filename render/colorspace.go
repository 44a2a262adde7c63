package render

import "github.com/vtmux-core/vtmux"

// rgbToHSV and hsvToRGB implement the HSV conversion spec §4.8's dim step
// needs (multiply Value by (1-dim)). Kept in-package: this is a few lines of
// arithmetic, not a concern any library in the retrieved corpus covers.
func rgbToHSV(c vtmux.RGBColor) (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := maxf(r, g, b)
	min := minf(r, g, b)
	v = max
	delta := max - min

	if max == 0 {
		return 0, 0, v
	}
	s = delta / max
	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case r:
		h = 60 * (modf((g-b)/delta, 6))
	case g:
		h = 60 * ((b-r)/delta + 2)
	case b:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) vtmux.RGBColor {
	c := v * s
	x := c * (1 - absf(modf(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return vtmux.RGBColor{
		R: clampByte((r + m) * 255),
		G: clampByte((g + m) * 255),
		B: clampByte((b + m) * 255),
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func maxf(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minf(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func modf(v, m float64) float64 {
	for v < 0 {
		v += m
	}
	for v >= m {
		v -= m
	}
	return v
}
