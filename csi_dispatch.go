package vtmux

import (
	"fmt"
	"strings"
)

// dispatchCSI executes a fully-parsed CSI sequence against the active
// screen, per spec §4.4's (leading, intermediate, final)-keyed command
// table.
func (v *VTE) dispatchCSI(c *csiCollector) {
	if c.overflow {
		v.logger.Warnf("vtmux: CSI parameter overflow, final=%q", c.final)
		return
	}

	if c.leading == '?' {
		v.dispatchPrivateCSI(c)
		return
	}

	switch c.final {
	case 'A':
		v.active.MoveCursorRelative(0, -c.intValue(0, 1))
	case 'B':
		v.active.MoveCursorRelative(0, c.intValue(0, 1))
	case 'C':
		v.active.MoveCursorRelative(c.intValue(0, 1), 0)
	case 'D':
		v.active.MoveCursorRelative(-c.intValue(0, 1), 0)
	case 'E':
		for n := c.intValue(0, 1); n > 0; n-- {
			v.active.moveOrScrollDown()
		}
		v.active.SetColumn(0)
	case 'F':
		for n := c.intValue(0, 1); n > 0; n-- {
			v.active.moveOrScrollUp()
		}
		v.active.SetColumn(0)
	case 'G', '`':
		v.active.SetColumn(c.intValue(0, 1) - 1)
	case 'd':
		v.active.SetLine(c.intValue(0, 1) - 1)
	case 'H', 'f':
		row := c.intValue(0, 1)
		col := c.intValue(1, 1)
		v.active.SetCursor(col-1, row-1)
	case 'J':
		v.eraseDisplay(c.intValue(0, 0))
	case 'K':
		v.eraseLine(c.intValue(0, 0))
	case 'L':
		v.active.InsertLines(c.intValue(0, 1))
	case 'M':
		v.active.DeleteLines(c.intValue(0, 1))
	case 'P':
		v.active.ShiftFromCursor(c.intValue(0, 1))
	case '@':
		v.active.InsertBlanks(c.intValue(0, 1))
	case 'X':
		v.eraseChars(c.intValue(0, 1))
	case 'S':
		top, bottom := v.active.Margins()
		v.active.ShuffleRowsUp(c.intValue(0, 1), top, bottom)
	case 'T':
		top, bottom := v.active.Margins()
		v.active.ShuffleRowsDown(c.intValue(0, 1), top, bottom)
	case 'm':
		v.applySGR(c)
	case 'r':
		top := c.intValue(0, 1)
		bottom := c.intValue(1, v.active.Height())
		v.active.SetScrollRegion(top-1, bottom-1)
	case 'h':
		v.setANSIMode(c, true)
	case 'l':
		v.setANSIMode(c, false)
	case 'q':
		if c.hasIntermediate(' ') {
			v.setCursorStyle(c.intValue(0, 1))
		}
	case 'c':
		if c.leading == '>' {
			v.respond([]byte("\x1b[>1;10;0c")) // secondary DA: terminal id, version, 0
		} else {
			v.respond([]byte("\x1b[?6c")) // primary DA: VT102
		}
	case 'n':
		v.reportDeviceStatus(c.intValue(0, 0))
	case 'b':
		v.repeatLastChar(c.intValue(0, 1))
	case 'g':
		switch c.intValue(0, 0) {
		case 0:
			v.active.ClearTabStop(v.active.Cursor().Column)
		case 3:
			v.active.ClearAllTabStops()
		}
	case 't':
		v.xtWinOps(c)
	default:
		v.logger.Debugf("vtmux: unhandled CSI final=%q leading=%q", c.final, c.leading)
	}
}

func (v *VTE) eraseDisplay(mode int) {
	w, h := v.active.Width(), v.active.Height()
	cur := v.active.Cursor()
	switch mode {
	case 0:
		v.active.EraseBetween(Position{cur.Line, cur.Column}, Position{h - 1, w - 1})
	case 1:
		v.active.EraseBetween(Position{0, 0}, Position{cur.Line, cur.Column})
	case 2:
		v.active.ClearAll()
	case 3:
		v.active.ClearAll()
		v.active.ClearScrollback()
	default:
		v.logger.Warnf("vtmux: unrecognized ED mode %d", mode)
	}
}

func (v *VTE) eraseLine(mode int) {
	w := v.active.Width()
	cur := v.active.Cursor()
	switch mode {
	case 0:
		v.active.EraseBetween(Position{cur.Line, cur.Column}, Position{cur.Line, w - 1})
	case 1:
		v.active.EraseBetween(Position{cur.Line, 0}, Position{cur.Line, cur.Column})
	case 2:
		v.active.ClearRow(cur.Line)
	default:
		v.logger.Warnf("vtmux: unrecognized EL mode %d", mode)
	}
}

func (v *VTE) eraseChars(n int) {
	cur := v.active.Cursor()
	end := cur.Column + n - 1
	if end > v.active.Width()-1 {
		end = v.active.Width() - 1
	}
	v.active.EraseBetween(Position{cur.Line, cur.Column}, Position{cur.Line, end})
}

// repeatLastChar implements REP: repeat the most recently inserted
// printable graphic character n times (spec §4.4). lastChar is set for every
// printed character, wide ones included, and is kept across control
// functions and escape sequences; before the first printed character REP
// does nothing.
func (v *VTE) repeatLastChar(n int) {
	if v.lastChar == (Codepoint{}) {
		return
	}
	for i := 0; i < n; i++ {
		v.active.Insert(Cell{CP: v.lastChar, Link: v.activeLink}, v.modes.autoWrap)
	}
}

func (v *VTE) reportDeviceStatus(mode int) {
	switch mode {
	case 5:
		v.respond([]byte("\x1b[0n"))
	case 6:
		cur := v.active.Cursor()
		row := cur.Line + 1
		if cur.Origin {
			top, _ := v.active.Margins()
			row -= top
		}
		v.respond([]byte(fmt.Sprintf("\x1b[%d;%dR", row, cur.Column+1)))
	default:
		v.logger.Debugf("vtmux: unrecognized DSR mode %d", mode)
	}
}

// xtWinOps implements the subset of XTWINOPS (CSI Ps t) spec §4.4 calls out:
// the title stack operations. Geometry-report operations are left to the
// window/scene layer the core does not own.
func (v *VTE) xtWinOps(c *csiCollector) {
	switch c.intValue(0, 0) {
	case 22:
		v.titleStack = append(v.titleStack, "")
		v.opts.Title.PushTitle()
	case 23:
		if len(v.titleStack) > 0 {
			v.titleStack = v.titleStack[:len(v.titleStack)-1]
		}
		v.opts.Title.PopTitle()
	default:
		v.logger.Debugf("vtmux: unhandled XTWINOPS Ps=%d", c.intValue(0, 0))
	}
}

func (v *VTE) reportMode(mode int, private bool) {
	status := 0 // 0 = not recognized
	if private {
		if on, known := v.privateModeStatus(mode); known {
			if on {
				status = 1
			} else {
				status = 2
			}
		}
	}
	v.respond([]byte(fmt.Sprintf("\x1b[?%d;%d$y", mode, status)))
}

func (v *VTE) privateModeStatus(mode int) (on bool, known bool) {
	switch mode {
	case 1:
		return v.modes.cursorKeysApp, true
	case 6:
		return v.active.Cursor().Origin, true
	case 7:
		return v.modes.autoWrap, true
	case 25:
		return v.active.Cursor().Visible, true
	case 47, 1047, 1049:
		return v.modes.usingAltScreen, true
	case 1000, 1002, 1003:
		return v.modes.mouseTracking == mode, true
	case 1006:
		return v.modes.mouseSGR, true
	case 2004:
		return v.modes.bracketedPaste, true
	case 2026:
		return v.modes.syncUpdate, true
	default:
		return false, false
	}
}

// setANSIMode implements SM/RM (no leading byte): the ANSI-standard modes,
// of which only IRM (insert mode, 4) and LNM (linefeed/newline, 20) are
// meaningful here.
func (v *VTE) setANSIMode(c *csiCollector, on bool) {
	for i := 0; i < c.nParams; i++ {
		switch c.param(i).first(0) {
		case 4:
			v.modes.insert = on
		case 20:
			v.modes.lineFeedIsCRLF = on
		}
	}
}

func (v *VTE) setCursorStyle(n int) {
	if n < 0 || n > 6 {
		return
	}
	cur := v.active.Cursor()
	if n == 0 {
		n = 1
	}
	cur.Style = CursorStyle(n - 1)
	v.setCursorFields(cur)
}

// setCursorFields writes back cursor fields that Screen doesn't expose
// individual setters for (style, visibility) — both are cosmetic state the
// Renderer reads, not addressing state, so a direct struct copy is safe.
func (v *VTE) setCursorFields(cur Cursor) {
	*v.activeCursorPtr() = cur
}

func (v *VTE) activeCursorPtr() *Cursor {
	return v.active.cursorPtr()
}

// --- SGR --------------------------------------------------------------

func (v *VTE) applySGR(c *csiCollector) {
	style := v.active.Brush()
	if c.nParams == 0 {
		v.active.SetBrush(CellStyle{})
		return
	}
	for i := 0; i < c.nParams; i++ {
		p := c.param(i)
		code := p.first(0)
		switch {
		case code == 0:
			style = CellStyle{}
		case code == 1:
			style.Attr |= AttrBold
		case code == 2:
			style.Attr |= AttrFaint
		case code == 3:
			style.Attr |= AttrItalic
		case code == 4:
			style.Attr = style.Attr&^underlineAttrs | underlineVariant(p)
		case code == 5:
			style.Attr |= AttrBlinkSlow
		case code == 6:
			style.Attr |= AttrBlinkRapid
		case code == 7:
			style.Attr |= AttrReverse
		case code == 8:
			style.Attr |= AttrConceal
		case code == 9:
			style.Attr |= AttrCrossedOut
		case code == 21:
			style.Attr = style.Attr&^underlineAttrs | AttrUnderlineDouble
		case code == 22:
			style.Attr &^= AttrBold | AttrFaint
		case code == 23:
			style.Attr &^= AttrItalic
		case code == 24:
			style.Attr &^= underlineAttrs
		case code == 25:
			style.Attr &^= AttrBlinkSlow | AttrBlinkRapid
		case code == 27:
			style.Attr &^= AttrReverse
		case code == 28:
			style.Attr &^= AttrConceal
		case code == 29:
			style.Attr &^= AttrCrossedOut
		case code == 51:
			style.Attr |= AttrFramed
		case code == 52:
			style.Attr |= AttrEncircled
		case code == 53:
			style.Attr |= AttrOverlined
		case code == 54:
			style.Attr &^= AttrFramed | AttrEncircled
		case code == 55:
			style.Attr &^= AttrOverlined
		case code >= 30 && code <= 37:
			style.Fg = Palette(uint8(code - 30))
		case code == 38:
			color, consumed := v.parseExtendedColor(c, i, p)
			style.Fg = color
			i += consumed
		case code == 39:
			style.Fg = Default
		case code >= 40 && code <= 47:
			style.Bg = Palette(uint8(code - 40))
		case code == 48:
			color, consumed := v.parseExtendedColor(c, i, p)
			style.Bg = color
			i += consumed
		case code == 49:
			style.Bg = Default
		case code >= 90 && code <= 97:
			style.Fg = Palette(uint8(code-90) + 8)
		case code >= 100 && code <= 107:
			style.Bg = Palette(uint8(code-100) + 8)
		default:
			v.logger.Debugf("vtmux: unrecognized SGR code %d", code)
		}
	}
	v.active.SetBrush(style)
}

func underlineVariant(p csiParam) Attr {
	if p.n < 2 {
		return AttrUnderline
	}
	switch p.values[1] {
	case 0:
		return 0
	case 2:
		return AttrUnderlineDouble
	case 3:
		return AttrUnderlineCurly
	case 4:
		return AttrUnderlineDotted
	case 5:
		return AttrUnderlineDashed
	default:
		return AttrUnderline
	}
}

// parseExtendedColor handles SGR 38/48, which specify an extended color
// either via colon-separated subparams on one param group ("38:2:r:g:b") or
// via following semicolon-separated top-level params ("38;2;r;g;b"). It
// returns the resolved color and how many extra top-level params (0 for the
// colon form) were consumed.
func (v *VTE) parseExtendedColor(c *csiCollector, i int, p csiParam) (Color, int) {
	if p.n >= 2 {
		// Colon form, already grouped into one param: values[0] is the
		// leading "38"/"48", values[1] the color-space mode, and the rest
		// its channels. Only the 5-field "38:2:r:g:b" form fits the fixed
		// subparam table; a 6-field "38:2:cs:r:g:b" with an explicit
		// colorspace id overflows it and is not recognized.
		switch p.values[1] {
		case 5:
			if p.n >= 3 {
				return Palette(uint8(p.values[2])), 0
			}
		case 2:
			if p.n >= 5 {
				return RGB(uint8(p.values[2]), uint8(p.values[3]), uint8(p.values[4])), 0
			}
		}
		return Default, 0
	}

	mode := c.intValue(i+1, -1)
	switch mode {
	case 5:
		return Palette(uint8(c.intValue(i+2, 0))), 2
	case 2:
		r := uint8(c.intValue(i+2, 0))
		g := uint8(c.intValue(i+3, 0))
		b := uint8(c.intValue(i+4, 0))
		return RGB(r, g, b), 4
	default:
		return Default, 0
	}
}

// sgrEncode renders a CellStyle back into an SGR parameter string, used by
// DECRQSS "$q m" replies.
func sgrEncode(s CellStyle) string {
	var parts []string
	parts = append(parts, "0")
	if s.Has(AttrBold) {
		parts = append(parts, "1")
	}
	if s.Has(AttrFaint) {
		parts = append(parts, "2")
	}
	if s.Has(AttrItalic) {
		parts = append(parts, "3")
	}
	if s.Attr&underlineAttrs != 0 {
		parts = append(parts, "4")
	}
	if s.Has(AttrReverse) {
		parts = append(parts, "7")
	}
	if s.Fg.Kind == ColorPalette {
		parts = append(parts, fmt.Sprintf("38;5;%d", s.Fg.Index))
	} else if s.Fg.Kind == ColorRGB {
		parts = append(parts, fmt.Sprintf("38;2;%d;%d;%d", s.Fg.R, s.Fg.G, s.Fg.B))
	}
	if s.Bg.Kind == ColorPalette {
		parts = append(parts, fmt.Sprintf("48;5;%d", s.Bg.Index))
	} else if s.Bg.Kind == ColorRGB {
		parts = append(parts, fmt.Sprintf("48;2;%d;%d;%d", s.Bg.R, s.Bg.G, s.Bg.B))
	}
	return strings.Join(parts, ";")
}

// --- Private (DEC) modes -----------------------------------------------

func (v *VTE) dispatchPrivateCSI(c *csiCollector) {
	switch c.final {
	case 'h':
		v.setPrivateModes(c, true)
	case 'l':
		v.setPrivateModes(c, false)
	case 'p':
		if c.hasIntermediate('$') {
			v.reportMode(c.intValue(0, 0), true)
		}
	default:
		v.logger.Debugf("vtmux: unhandled private CSI final=%q", c.final)
	}
}

func (v *VTE) setPrivateModes(c *csiCollector, on bool) {
	for i := 0; i < c.nParams; i++ {
		v.setPrivateMode(c.param(i).first(0), on)
	}
}

func (v *VTE) setPrivateMode(mode int, on bool) {
	switch mode {
	case 1:
		v.modes.cursorKeysApp = on
	case 6:
		cur := v.activeCursorPtr()
		cur.Origin = on
		v.active.SetCursor(0, 0)
	case 7:
		v.modes.autoWrap = on
	case 12:
		// cursor blink; cosmetic only, left to the renderer via CursorStyle.
	case 25:
		v.activeCursorPtr().Visible = on
	case 47, 1047:
		v.switchAltScreen(on, false)
	case 1048:
		if on {
			v.active.SaveCursor()
		} else {
			v.active.RestoreCursor()
		}
	case 1049:
		v.switchAltScreen(on, true)
	case 1000, 1002, 1003:
		if on {
			v.modes.mouseTracking = mode
		} else {
			v.modes.mouseTracking = 0
		}
	case 1006:
		v.modes.mouseSGR = on
	case 2004:
		v.modes.bracketedPaste = on
	case 2026:
		v.modes.syncUpdate = on
	default:
		v.logger.Debugf("vtmux: unrecognized private mode %d", mode)
	}
}

// switchAltScreen implements DECSET/DECRST 47/1047/1049 (spec §4.2, §9
// alternate-screen carryover). withCursor additionally saves/restores the
// cursor across the switch (mode 1049's distinguishing behavior from 47).
func (v *VTE) switchAltScreen(enter, withCursor bool) {
	if enter == v.modes.usingAltScreen {
		return
	}
	if enter {
		if withCursor {
			v.primary.SaveCursor()
		}
		v.alternate.ClearAll()
		v.active = v.alternate
		v.modes.usingAltScreen = true
	} else {
		v.active = v.primary
		v.modes.usingAltScreen = false
		if withCursor {
			v.primary.RestoreCursor()
		}
	}
}
