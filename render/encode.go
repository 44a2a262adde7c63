package render

import (
	"bytes"
	"fmt"

	"github.com/vtmux-core/vtmux"
	"github.com/vtmux-core/vtmux/scene"
	"github.com/vtmux-core/vtmux/window"
)

// emitFrame writes steps 5-6 of spec §4.8: cursor-positioned cell runs with
// REP compression and SGR-diff minimization.
func (r *Renderer) emitFrame(out *bytes.Buffer, composite []vtmux.Cell, damage []DamageRange) {
	for _, rg := range damage {
		r.moveCursor(out, rg.Row, rg.Start)
		col := rg.Start
		base := rg.Row * r.w
		for col <= rg.End {
			cell := composite[base+col]

			if cell.CP.Wide {
				r.applyStyle(out, cell.Style)
				out.WriteString(string(cell.CP.Rune))
				col += 2
				r.curCursorX += 2
				continue
			}

			runLen := 1
			for col+runLen <= rg.End && composite[base+col+runLen] == cell {
				runLen++
			}

			r.applyStyle(out, cell.Style)
			glyph := glyphOf(cell)
			r.emitRun(out, glyph, runLen)

			col += runLen
			r.curCursorX += runLen
		}
	}
}

func glyphOf(cell vtmux.Cell) string {
	if cell.CP.Rune == 0 {
		return " "
	}
	return string(cell.CP.Rune)
}

// emitRun writes a run of n identical glyphs, using CSI N b (REP) when it
// saves at least repThreshold bytes over plain repetition (spec §4.8 step 5).
func (r *Renderer) emitRun(out *bytes.Buffer, glyph string, n int) {
	if n < 2 {
		out.WriteString(glyph)
		return
	}
	literalCost := len(glyph) * n
	repTail := fmt.Sprintf("\x1b[%db", n-1)
	repCost := len(glyph) + len(repTail)
	if literalCost-repCost >= r.repThreshold {
		out.WriteString(glyph)
		out.WriteString(repTail)
		return
	}
	for i := 0; i < n; i++ {
		out.WriteString(glyph)
	}
}

// moveCursor emits a minimal cursor-positioning escape, omitting the axis
// that hasn't changed (spec §6: "omitted axes optimized").
func (r *Renderer) moveCursor(out *bytes.Buffer, row, col int) {
	if r.haveCursor && r.curCursorY == row && r.curCursorX == col {
		return
	}
	switch {
	case r.haveCursor && r.curCursorY == row:
		fmt.Fprintf(out, "\x1b[%dG", col+1)
	case r.haveCursor && r.curCursorX == col:
		fmt.Fprintf(out, "\x1b[%dd", row+1)
	default:
		fmt.Fprintf(out, "\x1b[%d;%dH", row+1, col+1)
	}
	r.curCursorX, r.curCursorY = col, row
	r.haveCursor = true
}

// applyStyle emits the minimal SGR diff between the last-emitted style and
// style (spec §4.8 step 6): when an attribute must be cleared and no direct
// reset code exists, emit 0 then re-set every surviving attribute.
func (r *Renderer) applyStyle(out *bytes.Buffer, style vtmux.CellStyle) {
	if r.haveStyle && style == r.curStyle {
		return
	}

	var params []string
	clearing := r.haveStyle && (r.curStyle.Attr&^style.Attr) != 0
	if !r.haveStyle || clearing {
		params = append(params, "0")
		params = append(params, sgrFullParams(style)...)
	} else {
		params = sgrDiffParams(r.curStyle, style)
	}

	r.curStyle = style
	r.haveStyle = true
	if len(params) == 0 {
		return
	}
	writeSGRChunks(out, params)
}

// sgrFullParams renders every non-default attribute/color in style.
func sgrFullParams(style vtmux.CellStyle) []string {
	var params []string
	add := func(has bool, code string) {
		if has {
			params = append(params, code)
		}
	}
	add(style.Has(vtmux.AttrBold), "1")
	add(style.Has(vtmux.AttrFaint), "2")
	add(style.Has(vtmux.AttrItalic), "3")
	add(style.Attr&underlineMaskExported() != 0, "4")
	add(style.Has(vtmux.AttrBlinkSlow), "5")
	add(style.Has(vtmux.AttrBlinkRapid), "6")
	add(style.Has(vtmux.AttrReverse), "7")
	add(style.Has(vtmux.AttrConceal), "8")
	add(style.Has(vtmux.AttrCrossedOut), "9")
	add(style.Has(vtmux.AttrFramed), "51")
	add(style.Has(vtmux.AttrEncircled), "52")
	add(style.Has(vtmux.AttrOverlined), "53")
	params = append(params, colorParams(style)...)
	return params
}

// sgrDiffParams renders only the attributes/colors present in next but not
// in prev (additions and color changes; removals are handled by the
// caller's reset-and-resend branch).
func sgrDiffParams(prev, next vtmux.CellStyle) []string {
	var params []string
	added := next.Attr &^ prev.Attr
	add := func(bit vtmux.Attr, code string) {
		if added&bit != 0 {
			params = append(params, code)
		}
	}
	add(vtmux.AttrBold, "1")
	add(vtmux.AttrFaint, "2")
	add(vtmux.AttrItalic, "3")
	if added&underlineMaskExported() != 0 {
		params = append(params, "4")
	}
	add(vtmux.AttrBlinkSlow, "5")
	add(vtmux.AttrBlinkRapid, "6")
	add(vtmux.AttrReverse, "7")
	add(vtmux.AttrConceal, "8")
	add(vtmux.AttrCrossedOut, "9")
	add(vtmux.AttrFramed, "51")
	add(vtmux.AttrEncircled, "52")
	add(vtmux.AttrOverlined, "53")

	if next.Fg != prev.Fg {
		params = append(params, colorParam(next.Fg, true)...)
	}
	if next.Bg != prev.Bg {
		params = append(params, colorParam(next.Bg, false)...)
	}
	return params
}

func colorParams(style vtmux.CellStyle) []string {
	var params []string
	params = append(params, colorParam(style.Fg, true)...)
	params = append(params, colorParam(style.Bg, false)...)
	return params
}

func colorParam(c vtmux.Color, isForeground bool) []string {
	base := 38
	if !isForeground {
		base = 48
	}
	switch c.Kind {
	case vtmux.ColorRGB:
		return []string{fmt.Sprintf("%d;2;%d;%d;%d", base, c.R, c.G, c.B)}
	case vtmux.ColorPalette:
		return []string{fmt.Sprintf("%d;5;%d", base, c.Index)}
	default:
		if isForeground {
			return []string{"39"}
		}
		return []string{"49"}
	}
}

// underlineMaskExported mirrors vtmux's unexported underlineAttrs bitmask;
// the render package only needs the union, not the per-style distinctions
// (spec §6 output side uses plain SGR 4 for compatibility).
func underlineMaskExported() vtmux.Attr {
	return vtmux.AttrUnderline | vtmux.AttrUnderlineDouble | vtmux.AttrUnderlineCurly |
		vtmux.AttrUnderlineDotted | vtmux.AttrUnderlineDashed
}

// writeSGRChunks splits params into CSI...m groups of at most maxSGRLoad
// parameters (spec §4.8 step 6).
func writeSGRChunks(out *bytes.Buffer, params []string) {
	for len(params) > 0 {
		n := len(params)
		if n > maxSGRLoad {
			n = maxSGRLoad
		}
		out.WriteString("\x1b[")
		for i, p := range params[:n] {
			if i > 0 {
				out.WriteByte(';')
			}
			out.WriteString(p)
		}
		out.WriteByte('m')
		params = params[n:]
	}
}

// emitCursorChrome implements spec §4.8 step 7: the host terminal cursor
// tracks the focused window's cursor, hidden when invisible, unfocused,
// obscured, or off-viewport.
func (r *Renderer) emitCursorChrome(out *bytes.Buffer, sc *scene.Scene, focused *window.Window) {
	show, row, col, style := r.focusedCursor(sc, focused)

	if !show {
		if r.cursorShown {
			out.WriteString("\x1b[?25l")
			r.cursorShown = false
		}
		return
	}

	if !r.cursorShown {
		out.WriteString("\x1b[?25h")
		r.cursorShown = true
	}
	if !r.haveCursorStyle || style != r.cursorStyle {
		fmt.Fprintf(out, "\x1b[%d q", int(style)+1)
		r.cursorStyle = style
		r.haveCursorStyle = true
	}
	r.moveCursor(out, row, col)
}

func (r *Renderer) focusedCursor(sc *scene.Scene, focused *window.Window) (show bool, row, col int, style vtmux.CursorStyle) {
	if focused == nil {
		return false, 0, 0, 0
	}
	cur := focused.VTE().Screen().Cursor()
	if !cur.Visible {
		return false, 0, 0, 0
	}
	rect := focused.Rect()
	row = rect.Y + cur.Line
	col = rect.X + cur.Column
	if row < 0 || row >= r.h || col < 0 || col >= r.w {
		return false, 0, 0, 0
	}
	if windowAt(sc.Windows(), col, row) != focused {
		return false, 0, 0, 0 // obscured by a higher window
	}
	return true, row, col, cur.Style
}
