// Package render implements the compositing pipeline described by spec
// §4.8: damage-diffed, byte-economical ANSI encoding of a Scene's windows
// onto a single output stream.
package render

import (
	"bytes"

	"github.com/vtmux-core/vtmux"
	"github.com/vtmux-core/vtmux/scene"
	"github.com/vtmux-core/vtmux/window"
)

const (
	defaultDamageMax    = 8   // max damage ranges emitted per line
	defaultRepThreshold = 10  // bytes a REP run must save to be worth using
	defaultSyncCells    = 200 // damaged-cell threshold for synchronized update
	consolidateGap      = 10  // merge damage ranges separated by <= this gap
	maxSGRLoad          = 10  // max SGR params per CSI...m before splitting
)

// Option configures a Renderer.
type Option func(*Renderer)

func WithDamageMax(n int) Option { return func(r *Renderer) { r.damageMax = n } }

func WithRepThreshold(n int) Option { return func(r *Renderer) { r.repThreshold = n } }

func WithSyncThreshold(cells int) Option { return func(r *Renderer) { r.syncThreshold = cells } }

// WithDamageVisualization keeps 4 back-buffers instead of 2, per spec §4.8.
func WithDamageVisualization(on bool) Option {
	return func(r *Renderer) { r.visualize = on }
}

// Renderer holds the back-buffers and per-line damage state for one Scene
// viewport (spec §4.8).
type Renderer struct {
	w, h int

	buffers   [][]vtmux.Cell
	current   int
	haveFrame bool

	staging []vtmux.Cell

	damageMax     int
	repThreshold  int
	syncThreshold int
	visualize     bool

	curStyle    vtmux.CellStyle
	haveStyle   bool
	curCursorX      int
	curCursorY      int
	haveCursor      bool
	cursorShown     bool
	cursorStyle     vtmux.CursorStyle
	haveCursorStyle bool
}

// New constructs a Renderer for a w×h viewport.
func New(w, h int, opts ...Option) *Renderer {
	r := &Renderer{
		w: w, h: h,
		damageMax: defaultDamageMax, repThreshold: defaultRepThreshold,
		syncThreshold: defaultSyncCells,
	}
	for _, opt := range opts {
		opt(r)
	}
	n := 2
	if r.visualize {
		n = 4
	}
	r.buffers = make([][]vtmux.Cell, n)
	for i := range r.buffers {
		r.buffers[i] = make([]vtmux.Cell, w*h)
	}
	r.staging = make([]vtmux.Cell, w*h)
	return r
}

// Resize changes the viewport size, discarding prior buffer contents (the
// next frame is treated as a first frame: nothing is "previous").
func (r *Renderer) Resize(w, h int) {
	r.w, r.h = w, h
	for i := range r.buffers {
		r.buffers[i] = make([]vtmux.Cell, w*h)
	}
	r.staging = make([]vtmux.Cell, w*h)
	r.haveFrame = false
}

func (r *Renderer) prevIndex() int {
	n := len(r.buffers)
	return (r.current - 1 + n) % n
}

// Render executes the nine-step pipeline against sc and returns the bytes
// to write to the host terminal. The caller is responsible for actually
// writing them (spec §5: "output is buffered, not written").
func (r *Renderer) Render(sc *scene.Scene) []byte {
	composite := r.buffers[r.current]
	theme := sc.Theme()

	// Step 1: clear composite to spaces in the theme's foreground and
	// background colors.
	blank := vtmux.Cell{CP: vtmux.Codepoint{Rune: ' '}, Style: vtmux.CellStyle{
		Fg: vtmux.RGB(theme.Foreground.R, theme.Foreground.G, theme.Foreground.B),
		Bg: vtmux.RGB(theme.Background.R, theme.Background.G, theme.Background.B),
	}}
	for i := range composite {
		composite[i] = blank
	}
	for i := range r.staging {
		r.staging[i] = vtmux.Cell{}
	}

	focused := sc.Focus()

	// Step 2: stage windows in z-order.
	for _, win := range sc.Windows() {
		if win.Hidden() {
			continue
		}
		r.stageWindow(win, win == focused)
	}

	// Step 3: commit with blending.
	windows := sc.Windows()
	for row := 0; row < r.h; row++ {
		for col := 0; col < r.w; col++ {
			idx := row*r.w + col
			staged := r.staging[idx]
			if staged == (vtmux.Cell{}) {
				continue
			}
			win := windowAt(windows, col, row)
			r.commitCell(composite, idx, row, col, staged, win, theme)
		}
	}

	var prev []vtmux.Cell
	if r.haveFrame {
		prev = r.buffers[r.prevIndex()]
	}

	// Step 4: damage.
	damage, damagedCells := r.computeDamage(composite, prev)

	// Steps 5-7: emit.
	var out bytes.Buffer
	r.emitFrame(&out, composite, damage)

	// Cursor chrome (step 7) for the focused window.
	r.emitCursorChrome(&out, sc, focused)

	body := out.Bytes()

	// Step 8: synchronized update wrapping.
	final := body
	if damagedCells > r.syncThreshold {
		var wrapped bytes.Buffer
		wrapped.WriteString("\x1b[?2026h")
		wrapped.Write(body)
		wrapped.WriteString("\x1b[?2026l")
		final = wrapped.Bytes()
	}

	// Step 9: buffer cycle.
	r.current = (r.current + 1) % len(r.buffers)
	r.haveFrame = true

	return final
}

func windowAt(windows []*window.Window, col, row int) *window.Window {
	var top *window.Window
	for _, w := range windows {
		if w.Hidden() {
			continue
		}
		rect := w.Rect()
		if col >= rect.X && col < rect.X+rect.W && row >= rect.Y && row < rect.Y+rect.H {
			top = w // last writer in z-order wins, matching stage order
		}
	}
	return top
}

// stageWindow writes every visible cell of win's screen into the staging
// buffer at its rectangle offset (spec §4.8 step 2).
func (r *Renderer) stageWindow(win *window.Window, focused bool) {
	rect := win.Rect()
	scr := win.VTE().Screen()
	cur := scr.Cursor()

	for line := 0; line < rect.H && line < scr.Height(); line++ {
		y := rect.Y + line
		if y < 0 || y >= r.h {
			continue
		}
		srcLine := scr.Line(line)
		for col := 0; col < rect.W && col < scr.Width(); col++ {
			x := rect.X + col
			if x < 0 || x >= r.w {
				continue
			}
			cell := srcLine.Cells[col]
			if cell == (vtmux.Cell{}) {
				cell = vtmux.Cell{CP: vtmux.Codepoint{Rune: ' '}}
			}
			if focused && cur.Visible && line == cur.Line && col == cur.Column {
				cell = applyCursorChrome(cell, cur.Style)
			}
			r.staging[y*r.w+x] = cell
		}
	}
}

// applyCursorChrome overwrites a cell with its cursor-styled variant: fg/bg
// swap for block styles, an added underline for underline styles (spec
// §4.8 step 2). Bar-style cursors are rendered by the cursor-chrome escape
// alone and leave the cell untouched.
func applyCursorChrome(cell vtmux.Cell, style vtmux.CursorStyle) vtmux.Cell {
	switch style {
	case vtmux.CursorBlinkingBlock, vtmux.CursorSteadyBlock:
		cell.Style.Attr ^= vtmux.AttrReverse
	case vtmux.CursorBlinkingUnderline, vtmux.CursorSteadyUnderline:
		cell.Style.Attr |= vtmux.AttrUnderline
	}
	return cell
}

// commitCell normalizes, dims, and alpha-blends one staged cell into the
// composite buffer (spec §4.8 step 3).
func (r *Renderer) commitCell(composite []vtmux.Cell, idx, row, col int, cell vtmux.Cell, win *window.Window, theme vtmux.Theme) {
	fg, bg := normalize(&cell, theme)

	dim := 0.0
	if win != nil {
		dim = win.Dim()
	}
	if dim > 0 {
		fg = dimColor(fg, dim)
		bg = dimColor(bg, dim)
	}

	if win != nil && shouldBlend(win, cell) {
		underBg := theme.Background
		if idx < len(composite) {
			underBg = colorOfComposite(composite[idx], theme, false)
		}
		alpha := win.Transparency().Alpha
		bg = blend(bg, underBg, alpha)
		if cell.CP.Rune == ' ' && cell.Style.Attr == 0 {
			underFg := colorOfComposite(composite[idx], theme, true)
			fg = blend(underFg, bg, alpha)
			cell.CP.Rune = composite[idx].CP.Rune
		}
	}

	cell.Style.Fg = vtmux.RGB(fg.R, fg.G, fg.B)
	cell.Style.Bg = vtmux.RGB(bg.R, bg.G, bg.B)
	composite[idx] = cell

	// Wide-glyph bleed guard: if this cell is non-space and the preceding
	// cell in the same row holds a wide glyph, blank it.
	if cell.CP.Rune != ' ' && col > 0 {
		prevIdx := row*r.w + col - 1
		if composite[prevIdx].IsWide() {
			composite[prevIdx] = vtmux.Cell{CP: vtmux.Codepoint{Rune: ' '}, Style: cell.Style}
		}
	}
}

func shouldBlend(win *window.Window, cell vtmux.Cell) bool {
	t := win.Transparency()
	if t.Mode == window.TransparencyNone || t.Alpha <= 0 {
		return false
	}
	if t.Mode == window.TransparencyAllCells {
		return true
	}
	return cell.Style.Bg.Kind == vtmux.ColorDefault
}

// normalize resolves Default/Palette colors to RGB, swaps fg/bg under
// reverse video, and replaces a NUL glyph with space (spec §4.8 step 3).
func normalize(cell *vtmux.Cell, theme vtmux.Theme) (fg, bg vtmux.RGBColor) {
	if cell.CP.Rune == 0 {
		cell.CP.Rune = ' '
	}
	fg = vtmux.ResolveColor(cell.Style.Fg, theme, true)
	bg = vtmux.ResolveColor(cell.Style.Bg, theme, false)
	if cell.Style.Has(vtmux.AttrReverse) {
		fg, bg = bg, fg
		cell.Style.Attr &^= vtmux.AttrReverse
	}
	return fg, bg
}

func colorOfComposite(cell vtmux.Cell, theme vtmux.Theme, isForeground bool) vtmux.RGBColor {
	if isForeground {
		return vtmux.ResolveColor(cell.Style.Fg, theme, true)
	}
	return vtmux.ResolveColor(cell.Style.Bg, theme, false)
}

func blend(top, under vtmux.RGBColor, alpha float64) vtmux.RGBColor {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*alpha + float64(b)*(1-alpha))
	}
	return vtmux.RGBColor{R: mix(top.R, under.R), G: mix(top.G, under.G), B: mix(top.B, under.B)}
}

// dimColor multiplies the color's HSV value channel by (1-dim) (spec §4.8
// step 3).
func dimColor(c vtmux.RGBColor, dim float64) vtmux.RGBColor {
	h, s, v := rgbToHSV(c)
	v *= 1 - dim
	return hsvToRGB(h, s, v)
}
