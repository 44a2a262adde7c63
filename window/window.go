// Package window binds a vtmux.VTE to on-screen geometry: the Window type
// the Scene arranges and the Renderer composites (spec §4.7).
package window

import "github.com/vtmux-core/vtmux"

// Rect is a geometry rectangle in both cell and pixel units. The pixel fields
// are only stored: the core never reads them, and a PTYResizer receives
// columns and rows only.
type Rect struct {
	X, Y   int
	W, H   int
	XPixel int
	YPixel int
}

// TransparencyMode selects how a window's background blends with whatever is
// beneath it (spec §4.8 step 3).
type TransparencyMode int

const (
	TransparencyNone TransparencyMode = iota
	TransparencyAllCells
	TransparencyEmptyCellsOnly
)

// Transparency is a window's blending configuration.
type Transparency struct {
	Mode  TransparencyMode
	Alpha float64 // [0,1]
}

// PTYResizer is the external collaborator notified of geometry changes so it
// can apply the corresponding winsize ioctl (spec §4.7: "resize propagates
// ... to the PTY winsize ioctl" — the ioctl itself is explicitly out of
// scope for the core, per spec §1 Non-goals).
type PTYResizer interface {
	Resize(cols, rows int)
}

// NoopPTYResizer ignores resize notifications.
type NoopPTYResizer struct{}

func (NoopPTYResizer) Resize(int, int) {}

// Window is one pane: a VTE bound to a rectangle, plus the cosmetic state
// the renderer reads (border, transparency, dim, z-index, visibility).
type Window struct {
	id   string
	term *vtmux.VTE

	rect   Rect
	border int

	transparency Transparency
	dim          float64
	zIndex       int
	hidden       bool

	resizer PTYResizer
}

// New constructs a Window bound to term, initially at rect with the given
// z-index.
func New(id string, term *vtmux.VTE, rect Rect, zIndex int) *Window {
	w := &Window{id: id, term: term, rect: rect, zIndex: zIndex, resizer: NoopPTYResizer{}}
	w.propagateSize()
	return w
}

func (w *Window) ID() string       { return w.id }
func (w *Window) VTE() *vtmux.VTE  { return w.term }
func (w *Window) Rect() Rect       { return w.rect }
func (w *Window) Border() int      { return w.border }
func (w *Window) ZIndex() int      { return w.zIndex }
func (w *Window) Hidden() bool     { return w.hidden }
func (w *Window) Dim() float64     { return w.dim }
func (w *Window) Transparency() Transparency { return w.transparency }

func (w *Window) SetBorder(n int)                 { w.border = n; w.propagateSize() }
func (w *Window) SetZIndex(z int)                 { w.zIndex = z }
func (w *Window) SetHidden(hidden bool)            { w.hidden = hidden }
func (w *Window) SetDim(dim float64)               { w.dim = clamp01(dim) }
func (w *Window) SetTransparency(t Transparency)   { t.Alpha = clamp01(t.Alpha); w.transparency = t }
func (w *Window) SetPTYResizer(r PTYResizer) {
	if r == nil {
		r = NoopPTYResizer{}
	}
	w.resizer = r
}

// Resize moves/resizes the window and propagates the resulting inner
// (client) size to the bound VTE and to the PTY resizer (spec §4.7).
func (w *Window) Resize(rect Rect) {
	w.rect = rect
	w.propagateSize()
}

func (w *Window) propagateSize() {
	cols, rows := w.InnerSize()
	if cols <= 0 || rows <= 0 {
		return
	}
	w.term.Resize(cols, rows)
	w.resizer.Resize(cols, rows)
}

// InnerSize returns the client area available to the VTE, after subtracting
// the border on all sides.
func (w *Window) InnerSize() (cols, rows int) {
	cols = w.rect.W - 2*w.border
	rows = w.rect.H - 2*w.border
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
