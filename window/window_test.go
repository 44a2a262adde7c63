package window_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vtmux-core/vtmux"
	"github.com/vtmux-core/vtmux/window"
)

type fakeResizer struct {
	cols, rows int
	calls      int
}

func (f *fakeResizer) Resize(cols, rows int) {
	f.cols, f.rows = cols, rows
	f.calls++
}

func TestWindowPropagatesSizeOnCreate(t *testing.T) {
	term := vtmux.New(vtmux.WithSize(1, 1))
	w := window.New("a", term, window.Rect{W: 10, H: 4}, 0)
	cols, rows := w.InnerSize()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 4, rows)
	assert.Equal(t, 10, term.Screen().Width())
	assert.Equal(t, 4, term.Screen().Height())
}

func TestWindowBorderShrinksInnerSize(t *testing.T) {
	term := vtmux.New(vtmux.WithSize(1, 1))
	w := window.New("a", term, window.Rect{W: 10, H: 10}, 0)
	w.SetBorder(1)
	cols, rows := w.InnerSize()
	assert.Equal(t, 8, cols)
	assert.Equal(t, 8, rows)
}

func TestWindowResizePropagatesToPTYResizer(t *testing.T) {
	term := vtmux.New(vtmux.WithSize(1, 1))
	w := window.New("a", term, window.Rect{W: 10, H: 10}, 0)
	r := &fakeResizer{}
	w.SetPTYResizer(r)

	w.Resize(window.Rect{W: 20, H: 6})

	assert.Equal(t, 20, r.cols)
	assert.Equal(t, 6, r.rows)
	assert.Equal(t, 1, r.calls)
}

func TestWindowSetPTYResizerNilFallsBackToNoop(t *testing.T) {
	term := vtmux.New(vtmux.WithSize(1, 1))
	w := window.New("a", term, window.Rect{W: 10, H: 10}, 0)
	w.SetPTYResizer(nil)
	assert.NotPanics(t, func() { w.Resize(window.Rect{W: 5, H: 5}) })
}

func TestWindowClampsDimAndAlpha(t *testing.T) {
	term := vtmux.New(vtmux.WithSize(1, 1))
	w := window.New("a", term, window.Rect{W: 10, H: 10}, 0)

	w.SetDim(-1)
	assert.Equal(t, 0.0, w.Dim())
	w.SetDim(2)
	assert.Equal(t, 1.0, w.Dim())

	w.SetTransparency(window.Transparency{Mode: window.TransparencyAllCells, Alpha: 5})
	assert.Equal(t, 1.0, w.Transparency().Alpha)
}

func TestWindowHiddenAndZIndex(t *testing.T) {
	term := vtmux.New(vtmux.WithSize(1, 1))
	w := window.New("a", term, window.Rect{W: 10, H: 10}, 3)
	assert.False(t, w.Hidden())
	w.SetHidden(true)
	assert.True(t, w.Hidden())
	w.SetZIndex(9)
	assert.Equal(t, 9, w.ZIndex())
}
