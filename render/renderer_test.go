package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtmux-core/vtmux"
	"github.com/vtmux-core/vtmux/render"
	"github.com/vtmux-core/vtmux/scene"
	"github.com/vtmux-core/vtmux/window"
)

func newScene(t *testing.T, w, h int) (*scene.Scene, *vtmux.VTE) {
	t.Helper()
	term := vtmux.New(vtmux.WithSize(w, h), vtmux.WithScrollback(0))
	win := window.New("main", term, window.Rect{W: w, H: h}, 0)
	sc := scene.New(window.Rect{W: w, H: h}, vtmux.DefaultTheme)
	sc.AddWindow(win)
	sc.SetFocus("main")
	return sc, term
}

// Render twice with no intervening mutation must emit zero cell bytes the
// second time (spec §4.8's damage-diffing testable property).
func TestRenderSecondCallWithNoChangeIsEmpty(t *testing.T) {
	sc, term := newScene(t, 10, 3)
	term.Process([]byte("hello"))

	r := render.New(10, 3)
	first := r.Render(sc)
	require.NotEmpty(t, first)

	second := r.Render(sc)
	assert.Empty(t, second)
}

// A single changed cell produces output only for that cell's damage range,
// not a full-screen repaint.
func TestRenderOnlyEmitsChangedCell(t *testing.T) {
	sc, term := newScene(t, 10, 3)
	term.Process([]byte("aaaaaaaaaa"))

	r := render.New(10, 3)
	r.Render(sc)

	term.Process([]byte("\x1b[1;1Hb")) // overwrite just the first cell
	out := r.Render(sc)

	assert.Contains(t, string(out), "b")
	// The frame should be small, not a full 10x3 repaint: the block cursor
	// moved off the last cell of row 0 onto its second cell, so those cells
	// changed too, and with gaps of 10 columns or fewer merged, row 0 is
	// re-emitted as one range (78 bytes with the two SGR switches and the
	// cursor moves). Rows 1 and 2 are not re-emitted.
	assert.Less(t, len(out), 80)
}

// SGR transitions diff against the previously emitted style rather than
// re-emitting the full attribute table each time.
func TestRenderSGRDiffMinimization(t *testing.T) {
	sc, term := newScene(t, 10, 1)
	term.Process([]byte("\x1b[1;31mA\x1b[32mB")) // bold+red, then just green fg

	r := render.New(10, 1)
	out := r.Render(sc)
	s := string(out)

	// Cell A is the first style ever emitted: full table with a leading
	// reset. Cell B only changes fg (bold survives) so it's a bare color
	// param, never a re-sent bold code. Colors are resolved to RGB against
	// the theme before encoding, so palette red/green and the default
	// background appear as truecolor params.
	assert.Contains(t, s, "\x1b[0;1;38;2;205;49;49;48;2;0;0;0mA")
	assert.Contains(t, s, "\x1b[38;2;13;188;121mB")
}

func TestRenderHidesCursorWhenUnfocusedWindowObscuresIt(t *testing.T) {
	sc, term := newScene(t, 10, 3)
	term.Process([]byte("x"))

	r := render.New(10, 3)
	first := r.Render(sc)
	assert.Contains(t, string(first), "\x1b[?25h") // cursor shown once visible and focused

	other := vtmux.New(vtmux.WithSize(10, 3), vtmux.WithScrollback(0))
	ow := window.New("top", other, window.Rect{W: 10, H: 3}, 1) // higher z-index covers everything
	sc.AddWindow(ow)

	second := r.Render(sc)
	assert.Contains(t, string(second), "\x1b[?25l")
}

func TestRenderResizeForcesFullRepaint(t *testing.T) {
	sc, term := newScene(t, 10, 3)
	term.Process([]byte("hello"))

	r := render.New(10, 3)
	r.Render(sc)

	r.Resize(10, 3)
	out := r.Render(sc)
	assert.NotEmpty(t, out)
}

func TestRenderSyncUpdateWrapsLargeDamage(t *testing.T) {
	sc, term := newScene(t, 50, 50)
	line := make([]byte, 0, 2500)
	for i := 0; i < 2500; i++ {
		line = append(line, 'x')
	}
	term.Process(line)

	r := render.New(50, 50, render.WithSyncThreshold(100))
	out := r.Render(sc)

	assert.Contains(t, string(out), "\x1b[?2026h")
	assert.Contains(t, string(out), "\x1b[?2026l")
}
