package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtmux-core/vtmux"
	"github.com/vtmux-core/vtmux/scene"
	"github.com/vtmux-core/vtmux/window"
)

func newWin(id string, z int) *window.Window {
	term := vtmux.New(vtmux.WithSize(1, 1))
	return window.New(id, term, window.Rect{W: 10, H: 10}, z)
}

func TestSceneFirstWindowGetsFocus(t *testing.T) {
	sc := scene.New(window.Rect{W: 80, H: 24}, vtmux.DefaultTheme)
	a := newWin("a", 0)
	sc.AddWindow(a)
	require.NotNil(t, sc.Focus())
	assert.Equal(t, "a", sc.Focus().ID())
}

func TestSceneWindowsOrderedByZIndexThenID(t *testing.T) {
	sc := scene.New(window.Rect{W: 80, H: 24}, vtmux.DefaultTheme)
	sc.AddWindow(newWin("b", 1))
	sc.AddWindow(newWin("a", 1))
	sc.AddWindow(newWin("z", 0))

	ids := make([]string, 0, 3)
	for _, w := range sc.Windows() {
		ids = append(ids, w.ID())
	}
	assert.Equal(t, []string{"z", "a", "b"}, ids)
}

func TestSceneSetFocusUnknownIDIgnored(t *testing.T) {
	sc := scene.New(window.Rect{W: 80, H: 24}, vtmux.DefaultTheme)
	sc.AddWindow(newWin("a", 0))
	sc.SetFocus("nope")
	assert.Equal(t, "a", sc.Focus().ID())
}

func TestSceneRemoveFocusedFallsBackToPreviousOrFirst(t *testing.T) {
	sc := scene.New(window.Rect{W: 80, H: 24}, vtmux.DefaultTheme)
	sc.AddWindow(newWin("a", 0))
	sc.AddWindow(newWin("b", 1))
	sc.SetFocus("b")

	sc.RemoveWindow("b")

	require.NotNil(t, sc.Focus())
	assert.Equal(t, "a", sc.Focus().ID())
}

func TestSceneRemoveFocusedSkipsHidden(t *testing.T) {
	sc := scene.New(window.Rect{W: 80, H: 24}, vtmux.DefaultTheme)
	a := newWin("a", 0)
	a.SetHidden(true)
	b := newWin("b", 1)
	sc.AddWindow(a)
	sc.AddWindow(b)
	sc.SetFocus("b")

	sc.RemoveWindow("b")

	assert.Nil(t, sc.Focus())
}

func TestSceneResizeUpdatesViewport(t *testing.T) {
	sc := scene.New(window.Rect{W: 80, H: 24}, vtmux.DefaultTheme)
	sc.Resize(window.Rect{W: 100, H: 30})
	got := sc.Viewport()
	assert.Equal(t, 100, got.W)
	assert.Equal(t, 30, got.H)
}

func TestSceneSetTheme(t *testing.T) {
	sc := scene.New(window.Rect{W: 80, H: 24}, vtmux.DefaultTheme)
	custom := vtmux.Theme{Foreground: vtmux.RGBColor{R: 1, G: 2, B: 3}}
	sc.SetTheme(custom)
	assert.Equal(t, custom, sc.Theme())
}
