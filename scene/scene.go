// Package scene orders windows into the arrangement the Renderer composites
// (spec §4.7): z-index ordering, focus tracking, viewport, and theme.
package scene

import (
	"sort"

	"github.com/vtmux-core/vtmux"
	"github.com/vtmux-core/vtmux/window"
)

// Scene is the ordered set of windows the layout collaborator arranges.
// Layout policy itself (tiling, splits) is out of scope (spec §1
// Non-goals) — Scene only holds what the Renderer needs.
type Scene struct {
	windows  map[string]*window.Window
	order    []string // window ids, re-sorted by (z_index, id) on every Windows call
	dirty    bool
	focus    string
	viewport window.Rect
	theme    vtmux.Theme
}

// New constructs a Scene with the given viewport and theme.
func New(viewport window.Rect, theme vtmux.Theme) *Scene {
	return &Scene{windows: make(map[string]*window.Window), viewport: viewport, theme: theme}
}

// AddWindow inserts w, replacing any existing window with the same ID.
func (s *Scene) AddWindow(w *window.Window) {
	if _, exists := s.windows[w.ID()]; !exists {
		s.order = append(s.order, w.ID())
	}
	s.windows[w.ID()] = w
	s.dirty = true
	if s.focus == "" {
		s.focus = w.ID()
	}
}

// RemoveWindow deletes the window with id. If it held focus, focus moves to
// the first non-hidden window in z-order, or to none. No focus history is
// kept, so the previously focused window is not preferred.
func (s *Scene) RemoveWindow(id string) {
	if _, ok := s.windows[id]; !ok {
		return
	}
	delete(s.windows, id)
	for i, wid := range s.order {
		if wid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.dirty = true
	if s.focus == id {
		s.focus = s.firstNonHidden()
	}
}

func (s *Scene) firstNonHidden() string {
	for _, w := range s.Windows() {
		if !w.Hidden() {
			return w.ID()
		}
	}
	return ""
}

// Windows returns every window sorted by (z_index, id) ascending, stable.
func (s *Scene) Windows() []*window.Window {
	// Always re-sort: a window's z-index can change through the Window itself
	// without the Scene being told.
	sort.SliceStable(s.order, func(i, j int) bool {
		wi, wj := s.windows[s.order[i]], s.windows[s.order[j]]
		if wi.ZIndex() != wj.ZIndex() {
			return wi.ZIndex() < wj.ZIndex()
		}
		return wi.ID() < wj.ID()
	})
	s.dirty = false
	out := make([]*window.Window, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.windows[id])
	}
	return out
}

// Window returns the window with id, or nil.
func (s *Scene) Window(id string) *window.Window { return s.windows[id] }

// SetFocus explicitly sets the focused window id (spec §4.7: "settable
// explicitly").
func (s *Scene) SetFocus(id string) {
	if _, ok := s.windows[id]; ok {
		s.focus = id
	}
}

// Focus returns the currently focused window, or nil if none.
func (s *Scene) Focus() *window.Window {
	if s.focus == "" {
		return nil
	}
	return s.windows[s.focus]
}

// Viewport returns the scene's total rendered size.
func (s *Scene) Viewport() window.Rect { return s.viewport }

// Resize changes the viewport. Individual window layout is the external
// layout collaborator's responsibility (spec §1 Non-goals).
func (s *Scene) Resize(viewport window.Rect) { s.viewport = viewport }

// Theme returns the active theme.
func (s *Scene) Theme() vtmux.Theme { return s.theme }

// SetTheme replaces the active theme.
func (s *Scene) SetTheme(t vtmux.Theme) { s.theme = t }
