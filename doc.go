// Package vtmux implements the virtual terminal engine and compositing
// renderer at the core of a tiling terminal multiplexer.
//
// The package owns three things: a byte-stream VT100/xterm parser (the
// [VTE]), a 2D grid screen model with scrollback ([Screen]), and — in the
// [github.com/vtmux-core/vtmux/render] subpackage — a damage-diffed encoder
// that turns staged window screens into the smallest correct byte stream for
// an outer terminal.
//
// Process spawning, the I/O event loop, socket plumbing, scripting, config
// files, keymaps and tiling layout policy are not part of this module. The
// core only consumes bytes written by a child process, a geometry rectangle
// per window (see [github.com/vtmux-core/vtmux/window]), a focus identity,
// and a [Theme].
//
// # Quick start
//
//	vte := vtmux.New(vtmux.WithSize(24, 80))
//	vte.Write([]byte("\x1b[31mHello\x1b[0m"))
//	cell := vte.Screen().Cell(0, 0)
package vtmux
