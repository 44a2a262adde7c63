package vtmux

// Resize changes the screen's dimensions. A screen with scrollback capacity
// (the primary, unless it was built with zero scrollback lines) reflows its
// content — including scrollback — into the new width; a screen without any
// (the alternate, or a primary with zero scrollback lines) truncates or pads
// in place without reflow (spec §4.2.1). The wrap argument is not consulted.
func (s *Screen) Resize(w, h int, wrap bool) {
	if w == s.w && h == s.h {
		return
	}
	if s.scrollMax > 0 {
		s.reflow(w, h)
	} else {
		s.resizeNoReflow(w, h)
	}
	s.w, s.h = w, h
	s.resetTabStops()
	if s.marginBottom > h-1 || s.marginBottom == 0 {
		s.marginBottom = h - 1
	}
	if s.marginTop > s.marginBottom {
		s.marginTop = 0
	}
	s.cursor.Column = clampInt(s.cursor.Column, 0, w-1)
	s.cursor.Line = clampInt(s.cursor.Line, 0, h-1)
	s.cursor.WrapPending = false
}

// reflow rebuilds scrollback + viewport at the new width by walking logical
// paragraphs (runs of soft-wrapped lines terminated by a hard newline) and
// re-wrapping each one, per spec §4.2.1's "trimmed-eol re-insertion walk".
// While crossing the source cursor's logical position it records where that
// same cell lands in the rewrapped output, then sets the destination
// cursor to that position, clamped (spec §4.2.1).
func (s *Screen) reflow(w, h int) {
	paragraphs, cursorParaIdx, cursorOffset := s.collectParagraphs()

	var rewrapped []Line
	newCursorLine, newCursorCol := -1, -1
	for i, p := range paragraphs {
		offset := -1
		if i == cursorParaIdx {
			offset = cursorOffset
		}
		lines, landingRow, landingCol, landed := wrapParagraph(p, w, offset)
		if landed {
			newCursorLine = len(rewrapped) + landingRow
			newCursorCol = landingCol
		}
		rewrapped = append(rewrapped, lines...)
	}
	if len(rewrapped) == 0 {
		rewrapped = []Line{newLine(w, CellStyle{})}
	}

	total := h + s.scrollMax
	if len(rewrapped) < h {
		pad := make([]Line, h-len(rewrapped))
		for i := range pad {
			pad[i] = newLine(w, CellStyle{})
		}
		rewrapped = append(rewrapped, pad...)
	}
	if len(rewrapped) > total {
		dropped := len(rewrapped) - total
		rewrapped = rewrapped[dropped:]
		if newCursorLine >= 0 {
			newCursorLine -= dropped
		}
	}

	scrollHeight := len(rewrapped) - h
	if scrollHeight < 0 {
		scrollHeight = 0
	}

	ring := &scrollbackRing{
		lines:  make([]Line, total),
		max:    s.scrollMax,
		height: scrollHeight,
		offset: 0,
		h:      h,
	}
	for i := range ring.lines {
		ring.lines[i] = newLine(w, CellStyle{})
	}
	copy(ring.lines[:len(rewrapped)], rewrapped)
	s.ring = ring

	if newCursorLine >= 0 {
		s.cursor.Line = clampInt(newCursorLine-scrollHeight, 0, h-1)
		s.cursor.Column = clampInt(newCursorCol, 0, w-1)
	}
}

// collectParagraphs flattens scrollback + viewport, oldest first, into
// logical rows split at hard newlines. A line that HasNewline or is the
// screen's last line contributes its cells up to trimmedEOL(); any other line
// contributes its cells up to its EOL (spec §4.2.1), so a soft-wrapped line's
// written trailing cells are kept while a row nothing was written to adds no
// cells. It also locates the source cursor: cursorParaIdx is the index
// into the returned paragraphs slice holding the cursor's row, and
// cursorOffset is the cursor's position within that paragraph's cell list
// (-1/-1 if the cursor's row could not be located, which should not happen).
func (s *Screen) collectParagraphs() (paragraphs [][]Cell, cursorParaIdx, cursorOffset int) {
	var all []*Line
	for j := 0; j < s.ring.height; j++ {
		all = append(all, s.ring.scrollback(j))
	}
	for i := 0; i < s.h; i++ {
		all = append(all, s.ring.visible(i))
	}

	cursorRow := s.ring.height + s.cursor.Line
	cursorParaIdx, cursorOffset = -1, -1

	var current []Cell
	for idx, line := range all {
		isLast := idx == len(all)-1
		var seg []Cell
		if line.HasNewline || isLast {
			seg = line.Cells[:line.trimmedEOL()]
		} else {
			eol := line.EOL
			if eol > len(line.Cells) {
				eol = len(line.Cells)
			}
			seg = line.Cells[:eol]
		}

		if idx == cursorRow {
			cursorParaIdx = len(paragraphs)
			col := s.cursor.Column
			if col > len(seg) {
				col = len(seg)
			}
			cursorOffset = len(current) + col
		}

		current = append(current, seg...)
		if line.HasNewline || isLast {
			paragraphs = append(paragraphs, current)
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs, cursorParaIdx, cursorOffset
}

// wrapParagraph re-splits a logical row of cells into width-w lines,
// respecting the wide-cell placement invariant (never begin a wide cell at
// column w-1). cursorOffset, when >= 0, is the index within cells the
// source cursor sat over (or == len(cells) if it sat past the last typed
// cell); landingRow/landingCol report where that position lands in the
// rewrapped lines, and landed reports whether cursorOffset fell within this
// paragraph at all.
func wrapParagraph(cells []Cell, w int, cursorOffset int) (lines []Line, landingRow, landingCol int, landed bool) {
	if len(cells) == 0 {
		lines = []Line{newLine(w, CellStyle{})}
		if cursorOffset == 0 {
			landed = true
		}
		return lines, 0, 0, landed
	}

	line := newLine(w, CellStyle{})
	col := 0
	for i, c := range cells {
		width := c.CP.Width()
		if width == 0 {
			width = 1
		}
		if col+width > w {
			line.EOL = col
			lines = append(lines, line)
			line = newLine(w, CellStyle{})
			col = 0
		}
		if i == cursorOffset {
			landingRow, landingCol, landed = len(lines), col, true
		}
		line.Cells[col] = c
		if width > 1 && col+1 < w {
			line.Cells[col+1] = Cell{CP: Codepoint{Rune: ' '}, Style: c.Style}
		}
		col += width
	}
	if cursorOffset >= len(cells) {
		landingRow, landingCol, landed = len(lines), col, true
	}
	line.EOL = col
	lines = append(lines, line)

	for i := 0; i < len(lines)-1; i++ {
		lines[i].HasNewline = false
	}
	lines[len(lines)-1].HasNewline = true
	return lines, landingRow, landingCol, landed
}

// resizeNoReflow truncates or pads the alternate screen's rows in place,
// discarding anything beyond the new bounds (spec §4.2.1).
func (s *Screen) resizeNoReflow(w, h int) {
	total := h
	newLines := make([]Line, total)
	for i := 0; i < h; i++ {
		nl := newLine(w, CellStyle{})
		if i < s.h {
			old := s.ring.visible(i)
			n := w
			if len(old.Cells) < n {
				n = len(old.Cells)
			}
			copy(nl.Cells[:n], old.Cells[:n])
			nl.HasNewline = old.HasNewline
			nl.EOL = old.EOL
			if nl.EOL > w {
				nl.EOL = w
			}
		}
		newLines[i] = nl
	}
	s.ring = &scrollbackRing{lines: newLines, max: 0, height: 0, offset: 0, h: h}
}
