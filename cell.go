package vtmux

// Cell is one screen square: a glyph plus style plus an optional hyperlink
// reference (spec Glossary/§3).
type Cell struct {
	CP    Codepoint
	Style CellStyle
	Link  *Hyperlink
}

// blankCell returns a space cell styled with brush, the shape every erase
// operation writes (spec §4.2 erase_between/insert_blanks).
func blankCell(brush CellStyle) Cell {
	return Cell{CP: Codepoint{Rune: ' '}, Style: brush}
}

// IsWide reports whether this cell's codepoint occupies two columns.
func (c Cell) IsWide() bool {
	return c.CP.Wide
}

// Line is one row of the screen grid plus the metadata spec §3 requires to
// reconstruct logical text across wraps: eol marks the first trailing-blank
// column, and HasNewline distinguishes an explicit LF/CRLF terminator from a
// soft (auto-)wrap.
type Line struct {
	Cells      []Cell
	EOL        int
	HasNewline bool
}

// newLine allocates a blank line of width w whose cells are styled with brush.
func newLine(w int, brush CellStyle) Line {
	cells := make([]Cell, w)
	for i := range cells {
		cells[i] = blankCell(brush)
	}
	return Line{Cells: cells, EOL: 0}
}

// trimmedEOL returns the column of the first trailing blank cell, scanning
// from the end. Used by resize/reflow (spec §4.2.1) to decide how much of a
// line's trailing space is significant.
func (l Line) trimmedEOL() int {
	for i := len(l.Cells) - 1; i >= 0; i-- {
		c := l.Cells[i]
		if c.CP.Rune != ' ' && c.CP.Rune != 0 || c.Style != (CellStyle{}) || c.Link != nil {
			return i + 1
		}
	}
	return 0
}

// clone returns a deep-enough copy (cells are value types, so a slice copy
// suffices) for scrollback snapshots.
func (l Line) clone() Line {
	cells := make([]Cell, len(l.Cells))
	copy(cells, l.Cells)
	return Line{Cells: cells, EOL: l.EOL, HasNewline: l.HasNewline}
}
