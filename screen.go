package vtmux

// Position identifies a cell location in screen coordinates (0-based,
// line-major).
type Position struct {
	Line   int
	Column int
}

// Screen is the 2D grid of styled cells described by spec §3/§4.2: a
// cursor, an explicit scroll region, and — for the primary variant — a
// scrollback ring that survives resize and reflow.
type Screen struct {
	w, h int

	marginTop    int
	marginBottom int

	ring *scrollbackRing

	cursor Cursor
	saved  SavedCursor

	tabStops []bool

	scrollMax int
	logger    Logger
}

// NewScreen creates a w×h screen. scrollbackLines is the scrollback capacity
// in lines; pass 0 for the alternate screen (spec §3: "not backed by
// scrollback").
func NewScreen(w, h, scrollbackLines int, logger Logger) *Screen {
	if logger == nil {
		logger = NopLogger{}
	}
	s := &Screen{
		w: w, h: h,
		marginTop: 0, marginBottom: h - 1,
		ring:      newScrollbackRing(w, h, scrollbackLines, CellStyle{}),
		cursor:    newCursor(),
		scrollMax: scrollbackLines,
		logger:    logger,
	}
	s.resetTabStops()
	return s
}

func (s *Screen) resetTabStops() {
	s.tabStops = make([]bool, s.w)
	for i := 0; i < s.w; i += 8 {
		s.tabStops[i] = true
	}
}

// Width and Height return the current grid dimensions.
func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Cursor returns the current cursor state.
func (s *Screen) Cursor() Cursor { return s.cursor }

// cursorPtr exposes the cursor by pointer for the dispatch layer's
// cosmetic-only fields (visibility, style, origin mode) that Screen doesn't
// offer dedicated setters for.
func (s *Screen) cursorPtr() *Cursor { return &s.cursor }

// Brush returns the style newly-inserted cells receive.
func (s *Screen) Brush() CellStyle { return s.cursor.Brush }

// SetBrush updates the style newly-inserted cells receive (SGR).
func (s *Screen) SetBrush(style CellStyle) { s.cursor.Brush = style }

// Margins returns the inclusive scroll-region bounds.
func (s *Screen) Margins() (top, bottom int) { return s.marginTop, s.marginBottom }

// Line returns the visible line at row (0-based). Panics on out-of-range
// row, matching the invariant that callers only address valid rows.
func (s *Screen) Line(row int) *Line {
	if row < 0 || row >= s.h {
		panic("vtmux: Screen.Line row out of range")
	}
	return s.ring.visible(row)
}

// Cell returns a pointer to the cell at (row, col), or nil if out of range.
func (s *Screen) Cell(row, col int) *Cell {
	if row < 0 || row >= s.h || col < 0 || col >= s.w {
		return nil
	}
	return &s.ring.visible(row).Cells[col]
}

// ScrollbackLen returns the number of stored scrollback lines.
func (s *Screen) ScrollbackLen() int { return s.ring.height }

// ScrollbackLine returns scrollback line j (0 == oldest), or nil if out of
// range.
func (s *Screen) ScrollbackLine(j int) *Line {
	return s.ring.scrollback(j)
}

// ClearScrollback discards all scrollback lines. ED mode 3 calls it after
// clearing the visible screen.
func (s *Screen) ClearScrollback() { s.ring.clear() }

// --- Insertion ---------------------------------------------------------

// Insert writes cell at the cursor, honoring the wrap-pending latch and the
// wide-cell placement invariants (spec §4.2 insert, §3 invariants 3-5).
func (s *Screen) Insert(cell Cell, wrap bool) {
	if s.cursor.WrapPending && wrap {
		s.wrapToNextLine()
	}

	width := cell.CP.Width()
	if width == 0 {
		width = 1 // zero-width (combining) codepoints take a column of their own here.
	}
	if width > 1 && s.cursor.Column == s.w-1 {
		if wrap {
			s.wrapToNextLine()
		} else {
			return // invariant 4: drop rather than split a wide cell.
		}
	}

	line := s.ring.visible(s.cursor.Line)
	col := s.cursor.Column
	cell.Style = s.cursor.Brush
	line.Cells[col] = cell
	if width > 1 {
		line.Cells[col+1] = Cell{CP: Codepoint{Rune: ' '}, Style: cell.Style}
	}
	if col+width > line.EOL {
		line.EOL = col + width
	}

	next := col + width
	if next >= s.w {
		s.cursor.Column = s.w - 1
		s.cursor.WrapPending = true
	} else {
		s.cursor.Column = next
		s.cursor.WrapPending = false
	}
}

// InsertASCIIRun is the batched fast path for ASCII runs (spec §4.2): same
// semantics as repeated Insert, specialized for the common case of no
// multi-byte or wide codepoints in the run.
func (s *Screen) InsertASCIIRun(brush CellStyle, bytes []byte, wrap bool) {
	prevBrush := s.cursor.Brush
	s.cursor.Brush = brush
	for _, b := range bytes {
		s.Insert(Cell{CP: Codepoint{Rune: rune(b)}}, wrap)
	}
	s.cursor.Brush = prevBrush
}

func (s *Screen) wrapToNextLine() {
	s.moveOrScrollDown()
	s.cursor.Column = 0
	s.cursor.WrapPending = false
}

// --- Cursor motion ------------------------------------------------------

// MoveCursorRelative shifts the cursor by (dx, dy), clamped into bounds, and
// clears wrap-pending (spec §4.2).
func (s *Screen) MoveCursorRelative(dx, dy int) {
	s.cursor.Column = clampInt(s.cursor.Column+dx, 0, s.w-1)
	s.cursor.Line = clampInt(s.cursor.Line+dy, 0, s.h-1)
	s.cursor.WrapPending = false
}

// SetCursor moves the cursor to an absolute (x, y), respecting origin-mode's
// shift of the scroll region's top margin (spec §4.2).
func (s *Screen) SetCursor(x, y int) {
	if s.cursor.Origin {
		y += s.marginTop
	}
	s.cursor.Column = clampInt(x, 0, s.w-1)
	s.cursor.Line = clampInt(y, 0, s.h-1)
	s.cursor.WrapPending = false
}

// CarriageReturn sets the column to 0 without moving the line (spec §4.2,
// distinct from SetCursor: origin mode never shifts a bare CR).
func (s *Screen) CarriageReturn() {
	s.cursor.Column = 0
	s.cursor.WrapPending = false
}

// SetColumn moves only the column (CHA), leaving the line untouched.
func (s *Screen) SetColumn(x int) {
	s.cursor.Column = clampInt(x, 0, s.w-1)
	s.cursor.WrapPending = false
}

// SetLine moves only the line (VPA), honoring origin mode's margin shift.
func (s *Screen) SetLine(y int) {
	if s.cursor.Origin {
		y += s.marginTop
	}
	s.cursor.Line = clampInt(y, 0, s.h-1)
	s.cursor.WrapPending = false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Newline marks the current line as explicitly terminated, then moves or
// scrolls down; if carriage, the column also resets to 0 (spec §4.2).
func (s *Screen) Newline(carriage bool) {
	s.ring.visible(s.cursor.Line).HasNewline = true
	s.moveOrScrollDown()
	if carriage {
		s.cursor.Column = 0
	}
}

func (s *Screen) moveOrScrollDown() {
	if s.cursor.Line == s.marginBottom {
		s.ShuffleRowsUp(1, s.marginTop, s.marginBottom)
	} else if s.cursor.Line < s.h-1 {
		s.cursor.Line++
	}
	s.cursor.WrapPending = false
}

func (s *Screen) moveOrScrollUp() {
	if s.cursor.Line == s.marginTop {
		s.ShuffleRowsDown(1, s.marginTop, s.marginBottom)
	} else if s.cursor.Line > 0 {
		s.cursor.Line--
	}
	s.cursor.WrapPending = false
}

// Index performs IND (ESC D): move/scroll down without touching column.
func (s *Screen) Index() { s.moveOrScrollDown() }

// ReverseIndex performs RI (ESC M): move/scroll up without touching column.
func (s *Screen) ReverseIndex() { s.moveOrScrollUp() }

// --- Scrolling ------------------------------------------------------------

// ShuffleRowsUp moves rows [top+n, bottom] up to [top, bottom-n], clearing
// the bottom n rows. For the full-screen region it instead evicts into
// scrollback by rotating the ring (spec §4.2).
func (s *Screen) ShuffleRowsUp(n, top, bottom int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}

	if top == 0 && bottom == s.h-1 {
		s.ring.advance(n)
	} else {
		for row := top; row <= bottom-n; row++ {
			s.ring.setVisible(row, *s.ring.visible(row+n))
		}
	}
	for row := bottom - n + 1; row <= bottom; row++ {
		s.ring.setVisible(row, newLine(s.w, s.cursor.Brush))
	}
}

// ShuffleRowsDown moves rows [top, bottom-n] down to [top+n, bottom],
// clearing the top n rows. Never extends scrollback (spec §4.2).
func (s *Screen) ShuffleRowsDown(n, top, bottom int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	for row := bottom; row >= top+n; row-- {
		s.ring.setVisible(row, *s.ring.visible(row-n))
	}
	for row := top; row < top+n; row++ {
		s.ring.setVisible(row, newLine(s.w, s.cursor.Brush))
	}
}

// --- Erase ----------------------------------------------------------------

// EraseBetween clears the inclusive rectangular (line-major) range [a, b],
// writing brush-styled blanks, and fixes up each touched line's eol per
// spec §9's resolution of the eol-vs-ECH ambiguity: "the first erased column
// becomes the new eol iff the old eol was within the erased range".
func (s *Screen) EraseBetween(a, b Position) {
	if b.Line < a.Line || (b.Line == a.Line && b.Column < a.Column) {
		a, b = b, a
	}
	for row := a.Line; row <= b.Line && row < s.h; row++ {
		from, to := 0, s.w-1
		if row == a.Line {
			from = a.Column
		}
		if row == b.Line {
			to = b.Column
		}
		s.eraseRowRange(row, from, to)
	}
}

func (s *Screen) eraseRowRange(row, from, to int) {
	if row < 0 || row >= s.h {
		return
	}
	if from < 0 {
		from = 0
	}
	if to > s.w-1 {
		to = s.w - 1
	}
	if from > to {
		return
	}
	line := s.ring.visible(row)
	for col := from; col <= to; col++ {
		line.Cells[col] = blankCell(s.cursor.Brush)
	}
	if line.EOL >= from && line.EOL <= to+1 {
		line.EOL = from
	}
}

// ClearRow blanks an entire row.
func (s *Screen) ClearRow(row int) { s.eraseRowRange(row, 0, s.w-1) }

// ClearAll blanks every row of the viewport.
func (s *Screen) ClearAll() {
	for row := 0; row < s.h; row++ {
		s.ClearRow(row)
	}
}

// FillWithE implements DECALN (ESC # 8): fill the whole screen with 'E'.
func (s *Screen) FillWithE() {
	for row := 0; row < s.h; row++ {
		line := s.ring.visible(row)
		for col := range line.Cells {
			line.Cells[col] = Cell{CP: Codepoint{Rune: 'E'}}
		}
		line.EOL = s.w
	}
}

// --- Line/char insert & delete ---------------------------------------------

// InsertBlanks shifts cells right from the cursor by n (ICH), padding with
// brush-styled blanks and updating eol.
func (s *Screen) InsertBlanks(n int) {
	if n <= 0 {
		return
	}
	line := s.ring.visible(s.cursor.Line)
	col := s.cursor.Column
	if n > s.w-col {
		n = s.w - col
	}
	copy(line.Cells[col+n:], line.Cells[col:s.w-n])
	for i := col; i < col+n; i++ {
		line.Cells[i] = blankCell(s.cursor.Brush)
	}
	line.EOL = clampInt(line.EOL+n, 0, s.w)
}

// ShiftFromCursor deletes n cells at the cursor, shifting the remainder of
// the line left and padding the vacated tail with brush-styled blanks (DCH).
func (s *Screen) ShiftFromCursor(n int) {
	if n <= 0 {
		return
	}
	line := s.ring.visible(s.cursor.Line)
	col := s.cursor.Column
	if n > s.w-col {
		n = s.w - col
	}
	copy(line.Cells[col:], line.Cells[col+n:])
	for i := s.w - n; i < s.w; i++ {
		line.Cells[i] = blankCell(s.cursor.Brush)
	}
	line.EOL = clampInt(line.EOL-n, 0, s.w)
}

// InsertLines inserts n blank lines at the cursor (IL). No-op if the cursor
// is outside the scroll region.
func (s *Screen) InsertLines(n int) {
	if s.cursor.Line < s.marginTop || s.cursor.Line > s.marginBottom {
		return
	}
	s.ShuffleRowsDown(n, s.cursor.Line, s.marginBottom)
}

// DeleteLines removes n lines at the cursor (DL). No-op if the cursor is
// outside the scroll region.
func (s *Screen) DeleteLines(n int) {
	if s.cursor.Line < s.marginTop || s.cursor.Line > s.marginBottom {
		return
	}
	s.ShuffleRowsUp(n, s.cursor.Line, s.marginBottom)
}

// --- Scroll region / cursor save-restore -----------------------------------

// SetScrollRegion sets the scroll margins, rejecting bottom < top (logged,
// no state change), then moves the cursor to origin (spec §4.2/§4.4
// DECSTBM).
func (s *Screen) SetScrollRegion(top, bottom int) {
	top = clampInt(top, 0, s.h-1)
	bottom = clampInt(bottom, 0, s.h-1)
	if bottom < top {
		s.logger.Warnf("vtmux: reject DECSTBM top=%d bottom=%d", top, bottom)
		return
	}
	s.marginTop = top
	s.marginBottom = bottom
	s.SetCursor(0, 0)
}

// SaveCursor preserves {position, brush, wrap_pending, origin}.
func (s *Screen) SaveCursor() { s.saved = s.cursor.save() }

// RestoreCursor restores the state SaveCursor captured.
func (s *Screen) RestoreCursor() { s.cursor.restore(s.saved) }

// --- Tab stops --------------------------------------------------------

func (s *Screen) SetTabStop(col int) {
	if col >= 0 && col < s.w {
		s.tabStops[col] = true
	}
}

func (s *Screen) ClearTabStop(col int) {
	if col >= 0 && col < s.w {
		s.tabStops[col] = false
	}
}

func (s *Screen) ClearAllTabStops() {
	for i := range s.tabStops {
		s.tabStops[i] = false
	}
}

func (s *Screen) NextTabStop(col int) int {
	for c := col + 1; c < s.w; c++ {
		if s.tabStops[c] {
			return c
		}
	}
	return s.w - 1
}

func (s *Screen) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if s.tabStops[c] {
			return c
		}
	}
	return 0
}
