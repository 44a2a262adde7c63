package vtmux

// scrollbackRing stores evicted primary-screen rows as a 1D stream with
// fixed capacity, per spec §4.2.2. It is implemented as "wrap and copy"
// rather than double-mapped virtual memory — spec §4.2.2 states the two are
// equivalent and the mmap trick is a permitted, not required, detail.
//
// The ring and the live viewport share one backing array (spec §3 invariant
// 7): physical index = (total + offset + logical) mod total, where logical 0
// is the oldest scrollback line and logical scrollHeight..scrollHeight+h-1 is
// the live viewport. Advancing offset "scrolls" old viewport rows into
// scrollback without copying their cell data.
type scrollbackRing struct {
	lines  []Line // len == total == h + max
	max    int
	height int // number of in-use scrollback lines, 0..max
	offset int // rotation offset
	h      int // live viewport height, cached for addressing
}

func newScrollbackRing(w, h, max int, brush CellStyle) *scrollbackRing {
	total := h + max
	lines := make([]Line, total)
	for i := range lines {
		lines[i] = newLine(w, brush)
	}
	return &scrollbackRing{lines: lines, max: max, h: h}
}

func (r *scrollbackRing) total() int {
	return len(r.lines)
}

// visiblePhysical maps a 0-based viewport row to its physical ring slot.
func (r *scrollbackRing) visiblePhysical(i int) int {
	t := r.total()
	return (t + r.offset + r.height + i) % t
}

// scrollbackPhysical maps a 0-based scrollback row (0 == oldest) to its
// physical ring slot.
func (r *scrollbackRing) scrollbackPhysical(j int) int {
	t := r.total()
	return (t + r.offset + j) % t
}

func (r *scrollbackRing) visible(i int) *Line {
	return &r.lines[r.visiblePhysical(i)]
}

func (r *scrollbackRing) setVisible(i int, l Line) {
	r.lines[r.visiblePhysical(i)] = l
}

func (r *scrollbackRing) scrollback(j int) *Line {
	if j < 0 || j >= r.height {
		return nil
	}
	return &r.lines[r.scrollbackPhysical(j)]
}

// advance evicts n live viewport rows at the top into scrollback (growing
// height up to max) by rotating the ring window. It does not itself clear
// the newly-exposed bottom rows of the viewport — the caller (ShuffleRowsUp)
// does that with the active brush, mirroring spec §4.2 shuffle_rows_up.
//
// While scrollback has free capacity (height < max), the oldest-row boundary
// (offset) stays put and only height grows — the viewport window still
// shifts forward because visiblePhysical adds height into its addressing.
// offset only advances once scrollback is full and the oldest lines must be
// dropped to make room for new ones.
func (r *scrollbackRing) advance(n int) {
	if n <= 0 {
		return
	}
	t := r.total()
	if n > t {
		n = t
	}
	room := r.max - r.height
	if n > room {
		overflow := n - room
		r.offset = (r.offset + overflow) % t
		r.height = r.max
	} else {
		r.height += n
	}
}

func (r *scrollbackRing) clear() {
	r.height = 0
}
