package vtmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollbackRingAdvanceEvictsIntoScrollback(t *testing.T) {
	r := newScrollbackRing(4, 3, 5, CellStyle{})
	r.setVisible(0, Line{Cells: []Cell{{CP: Codepoint{Rune: 'A'}}}})

	r.advance(1)

	require.Equal(t, 1, r.height)
	sb := r.scrollback(0)
	require.NotNil(t, sb)
	assert.Equal(t, 'A', sb.Cells[0].CP.Rune)
}

func TestScrollbackRingCapsAtMax(t *testing.T) {
	r := newScrollbackRing(4, 3, 2, CellStyle{})
	r.advance(1)
	r.advance(1)
	r.advance(1) // exceeds max=2
	assert.Equal(t, 2, r.height)
}

func TestScrollbackRingOutOfRangeIsNil(t *testing.T) {
	r := newScrollbackRing(4, 3, 5, CellStyle{})
	assert.Nil(t, r.scrollback(-1))
	assert.Nil(t, r.scrollback(0))
}

func TestScrollbackRingClear(t *testing.T) {
	r := newScrollbackRing(4, 3, 5, CellStyle{})
	r.advance(2)
	require.Equal(t, 2, r.height)
	r.clear()
	assert.Equal(t, 0, r.height)
}

func TestScrollbackRingVisibleAddressingAfterAdvance(t *testing.T) {
	r := newScrollbackRing(4, 2, 5, CellStyle{})
	r.setVisible(0, Line{Cells: []Cell{{CP: Codepoint{Rune: '1'}}}})
	r.setVisible(1, Line{Cells: []Cell{{CP: Codepoint{Rune: '2'}}}})

	r.advance(1)

	// Row that was visible(1) is now visible(0) after the shift.
	assert.Equal(t, '2', r.visible(0).Cells[0].CP.Rune)
}
