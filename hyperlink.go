package vtmux

// Hyperlink is a shared OSC 8 link record. Cells reference it by pointer;
// per spec §3 Ownership, a link's lifetime is "longest holder" — it is kept
// alive by the VTE that created it (its activeLink field, while open) and
// by every cell still pointing at it. Once the owning VTE is destroyed and
// every referencing cell is gone, the record is garbage-collected normally;
// there is no manual refcount to maintain beyond not leaking pointers into
// long-lived structures other than cells.
type Hyperlink struct {
	ID  string
	URI string
}
