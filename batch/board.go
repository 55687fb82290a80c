package batch

import "fmt"

// HeaderRows is the number of fixed rows above the first item row
const HeaderRows = 1

// Summary holds the running totals of a batch
type Summary struct {
	Total            int
	Done             int
	Failed           int
	OriginalBytes    int64
	TransformedBytes int64
}

// Saved returns the number of bytes removed by the finished items
func (s Summary) Saved() int64 {
	return s.OriginalBytes - s.TransformedBytes
}

// Board is the display state of a batch: the header and item rows, the
// aggregate progress label and the index to row mapping. Only the consumer
// writes to it.
type Board struct {
	rows    []string
	slots   []int
	label   string
	summary Summary
}

// NewBoard returns an empty board holding only the header row
func NewBoard() *Board {
	b := &Board{}
	b.Reset(nil)
	return b
}

// Reset replaces the board content with one placeholder row per item and
// rebuilds the slot table.
func (b *Board) Reset(items []Item) {
	b.rows = make([]string, 0, HeaderRows+len(items))
	b.rows = append(b.rows, Header)
	b.slots = make([]int, len(items))
	for i, it := range items {
		b.slots[i] = len(b.rows)
		b.rows = append(b.rows, RenderRow(it, StatusPending, 0))
	}
	b.label = ""
	b.summary = Summary{Total: len(items)}
}

// Slot returns the physical row of the item with the given index
func (b *Board) Slot(index int) (int, bool) {
	if index < 0 || index >= len(b.slots) {
		return 0, false
	}
	return b.slots[index], true
}

// SetItem renders item into its row and returns the row and the new line
func (b *Board) SetItem(item Item, status string, ratio float64) (int, string, error) {
	row, ok := b.Slot(item.Index)
	if !ok {
		return 0, "", fmt.Errorf("no row for item index %d", item.Index)
	}
	line := RenderRow(item, status, ratio)
	b.rows[row] = line
	return row, line, nil
}

// SetLabel sets the aggregate progress label
func (b *Board) SetLabel(label string) {
	b.label = label
}

// Label returns the aggregate progress label
func (b *Board) Label() string {
	return b.label
}

// Row returns the content of a physical row
func (b *Board) Row(row int) string {
	if row < 0 || row >= len(b.rows) {
		return ""
	}
	return b.rows[row]
}

// Rows returns a copy of all rows, header included
func (b *Board) Rows() []string {
	out := make([]string, len(b.rows))
	copy(out, b.rows)
	return out
}

// ItemRows returns a copy of the rows below the header
func (b *Board) ItemRows() []string {
	return b.Rows()[HeaderRows:]
}

// Summary returns the totals collected so far
func (b *Board) Summary() Summary {
	return b.summary
}
