package batch

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Status labels shown in the State column
const (
	StatusPending    = "..."
	StatusOptimizing = "Optimizing"
	StatusDone       = "Done"
	StatusError      = "Error"
)

// maxNameLength is the longest base name shown before truncation
const maxNameLength = 40

// Header is the fixed column header placed above the item rows
const Header = "File|State|Original|Optimized|Percent"

// Item is one file's processing record within a batch.
// A size of 0 means the size is not known yet.
type Item struct {
	Index           int
	Path            string
	OriginalSize    int64
	TransformedSize int64
}

// NewItems builds the batch items for paths in input order
func NewItems(paths []string) []Item {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Index: i, Path: p}
	}
	return items
}

// fieldSeparator delimits the fields of a rendered row
const fieldSeparator = "|"

// ShortName returns the base name of the item path, truncated for display.
// The name is cut on a rune boundary at most maxNameLength bytes in, and a
// field separator inside the name is replaced so the row keeps its columns.
func (it Item) ShortName() string {
	name := strings.ReplaceAll(filepath.Base(it.Path), fieldSeparator, "¦")
	if len(name) > maxNameLength {
		cut := maxNameLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut] + "..."
	}
	return name
}

// RenderRow builds the pipe-delimited display row for an item.
// Sizes of 0 and ratios <= 0 render as empty fields.
func RenderRow(it Item, status string, ratio float64) string {
	return strings.Join([]string{
		it.ShortName(),
		status,
		FormatSize(it.OriginalSize),
		FormatSize(it.TransformedSize),
		FormatPercent(ratio),
	}, fieldSeparator)
}
