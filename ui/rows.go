package ui

import (
	"strings"

	"github.com/lepinkainen/pngsqueeze/batch"
)

// Columns of a batch row, in display order
var columnTitles = []string{"File", "State", "Original", "Optimized", "Percent"}

// splitRow splits a pipe-delimited row into exactly len(columnTitles) fields
func splitRow(line string) []string {
	fields := strings.SplitN(line, "|", len(columnTitles))
	for len(fields) < len(columnTitles) {
		fields = append(fields, "")
	}
	return fields
}

// statusOf returns the State field of a row
func statusOf(line string) string {
	return splitRow(line)[1]
}

// isTerminal reports whether the row shows a finished item
func isTerminal(line string) bool {
	switch statusOf(line) {
	case batch.StatusDone, batch.StatusError:
		return true
	}
	return false
}

// progressFraction returns the share of finished items in the summary
func progressFraction(s batch.Summary) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done+s.Failed) / float64(s.Total)
}
