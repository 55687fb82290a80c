package batch

import (
	"fmt"
	"math"
)

// FormatSize renders a byte count in KB, MB or GB with two decimals, moving
// to the next unit once the value reaches 1024.
// Zero renders as an empty string since it stands for "not known".
func FormatSize(size int64) string {
	if size == 0 {
		return ""
	}

	value := float64(size) / 1024
	unit := "KB"

	if value >= 1024 {
		value /= 1024
		unit = "MB"
	}

	if value >= 1024 {
		value /= 1024
		unit = "GB"
	}

	return fmt.Sprintf("%.2f %s", value, unit)
}

// ReductionRatio returns 1 - transformed/original, or 0 when the original size is unknown
func ReductionRatio(originalSize, transformedSize int64) float64 {
	if originalSize <= 0 {
		return 0
	}
	return 1 - float64(transformedSize)/float64(originalSize)
}

// FormatPercent renders a reduction ratio as a percentage with one decimal.
// Non-positive ratios render as an empty string.
func FormatPercent(ratio float64) string {
	if math.IsNaN(ratio) || ratio <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f%%", ratio*100)
}
