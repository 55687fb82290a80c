package pngopt

import "os"

// ImageInfo describes the header of a PNG file
type ImageInfo struct {
	Width      int
	Height     int
	BitDepth   int
	ColorType  ColorType
	Interlaced bool
	Size       int64
}

// ColorType is the PNG IHDR color type
type ColorType uint8

// PNG color types
const (
	ColorGray      ColorType = 0
	ColorTrue      ColorType = 2
	ColorPaletted  ColorType = 3
	ColorGrayAlpha ColorType = 4
	ColorTrueAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case ColorGray:
		return "grayscale"
	case ColorTrue:
		return "truecolor"
	case ColorPaletted:
		return "indexed"
	case ColorGrayAlpha:
		return "grayscale+alpha"
	case ColorTrueAlpha:
		return "truecolor+alpha"
	default:
		return "unknown"
	}
}

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	FileInfo    os.FileInfo
	IsDirectory bool
	IsPNGFile   bool
}

// OptimizeResult holds the outcome of optimizing one file
type OptimizeResult struct {
	Path         string
	OriginalSize int64
	NewSize      int64
	Reductions   []string
	Written      bool
	SkipReason   string
}

// SavingsRatio returns the size reduction as a fraction (0..1) of the original size
func (r *OptimizeResult) SavingsRatio() float64 {
	if r.OriginalSize <= 0 {
		return 0
	}
	return float64(r.OriginalSize-r.NewSize) / float64(r.OriginalSize)
}
