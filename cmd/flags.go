package cmd

import (
	"github.com/lepinkainen/pngsqueeze/batch"
	"github.com/lepinkainen/pngsqueeze/config"
)

// ReductionFlags selects the lossless reductions applied to each file.
// A flag set on the command line wins over the config file; it can only
// turn a reduction off, never back on.
type ReductionFlags struct {
	SkipBitDepth  bool `help:"Keep 16-bit channels even when 8 bits are enough"`
	SkipColorType bool `help:"Do not convert truecolor images with 256 colors or fewer to a palette"`
	SkipPalette   bool `help:"Do not prune unused or duplicate palette entries"`
	SkipGrayscale bool `help:"Do not convert gray RGB images to grayscale"`
	ForceAll      bool `help:"Recompress only: skip every reduction and keep interlaced files as they are"`
	Verify        bool `help:"Compare each rewritten image with the original before replacing it"`
}

// Options merges the flags with the config defaults
func (f ReductionFlags) Options(cfg *config.Config) batch.Options {
	var opts batch.Options
	if cfg != nil {
		opts = cfg.BatchOptions()
	}

	opts.SkipBitDepthReduction = opts.SkipBitDepthReduction || f.SkipBitDepth
	opts.SkipColorTypeReduction = opts.SkipColorTypeReduction || f.SkipColorType
	opts.SkipPaletteReduction = opts.SkipPaletteReduction || f.SkipPalette
	opts.SkipGrayscaleReduction = opts.SkipGrayscaleReduction || f.SkipGrayscale
	opts.ForceAllReductions = opts.ForceAllReductions || f.ForceAll
	opts.VerifyPerceptual = opts.VerifyPerceptual || f.Verify

	return opts.Effective()
}
