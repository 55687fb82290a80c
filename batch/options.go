package batch

// Options holds the reduction switches chosen once at batch start and
// applied to every item in the batch.
type Options struct {
	SkipBitDepthReduction  bool
	SkipColorTypeReduction bool
	SkipPaletteReduction   bool
	SkipGrayscaleReduction bool

	// ForceAllReductions forces every Skip* flag on and keeps the input's
	// interlacing untouched.
	ForceAllReductions bool

	// VerifyPerceptual fails an item whose rewritten image does not hash
	// identically to the input.
	VerifyPerceptual bool
}

// Effective returns the options with ForceAllReductions applied.
func (o Options) Effective() Options {
	if o.ForceAllReductions {
		o.SkipBitDepthReduction = true
		o.SkipColorTypeReduction = true
		o.SkipPaletteReduction = true
		o.SkipGrayscaleReduction = true
	}
	return o
}

// PreserveInterlace reports whether the interlace mode of the input must be kept.
func (o Options) PreserveInterlace() bool {
	return o.ForceAllReductions
}
