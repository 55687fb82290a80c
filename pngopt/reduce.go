package pngopt

import (
	"image"
	"image/color"

	"github.com/lepinkainen/pngsqueeze/batch"
)

// Reduction names reported in OptimizeResult.Reductions
const (
	ReductionBitDepth  = "bit-depth"
	ReductionGrayscale = "grayscale"
	ReductionColorType = "color-type"
	ReductionPalette   = "palette"
)

// reduce applies every enabled lossless reduction to img and returns the
// result together with the names of the reductions that changed it.
func reduce(img image.Image, opts batch.Options) (image.Image, []string) {
	opts = opts.Effective()
	var applied []string

	if !opts.SkipBitDepthReduction {
		if out, ok := reduceBitDepth(img); ok {
			img = out
			applied = append(applied, ReductionBitDepth)
		}
	}

	if !opts.SkipGrayscaleReduction {
		if out, ok := reduceGrayscale(img); ok {
			img = out
			applied = append(applied, ReductionGrayscale)
		}
	}

	if !opts.SkipColorTypeReduction {
		if out, ok := reduceToPalette(img); ok {
			img = out
			applied = append(applied, ReductionColorType)
		}
	}

	if !opts.SkipPaletteReduction {
		if p, isPaletted := img.(*image.Paletted); isPaletted {
			if out, ok := prunePalette(p); ok {
				img = out
				applied = append(applied, ReductionPalette)
			}
		}
	}

	return img, applied
}

// sixteenBitIsRedundant reports whether every 16-bit big-endian sample in
// pix has equal high and low bytes, i.e. the image fits in 8 bits exactly.
func sixteenBitIsRedundant(pix []uint8, stride, rowBytes, rows int) bool {
	for y := 0; y < rows; y++ {
		row := pix[y*stride : y*stride+rowBytes]
		for i := 0; i < len(row); i += 2 {
			if row[i] != row[i+1] {
				return false
			}
		}
	}
	return true
}

// narrow copies the high byte of every 16-bit sample into an 8-bit buffer
func narrow(pix []uint8, stride, rowBytes, rows, dstStride int) []uint8 {
	out := make([]uint8, dstStride*rows)
	for y := 0; y < rows; y++ {
		src := pix[y*stride : y*stride+rowBytes]
		dst := out[y*dstStride:]
		for i := 0; i < len(src); i += 2 {
			dst[i/2] = src[i]
		}
	}
	return out
}

func reduceBitDepth(img image.Image) (image.Image, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch m := img.(type) {
	case *image.Gray16:
		if !sixteenBitIsRedundant(m.Pix, m.Stride, w*2, h) {
			return img, false
		}
		return &image.Gray{Pix: narrow(m.Pix, m.Stride, w*2, h, w), Stride: w, Rect: b}, true
	case *image.NRGBA64:
		if !sixteenBitIsRedundant(m.Pix, m.Stride, w*8, h) {
			return img, false
		}
		return &image.NRGBA{Pix: narrow(m.Pix, m.Stride, w*8, h, w*4), Stride: w * 4, Rect: b}, true
	case *image.RGBA64:
		if !sixteenBitIsRedundant(m.Pix, m.Stride, w*8, h) {
			return img, false
		}
		return &image.RGBA{Pix: narrow(m.Pix, m.Stride, w*8, h, w*4), Stride: w * 4, Rect: b}, true
	}

	return img, false
}

// rgba8 returns the 8-bit RGBA-ordered pixel buffer of img, if it has one.
// Premultiplied images are only returned when fully opaque so the values
// equal their non-premultiplied form.
func rgba8(img image.Image) (pix []uint8, stride int, ok bool) {
	switch m := img.(type) {
	case *image.NRGBA:
		return m.Pix, m.Stride, true
	case *image.RGBA:
		if !m.Opaque() {
			return nil, 0, false
		}
		return m.Pix, m.Stride, true
	}
	return nil, 0, false
}

func reduceGrayscale(img image.Image) (image.Image, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if m, isWide := img.(*image.NRGBA64); isWide {
		return reduceGrayscale16(m)
	}

	pix, stride, ok := rgba8(img)
	if !ok {
		return img, false
	}

	gray := image.NewGray(b)
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4]
		for x := 0; x < w; x++ {
			r, g, bl, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			if a != 0xff || r != g || g != bl {
				return img, false
			}
			gray.Pix[y*gray.Stride+x] = r
		}
	}
	return gray, true
}

func reduceGrayscale16(m *image.NRGBA64) (image.Image, bool) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	gray := image.NewGray16(b)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w*8]
		for x := 0; x < w; x++ {
			px := row[x*8 : x*8+8]
			if px[6] != 0xff || px[7] != 0xff {
				return m, false
			}
			if px[0] != px[2] || px[1] != px[3] || px[0] != px[4] || px[1] != px[5] {
				return m, false
			}
			gray.Pix[y*gray.Stride+x*2] = px[0]
			gray.Pix[y*gray.Stride+x*2+1] = px[1]
		}
	}
	return gray, true
}

// reduceToPalette converts an 8-bit truecolor image with at most 256
// distinct colors into an indexed image.
func reduceToPalette(img image.Image) (image.Image, bool) {
	pix, stride, ok := rgba8(img)
	if !ok {
		return img, false
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	index := make(map[color.NRGBA]uint8)
	palette := make(color.Palette, 0, 256)
	out := image.NewPaletted(b, nil)

	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4]
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: row[x*4], G: row[x*4+1], B: row[x*4+2], A: row[x*4+3]}
			i, seen := index[c]
			if !seen {
				if len(palette) == 256 {
					return img, false
				}
				i = uint8(len(palette))
				index[c] = i
				palette = append(palette, c)
			}
			out.Pix[y*out.Stride+x] = i
		}
	}

	out.Palette = palette
	return out, true
}

// prunePalette drops unused and duplicate palette entries and moves
// translucent entries to the front so the tRNS chunk stays short.
func prunePalette(p *image.Paletted) (image.Image, bool) {
	b := p.Bounds()
	w, h := b.Dx(), b.Dy()

	used := make([]bool, len(p.Palette))
	for y := 0; y < h; y++ {
		for _, i := range p.Pix[y*p.Stride : y*p.Stride+w] {
			if int(i) >= len(used) {
				return p, false
			}
			used[i] = true
		}
	}

	type entry struct {
		old int
		c   color.NRGBA
	}
	var translucent, opaque []entry
	seen := make(map[color.NRGBA]bool)
	for i, c := range p.Palette {
		if !used[i] {
			continue
		}
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		if seen[n] {
			continue
		}
		seen[n] = true
		if n.A == 0xff {
			opaque = append(opaque, entry{old: i, c: n})
		} else {
			translucent = append(translucent, entry{old: i, c: n})
		}
	}
	ordered := append(translucent, opaque...)

	newIndex := make(map[color.NRGBA]uint8, len(ordered))
	palette := make(color.Palette, len(ordered))
	changed := len(ordered) != len(p.Palette)
	for i, e := range ordered {
		newIndex[e.c] = uint8(i)
		palette[i] = e.c
		if e.old != i {
			changed = true
		}
	}
	if !changed {
		return p, false
	}

	out := image.NewPaletted(b, palette)
	for y := 0; y < h; y++ {
		src := p.Pix[y*p.Stride : y*p.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, i := range src {
			c := color.NRGBAModel.Convert(p.Palette[i]).(color.NRGBA)
			dst[x] = newIndex[c]
		}
	}
	return out, true
}
