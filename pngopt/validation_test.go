package pngopt

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestIsPNGFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"PNG lowercase", "test.png", true},
		{"PNG uppercase", "test.PNG", true},
		{"Mixed case", "test.PnG", true},
		{"Full path", "/path/to/image.png", true},
		{"Multiple dots", "image.v2.png", true},
		{"Hidden file", ".hidden.png", true},
		{"Space in name", "my image.png", true},

		{"No extension", "test", false},
		{"JPEG", "test.jpg", false},
		{"PNG in name only", "png.txt", false},
		{"Suffix without dot", "imagepng", false},
		{"Empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsPNGFile(tt.path); result != tt.expected {
				t.Errorf("IsPNGFile(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestReadInfo(t *testing.T) {
	dir := t.TempDir()
	gray := image.NewGray(image.Rect(0, 0, 7, 3))
	path := writePNG(t, dir, "gray.png", gray)

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo() error = %v", err)
	}
	if info.Width != 7 || info.Height != 3 {
		t.Errorf("Expected 7x3, got %dx%d", info.Width, info.Height)
	}
	if info.ColorType != ColorGray {
		t.Errorf("Expected grayscale, got %s", info.ColorType)
	}
	if info.BitDepth != 8 {
		t.Errorf("Expected bit depth 8, got %d", info.BitDepth)
	}
	if info.Interlaced {
		t.Error("Expected non-interlaced image")
	}
	fi, _ := os.Stat(path)
	if info.Size != fi.Size() {
		t.Errorf("Expected size %d, got %d", fi.Size(), info.Size)
	}

	setInterlaced(t, path)
	info, err = ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo() error = %v", err)
	}
	if !info.Interlaced {
		t.Error("Expected interlaced image")
	}
}

func TestReadInfo_ColorTypes(t *testing.T) {
	dir := t.TempDir()
	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 3})

	tests := []struct {
		name     string
		img      image.Image
		expected ColorType
	}{
		{"Opaque NRGBA", stripesNRGBA(4, 4), ColorTrue},
		{"Translucent NRGBA", translucent, ColorTrueAlpha},
		{"Paletted", image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White}), ColorPaletted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ReadInfo(writePNG(t, dir, tt.name+".png", tt.img))
			if err != nil {
				t.Fatalf("ReadInfo() error = %v", err)
			}
			if info.ColorType != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, info.ColorType)
			}
		})
	}
}

func TestReadInfo_NotPNG(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.png")
	_ = os.WriteFile(short, []byte("tiny"), 0644)
	text := filepath.Join(dir, "text.png")
	_ = os.WriteFile(text, []byte("this is definitely not a png image file"), 0644)

	for _, path := range []string{short, text} {
		if _, err := ReadInfo(path); !errors.Is(err, ErrNotPNG) {
			t.Errorf("ReadInfo(%s) error = %v, expected ErrNotPNG", filepath.Base(path), err)
		}
	}
}

func TestValidateIntegrity(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png", stripesNRGBA(8, 8))

	corrupt := writePNG(t, dir, "corrupt.png", stripesNRGBA(8, 8))
	data, _ := os.ReadFile(corrupt)
	data[len(data)-20] ^= 0xff
	_ = os.WriteFile(corrupt, data, 0644)

	if err := ValidateIntegrity(good); err != nil {
		t.Errorf("Expected valid file, got %v", err)
	}
	if err := ValidateIntegrity(corrupt); err == nil {
		t.Error("Expected error for corrupted file")
	}
	if err := ValidateIntegrity(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestColorTypeString(t *testing.T) {
	if ColorPaletted.String() != "indexed" {
		t.Errorf("Expected 'indexed', got %q", ColorPaletted.String())
	}
	if ColorType(9).String() != "unknown" {
		t.Errorf("Expected 'unknown', got %q", ColorType(9).String())
	}
}
