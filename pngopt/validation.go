package pngopt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ErrNotPNG is returned when a file does not start with the PNG signature
var ErrNotPNG = errors.New("not a PNG file")

// IsPNGFile checks if the file extension is .png
func IsPNGFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

// validatePNGFile performs the file validation checks and returns structured results
func validatePNGFile(path string) (*FileValidationResult, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &FileValidationResult{
		FileInfo:    fi,
		IsDirectory: fi.IsDir(),
		IsPNGFile:   IsPNGFile(path),
	}, nil
}

// readHeader parses the signature and IHDR chunk of a PNG stream
func readHeader(r io.Reader) (*ImageInfo, error) {
	// signature (8) + chunk length (4) + "IHDR" (4) + IHDR data (13)
	var buf [29]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNotPNG
		}
		return nil, err
	}

	if !bytes.Equal(buf[:8], pngSignature) {
		return nil, ErrNotPNG
	}
	if string(buf[12:16]) != "IHDR" {
		return nil, fmt.Errorf("first chunk is %q, expected IHDR", buf[12:16])
	}

	return &ImageInfo{
		Width:      int(binary.BigEndian.Uint32(buf[16:20])),
		Height:     int(binary.BigEndian.Uint32(buf[20:24])),
		BitDepth:   int(buf[24]),
		ColorType:  ColorType(buf[25]),
		Interlaced: buf[28] == 1,
	}, nil
}

// ReadInfo reads the PNG header of a file without decoding the image data
func ReadInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := readHeader(f)
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	info.Size = fi.Size()

	return info, nil
}

// ValidateIntegrity checks that a file is a complete, decodable PNG
func ValidateIntegrity(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file not readable: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := readHeader(f); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if _, err := png.Decode(f); err != nil {
		return fmt.Errorf("png file is corrupted: %w", err)
	}

	return nil
}
