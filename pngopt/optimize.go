package pngopt

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/pngsqueeze/batch"
)

// Optimizer rewrites PNG files in place with lossless reductions and
// maximum compression. It implements batch.Transformer.
type Optimizer struct {
	encoder png.Encoder
	logger  *slog.Logger
}

var _ batch.Transformer = (*Optimizer)(nil)

// NewOptimizer creates an optimizer using the best zlib compression
func NewOptimizer(logger *slog.Logger) *Optimizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Optimizer{
		encoder: png.Encoder{CompressionLevel: png.BestCompression},
		logger:  logger,
	}
}

// FileSize returns the size of a file in bytes
func (o *Optimizer) FileSize(path string) (int64, error) {
	return GetFileSize(path)
}

// Transform optimizes path in place. The file is only replaced when the
// result is smaller, so a successful call always leaves a readable file.
func (o *Optimizer) Transform(path string, opts batch.Options) error {
	result, err := o.Optimize(path, opts)
	if err != nil {
		return err
	}
	if result.SkipReason != "" {
		o.logger.Debug("file left unchanged", "path", path, "reason", result.SkipReason)
	}
	return nil
}

// Optimize rewrites path in place and reports what was done
func (o *Optimizer) Optimize(path string, opts batch.Options) (*OptimizeResult, error) {
	return o.run(path, opts, true)
}

// Analyze computes the optimization result for path without touching the file
func (o *Optimizer) Analyze(path string, opts batch.Options) (*OptimizeResult, error) {
	return o.run(path, opts, false)
}

func (o *Optimizer) run(path string, opts batch.Options, write bool) (*OptimizeResult, error) {
	result := &OptimizeResult{Path: path}

	validation, err := validatePNGFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if validation.IsDirectory {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	result.OriginalSize = validation.FileInfo.Size()
	result.NewSize = result.OriginalSize

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	info, err := readHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if info.Interlaced && opts.PreserveInterlace() {
		result.SkipReason = "interlaced image, interlacing preserved"
		return result, nil
	}

	chunks, err := chunkTypes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read png chunks: %w", err)
	}
	managed, metadata := splitAncillary(chunks)
	if len(managed) > 0 {
		result.SkipReason = fmt.Sprintf("color management chunks %s would be lost", strings.Join(managed, ","))
		o.logger.Warn("leaving color-managed png unchanged", "path", path, "chunks", managed)
		return result, nil
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode png: %w", err)
	}

	reduced, applied := reduce(img, opts)
	result.Reductions = applied

	var buf bytes.Buffer
	if err := o.encoder.Encode(&buf, reduced); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	if opts.VerifyPerceptual {
		if err := verifyEncoded(img, buf.Bytes()); err != nil {
			return nil, err
		}
	}

	if int64(buf.Len()) >= result.OriginalSize {
		result.SkipReason = "already optimal"
		return result, nil
	}
	result.NewSize = int64(buf.Len())

	if !write {
		return result, nil
	}

	if err := replaceFile(path, buf.Bytes(), validation.FileInfo.Mode().Perm()); err != nil {
		return nil, err
	}
	result.Written = true

	if len(metadata) > 0 {
		o.logger.Warn("metadata chunks dropped", "path", path, "chunks", metadata)
	}

	o.logger.Debug("optimized", "path", path, "original", result.OriginalSize, "optimized", result.NewSize, "reductions", applied)
	return result, nil
}

// replaceFile writes data next to path and renames it over path, keeping the mode bits
func replaceFile(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// Clean up temp file if it still exists
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace original file: %w", err)
	}
	return nil
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	fi, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to get file size: %w", err)
	}
	if fi.IsDir() {
		return 0, fmt.Errorf("%s is a directory", filePath)
	}
	return fi.Size(), nil
}

// decodeBytes decodes an in-memory PNG
func decodeBytes(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode png: %w", err)
	}
	return img, nil
}
