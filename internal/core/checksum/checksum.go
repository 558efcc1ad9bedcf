// Package checksum computes streaming file checksums, used by the
// paste executor's optional post-copy verification.
package checksum

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// Algorithm represents the hashing algorithm to use
type Algorithm string

const (
	// MD5 algorithm (faster, adequate for copy verification)
	MD5 Algorithm = "md5"
	// SHA256 algorithm (recommended default)
	SHA256 Algorithm = "sha256"
)

// IsSupported checks if the given algorithm is supported
func IsSupported(algo Algorithm) bool {
	switch algo {
	case MD5, SHA256:
		return true
	default:
		return false
	}
}

// Options configures the calculator
type Options struct {
	// BufferSize is the streaming read buffer size
	// Default: 32KB
	BufferSize int
}

// DefaultOptions returns the recommended default options
func DefaultOptions() Options {
	return Options{
		BufferSize: 32 * 1024,
	}
}

// Calculator computes checksums from readers and files
type Calculator struct {
	opts Options
}

// NewCalculator creates a calculator with the given options
func NewCalculator(opts Options) *Calculator {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultOptions().BufferSize
	}
	return &Calculator{opts: opts}
}

// NewDefaultCalculator creates a calculator with default options
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultOptions())
}

// Calculate computes the checksum of everything read from reader
func (c *Calculator) Calculate(ctx context.Context, reader io.Reader, algo Algorithm) (string, error) {
	var h hash.Hash
	switch algo {
	case MD5:
		h = md5.New()
	case SHA256:
		h = sha256.New()
	default:
		return "", fmt.Errorf("unsupported algorithm: %s", algo)
	}

	buffer := make([]byte, c.opts.BufferSize)
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			if _, hashErr := h.Write(buffer[:n]); hashErr != nil {
				return "", fmt.Errorf("hash write error: %w", hashErr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read error: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// CalculateFile computes the checksum of a file on disk
func (c *Calculator) CalculateFile(ctx context.Context, path string, algo Algorithm) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return c.Calculate(ctx, file, algo)
}

// VerifyFiles reports whether two files have identical content under
// the given algorithm
func (c *Calculator) VerifyFiles(ctx context.Context, a, b string, algo Algorithm) (bool, error) {
	sumA, err := c.CalculateFile(ctx, a, algo)
	if err != nil {
		return false, err
	}
	sumB, err := c.CalculateFile(ctx, b, algo)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}
