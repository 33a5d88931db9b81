// Package hash provides streaming hashing helpers on top of the sha2 engine.
package hash

import (
	"context"
	"encoding/hex"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"sha2sum/internal/sha2"
)

// chunkSize is how much is read between cancellation checks.
const chunkSize = 256 * 1024

// Hasher wraps incremental hashing for one input.
type Hasher struct {
	e *sha2.Engine
	n int64
}

// New creates a hasher for the given variant.
func New(v sha2.Variant) (*Hasher, error) {
	e, err := sha2.New(v)
	if err != nil {
		return nil, err
	}
	return &Hasher{e: e}, nil
}

// Variant returns the algorithm in use.
func (h *Hasher) Variant() sha2.Variant { return h.e.Variant() }

// Write adds data to the hash state.
func (h *Hasher) Write(p []byte) (int, error) {
	n, err := h.e.Write(p)
	h.n += int64(n)
	return n, err
}

// Len returns the number of bytes written so far.
func (h *Hasher) Len() int64 { return h.n }

// Sum returns the raw digest of everything written so far.
func (h *Hasher) Sum() []byte { return h.e.Sum(nil) }

// Hash finalises the underlying engine and returns the digest. Further
// writes fail until the hasher is discarded.
func (h *Hasher) Hash() ([]byte, error) { return h.e.Hash() }

// SumHex returns lowercase hex digest.
func (h *Hasher) SumHex() string { return hex.EncodeToString(h.Sum()) }

// Digest returns the OCI form "<algorithm>:<hex>". SHA-224 has no registered
// OCI algorithm and yields an error.
func (h *Hasher) Digest() (digest.Digest, error) {
	var alg digest.Algorithm
	switch h.Variant() {
	case sha2.SHA256:
		alg = digest.SHA256
	case sha2.SHA384:
		alg = digest.SHA384
	case sha2.SHA512:
		alg = digest.SHA512
	default:
		return "", errors.Errorf("%s has no OCI digest algorithm", h.Variant())
	}
	return digest.NewDigestFromEncoded(alg, h.SumHex()), nil
}

// Copy streams r into h, checking ctx between chunks.
func Copy(ctx context.Context, h *Hasher, r io.Reader) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return total, errors.Wrap(werr, "hash input")
			}
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, errors.Wrap(err, "read input")
		}
	}
}
