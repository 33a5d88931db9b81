// Package sha2 implements the SHA-224, SHA-256, SHA-384 and SHA-512 hash
// functions as a streaming engine.
//
// One generic accumulator, parameterised by word type and a static variant
// table, serves all four variants. An Engine is owned by a single goroutine;
// it has no internal locking. Distinct engines share nothing mutable.
//
// Lifecycle: Input may be called any number of times, then Hash finalises the
// engine and returns the digest. After that, Input and Hash report
// ErrFinalized until Reset is called. Sum, from hash.Hash, works on a copy and
// never finalises.
package sha2

import (
	"hash"
	"math/bits"

	"github.com/pkg/errors"
)

const (
	maxBlockSize = 128
	maxRounds    = 80
)

// accumulator is the word-size independent view of a state. Engine calls it
// once per Input; the per-block work behind it is fully monomorphised.
type accumulator interface {
	reset()
	input(p []byte) error
	finish(dst []byte) []byte
	clone() accumulator
}

// state holds the running hash words, the unconsumed tail of the input
// (always shorter than one block between calls) and the message length in
// bits as a 128-bit hi:lo pair.
type state[W word] struct {
	p      *params[W]
	h      [8]W
	buf    [maxBlockSize]byte
	nx     int
	hi, lo uint64
	w      [maxRounds]W
}

func newState[W word](p *params[W]) *state[W] {
	s := &state[W]{p: p}
	s.reset()
	return s
}

func (s *state[W]) reset() {
	s.h = s.p.iv
	s.nx = 0
	s.hi, s.lo = 0, 0
}

func (s *state[W]) input(p []byte) error {
	if err := s.count(len(p)); err != nil {
		return err
	}
	s.absorb(p)
	return nil
}

// count adds n bytes to the bit length, refusing anything the length field
// cannot represent. The counter is left untouched on failure.
func (s *state[W]) count(n int) error {
	hi, lo := bits.Mul64(uint64(n), 8)
	lo, carry := bits.Add64(s.lo, lo, 0)
	hi, carry = bits.Add64(s.hi, hi, carry)
	if carry != 0 || (s.p.lenSize == 8 && hi != 0) {
		return ErrLengthOverflow
	}
	s.hi, s.lo = hi, lo
	return nil
}

// absorb buffers p and compresses every complete block.
func (s *state[W]) absorb(p []byte) {
	size := s.p.blockSize
	if s.nx > 0 {
		n := copy(s.buf[s.nx:size], p)
		s.nx += n
		p = p[n:]
		if s.nx < size {
			return
		}
		s.block(s.buf[:size])
		s.nx = 0
	}
	for len(p) >= size {
		s.block(p[:size])
		p = p[size:]
	}
	s.nx = copy(s.buf[:size], p)
}

func (s *state[W]) block(b []byte) {
	s.p.schedule(s.w[:], b)
	s.p.compress(&s.h, s.w[:])
}

// finish pads, compresses the last one or two blocks and appends the digest
// to dst. It consumes the state.
func (s *state[W]) finish(dst []byte) []byte {
	s.absorb(padding(s.p.blockSize, s.p.lenSize, s.nx, s.hi, s.lo))
	return s.p.appendDigest(dst, &s.h)
}

func (s *state[W]) clone() accumulator {
	c := *s
	return &c
}

func newAccumulator(v Variant) (accumulator, error) {
	switch v {
	case SHA224:
		return newState(sha224Params), nil
	case SHA256:
		return newState(sha256Params), nil
	case SHA384:
		return newState(sha384Params), nil
	case SHA512:
		return newState(sha512Params), nil
	}
	return nil, errors.Wrapf(ErrUnknownVariant, "variant %d", int(v))
}

var _ hash.Hash = (*Engine)(nil)

var errZeroEngine = errors.Wrap(ErrUnknownVariant, "engine not created with New")

// Engine computes one SHA-2 digest over input supplied incrementally.
// Engines come from New or New224..New512; a zero Engine has no variant and
// its methods report ErrUnknownVariant.
type Engine struct {
	variant Variant
	acc     accumulator
	sum     []byte
	err     error
}

// New returns a fresh engine for v.
func New(v Variant) (*Engine, error) {
	acc, err := newAccumulator(v)
	if err != nil {
		return nil, err
	}
	return &Engine{variant: v, acc: acc}, nil
}

// New224 returns a SHA-224 engine.
func New224() *Engine { return mustNew(SHA224) }

// New256 returns a SHA-256 engine.
func New256() *Engine { return mustNew(SHA256) }

// New384 returns a SHA-384 engine.
func New384() *Engine { return mustNew(SHA384) }

// New512 returns a SHA-512 engine.
func New512() *Engine { return mustNew(SHA512) }

func mustNew(v Variant) *Engine {
	e, err := New(v)
	if err != nil {
		panic(err)
	}
	return e
}

// Sum returns the digest of data under v.
func Sum(v Variant, data []byte) ([]byte, error) {
	e, err := New(v)
	if err != nil {
		return nil, err
	}
	if err := e.Input(data); err != nil {
		return nil, err
	}
	return e.Hash()
}

// Variant reports which SHA-2 function the engine computes.
func (e *Engine) Variant() Variant { return e.variant }

// Input feeds more message bytes. It fails with ErrFinalized after Hash and
// with ErrLengthOverflow if the total length would no longer fit the
// variant's length field; in the latter case p is not absorbed and the engine
// keeps failing until Reset.
func (e *Engine) Input(p []byte) error {
	if e.acc == nil {
		return errZeroEngine
	}
	if e.err != nil {
		return e.err
	}
	if e.sum != nil {
		return ErrFinalized
	}
	if err := e.acc.input(p); err != nil {
		e.err = err
		return err
	}
	return nil
}

// Hash finalises the engine and returns the digest, Size() bytes long.
// A second call returns ErrFinalized.
func (e *Engine) Hash() ([]byte, error) {
	if e.acc == nil {
		return nil, errZeroEngine
	}
	if e.err != nil {
		return nil, e.err
	}
	if e.sum != nil {
		return nil, ErrFinalized
	}
	e.sum = e.acc.finish(make([]byte, 0, e.Size()))
	out := make([]byte, len(e.sum))
	copy(out, e.sum)
	return out, nil
}

// Reset discards all input and any finalised digest.
func (e *Engine) Reset() {
	if e.acc == nil {
		return
	}
	e.acc.reset()
	e.sum = nil
	e.err = nil
}

// Write feeds p through Input. Unlike the io.Writer use hash.Hash promises,
// it can fail: with ErrFinalized after Hash and with ErrLengthOverflow, in
// which case nothing is written.
func (e *Engine) Write(p []byte) (int, error) {
	if err := e.Input(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum appends the digest of the input so far to b without finalising the
// engine. On a finalised engine it appends the digest Hash returned.
// Sum panics if the engine failed with ErrLengthOverflow or is a zero Engine,
// since hash.Hash gives it no way to report an error.
func (e *Engine) Sum(b []byte) []byte {
	if e.acc == nil {
		panic(errZeroEngine)
	}
	if e.err != nil {
		panic(e.err)
	}
	if e.sum != nil {
		return append(b, e.sum...)
	}
	return e.acc.clone().finish(b)
}

// Size returns the digest length in bytes.
func (e *Engine) Size() int { return e.variant.Size() }

// BlockSize returns the compression block size in bytes.
func (e *Engine) BlockSize() int { return e.variant.BlockSize() }
