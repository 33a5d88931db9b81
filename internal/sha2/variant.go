package sha2

import (
	"strings"

	"github.com/pkg/errors"
)

// Variant selects one member of the SHA-2 family.
type Variant int

const (
	// SHA224 is SHA-224: the 32-bit engine with its own IV, truncated to 7 words.
	SHA224 Variant = iota + 1
	// SHA256 is SHA-256.
	SHA256
	// SHA384 is SHA-384: the 64-bit engine with its own IV, truncated to 6 words.
	SHA384
	// SHA512 is SHA-512.
	SHA512
)

// word is the set of state word types an engine can run on.
type word interface {
	~uint32 | ~uint64
}

// params is the static per-variant table. It is never mutated after package init.
type params[W word] struct {
	variant   Variant
	bits      uint // word width
	blockSize int
	lenSize   int // bytes of the big-endian length suffix
	size      int // digest bytes
	iv        [8]W
	k         []W // one constant per round

	// Rotate amounts for Σ0, Σ1 and rotate/rotate/shift amounts for σ0, σ1.
	sum0, sum1 [3]uint
	sig0, sig1 [3]uint
}

func (p *params[W]) rounds() int { return len(p.k) }

var (
	sha224Params = &params[uint32]{
		variant:   SHA224,
		bits:      32,
		blockSize: 64,
		lenSize:   8,
		size:      28,
		iv: [8]uint32{
			0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
			0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
		},
		k:    k256,
		sum0: [3]uint{2, 13, 22},
		sum1: [3]uint{6, 11, 25},
		sig0: [3]uint{7, 18, 3},
		sig1: [3]uint{17, 19, 10},
	}
	sha256Params = &params[uint32]{
		variant:   SHA256,
		bits:      32,
		blockSize: 64,
		lenSize:   8,
		size:      32,
		iv: [8]uint32{
			0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
			0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
		},
		k:    k256,
		sum0: [3]uint{2, 13, 22},
		sum1: [3]uint{6, 11, 25},
		sig0: [3]uint{7, 18, 3},
		sig1: [3]uint{17, 19, 10},
	}
	sha384Params = &params[uint64]{
		variant:   SHA384,
		bits:      64,
		blockSize: 128,
		lenSize:   16,
		size:      48,
		iv: [8]uint64{
			0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
			0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
		},
		k:    k512,
		sum0: [3]uint{28, 34, 39},
		sum1: [3]uint{14, 18, 41},
		sig0: [3]uint{1, 8, 7},
		sig1: [3]uint{19, 61, 6},
	}
	sha512Params = &params[uint64]{
		variant:   SHA512,
		bits:      64,
		blockSize: 128,
		lenSize:   16,
		size:      64,
		iv: [8]uint64{
			0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
			0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
		},
		k:    k512,
		sum0: [3]uint{28, 34, 39},
		sum1: [3]uint{14, 18, 41},
		sig0: [3]uint{1, 8, 7},
		sig1: [3]uint{19, 61, 6},
	}
)

// Variants returns every supported variant in canonical order.
func Variants() []Variant {
	return []Variant{SHA224, SHA256, SHA384, SHA512}
}

// Valid reports whether v names a supported variant.
func (v Variant) Valid() bool {
	return v >= SHA224 && v <= SHA512
}

// String returns the lowercase algorithm name, e.g. "sha256".
func (v Variant) String() string {
	switch v {
	case SHA224:
		return "sha224"
	case SHA256:
		return "sha256"
	case SHA384:
		return "sha384"
	case SHA512:
		return "sha512"
	default:
		return "unknown"
	}
}

// Size returns the digest length in bytes, or 0 for an invalid variant.
func (v Variant) Size() int {
	switch v {
	case SHA224:
		return sha224Params.size
	case SHA256:
		return sha256Params.size
	case SHA384:
		return sha384Params.size
	case SHA512:
		return sha512Params.size
	}
	return 0
}

// BlockSize returns the compression block size in bytes.
func (v Variant) BlockSize() int {
	switch v {
	case SHA224, SHA256:
		return sha256Params.blockSize
	case SHA384, SHA512:
		return sha512Params.blockSize
	}
	return 0
}

// WordBits returns the width of one state word.
func (v Variant) WordBits() int {
	switch v {
	case SHA224, SHA256:
		return int(sha256Params.bits)
	case SHA384, SHA512:
		return int(sha512Params.bits)
	}
	return 0
}

// Rounds returns the number of compression rounds per block.
func (v Variant) Rounds() int {
	switch v {
	case SHA224, SHA256:
		return sha256Params.rounds()
	case SHA384, SHA512:
		return sha512Params.rounds()
	}
	return 0
}

// ParseVariant resolves a user-supplied algorithm name. It accepts forms such
// as "sha256", "SHA-256", "sha_256" and "256", ignoring case.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "", "_", "").Replace(name)
	name = strings.TrimPrefix(name, "sha")
	switch name {
	case "224":
		return SHA224, nil
	case "256":
		return SHA256, nil
	case "384":
		return SHA384, nil
	case "512":
		return SHA512, nil
	}
	return 0, errors.Wrapf(ErrUnknownVariant, "%q", s)
}
