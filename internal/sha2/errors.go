package sha2

import "github.com/pkg/errors"

var (
	// ErrLengthOverflow is returned when the total message length in bits no
	// longer fits the variant's length field (64 bits for SHA-224/256, 128 bits
	// for SHA-384/512). The engine stays failed until Reset.
	ErrLengthOverflow = errors.New("sha2: message length overflows length field")

	// ErrFinalized is returned by Input or Hash once Hash has already produced
	// the digest. Reset makes the engine usable again.
	ErrFinalized = errors.New("sha2: engine already finalized")

	// ErrUnknownVariant is returned for a Variant outside SHA224..SHA512.
	ErrUnknownVariant = errors.New("sha2: unknown variant")
)
