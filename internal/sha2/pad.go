package sha2

import "encoding/binary"

// padding returns the tail that completes a message whose last partial block
// holds n bytes and whose total length is hi:lo bits: one 0x80 marker, the
// fewest zero bytes that make n+tail a multiple of blockSize, then the bit
// length as a big-endian integer of lenSize bytes (8 or 16).
//
// The tail spans two blocks whenever n+1+lenSize exceeds blockSize; callers
// simply absorb it like any other input.
func padding(blockSize, lenSize, n int, hi, lo uint64) []byte {
	zeros := (blockSize - (n+1+lenSize)%blockSize) % blockSize
	tail := make([]byte, 1+zeros+lenSize)
	tail[0] = 0x80

	suffix := tail[1+zeros:]
	if lenSize == 16 {
		binary.BigEndian.PutUint64(suffix[:8], hi)
		suffix = suffix[8:]
	}
	binary.BigEndian.PutUint64(suffix, lo)
	return tail
}
