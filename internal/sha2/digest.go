package sha2

// appendDigest serialises h big-endian, word by word, and appends the first
// p.size bytes to dst. Words past the digest length are dropped, never reordered.
func (p *params[W]) appendDigest(dst []byte, h *[8]W) []byte {
	var out [64]byte
	step := int(p.bits / 8)
	for i, x := range h {
		for j := 0; j < step; j++ {
			out[i*step+j] = byte(x >> (uint(step-1-j) * 8))
		}
	}
	return append(dst, out[:p.size]...)
}
