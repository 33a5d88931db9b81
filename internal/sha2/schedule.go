package sha2

// rotr rotates x right by n within a word of the given width.
func rotr[W word](x W, n, bits uint) W {
	return x>>n | x<<(bits-n)
}

// loadWord reads one big-endian word of width bits from the front of b.
func loadWord[W word](b []byte, bits uint) W {
	var x W
	for i := uint(0); i < bits/8; i++ {
		x = x<<8 | W(b[i])
	}
	return x
}

// sigma0 is σ0: two rotations and a shift, xored.
func (p *params[W]) sigma0(x W) W {
	return rotr(x, p.sig0[0], p.bits) ^ rotr(x, p.sig0[1], p.bits) ^ x>>p.sig0[2]
}

// sigma1 is σ1.
func (p *params[W]) sigma1(x W) W {
	return rotr(x, p.sig1[0], p.bits) ^ rotr(x, p.sig1[1], p.bits) ^ x>>p.sig1[2]
}

// schedule expands one block into w[0:rounds]. The first 16 words are the
// block itself read big-endian; every later word mixes four earlier ones with
// wraparound addition.
func (p *params[W]) schedule(w []W, block []byte) {
	step := int(p.bits / 8)
	for t := 0; t < 16; t++ {
		w[t] = loadWord[W](block[t*step:], p.bits)
	}
	for t := 16; t < p.rounds(); t++ {
		w[t] = p.sigma1(w[t-2]) + w[t-7] + p.sigma0(w[t-15]) + w[t-16]
	}
}
