package sha2

// bigSigma0 is Σ0, applied to working variable a.
func (p *params[W]) bigSigma0(x W) W {
	return rotr(x, p.sum0[0], p.bits) ^ rotr(x, p.sum0[1], p.bits) ^ rotr(x, p.sum0[2], p.bits)
}

// Σ1, applied to working variable e.
func (p *params[W]) bigSigma1(x W) W {
	return rotr(x, p.sum1[0], p.bits) ^ rotr(x, p.sum1[1], p.bits) ^ rotr(x, p.sum1[2], p.bits)
}

// ch picks y where x is set and z elsewhere.
func ch[W word](x, y, z W) W {
	return (x & y) ^ (^x & z)
}

// maj takes the bitwise majority of x, y and z.
func maj[W word](x, y, z W) W {
	return (x & y) ^ (x & z) ^ (y & z)
}

// compress runs every round over the expanded schedule w and folds the
// working variables back into h. All additions wrap at the word width.
func (p *params[W]) compress(h *[8]W, w []W) {
	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for t := 0; t < p.rounds(); t++ {
		t1 := hh + p.bigSigma1(e) + ch(e, f, g) + p.k[t] + w[t]
		t2 := p.bigSigma0(a) + maj(a, b, c)
		hh = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}
