package sha2

import (
	"bytes"
	"testing"
)

func TestPaddingLayout(t *testing.T) {
	tests := []struct {
		name      string
		blockSize int
		lenSize   int
		n         int
		wantLen   int
	}{
		{"empty 64", 64, 8, 0, 64},
		{"fits one block", 64, 8, 55, 9},
		{"spills into second block", 64, 8, 56, 72},
		{"full buffer minus one", 64, 8, 63, 65},
		{"empty 128", 128, 16, 0, 128},
		{"fits one block 128", 128, 16, 111, 17},
		{"spills into second block 128", 128, 16, 112, 144},
	}
	for _, tc := range tests {
		tail := padding(tc.blockSize, tc.lenSize, tc.n, 0, uint64(tc.n)*8)
		if len(tail) != tc.wantLen {
			t.Fatalf("%s: tail length got %d want %d", tc.name, len(tail), tc.wantLen)
		}
		if (tc.n+len(tail))%tc.blockSize != 0 {
			t.Fatalf("%s: padded length %d is not block aligned", tc.name, tc.n+len(tail))
		}
		if tail[0] != 0x80 {
			t.Fatalf("%s: marker byte got %#x", tc.name, tail[0])
		}
		zeros := tail[1 : len(tail)-tc.lenSize]
		if !bytes.Equal(zeros, make([]byte, len(zeros))) {
			t.Fatalf("%s: fill is not zero: %x", tc.name, zeros)
		}
	}
}

func TestPaddingLengthFieldIsBigEndian(t *testing.T) {
	tail := padding(64, 8, 3, 0, 24)
	want := []byte{0, 0, 0, 0, 0, 0, 0, 24}
	if got := tail[len(tail)-8:]; !bytes.Equal(got, want) {
		t.Fatalf("64-bit length field got %x want %x", got, want)
	}

	tail = padding(128, 16, 3, 0x0102, 0x0304)
	want = []byte{0, 0, 0, 0, 0, 0, 0x01, 0x02, 0, 0, 0, 0, 0, 0, 0x03, 0x04}
	if got := tail[len(tail)-16:]; !bytes.Equal(got, want) {
		t.Fatalf("128-bit length field got %x want %x", got, want)
	}
}
