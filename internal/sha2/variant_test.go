package sha2

import (
	"errors"
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := map[string]Variant{
		"sha224":   SHA224,
		"SHA-256":  SHA256,
		"sha_384":  SHA384,
		"512":      SHA512,
		" Sha256 ": SHA256,
	}
	for in, want := range tests {
		got, err := ParseVariant(in)
		if err != nil {
			t.Fatalf("ParseVariant(%q) error = %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseVariant(%q) got %s want %s", in, got, want)
		}
	}

	for _, in := range []string{"", "md5", "sha1", "sha3-256", "sha512/256"} {
		if _, err := ParseVariant(in); !errors.Is(err, ErrUnknownVariant) {
			t.Fatalf("ParseVariant(%q) got %v want ErrUnknownVariant", in, err)
		}
	}
}

func TestVariantTable(t *testing.T) {
	tests := []struct {
		v                              Variant
		name                           string
		size, block, wordBits, rounds int
	}{
		{SHA224, "sha224", 28, 64, 32, 64},
		{SHA256, "sha256", 32, 64, 32, 64},
		{SHA384, "sha384", 48, 128, 64, 80},
		{SHA512, "sha512", 64, 128, 64, 80},
	}
	for _, tc := range tests {
		if !tc.v.Valid() {
			t.Fatalf("%s should be valid", tc.name)
		}
		if tc.v.String() != tc.name || tc.v.Size() != tc.size || tc.v.BlockSize() != tc.block ||
			tc.v.WordBits() != tc.wordBits || tc.v.Rounds() != tc.rounds {
			t.Fatalf("%s: got name=%s size=%d block=%d bits=%d rounds=%d", tc.name,
				tc.v, tc.v.Size(), tc.v.BlockSize(), tc.v.WordBits(), tc.v.Rounds())
		}
	}
	if Variant(0).Valid() || Variant(0).Size() != 0 || Variant(9).String() != "unknown" {
		t.Fatal("zero and out-of-range variants must be invalid")
	}
}

func TestScheduleFirstWordsAreBlock(t *testing.T) {
	block := make([]byte, 64)
	block[0], block[1], block[2], block[3] = 0x61, 0x62, 0x63, 0x80
	block[63] = 0x18
	var w [maxRounds]uint32
	sha256Params.schedule(w[:], block)
	if w[0] != 0x61626380 || w[15] != 0x18 {
		t.Fatalf("schedule words got w[0]=%#x w[15]=%#x", w[0], w[15])
	}
	// FIPS 180-4 example for "abc": W16 = 0x61626380 and W17 = 0x000f0000.
	if w[16] != 0x61626380 || w[17] != 0x000f0000 {
		t.Fatalf("expanded words got w[16]=%#x w[17]=%#x", w[16], w[17])
	}
}
