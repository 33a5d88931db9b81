// Package checklist reads and writes checksum lists, one entry per line.
//
// Three line styles are understood:
//
//	gnu  <hex>  <name>                  (sha256sum and friends)
//	bsd  SHA256 (<name>) = <hex>        (tagged, as written by --tag)
//	oci  sha256:<hex>  <name>           (OCI content digest)
//
// A line starting with a backslash carries an escaped file name.
package checklist

import (
	"encoding/hex"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"sha2sum/internal/sanitize"
	"sha2sum/internal/sha2"
)

// Style selects the line format.
type Style string

// Supported styles.
const (
	StyleGNU Style = "gnu"
	StyleBSD Style = "bsd"
	StyleOCI Style = "oci"
)

var (
	// ErrMalformed marks a line that is not a checksum entry.
	ErrMalformed = errors.New("improperly formatted checksum line")
	// ErrUnsupported is returned when a style cannot express a variant.
	ErrUnsupported = errors.New("algorithm not supported by style")
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleGNU, StyleBSD, StyleOCI:
		return st, nil
	}
	return "", errors.Errorf("unknown checksum style %q", s)
}

// Entry is one file and its expected digest.
type Entry struct {
	Variant sha2.Variant
	Digest  []byte
	Name    string
}

// Hex returns the digest as lowercase hex.
func (e Entry) Hex() string { return hex.EncodeToString(e.Digest) }

// Format renders e as a single line without the trailing newline.
func (e Entry) Format(style Style) (string, error) {
	name, escaped := sanitize.EscapeName(e.Name)
	prefix := ""
	if escaped {
		prefix = "\\"
	}
	switch style {
	case StyleGNU:
		return prefix + e.Hex() + "  " + name, nil
	case StyleBSD:
		return prefix + strings.ToUpper(e.Variant.String()) + " (" + name + ") = " + e.Hex(), nil
	case StyleOCI:
		alg, ok := ociAlgorithm(e.Variant)
		if !ok {
			return "", errors.Wrapf(ErrUnsupported, "%s in %s style", e.Variant, style)
		}
		return prefix + digest.NewDigestFromEncoded(alg, e.Hex()).String() + "  " + name, nil
	}
	return "", errors.Errorf("unknown checksum style %q", style)
}

// Parse decodes one line in any supported style.
func Parse(line string) (Entry, error) {
	escaped := strings.HasPrefix(line, "\\")
	if escaped {
		line = line[1:]
	}

	var (
		e   Entry
		err error
	)
	switch {
	case isBSD(line):
		e, err = parseBSD(line)
	case isOCI(line):
		e, err = parseOCI(line)
	default:
		e, err = parseGNU(line)
	}
	if err != nil {
		return Entry{}, err
	}

	if escaped {
		name, err := sanitize.UnescapeName(e.Name)
		if err != nil {
			return Entry{}, errors.Wrap(ErrMalformed, err.Error())
		}
		e.Name = name
	}
	if e.Name == "" {
		return Entry{}, errors.Wrap(ErrMalformed, "missing file name")
	}
	return e, nil
}

func isBSD(line string) bool {
	for _, v := range sha2.Variants() {
		if strings.HasPrefix(line, strings.ToUpper(v.String())+" (") {
			return true
		}
	}
	return false
}

func isOCI(line string) bool {
	field, _, _ := strings.Cut(line, " ")
	return strings.Contains(field, ":")
}

func parseGNU(line string) (Entry, error) {
	hexPart, rest, ok := strings.Cut(line, " ")
	if !ok || rest == "" {
		return Entry{}, ErrMalformed
	}
	// Second separator character is ' ' for text mode or '*' for binary mode.
	if rest[0] != ' ' && rest[0] != '*' {
		return Entry{}, ErrMalformed
	}
	sum, v, err := decodeHex(hexPart)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Variant: v, Digest: sum, Name: rest[1:]}, nil
}

func parseBSD(line string) (Entry, error) {
	tag, rest, _ := strings.Cut(line, " (")
	idx := strings.LastIndex(rest, ") = ")
	if idx < 0 {
		return Entry{}, ErrMalformed
	}
	tagged, err := sha2.ParseVariant(tag)
	if err != nil {
		return Entry{}, errors.Wrap(ErrMalformed, err.Error())
	}
	sum, v, err := decodeHex(rest[idx+len(") = "):])
	if err != nil {
		return Entry{}, err
	}
	if v != tagged {
		return Entry{}, errors.Wrapf(ErrMalformed, "%s tag with %d-byte digest", tag, len(sum))
	}
	return Entry{Variant: v, Digest: sum, Name: rest[:idx]}, nil
}

func parseOCI(line string) (Entry, error) {
	field, rest, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(rest, " ") {
		return Entry{}, ErrMalformed
	}
	d := digest.Digest(field)
	v, err := sha2.ParseVariant(d.Algorithm().String())
	if err != nil {
		return Entry{}, errors.Wrap(ErrMalformed, err.Error())
	}
	sum, hv, err := decodeHex(d.Encoded())
	if err != nil {
		return Entry{}, err
	}
	if hv != v {
		return Entry{}, errors.Wrapf(ErrMalformed, "%s digest with %d bytes", v, len(sum))
	}
	return Entry{Variant: v, Digest: sum, Name: rest[1:]}, nil
}

// decodeHex decodes a digest and infers the variant from its length.
func decodeHex(s string) ([]byte, sha2.Variant, error) {
	sum, err := hex.DecodeString(s)
	if err != nil {
		return nil, 0, errors.Wrap(ErrMalformed, "digest is not hex")
	}
	for _, v := range sha2.Variants() {
		if v.Size() == len(sum) {
			return sum, v, nil
		}
	}
	return nil, 0, errors.Wrapf(ErrMalformed, "no SHA-2 digest is %d bytes long", len(sum))
}

func ociAlgorithm(v sha2.Variant) (digest.Algorithm, bool) {
	switch v {
	case sha2.SHA256:
		return digest.SHA256, true
	case sha2.SHA384:
		return digest.SHA384, true
	case sha2.SHA512:
		return digest.SHA512, true
	}
	return "", false
}
