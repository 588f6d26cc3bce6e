// Package hash wraps xxHash64 for layout fingerprints and blob checksums.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of the given bytes.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Fingerprint accumulates a sequence of integers into a single xxHash64 value.
//
// Every value is written as 8 little-endian bytes, so the result does not depend on
// the host byte order. A domain string separates fingerprints of different kinds.
type Fingerprint struct {
	digest *xxhash.Digest
	buf    [8]byte
}

// NewFingerprint starts a fingerprint within the given domain.
func NewFingerprint(domain string) *Fingerprint {
	f := &Fingerprint{digest: xxhash.New()}
	_, _ = f.digest.WriteString(domain)

	return f
}

// Uint64 adds v to the fingerprint.
func (f *Fingerprint) Uint64(v uint64) *Fingerprint {
	binary.LittleEndian.PutUint64(f.buf[:], v)
	_, _ = f.digest.Write(f.buf[:])

	return f
}

// Int adds v to the fingerprint.
func (f *Fingerprint) Int(v int) *Fingerprint {
	return f.Uint64(uint64(v)) //nolint:gosec
}

// Ints adds the length of vs followed by every element.
func (f *Fingerprint) Ints(vs []int) *Fingerprint {
	f.Int(len(vs))
	for _, v := range vs {
		f.Int(v)
	}

	return f
}

// Sum64 returns the current fingerprint value.
func (f *Fingerprint) Sum64() uint64 {
	return f.digest.Sum64()
}
