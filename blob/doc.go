// Package blob serializes instrumented circuits into a compact, checksummed binary form.
//
// A blob stores the physical circuit together with the compile parameters (k, syndrome
// rate, logical depth) and the compile fingerprint, so a reader can decode counts of the
// stored circuit without recompiling it:
//
//	data, err := blob.Encode(inst, blob.WithCompression(format.CompressionZstd))
//	...
//	inst, err := blob.Decode(data)
//	res, err := decoder.Decode(counts, inst.Layout().K(), decoder.WithMetadata(inst.Metadata()))
//
// The layout is described in package section. Gates are varint-packed before compression.
// Decode verifies the checksum, rebuilds layout and schedule from the header and checks them
// against the fingerprint; every failure wraps errs.ErrMalformedInput.
package blob
