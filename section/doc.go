// Package section defines the fixed-size header of serialized circuit blobs.
//
// A blob is laid out as:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (32 bytes)                            │
//	│  0-3   Flag: options, version, compression   │
//	│  4-7   K                                     │
//	│  8-11  SyndromeRate                          │
//	│  12-15 Layers                                │
//	│  16-17 NumQubits                             │
//	│  18-19 Rounds                                │
//	│  20-23 GateCount                             │
//	│  24-31 Fingerprint                           │
//	├──────────────────────────────────────────────┤
//	│ Payload (variable, compressed)               │
//	├──────────────────────────────────────────────┤
//	│ Checksum (8 bytes, xxhash64 of all above)    │
//	└──────────────────────────────────────────────┘
//
// The Options field is always little-endian; every other fixed-width field uses the byte
// order selected by its endianness bit.
package section
