package section

const (
	// Bit masks of Flag.Options.
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicCircuitV1Opt identifies instrumented circuit blobs.
	MagicCircuitV1Opt = 0xEC10

	// Version is the current payload layout version.
	Version = 1
)

const (
	HeaderSize   = 32 // fixed header size in bytes
	ChecksumSize = 8  // trailing xxhash64 checksum
	// MinBlobSize is the size of a blob with an empty payload.
	MinBlobSize = HeaderSize + ChecksumSize
)
