package section

import (
	"github.com/arloliu/iceberg/endian"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/format"
)

// Flag is the packed first word of the header.
type Flag struct {
	// Options holds the endianness bit (bit 1, 0 = little-endian) and the magic number in
	// bits 4-15. Bits 0, 2 and 3 are reserved and must be 0.
	Options uint16
	// Version is the payload layout version.
	Version uint8
	// CompressionType is the payload codec, a format.CompressionType.
	CompressionType uint8
}

// NewFlag returns a little-endian flag for the current version.
func NewFlag(compression format.CompressionType) Flag {
	return Flag{
		Options:         MagicCircuitV1Opt,
		Version:         Version,
		CompressionType: uint8(compression),
	}
}

// IsLittleEndian returns whether the fixed-width fields are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Compression returns the payload codec.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// Validate checks magic number, reserved bits, version and compression type.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicCircuitV1Opt {
		return errs.ErrInvalidMagic
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.MalformedInput("reserved header bits set: %#04x", f.Options&ReservedBitsMask)
	}
	if f.Version != Version {
		return errs.MalformedInput("unsupported blob version %d", f.Version)
	}
	if !f.Compression().Valid() {
		return errs.MalformedInput("unknown compression type %d", f.CompressionType)
	}

	return nil
}

// GetEndianEngine returns the endian engine selected by the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
