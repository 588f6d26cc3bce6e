// Package endian selects the byte order of serialized circuit blobs.
//
// EndianEngine joins binary.ByteOrder and binary.AppendByteOrder so fixed-width fields can be
// both patched in place and appended:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, fingerprint)
//
// Blobs default to little-endian; the order is recorded in the blob header so readers on
// either kind of host decode them.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
