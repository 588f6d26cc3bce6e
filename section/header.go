package section

import (
	"github.com/arloliu/iceberg/errs"
)

// Header is the fixed-size header at the start of a circuit blob.
type Header struct {
	// Flag is the packed options word.
	Flag Flag // byte offset 0-3
	// K is the logical qubit count.
	K uint32 // byte offset 4-7
	// SyndromeRate is the number of logical layers per syndrome round.
	SyndromeRate uint32 // byte offset 8-11
	// Layers is the logical circuit depth.
	Layers uint32 // byte offset 12-15
	// NumQubits is the physical qubit count.
	NumQubits uint16 // byte offset 16-17
	// Rounds is the number of syndrome rounds.
	Rounds uint16 // byte offset 18-19
	// GateCount is the number of physical gates in the payload.
	GateCount uint32 // byte offset 20-23
	// Fingerprint is the compile fingerprint of (K, SyndromeRate, Layers).
	Fingerprint uint64 // byte offset 24-31
}

// Parse parses the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is not 32 bytes, errs.ErrInvalidMagic or
//     another errs.ErrMalformedInput for an invalid flag
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Version = data[2]
	h.Flag.CompressionType = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.K = engine.Uint32(data[4:8])
	h.SyndromeRate = engine.Uint32(data[8:12])
	h.Layers = engine.Uint32(data[12:16])
	h.NumQubits = engine.Uint16(data[16:18])
	h.Rounds = engine.Uint16(data[18:20])
	h.GateCount = engine.Uint32(data[20:24])
	h.Fingerprint = engine.Uint64(data[24:32])

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Version
	b[3] = h.Flag.CompressionType
	engine.PutUint32(b[4:8], h.K)
	engine.PutUint32(b[8:12], h.SyndromeRate)
	engine.PutUint32(b[12:16], h.Layers)
	engine.PutUint16(b[16:18], h.NumQubits)
	engine.PutUint16(b[18:20], h.Rounds)
	engine.PutUint32(b[20:24], h.GateCount)
	engine.PutUint64(b[24:32], h.Fingerprint)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
