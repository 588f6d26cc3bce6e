package blob

import (
	"math"

	"github.com/arloliu/iceberg/compiler"
	"github.com/arloliu/iceberg/compress"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/format"
	"github.com/arloliu/iceberg/internal/hash"
	"github.com/arloliu/iceberg/internal/options"
	"github.com/arloliu/iceberg/internal/pool"
	"github.com/arloliu/iceberg/layout"
	"github.com/arloliu/iceberg/schedule"
	"github.com/arloliu/iceberg/section"
)

// Encode serializes an instrumented circuit.
//
// Parameters:
//   - inst: the compiled circuit
//   - opts: WithCompression (default Zstd), WithBigEndian, WithLittleEndian
//
// Returns:
//   - []byte: the blob, owned by the caller
//   - error: errs.ErrInvalidParameter for invalid options or parameters that do not fit the
//     header fields
func Encode(inst *compiler.Instrumented, opts ...Option) ([]byte, error) {
	cfg := &EncoderConfig{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	md := inst.Metadata()
	if err := checkHeaderRange(md, inst.NumQubits(), inst.NumGates()); err != nil {
		return nil, err
	}

	header := section.Header{
		Flag:         section.NewFlag(cfg.compression),
		K:            uint32(md.K),
		SyndromeRate: uint32(md.SyndromeRate),
		Layers:       uint32(md.Layers),
		NumQubits:    uint16(inst.NumQubits()),
		Rounds:       uint16(md.Rounds),
		GateCount:    uint32(inst.NumGates()),
		Fingerprint:  md.Fingerprint,
	}
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	engine := header.Flag.GetEndianEngine()

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)
	writePayload(buf, inst.Circuit(), engine)

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, errs.InvalidParameter("compress payload: %v", err)
	}

	out := make([]byte, 0, section.MinBlobSize+len(payload))
	out = append(out, header.Bytes()...)
	out = append(out, payload...)
	out = engine.AppendUint64(out, hash.Sum(out))

	return out, nil
}

func checkHeaderRange(md compiler.Metadata, qubits, gates int) error {
	switch {
	case uint64(md.K) > math.MaxUint32, uint64(md.SyndromeRate) > math.MaxUint32, uint64(md.Layers) > math.MaxUint32:
		return errs.InvalidParameter("compile parameters k=%d rate=%d layers=%d exceed the blob header",
			md.K, md.SyndromeRate, md.Layers)
	case qubits > math.MaxUint16, md.Rounds > math.MaxUint16:
		return errs.InvalidParameter("%d qubits and %d rounds exceed the blob header", qubits, md.Rounds)
	case uint64(gates) > math.MaxUint32:
		return errs.InvalidParameter("%d gates exceed the blob header", gates)
	}

	return nil
}

// Peek returns the compile metadata and codec of a blob after checking header and checksum,
// without decoding the payload.
func Peek(data []byte) (compiler.Metadata, format.CompressionType, error) {
	header, err := verify(data)
	if err != nil {
		return compiler.Metadata{}, 0, err
	}

	return metadataOf(header), header.Flag.Compression(), nil
}

// Decode parses a blob produced by Encode.
//
// Returns:
//   - *compiler.Instrumented: the circuit with layout and schedule rebuilt from the header
//   - error: errs.ErrMalformedInput (errs.ErrInvalidHeaderSize, errs.ErrInvalidMagic,
//     errs.ErrChecksumMismatch, errs.ErrTruncatedPayload or a detailed error) if the blob
//     is damaged or inconsistent
func Decode(data []byte) (*compiler.Instrumented, error) {
	header, err := verify(data)
	if err != nil {
		return nil, err
	}

	if err := checkShape(header); err != nil {
		return nil, err
	}

	md := metadataOf(header)
	l, s, err := md.Rebuild()
	if err != nil {
		return nil, errs.MalformedInput("blob metadata: %v", err)
	}
	if int(header.NumQubits) != l.NumQubits() {
		return nil, errs.MalformedInput("blob records %d qubits, k=%d needs %d", header.NumQubits, md.K, l.NumQubits())
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[section.HeaderSize : len(data)-section.ChecksumSize])
	if err != nil {
		return nil, errs.MalformedInput("decompress %s payload: %v", header.Flag.Compression(), err)
	}

	circ, err := readPayload(payload, l.NumQubits(), header.Flag.GetEndianEngine())
	if err != nil {
		return nil, err
	}
	if circ.Len() != int(header.GateCount) {
		return nil, errs.MalformedInput("blob records %d gates, payload has %d", header.GateCount, circ.Len())
	}

	return compiler.Assemble(circ, l, s)
}

func verify(data []byte) (section.Header, error) {
	if len(data) < section.MinBlobSize {
		return section.Header{}, errs.ErrInvalidHeaderSize
	}
	header, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, err
	}

	body := data[:len(data)-section.ChecksumSize]
	want := header.Flag.GetEndianEngine().Uint64(data[len(body):])
	if hash.Sum(body) != want {
		return section.Header{}, errs.ErrChecksumMismatch
	}

	return header, nil
}

// checkShape compares the qubit and round counts recorded in h with those its parameters
// imply. Layout and schedule are sized from the parameters, so this runs first.
func checkShape(h section.Header) error {
	k := uint64(h.K)
	if k == 0 {
		return errs.MalformedInput("blob records k=0")
	}
	if want := k + k%2 + 2 + layout.NumFlagQubits; uint64(h.NumQubits) != want {
		return errs.MalformedInput("blob records %d qubits, k=%d needs %d", h.NumQubits, h.K, want)
	}
	if h.SyndromeRate == 0 {
		return errs.MalformedInput("blob records syndrome rate 0")
	}
	if want := schedule.Rounds(int(h.Layers), int(h.SyndromeRate)); int(h.Rounds) != want {
		return errs.MalformedInput("blob records %d syndrome rounds, %d layers at rate %d give %d",
			h.Rounds, h.Layers, h.SyndromeRate, want)
	}

	return nil
}

func metadataOf(h section.Header) compiler.Metadata {
	return compiler.Metadata{
		K:            int(h.K),
		SyndromeRate: int(h.SyndromeRate),
		Layers:       int(h.Layers),
		Rounds:       int(h.Rounds),
		Fingerprint:  h.Fingerprint,
	}
}
