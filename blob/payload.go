package blob

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/endian"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/pool"
)

const (
	maxRegisters    = 1 << 16
	maxRegisterName = 255
	maxGateQubits   = 1 << 10
)

// writePayload packs registers and gates.
//
//	registers: uvarint count, then per register uvarint name length, name, uvarint size
//	gates:     per gate op byte, uvarint qubit count, uvarint qubits, one float64 per
//	           parameter, uvarint clbit for measurements
func writePayload(buf *pool.ByteBuffer, c *circuit.Circuit, engine endian.EndianEngine) {
	regs := c.Registers()
	buf.WriteUvarint(uint64(len(regs)))
	for _, r := range regs {
		buf.WriteUvarint(uint64(len(r.Name)))
		buf.WriteString(r.Name)
		buf.WriteUvarint(uint64(r.Size))
	}

	var word [8]byte
	for _, g := range c.Gates() {
		_ = buf.WriteByte(byte(g.Op))
		buf.WriteUvarint(uint64(len(g.Qubits)))
		for _, q := range g.Qubits {
			buf.WriteUvarint(uint64(q))
		}
		for _, p := range g.Params {
			engine.PutUint64(word[:], math.Float64bits(p))
			_, _ = buf.Write(word[:])
		}
		if g.Op == circuit.OpMeasure {
			buf.WriteUvarint(uint64(g.Clbit))
		}
	}
}

// payloadReader walks a packed payload.
type payloadReader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

func (r *payloadReader) done() bool { return r.pos == len(r.data) }

func (r *payloadReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errs.ErrTruncatedPayload
	}
	b := r.data[r.pos]
	r.pos++

	return b, nil
}

func (r *payloadReader) readUvarint(limit uint64) (int, error) {
	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errs.ErrTruncatedPayload
	}
	if v > limit {
		return 0, errs.MalformedInput("payload value %d at offset %d exceeds %d", v, r.pos, limit)
	}
	r.pos += n

	return int(v), nil
}

func (r *payloadReader) readFloat() (float64, error) {
	if len(r.data)-r.pos < 8 {
		return 0, errs.ErrTruncatedPayload
	}
	v := math.Float64frombits(r.engine.Uint64(r.data[r.pos:]))
	r.pos += 8

	return v, nil
}

func (r *payloadReader) readString(n int) (string, error) {
	if len(r.data)-r.pos < n {
		return "", errs.ErrTruncatedPayload
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n

	return s, nil
}

// readPayload rebuilds a circuit over numQubits qubits from a packed payload.
func readPayload(data []byte, numQubits int, engine endian.EndianEngine) (*circuit.Circuit, error) {
	c, err := circuit.New(numQubits)
	if err != nil {
		return nil, err
	}
	r := &payloadReader{data: data, engine: engine}

	numRegs, err := r.readUvarint(maxRegisters)
	if err != nil {
		return nil, err
	}
	for range numRegs {
		nameLen, err := r.readUvarint(maxRegisterName)
		if err != nil {
			return nil, err
		}
		name, err := r.readString(nameLen)
		if err != nil {
			return nil, err
		}
		size, err := r.readUvarint(math.MaxInt32)
		if err != nil {
			return nil, err
		}
		if _, err := c.AddRegister(name, size); err != nil {
			return nil, errs.MalformedInput("register %q: %v", name, err)
		}
	}

	for !r.done() {
		g, err := r.gate(c.NumQubits(), c.NumClbits())
		if err != nil {
			return nil, err
		}
		if err := c.Append(g); err != nil {
			return nil, errs.MalformedInput("gate %d: %v", c.Len(), err)
		}
	}

	return c, nil
}

func (r *payloadReader) gate(numQubits, numClbits int) (circuit.Gate, error) {
	b, err := r.readByte()
	if err != nil {
		return circuit.Gate{}, err
	}
	op := circuit.Op(b)
	if !op.Valid() {
		return circuit.Gate{}, errs.MalformedInput("unknown op %d at offset %d", b, r.pos-1)
	}

	nq, err := r.readUvarint(min(maxGateQubits, uint64(numQubits)))
	if err != nil {
		return circuit.Gate{}, err
	}
	g := circuit.Gate{Op: op, Qubits: make([]int, nq), Clbit: circuit.NoClbit}
	for i := range g.Qubits {
		if g.Qubits[i], err = r.readUvarint(uint64(numQubits)); err != nil {
			return circuit.Gate{}, err
		}
	}
	if np := op.NumParams(); np > 0 {
		g.Params = make([]float64, np)
		for i := range g.Params {
			if g.Params[i], err = r.readFloat(); err != nil {
				return circuit.Gate{}, err
			}
		}
	}
	if op == circuit.OpMeasure {
		if g.Clbit, err = r.readUvarint(uint64(numClbits)); err != nil {
			return circuit.Gate{}, err
		}
	}

	return g, nil
}
