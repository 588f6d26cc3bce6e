package circuit

// Op identifies a gate or circuit instruction.
type Op uint8

const (
	OpI Op = iota + 1
	OpX
	OpY
	OpZ
	OpH
	OpS
	OpSdg
	OpT
	OpTdg
	OpRX
	OpRY
	OpRZ
	OpCX
	OpCZ
	OpRXX
	OpRYY
	OpRZZ
	OpMeasure
	OpReset
	OpBarrier
)

type opInfo struct {
	name   string
	qubits int // -1 means any number (barrier)
	params int
}

var opTable = map[Op]opInfo{
	OpI:       {"id", 1, 0},
	OpX:       {"x", 1, 0},
	OpY:       {"y", 1, 0},
	OpZ:       {"z", 1, 0},
	OpH:       {"h", 1, 0},
	OpS:       {"s", 1, 0},
	OpSdg:     {"sdg", 1, 0},
	OpT:       {"t", 1, 0},
	OpTdg:     {"tdg", 1, 0},
	OpRX:      {"rx", 1, 1},
	OpRY:      {"ry", 1, 1},
	OpRZ:      {"rz", 1, 1},
	OpCX:      {"cx", 2, 0},
	OpCZ:      {"cz", 2, 0},
	OpRXX:     {"rxx", 2, 1},
	OpRYY:     {"ryy", 2, 1},
	OpRZZ:     {"rzz", 2, 1},
	OpMeasure: {"measure", 1, 0},
	OpReset:   {"reset", 1, 0},
	OpBarrier: {"barrier", -1, 0},
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, len(opTable))
	for op, info := range opTable {
		m[info.name] = op
	}
	m["cnot"] = OpCX

	return m
}()

// String returns the OpenQASM name of the op.
func (o Op) String() string {
	if info, ok := opTable[o]; ok {
		return info.name
	}

	return "unknown"
}

// Valid reports whether o is a known op.
func (o Op) Valid() bool {
	_, ok := opTable[o]
	return ok
}

// NumQubits returns the operand count of o, or -1 for variadic ops.
func (o Op) NumQubits() int {
	return opTable[o].qubits
}

// NumParams returns the number of angle parameters o takes.
func (o Op) NumParams() int {
	return opTable[o].params
}

// IsUnitary reports whether o is a reversible gate.
func (o Op) IsUnitary() bool {
	return o.Valid() && o != OpMeasure && o != OpReset && o != OpBarrier
}

// ParseOp looks up an op by its OpenQASM name.
func ParseOp(name string) (Op, bool) {
	op, ok := opByName[name]
	return op, ok
}
