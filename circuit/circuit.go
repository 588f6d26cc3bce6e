package circuit

import (
	"regexp"
	"slices"

	"github.com/arloliu/iceberg/errs"
)

var registerNamePattern = regexp.MustCompile(`^[a-z][A-Za-z0-9_]*$`)

// Register is a named, contiguous range of classical bits.
type Register struct {
	Name   string
	Offset int
	Size   int
}

// Circuit is an ordered gate list over a fixed set of qubits and classical registers.
//
// Circuits handed to the compiler are never modified by it.
type Circuit struct {
	numQubits int
	numClbits int
	registers []Register
	gates     []Gate
}

// New creates an empty circuit with numQubits qubits.
func New(numQubits int) (*Circuit, error) {
	if numQubits < 0 {
		return nil, errs.InvalidParameter("qubit count must be >= 0, got %d", numQubits)
	}

	return &Circuit{numQubits: numQubits}, nil
}

// MustNew is like New but panics on a negative qubit count.
func MustNew(numQubits int) *Circuit {
	c, err := New(numQubits)
	if err != nil {
		panic(err)
	}

	return c
}

// NumQubits returns the number of qubits.
func (c *Circuit) NumQubits() int { return c.numQubits }

// NumClbits returns the total number of classical bits over all registers.
func (c *Circuit) NumClbits() int { return c.numClbits }

// Len returns the number of gates, barriers included.
func (c *Circuit) Len() int { return len(c.gates) }

// Gate returns a copy of the i-th gate.
func (c *Circuit) Gate(i int) Gate { return c.gates[i].Clone() }

// Gates returns a deep copy of the gate list.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		out[i] = g.Clone()
	}

	return out
}

// Registers returns the classical registers in creation order.
func (c *Circuit) Registers() []Register {
	return slices.Clone(c.registers)
}

// Register looks up a classical register by name.
func (c *Circuit) Register(name string) (Register, bool) {
	for _, r := range c.registers {
		if r.Name == name {
			return r, true
		}
	}

	return Register{}, false
}

// AddRegister appends a classical register of the given size.
func (c *Circuit) AddRegister(name string, size int) (Register, error) {
	if !registerNamePattern.MatchString(name) {
		return Register{}, errs.InvalidParameter("invalid register name %q", name)
	}
	if size < 1 {
		return Register{}, errs.InvalidParameter("register %q size must be >= 1, got %d", name, size)
	}
	if _, exists := c.Register(name); exists {
		return Register{}, errs.InvalidParameter("register %q already exists", name)
	}

	r := Register{Name: name, Offset: c.numClbits, Size: size}
	c.registers = append(c.registers, r)
	c.numClbits += size

	return r, nil
}

// Append validates and appends gates. Either all gates are appended or none.
//
// A barrier without operands is expanded to all qubits.
func (c *Circuit) Append(gates ...Gate) error {
	checked := make([]Gate, 0, len(gates))
	for _, g := range gates {
		g = g.Clone()
		if g.Op == OpBarrier && len(g.Qubits) == 0 {
			g.Qubits = c.allQubits()
		}
		if err := c.validate(g); err != nil {
			return err
		}
		if g.Op != OpMeasure {
			g.Clbit = NoClbit
		}
		checked = append(checked, g)
	}
	c.gates = append(c.gates, checked...)

	return nil
}

func (c *Circuit) validate(g Gate) error {
	if !g.Op.Valid() {
		return errs.UnsupportedGate("unknown op %d", g.Op)
	}
	if n := g.Op.NumQubits(); n >= 0 && len(g.Qubits) != n {
		return errs.InvalidParameter("%s takes %d qubits, got %d", g.Op, n, len(g.Qubits))
	}
	if len(g.Params) != g.Op.NumParams() {
		return errs.InvalidParameter("%s takes %d parameters, got %d", g.Op, g.Op.NumParams(), len(g.Params))
	}
	for i, q := range g.Qubits {
		if q < 0 || q >= c.numQubits {
			return errs.InvalidParameter("%s: qubit %d out of range [0,%d)", g.Op, q, c.numQubits)
		}
		if slices.Contains(g.Qubits[:i], q) {
			return errs.InvalidParameter("%s: duplicate qubit %d", g.Op, q)
		}
	}
	if g.Op == OpMeasure && (g.Clbit < 0 || g.Clbit >= c.numClbits) {
		return errs.InvalidParameter("measure: clbit %d out of range [0,%d)", g.Clbit, c.numClbits)
	}

	return nil
}

func (c *Circuit) allQubits() []int {
	qs := make([]int, c.numQubits)
	for i := range qs {
		qs[i] = i
	}

	return qs
}

// Clone returns a deep copy of c.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{
		numQubits: c.numQubits,
		numClbits: c.numClbits,
		registers: slices.Clone(c.registers),
		gates:     c.Gates(),
	}
}

// Inverse returns a circuit applying the inverse of every gate in reverse order.
// It fails if c contains measurements or resets.
func (c *Circuit) Inverse() (*Circuit, error) {
	inv := &Circuit{numQubits: c.numQubits, gates: make([]Gate, 0, len(c.gates))}
	for i := len(c.gates) - 1; i >= 0; i-- {
		g, err := c.gates[i].Inverse()
		if err != nil {
			return nil, errs.InvalidParameter("cannot invert gate %d: %v", i, err)
		}
		inv.gates = append(inv.gates, g)
	}

	return inv, nil
}

// Compose appends the gates of other to c. other must not use more qubits than c
// and must not write classical bits.
func (c *Circuit) Compose(other *Circuit) error {
	if other.numQubits > c.numQubits {
		return errs.InvalidParameter("cannot compose %d-qubit circuit onto %d qubits", other.numQubits, c.numQubits)
	}
	for i, g := range other.gates {
		if g.Op == OpMeasure {
			return errs.InvalidParameter("cannot compose circuit with measurement at gate %d", i)
		}
	}

	return c.Append(other.gates...)
}

// CountOps returns the number of gates per op.
func (c *Circuit) CountOps() map[Op]int {
	counts := make(map[Op]int)
	for _, g := range c.gates {
		counts[g.Op]++
	}

	return counts
}

// Depth returns the number of ASAP layers.
func (c *Circuit) Depth() int {
	return len(c.Layers())
}
