// Package circuit provides the circuit model shared by the Iceberg compiler, the decoder and
// the simulator.
//
// A Circuit is an ordered list of gates over a fixed number of qubits plus a set of named
// classical registers. It is used in two roles:
//
//   - Logical circuits: the caller's k-qubit program, read-only input to the compiler.
//   - Physical circuits: the compiler's instrumented output with code, ancilla and
//     classical readout bits, consumed by a simulator or a hardware backend.
//
// # Building circuits
//
//	c := circuit.MustNew(4)
//	err := c.Append(
//	    circuit.RX(math.Pi/2, 0),
//	    circuit.RZZ(0.3, 0, 1),
//	    circuit.X(3),
//	)
//
// Gates are validated on Append (op, operand count, qubit range, parameter count), and a
// failed Append leaves the circuit unchanged.
//
// # Layers
//
// Layers groups gates into ASAP layers: each gate is placed one layer after the deepest gate
// that precedes it on any of its qubits. Barriers align their qubits but occupy no layer.
// The compiler counts syndrome cadence in these layers.
//
// # Outcomes
//
// FormatOutcome renders the classical bits of one shot the way backends report counts:
// registers in reverse creation order separated by a space, each register most significant
// bit first. The first register created is therefore the rightmost field.
//
// # OpenQASM
//
// ToQASM and ParseQASM convert to and from the OpenQASM 2.0 subset covered by Op.
package circuit
