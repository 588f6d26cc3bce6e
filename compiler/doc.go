// Package compiler instruments a logical circuit with the Iceberg error-detecting code.
//
// Compile rewrites a k-qubit logical circuit into a physical circuit on k'+4 qubits
// (see package layout):
//
//  1. Prepare the code block in logical |0...0⟩: H on the top qubit, then a CX fan-out
//     from top to every other code qubit.
//  2. Measure both stabilizers once (round 0) to verify the preparation.
//  3. Emit the logical circuit layer by layer, each gate translated to its transversal
//     physical form, with a syndrome round after every layer boundary in the schedule.
//  4. After the terminal round, measure every code qubit into the "data" register.
//
// Supported logical gates and their translations (t = top, b = bottom):
//
//	X(i)        -> X(t) X(i)
//	Y(i)        -> X(t) Y(i) Z(b)
//	Z(i)        -> Z(i) Z(b)
//	RX(θ, i)    -> RXX(θ, t, i)
//	RZ(θ, i)    -> RZZ(θ, i, b)
//	RXX(θ,i,j)  -> RXX(θ, i, j)    (likewise RYY, RZZ)
//	I, barrier  -> nothing / barrier on the mapped qubits
//
// Anything else fails with errs.ErrUnsupportedGate. Every translation commutes with both
// stabilizers, so noiseless runs always pass every syndrome check.
//
// # Classical bits
//
// The "data" register (n bits, bit j = physical code qubit j) is created first, followed by
// one 2-bit register per round, "syn0" ... "syn{R-1}" (bit 0 = Z check, bit 1 = X check).
// Counts keys therefore read "synR-1 ... syn0 data".
package compiler
