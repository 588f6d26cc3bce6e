// Package layout defines the qubit layout of the Iceberg [[k+2, k, 2]] error-detecting code.
//
// For k logical qubits (padded to an even k') the code uses n = k'+2 physical code qubits
// plus two flag ancillas:
//
//	index:  0     1 .. k'     n-1     n          n+1
//	role:   top   logical     bottom  Z ancilla  X ancilla
//
// The stabilizers are Z^⊗n and X^⊗n, in that order. Logical operators are X̄_i = X_top X_i
// and Z̄_i = Z_i Z_bottom, so a logical readout bit is the parity of its data qubit and the
// bottom qubit.
//
// Build is a pure function of k: the decoder rebuilds exactly the layout the compiler used
// from k alone, and Fingerprint summarises it for cross-checks.
package layout
