// Package decoder post-selects measurement counts of Iceberg-instrumented circuits.
//
// Every counts key holds the syndrome registers of all rounds followed by the data register,
// either space separated ("syn1 syn0 data") or concatenated. A shot is accepted when every
// syndrome bit is 0 and the data register has even parity, which is the final Z^⊗n check.
// Accepted data registers are mapped back to k-bit logical strings with logical qubit 0
// rightmost; logical bit i is data[i+1] XOR data[n-1].
//
// Basic usage:
//
//	res, err := decoder.Decode(counts, 4)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.AcceptanceRate(), res.Probabilities())
//
// Decoding is a pure function of the counts and the decoder settings. Large count maps are
// classified concurrently in chunks; the result does not depend on the chunking.
package decoder
