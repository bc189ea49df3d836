package ports

import "iter"

// BinaryScanner extracts the units referenced by a compiled class file.
type BinaryScanner interface {
	// Scan yields the binary names of the classes referenced by the constant pool,
	// in pool order. Primitive and array types are reduced to their element class
	// or skipped. A malformed input yields a single domain.ErrMalformedBinary and stops.
	Scan(data []byte) iter.Seq2[string, error]
}
