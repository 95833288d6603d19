package everybit

import "fmt"

// OutOfRangeError is the panic value raised when a bit
// index or a rotation range falls outside of a BitArray.
//
// These are contract violations, so they are never
// returned as errors. Code that runs untrusted inputs may
// recover the panic and inspect it with errors.As.
type OutOfRangeError struct {
	Op    string
	Index int
	Len   int
}

func (o *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range for %d bits", o.Op, o.Index, o.Len)
}

// InvalidCharacterError is returned when parsing a bit
// string that contains something other than '0' or '1'.
type InvalidCharacterError struct {
	// Index is the position of the character in the input
	// string (not the bit index).
	Index int
	Char  byte
}

func (i *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid bit character %q at offset %d", i.Char, i.Index)
}
