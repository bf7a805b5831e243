package parser

import "errors"

// Hard failures for one input. Everything else the parser encounters is
// recoverable and lands in the issue collector instead.
var (
	// ErrNoSchema means no usable schema declaration was found.
	ErrNoSchema = errors.New("no schema statement found in input")

	// ErrNoTuples means the data section produced zero tuples.
	ErrNoTuples = errors.New("no value tuples found in input")
)
