package kinegram

import "errors"

var (
	// ErrInvalidParameters is returned when a stripe width, parallax ratio,
	// overlap or frame cannot produce a well-defined output.
	ErrInvalidParameters = errors.New("kinegram: invalid parameters")
	// ErrSequence is returned when an operation runs out of order, e.g. an
	// overlay requested before any interlace.
	ErrSequence = errors.New("kinegram: interlace must precede overlay")
	// ErrDivisionByZero is returned by Ratio for a zero background distance.
	ErrDivisionByZero = errors.New("kinegram: division by zero")
)
