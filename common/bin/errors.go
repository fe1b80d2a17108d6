package bin

import "errors"

// bin errors
var (
	ErrInvalidLength  = errors.New("invalid length")
	ErrUnknownTypeTag = errors.New("unknown type tag")
	ErrUnsupported    = errors.New("unsupported type")
	ErrSliceTooBig    = errors.New("slice is too big")
)
