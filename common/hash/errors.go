package hash

import (
	"errors"
)

// hash errors
var (
	ErrInvalidHashFormat = errors.New("invalid hash format")
)
