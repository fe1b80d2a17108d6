package ledger

import "github.com/pkg/errors"

// errors
var (
	ErrInvalidResult = errors.New("invalid result")
)
