package backend

import "errors"

// errors
var (
	ErrNotExistDriver = errors.New("not exist driver")
	ErrNotExistKey    = errors.New("not exist key")
	ErrStopIterate    = errors.New("stop iterate")
	ErrClosed         = errors.New("closed backend")
)
