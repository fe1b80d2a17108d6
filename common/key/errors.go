package key

import "errors"

// key errors
var (
	ErrClearedKey         = errors.New("cleared key")
	ErrInvalidKeyFile     = errors.New("invalid key file")
	ErrInvalidPassphrase  = errors.New("invalid passphrase")
	ErrUnsupportedVersion = errors.New("unsupported key file version")
)
