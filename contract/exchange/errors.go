package exchange

import "github.com/pkg/errors"

// revert reasons of the exchange
var (
	ErrAlreadyInitialized          = errors.New("already initialized")
	ErrNotInitialized              = errors.New("not initialized")
	ErrSaltAlreadyUsed             = errors.New("salt already used")
	ErrInvalidMintProof            = errors.New("invalid mint proof")
	ErrInvalidExchangeAmount       = errors.New("invalid exchange amount")
	ErrInsufficientExchangeBalance = errors.New("insufficient exchange balance")
	ErrInvalidImplementation       = errors.New("invalid implementation")
	ErrInvalidResult               = errors.New("invalid result")
)
