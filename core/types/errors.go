package types

import "errors"

// contract runtime errors
var (
	ErrExistContractType   = errors.New("exist contract type")
	ErrInvalidClassID      = errors.New("invalid class id")
	ErrNotExistContract    = errors.New("not exist contract")
	ErrExistContract       = errors.New("exist contract")
	ErrNotUpgradeable      = errors.New("not upgradeable contract")
	ErrMethodNotGiven      = errors.New("method not given")
	ErrMethodNotExist      = errors.New("method not exist")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidChainID      = errors.New("invalid chain id")
	ErrInvalidSequence     = errors.New("invalid sequence")
	ErrInvalidReceipt      = errors.New("invalid receipt")
	ErrInvalidLog          = errors.New("invalid log")
	ErrPanicInContractCall = errors.New("panic in contract call")
)
