package chain

import "errors"

// errors
var (
	ErrChainClosed         = errors.New("chain closed")
	ErrStoreClosed         = errors.New("store closed")
	ErrNotInitialized      = errors.New("not initialized")
	ErrAlreadyGenesised    = errors.New("already genesised")
	ErrInvalidGenesisHash  = errors.New("invalid genesis hash")
	ErrExistTransaction    = errors.New("exist transaction")
	ErrNotExistReceipt     = errors.New("not exist receipt")
	ErrExistServiceName    = errors.New("exist service name")
	ErrNotExistService     = errors.New("not exist service")
	ErrUnknownDeployMethod = errors.New("unknown deploy method")
)
