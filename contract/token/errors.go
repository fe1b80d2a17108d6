package token

import "github.com/pkg/errors"

// revert reasons of the token contracts
var (
	ErrMintNotAllowed        = errors.New("mint not allowed")
	ErrTransferNotAllowed    = errors.New("transfer not allowed")
	ErrNotOwner              = errors.New("caller is not the owner")
	ErrCapExceeded           = errors.New("cap exceeded")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrTransferToZero        = errors.New("transfer to the zero address")
	ErrApproveToZero         = errors.New("approve to the zero address")
)
