package common

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

type Address = common.Address

var ZeroAddr = Address{}

// AddressLength is the expected length of the address
const AddressLength = common.AddressLength

func BytesToAddress(b []byte) Address {
	return common.BytesToAddress(b)
}

func HexToAddress(s string) Address {
	return common.HexToAddress(s)
}

// ParseAddress parses the 40 hex digits with or without the 0x prefix
// unlike HexToAddress it fails on a malformed string
func ParseAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return ZeroAddr, errors.Wrap(ErrInvalidAddressFormat, s)
	}
	return common.HexToAddress(s), nil
}
