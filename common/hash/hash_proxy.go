package hash

import (
	"encoding/hex"
	"strings"

	ecommon "github.com/ethereum/go-ethereum/common"
	ecrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

type Hash256 = ecommon.Hash

const (
	// HashLength is the expected length of the hash
	HashLength = ecommon.HashLength
)

// HexToHash sets byte representation of s to hash.
func HexToHash(s string) Hash256 {
	return Hash256(ecommon.HexToHash(s))
}

// BytesToHash sets b to hash, cropped from the left
func BytesToHash(b []byte) Hash256 {
	return ecommon.BytesToHash(b)
}

// Hash calculates and returns the keccak256 hash of the input data.
func Hash(data ...[]byte) Hash256 {
	return Hash256(ecrypto.Keccak256Hash(data...))
}

// ParseHash parses the 32 bytes hex string with or without the 0x prefix
func ParseHash(str string) (Hash256, error) {
	str = strings.TrimPrefix(str, "0x")
	if len(str) != HashLength*2 {
		return Hash256{}, errors.WithStack(ErrInvalidHashFormat)
	}
	bs, err := hex.DecodeString(str)
	if err != nil {
		return Hash256{}, errors.WithStack(err)
	}
	return BytesToHash(bs), nil
}

// MustParseHash panic when error occurred
func MustParseHash(str string) Hash256 {
	h, err := ParseHash(str)
	if err != nil {
		panic(err)
	}
	return h
}
