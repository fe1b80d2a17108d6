package common

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

const (
	// PublicKeySize is the uncompressed secp256k1 public key size
	PublicKeySize = 65
	// SignatureSize is r 32 s 32 v 1
	SignatureSize = 65
)

// PublicKey is the uncompressed secp256k1 public key
type PublicKey [PublicKeySize]byte

func (pubkey PublicKey) String() string {
	return hex.EncodeToString(pubkey[:])
}

// Address is the last 20 bytes of the keccak of the key without the prefix byte
func (pubkey PublicKey) Address() Address {
	return BytesToAddress(crypto.Keccak256(pubkey[1:])[12:])
}

// Signature is the recoverable secp256k1 signature
type Signature []byte

func (sig Signature) String() string {
	return "0x" + hex.EncodeToString(sig)
}

// ParseSignature parses the hex with or without 0x
func ParseSignature(str string) (Signature, error) {
	bs, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(bs) != SignatureSize {
		return nil, errors.WithStack(ErrInvalidSignatureFormat)
	}
	return Signature(bs), nil
}

// RecoverPubkey returns the public key that signed the hash
func RecoverPubkey(h hash.Hash256, sig Signature) (PublicKey, error) {
	var pubkey PublicKey
	if len(sig) != SignatureSize {
		return pubkey, errors.WithStack(ErrInvalidSignatureFormat)
	}
	bs, err := crypto.Ecrecover(h[:], sig)
	if err != nil {
		return pubkey, errors.WithStack(ErrInvalidSignature)
	}
	if len(bs) != PublicKeySize {
		return pubkey, errors.WithStack(ErrInvalidPublicKey)
	}
	copy(pubkey[:], bs)
	return pubkey, nil
}

// RecoverAddress returns the address of the signer
func RecoverAddress(h hash.Hash256, sig Signature) (Address, error) {
	pubkey, err := RecoverPubkey(h, sig)
	if err != nil {
		return ZeroAddr, err
	}
	return pubkey.Address(), nil
}

// VerifySignature checks the signature without the recovery id
func VerifySignature(pubkey PublicKey, h hash.Hash256, sig Signature) error {
	if len(sig) < 64 || !crypto.VerifySignature(pubkey[:], h[:], sig[:64]) {
		return errors.WithStack(ErrInvalidSignature)
	}
	return nil
}
