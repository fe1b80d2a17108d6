package key

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

// MemoryKey is the secp256k1 key held in memory
type MemoryKey struct {
	privkey *ecdsa.PrivateKey
	pubkey  common.PublicKey
}

// NewMemoryKey returns a randomly generated key
func NewMemoryKey() (*MemoryKey, error) {
	privkey, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newMemoryKey(privkey), nil
}

// NewMemoryKeyFromBytes parses the 32 bytes private key
func NewMemoryKeyFromBytes(bs []byte) (*MemoryKey, error) {
	privkey, err := crypto.ToECDSA(bs)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newMemoryKey(privkey), nil
}

// NewMemoryKeyFromString parses the hex private key
func NewMemoryKeyFromString(str string) (*MemoryKey, error) {
	bs, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return NewMemoryKeyFromBytes(bs)
}

func newMemoryKey(privkey *ecdsa.PrivateKey) *MemoryKey {
	ac := &MemoryKey{
		privkey: privkey,
	}
	copy(ac.pubkey[:], crypto.FromECDSAPub(&privkey.PublicKey))
	return ac
}

// Sign returns the recoverable signature of the hash
func (ac *MemoryKey) Sign(h hash.Hash256) (common.Signature, error) {
	if ac.privkey == nil {
		return nil, errors.WithStack(ErrClearedKey)
	}
	sig, err := crypto.Sign(h[:], ac.privkey)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return common.Signature(sig), nil
}

// Verify checks the signature with the public key of the key
func (ac *MemoryKey) Verify(h hash.Hash256, sig common.Signature) bool {
	return common.VerifySignature(ac.pubkey, h, sig) == nil
}

// PublicKey returns the uncompressed public key
func (ac *MemoryKey) PublicKey() common.PublicKey {
	return ac.pubkey
}

// Address returns the account address of the key
func (ac *MemoryKey) Address() common.Address {
	return ac.pubkey.Address()
}

// Bytes returns the private key bytes
func (ac *MemoryKey) Bytes() []byte {
	if ac.privkey == nil {
		return nil
	}
	return crypto.FromECDSA(ac.privkey)
}

// Clear removes the private key from the memory
func (ac *MemoryKey) Clear() {
	if ac.privkey != nil {
		ac.privkey.D.SetInt64(0)
		ac.privkey = nil
	}
}
