package types

import (
	"encoding/hex"
	"io"
	"math/big"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

// Transaction calls a method of the contract at To, Args is encoded by bin.TypeWriteAll
type Transaction struct {
	ChainID   *big.Int
	Timestamp uint64
	Seq       uint64
	To        common.Address
	Method    string
	Args      []byte
}

// NewTransaction encodes the args and returns a transaction
func NewTransaction(ChainID *big.Int, Seq uint64, Timestamp uint64, To common.Address, Method string, Args ...interface{}) (*Transaction, error) {
	bs, err := bin.TypeWriteAll(Args...)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		ChainID:   ChainID,
		Timestamp: Timestamp,
		Seq:       Seq,
		To:        To,
		Method:    Method,
		Args:      bs,
	}, nil
}

// Hash returns the hash that the sender signs
func (s *Transaction) Hash() hash.Hash256 {
	h, _, err := bin.WriterToHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Sender recovers the signer of the transaction
func (s *Transaction) Sender(sig common.Signature) (common.Address, error) {
	return common.RecoverAddress(s.Hash(), sig)
}

// DecodeArgs returns the decoded arguments
func (s *Transaction) DecodeArgs() ([]interface{}, error) {
	return bin.TypeReadAll(s.Args, -1)
}

// String returns the hex of the encoded transaction
func (s *Transaction) String() string {
	return hex.EncodeToString(bin.MustWriterToBytes(s))
}

// ParseTransaction decodes the hex made by String
func ParseTransaction(str string) (*Transaction, error) {
	bs, err := hex.DecodeString(str)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tx := &Transaction{}
	if _, err := bin.ReadFromBytes(tx, bs); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Transaction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.BigInt(w, s.ChainID); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.Timestamp); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.Seq); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.To); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Method); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, s.Args); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *Transaction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.BigInt(r, &s.ChainID); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.Timestamp); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.Seq); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.To); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Method); err != nil {
		return sum, err
	}
	if sum, err := sr.Bytes(r, &s.Args); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
