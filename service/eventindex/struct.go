package eventindex

import (
	"bytes"
	"io"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
)

// TransferRecord is an indexed Transfer log
type TransferRecord struct {
	Height uint32         `json:"height"`
	Index  uint32         `json:"index"`
	TxHash hash.Hash256   `json:"txHash"`
	Token  common.Address `json:"token"`
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount *amount.Amount `json:"amount"`
}

func (s *TransferRecord) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint32(w, s.Height); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.Index); err != nil {
		return sum, err
	}
	if sum, err := sw.Hash256(w, s.TxHash); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.Token); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.From); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.To); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.Amount); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *TransferRecord) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint32(r, &s.Height); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.Index); err != nil {
		return sum, err
	}
	if sum, err := sr.Hash256(r, &s.TxHash); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.Token); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.From); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.To); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.Amount); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

func decodeRecord(bs []byte) (*TransferRecord, error) {
	rec := &TransferRecord{}
	if _, err := rec.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return rec, nil
}
