package types

import (
	"io"

	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

// receipt status
const (
	ReceiptStatusFailed     = uint8(0)
	ReceiptStatusSuccessful = uint8(1)
)

// Receipt is the stored outcome of a transaction
// the logs of a failed transaction are always empty
type Receipt struct {
	TxHash hash.Hash256
	Height uint32
	From   common.Address
	To     common.Address
	Method string
	Status uint8
	Err    string
	Result []byte
	Logs   []*etypes.Log
}

// Succeeded returns the transaction is applied or not
func (s *Receipt) Succeeded() bool {
	return s.Status == ReceiptStatusSuccessful
}

// Results decodes the returned values
func (s *Receipt) Results() ([]interface{}, error) {
	return bin.TypeReadAll(s.Result, -1)
}

func (s *Receipt) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Hash256(w, s.TxHash); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.Height); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.From); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.To); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Method); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, s.Status); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Err); err != nil {
		return sum, err
	}
	if sum, err := sw.Bytes(w, s.Result); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, uint32(len(s.Logs))); err != nil {
		return sum, err
	}
	for _, l := range s.Logs {
		if sum, err := writeLog(sw, w, l); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (s *Receipt) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Hash256(r, &s.TxHash); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.Height); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.From); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.To); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Method); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint8(r, &s.Status); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Err); err != nil {
		return sum, err
	}
	if sum, err := sr.Bytes(r, &s.Result); err != nil {
		return sum, err
	}
	var count uint32
	if sum, err := sr.Uint32(r, &count); err != nil {
		return sum, err
	}
	s.Logs = make([]*etypes.Log, 0, count)
	for i := uint32(0); i < count; i++ {
		l := &etypes.Log{
			TxHash:      s.TxHash,
			BlockNumber: uint64(s.Height),
		}
		if sum, err := readLog(sr, r, l); err != nil {
			return sum, err
		}
		s.Logs = append(s.Logs, l)
	}
	return sr.Sum(), nil
}

// only the address, topics, data and index are stored, the rest comes from the receipt
func writeLog(sw *bin.SumWriter, w io.Writer, l *etypes.Log) (int64, error) {
	if sum, err := sw.Address(w, l.Address); err != nil {
		return sum, err
	}
	if len(l.Topics) > 255 {
		return sw.Sum(), errors.WithStack(ErrInvalidLog)
	}
	if sum, err := sw.Uint8(w, uint8(len(l.Topics))); err != nil {
		return sum, err
	}
	for _, t := range l.Topics {
		if sum, err := sw.Hash256(w, t); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Bytes(w, l.Data); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, uint32(l.Index)); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func readLog(sr *bin.SumReader, r io.Reader, l *etypes.Log) (int64, error) {
	if sum, err := sr.Address(r, &l.Address); err != nil {
		return sum, err
	}
	var count uint8
	if sum, err := sr.Uint8(r, &count); err != nil {
		return sum, err
	}
	l.Topics = make([]hash.Hash256, count)
	for i := range l.Topics {
		if sum, err := sr.Hash256(r, &l.Topics[i]); err != nil {
			return sum, err
		}
	}
	if sum, err := sr.Bytes(r, &l.Data); err != nil {
		return sum, err
	}
	var index uint32
	if sum, err := sr.Uint32(r, &index); err != nil {
		return sum, err
	}
	l.Index = uint(index)
	return sr.Sum(), nil
}
