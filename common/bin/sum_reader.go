package bin

import (
	"bytes"
	"io"
	"math/big"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
)

// SumReader accumulates the number of read bytes for ReadFrom implementations
type SumReader struct {
	sum int64
}

func NewSumReader() *SumReader {
	return &SumReader{}
}

func (sr *SumReader) Uint8(r io.Reader, p *uint8) (int64, error) {
	v, n, err := ReadUint8(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Uint32(r io.Reader, p *uint32) (int64, error) {
	v, n, err := ReadUint32(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Uint64(r io.Reader, p *uint64) (int64, error) {
	v, n, err := ReadUint64(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Bytes(r io.Reader, p *[]byte) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) String(r io.Reader, p *string) (int64, error) {
	v, n, err := ReadString(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Bool(r io.Reader, p *bool) (int64, error) {
	v, n, err := ReadBool(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Hash256(r io.Reader, p *hash.Hash256) (int64, error) {
	n, err := FillBytes(r, p[:])
	sr.sum += n
	return sr.sum, err
}

func (sr *SumReader) Address(r io.Reader, p *common.Address) (int64, error) {
	n, err := FillBytes(r, p[:])
	sr.sum += n
	return sr.sum, err
}

func (sr *SumReader) Signature(r io.Reader, p *common.Signature) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Amount(r io.Reader, p **amount.Amount) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = amount.NewAmountFromBytes(v)
	return sr.sum, nil
}

func (sr *SumReader) BigInt(r io.Reader, p **big.Int) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = new(big.Int).SetBytes(v)
	return sr.sum, nil
}

// ReaderFrom reads the nested value written by SumWriter.WriterTo
func (sr *SumReader) ReaderFrom(r io.Reader, p io.ReaderFrom) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	if _, err := p.ReadFrom(bytes.NewReader(v)); err != nil {
		return sr.sum, err
	}
	return sr.sum, nil
}

func (sr *SumReader) Sum() int64 {
	return sr.sum
}
