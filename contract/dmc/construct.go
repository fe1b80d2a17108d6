package dmc

import (
	"io"

	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/bin"
)

type DMCContractConstruction struct {
	Cap *amount.Amount
}

func (s *DMCContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Amount(w, s.Cap); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *DMCContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Amount(r, &s.Cap); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
