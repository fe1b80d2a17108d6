package exchange

import (
	"io"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
)

// ExchangeContractConstruction initializes the exchange in the deployment when both tokens are given
type ExchangeContractConstruction struct {
	DMC common.Address
	GWT common.Address
}

func (s *ExchangeContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.DMC); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.GWT); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *ExchangeContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.DMC); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.GWT); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
