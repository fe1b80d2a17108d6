package token

import (
	"io"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/bin"
)

// TokenContractConstruction is the construction of the token
// a nil Cap means the supply is not capped
type TokenContractConstruction struct {
	Name             string
	Symbol           string
	Cap              *amount.Amount
	InitialSupplyMap map[common.Address]*amount.Amount
}

func (s *TokenContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.String(w, s.Name); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Symbol); err != nil {
		return sum, err
	}
	if sum, err := sw.Bool(w, s.Cap != nil); err != nil {
		return sum, err
	}
	if s.Cap != nil {
		if sum, err := sw.Amount(w, s.Cap); err != nil {
			return sum, err
		}
	}
	addrs := sortedAddresses(s.InitialSupplyMap)
	if sum, err := sw.Uint32(w, uint32(len(addrs))); err != nil {
		return sum, err
	}
	for _, k := range addrs {
		if sum, err := sw.Address(w, k); err != nil {
			return sum, err
		}
		if sum, err := sw.Amount(w, s.InitialSupplyMap[k]); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (s *TokenContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.String(r, &s.Name); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Symbol); err != nil {
		return sum, err
	}
	var hasCap bool
	if sum, err := sr.Bool(r, &hasCap); err != nil {
		return sum, err
	}
	if hasCap {
		if sum, err := sr.Amount(r, &s.Cap); err != nil {
			return sum, err
		}
	}
	var Len uint32
	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	s.InitialSupplyMap = map[common.Address]*amount.Amount{}
	for i := uint32(0); i < Len; i++ {
		var addr common.Address
		if sum, err := sr.Address(r, &addr); err != nil {
			return sum, err
		}
		var am *amount.Amount
		if sum, err := sr.Amount(r, &am); err != nil {
			return sum, err
		}
		s.InitialSupplyMap[addr] = am
	}
	return sr.Sum(), nil
}
