package ledger

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/meverselabs/dmcexchange/service/apiserver"
)

// SetupAPI registers the ledger methods to the api server
func (s *Ledger) SetupAPI(api *apiserver.APIServer) error {
	sub, err := api.JRPC("ledger")
	if err != nil {
		return err
	}
	sub.Set("chainID", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return s.cn.ChainID().String(), nil
	})
	sub.Set("height", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return s.cn.Height(), nil
	})
	sub.Set("seq", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addr, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return s.cn.Seq(addr), nil
	})
	sub.Set("call", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		to, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		method, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		args := []interface{}{}
		if arg.Len() > 2 {
			if args, err = arg.Array(2); err != nil {
				return nil, err
			}
		}
		from := common.ZeroAddr
		if arg.Len() > 3 {
			if from, err = arg.Address(3); err != nil {
				return nil, err
			}
		}
		rets, err := s.Call(from, to, method, args)
		if err != nil {
			return nil, err
		}
		return FormatResults(rets), nil
	})
	sub.Set("sendTx", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		str, err := arg.String(0)
		if err != nil {
			return nil, err
		}
		tx, err := types.ParseTransaction(str)
		if err != nil {
			return nil, err
		}
		sigHex, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		sig, err := common.ParseSignature(sigHex)
		if err != nil {
			return nil, err
		}
		receipt, err := s.SendTx(tx, sig)
		if err != nil {
			return nil, err
		}
		return NewReceiptView(receipt)
	})
	sub.Set("receipt", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		TxHash, err := arg.Hash(0)
		if err != nil {
			return nil, err
		}
		receipt, err := s.cn.Receipt(TxHash)
		if err != nil {
			return nil, err
		}
		return NewReceiptView(receipt)
	})
	sub.Set("balanceOf", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		token, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		addr, err := arg.Address(1)
		if err != nil {
			return nil, err
		}
		am, err := s.BalanceOf(token, addr)
		if err != nil {
			return nil, err
		}
		return am.String(), nil
	})
	return nil
}
