package eventindex

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/service/apiserver"
)

// SetupAPI registers the index methods to the api server
func (t *EventIndex) SetupAPI(api *apiserver.APIServer) error {
	s, err := api.JRPC("index")
	if err != nil {
		return err
	}
	s.Set("height", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return t.Height(), nil
	})
	// transfers(address, token?, limit?)
	s.Set("transfers", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addr, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		tokenAddr := common.ZeroAddr
		if arg.Len() > 1 {
			if tokenAddr, err = arg.Address(1); err != nil {
				return nil, err
			}
		}
		limit := 100
		if arg.Len() > 2 {
			if limit, err = arg.Int(2); err != nil {
				return nil, err
			}
		}
		return t.Transfers(addr, tokenAddr, limit)
	})
	return nil
}
