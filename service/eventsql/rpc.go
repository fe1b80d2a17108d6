package eventsql

import (
	"github.com/meverselabs/dmcexchange/service/apiserver"
)

// SetupAPI registers the event query methods to the api server
func (s *EventSQL) SetupAPI(api *apiserver.APIServer) error {
	sub, err := api.JRPC("events")
	if err != nil {
		return err
	}
	sub.Set("byAddress", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addr, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		limit := 100
		if arg.Len() > 1 {
			if limit, err = arg.Int(1); err != nil {
				return nil, err
			}
		}
		return s.Events(addr, limit)
	})
	sub.Set("byTx", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		TxHash, err := arg.Hash(0)
		if err != nil {
			return nil, err
		}
		return s.TxEvents(TxHash)
	})
	return nil
}
