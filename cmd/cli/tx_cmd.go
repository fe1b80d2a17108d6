package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func chainID(hostURL string) (*big.Int, error) {
	res, err := DoRequest(hostURL, "ledger.chainID", []interface{}{})
	if err != nil {
		return nil, err
	}
	ID, ok := new(big.Int).SetString(fmt.Sprint(res), 10)
	if !ok {
		return nil, errors.Errorf("invalid chain id %v", res)
	}
	return ID, nil
}

func seq(hostURL string, addr common.Address) (uint64, error) {
	res, err := DoRequest(hostURL, "ledger.seq", []interface{}{addr.String()})
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case json.Number:
		return strconv.ParseUint(v.String(), 10, 64)
	default:
		return 0, errors.Errorf("invalid seq %v", res)
	}
}

// sendTx signs the transaction by the key file and returns the receipt of the node
func sendTx(hostURL string, keyPath string, to common.Address, method string, args ...interface{}) (interface{}, error) {
	k, err := loadKey(keyPath)
	if err != nil {
		return nil, err
	}
	defer k.Clear()

	ChainID, err := chainID(hostURL)
	if err != nil {
		return nil, err
	}
	last, err := seq(hostURL, k.Address())
	if err != nil {
		return nil, err
	}
	tx, err := types.NewTransaction(ChainID, last+1, uint64(time.Now().UnixNano()), to, method, args...)
	if err != nil {
		return nil, err
	}
	sig, err := k.Sign(tx.Hash())
	if err != nil {
		return nil, err
	}
	return DoRequest(hostURL, "ledger.sendTx", []interface{}{tx.String(), hex.EncodeToString(sig)})
}

func txCommand(pHostURL *string, pKeyPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "sends signed transactions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "send [to] [method] (args...)",
		Short: "sends the method call signed by the key file, the args are passed as strings",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			to, err := common.ParseAddress(args[0])
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			params := make([]interface{}, 0, len(args)-2)
			for _, v := range args[2:] {
				params = append(params, v)
			}
			printResult(sendTx((*pHostURL), (*pKeyPath), to, args[1], params...))
		},
	})
	return cmd
}
