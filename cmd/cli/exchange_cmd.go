package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func callAddress(hostURL string, to common.Address, method string) (common.Address, error) {
	res, err := DoRequest(hostURL, "ledger.call", []interface{}{to.String(), method})
	if err != nil {
		return common.ZeroAddr, err
	}
	rets, ok := res.([]interface{})
	if !ok || len(rets) != 1 {
		return common.ZeroAddr, errors.Errorf("invalid result %v", res)
	}
	return common.ParseAddress(fmt.Sprint(rets[0]))
}

// approveAndExchange approves the exchange to spend the token given by tokenMethod and calls the method
func approveAndExchange(hostURL string, keyPath string, exAddr common.Address, tokenMethod string, method string, am *amount.Amount) (interface{}, error) {
	tokenAddr, err := callAddress(hostURL, exAddr, tokenMethod)
	if err != nil {
		return nil, err
	}
	res, err := sendTx(hostURL, keyPath, tokenAddr, "Approve", exAddr, am)
	if err != nil {
		return nil, err
	}
	if view, ok := res.(map[string]interface{}); ok && view["error"] != nil {
		return nil, errors.Errorf("approve failed: %v", view["error"])
	}
	return sendTx(hostURL, keyPath, exAddr, method, am)
}

func exchangeCommand(pHostURL *string, pKeyPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "mints DMC and converts between DMC and GWT",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "mint [exchange] (salt) (proof)",
		Short: "mints 210 DMC to the key with the salt, a random salt is used when it is omitted",
		Args:  cobra.RangeArgs(1, 3),
		Run: func(cmd *cobra.Command, args []string) {
			exAddr, err := common.ParseAddress(args[0])
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			var salt hash.Hash256
			if len(args) > 1 {
				salt = hash.HexToHash(args[1])
			} else if _, err := rand.Read(salt[:]); err != nil {
				fmt.Println("error :", err)
				return
			}
			proof := []byte{}
			if len(args) > 2 {
				if proof, err = hex.DecodeString(strings.TrimPrefix(args[2], "0x")); err != nil {
					fmt.Println("error :", err)
					return
				}
			}
			printResult(sendTx((*pHostURL), (*pKeyPath), exAddr, "MintDMC", salt, proof))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "to-gwt [exchange] [dmc amount]",
		Short: "approves and exchanges DMC into 210 times GWT",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			exAddr, err := common.ParseAddress(args[0])
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			am, err := amount.ParseAmount(args[1])
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			printResult(approveAndExchange((*pHostURL), (*pKeyPath), exAddr, "DMC", "ExchangeGWT", am))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "to-dmc [exchange] [gwt amount]",
		Short: "approves and exchanges GWT back into DMC",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			exAddr, err := common.ParseAddress(args[0])
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			am, err := amount.ParseAmount(args[1])
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			printResult(approveAndExchange((*pHostURL), (*pKeyPath), exAddr, "GWT", "ExchangeDMC", am))
		},
	})
	return cmd
}
