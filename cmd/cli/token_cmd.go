package main

import (
	"github.com/spf13/cobra"
)

func tokenCommand(pHostURL *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "shows token balances and events",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "balance [token] [address]",
		Short: "returns the balance of the address",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printResult(DoRequest((*pHostURL), "ledger.balanceOf", []interface{}{args[0], args[1]}))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "transfers [address] (token)",
		Short: "returns the recent transfers of the address",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			params := []interface{}{args[0]}
			if len(args) > 1 {
				params = append(params, args[1])
			}
			printResult(DoRequest((*pHostURL), "index.transfers", params))
		},
	})
	return cmd
}
