package main

import (
	"github.com/spf13/cobra"
)

func chainCommand(pHostURL *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "shows chain informations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "height",
		Short: "returns the number of the executed transactions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printResult(DoRequest((*pHostURL), "ledger.height", []interface{}{}))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "receipt [txhash]",
		Short: "returns the receipt of the transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printResult(DoRequest((*pHostURL), "ledger.receipt", []interface{}{args[0]}))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "call [to] [method] (args...)",
		Short: "calls the reader method of the contract",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			params := make([]interface{}, 0, len(args)-2)
			for _, v := range args[2:] {
				params = append(params, v)
			}
			printResult(DoRequest((*pHostURL), "ledger.call", []interface{}{args[0], args[1], params}))
		},
	})
	return cmd
}
