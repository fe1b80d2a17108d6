package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var hostURL string
	var keyPath string
	var rootCmd = &cobra.Command{Use: "cli"}
	rootCmd.PersistentFlags().StringVar(&hostURL, "host", "http://localhost:48000", "url of the node to access")
	rootCmd.PersistentFlags().StringVar(&keyPath, "key", "./key.json", "path of the encrypted key file")
	rootCmd.AddCommand(keyCommand(&keyPath))
	rootCmd.AddCommand(chainCommand(&hostURL))
	rootCmd.AddCommand(tokenCommand(&hostURL))
	rootCmd.AddCommand(txCommand(&hostURL, &keyPath))
	rootCmd.AddCommand(exchangeCommand(&hostURL, &keyPath))
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error :", err)
		os.Exit(1)
	}
}
