package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/meverselabs/dmcexchange/common/key"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const passphraseEnv = "DMCX_KEY_PASSPHRASE"

func loadKey(path string) (key.Key, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return key.DecryptKey(bs, []byte(os.Getenv(passphraseEnv)))
}

func keyCommand(pKeyPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "manages the encrypted key file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new (keyhex)",
		Short: "creates the key file, the passphrase is read from " + passphraseEnv,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := os.Stat(*pKeyPath); err == nil {
				fmt.Println("error : the key file already exists")
				return
			}
			var k *key.MemoryKey
			var err error
			if len(args) > 0 {
				k, err = key.NewMemoryKeyFromString(args[0])
			} else {
				k, err = key.NewMemoryKey()
			}
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			defer k.Clear()
			bs, err := key.EncryptKey(k, []byte(os.Getenv(passphraseEnv)), key.DefaultKDFParams)
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			if err := ioutil.WriteFile(*pKeyPath, bs, 0600); err != nil {
				fmt.Println("error :", err)
				return
			}
			fmt.Println(k.Address().String())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "returns the address of the key file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			k, err := loadKey(*pKeyPath)
			if err != nil {
				fmt.Println("error :", err)
				return
			}
			defer k.Clear()
			fmt.Println(k.Address().String())
		},
	})
	return cmd
}
