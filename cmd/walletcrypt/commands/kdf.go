package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletcrypt/internal/kdf"
)

func kdfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kdf",
		Short: "Calibrate derivation parameters for this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := kdf.New()
			if err := k.ComputeParams(kdfTarget, kdfMaxMem); err != nil {
				return err
			}
			defer k.Destroy()

			header, err := k.Params().MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Println(k.String())
			fmt.Printf("header: %x\n", header)
			return nil
		},
	}
}
