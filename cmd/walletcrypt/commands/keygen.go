package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletcrypt/internal/ec"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new secp256k1 key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := ec.GeneratePrivateKey()
			if err != nil {
				return err
			}
			defer priv.Destroy()

			pub, err := ec.ComputePublicKey(priv.Bytes())
			if err != nil {
				return err
			}
			fmt.Printf("private: %s\n", priv.Hex())
			fmt.Printf("public:  %x\n", pub)
			return nil
		},
	}
}

func pubkeyCmd() *cobra.Command {
	var privHex string
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Recompute the public key for a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := secureFromHexFlag(privHex, "--priv")
			if err != nil {
				return err
			}
			defer priv.Destroy()

			pub, err := ec.ComputePublicKey(priv.Bytes())
			if err != nil {
				return err
			}
			fmt.Printf("public: %x\n", pub)
			fmt.Printf("match:  %v\n", ec.CheckMatch(priv.Bytes(), pub))
			return nil
		},
	}
	cmd.Flags().StringVar(&privHex, "priv", "", "private key hex (32 bytes)")
	return cmd
}
