package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"walletcrypt/internal/ec"
	"walletcrypt/internal/secure"
)

// secureFromHexFlag decodes a required hex flag into locked storage.
func secureFromHexFlag(value, flag string) (*secure.Buffer, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is required", flag)
	}
	buf, err := secure.FromHex(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flag, err)
	}
	return buf, nil
}

func signCmd() *cobra.Command {
	var privHex string
	cmd := &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message with a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := secureFromHexFlag(privHex, "--priv")
			if err != nil {
				return err
			}
			defer priv.Destroy()

			sig, err := ec.Sign([]byte(args[0]), priv)
			if err != nil {
				return err
			}
			fmt.Printf("signature: %x\n", sig)
			return nil
		},
	}
	cmd.Flags().StringVar(&privHex, "priv", "", "private key hex (32 bytes)")
	return cmd
}

func verifyCmd() *cobra.Command {
	var pubHex, sigHex string
	cmd := &cobra.Command{
		Use:   "verify <message>",
		Short: "Verify a signature against a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := hex.DecodeString(pubHex)
			if err != nil {
				return fmt.Errorf("--pub: %w", err)
			}
			sig, err := hex.DecodeString(sigHex)
			if err != nil {
				return fmt.Errorf("--sig: %w", err)
			}
			if ec.Verify([]byte(args[0]), sig, pub) {
				fmt.Println("signature valid")
				return nil
			}
			return fmt.Errorf("signature invalid")
		},
	}
	cmd.Flags().StringVar(&pubHex, "pub", "", "public key hex (65 bytes)")
	cmd.Flags().StringVar(&sigHex, "sig", "", "signature hex (64 bytes)")
	return cmd
}
