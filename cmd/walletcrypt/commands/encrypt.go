package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"walletcrypt/internal/app"
	"walletcrypt/internal/kdf"
	"walletcrypt/internal/secure"
)

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <secret>",
		Short: "Seal a secret under a passphrase-derived key",
		Long: "Calibrates the KDF for this host, derives a key from the " +
			"passphrase and prints kdf-params || iv || ciphertext as hex.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readPassphrase(true)
			if err != nil {
				return err
			}
			defer pass.Destroy()

			a, err := app.New(app.Config{
				KDFTarget:    kdfTarget,
				KDFMaxMemory: kdfMaxMem,
			})
			if err != nil {
				return err
			}
			defer a.Close()

			secret := secure.FromString(args[0])
			defer secret.Destroy()

			sealed, err := a.SealKey(pass, secret)
			if err != nil {
				return err
			}
			header, err := a.KDF.Params().MarshalBinary()
			if err != nil {
				return err
			}
			envelope, err := sealed.MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Printf("%x%x\n", header, envelope)
			return nil
		},
	}
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <blob-hex>",
		Short: "Open a sealed secret with its passphrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("blob: %w", err)
			}

			params, rest, err := kdf.ParseParams(blob)
			if err != nil {
				return err
			}
			defer params.Salt.Destroy()

			var sealed app.SealedKey
			if err := sealed.UnmarshalBinary(rest); err != nil {
				return err
			}

			pass, err := readPassphrase(false)
			if err != nil {
				return err
			}
			defer pass.Destroy()

			a, err := app.Open(params.Memory, params.Iterations, params.Salt)
			if err != nil {
				return err
			}
			defer a.Close()

			secret, err := a.OpenKey(pass, &sealed)
			if err != nil {
				return err
			}
			defer secret.Destroy()

			fmt.Printf("%s\n", secret.Bytes())
			return nil
		},
	}
}
