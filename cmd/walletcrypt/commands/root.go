package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"walletcrypt/internal/kdf"
	"walletcrypt/internal/secure"
)

var (
	passphrase string
	kdfTarget  time.Duration
	kdfMaxMem  uint32
	debug      bool
)

func Execute() error {
	root := &cobra.Command{
		Use:   "walletcrypt",
		Short: "Wallet crypto core: keygen, signing, passphrase sealing",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				backend := btclog.NewBackend(os.Stderr)
				for tag, use := range map[string]func(btclog.Logger){
					"SECB": secure.UseLogger,
					"KDF":  kdf.UseLogger,
				} {
					logger := backend.Logger(tag)
					logger.SetLevel(btclog.LevelDebug)
					use(logger)
				}
			}
		},
	}

	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "",
		"passphrase (prompted when omitted)")
	root.PersistentFlags().DurationVar(&kdfTarget, "kdf-target",
		kdf.DefaultTarget, "target wall-clock for one key derivation")
	root.PersistentFlags().Uint32Var(&kdfMaxMem, "kdf-maxmem",
		kdf.DefaultMaxMemory, "kdf lookup-table ceiling in bytes")
	root.PersistentFlags().BoolVar(&debug, "debug", false,
		"log library internals to stderr")

	root.AddCommand(keygenCmd(), pubkeyCmd(), signCmd(), verifyCmd(),
		encryptCmd(), decryptCmd(), kdfCmd())
	return root.Execute()
}

// readPassphrase returns the --passphrase flag value, or prompts on the
// terminal without echo. With confirm set the passphrase is entered
// twice.
func readPassphrase(confirm bool) (*secure.Buffer, error) {
	if passphrase != "" {
		return secure.FromString(passphrase), nil
	}
	first, err := promptSecret("Passphrase: ")
	if err != nil {
		return nil, err
	}
	if !confirm {
		return first, nil
	}
	second, err := promptSecret("Confirm passphrase: ")
	if err != nil {
		first.Destroy()
		return nil, err
	}
	defer second.Destroy()
	if !first.Equal(second) {
		first.Destroy()
		return nil, errors.New("passphrases do not match")
	}
	return first, nil
}

func promptSecret(prompt string) (*secure.Buffer, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	buf := secure.FromBytes(line)
	secure.Zero(line)
	return buf, nil
}
