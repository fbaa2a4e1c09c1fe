package main

import (
	"os"

	"walletcrypt/cmd/walletcrypt/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
