// Package commands implements the walletcrypt CLI: a thin host over
// the key-generation, signing, and passphrase seal/open primitives,
// for exercising a wallet's crypto core from a shell.
package commands
