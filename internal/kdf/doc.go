// Package kdf derives encryption keys from wallet passphrases with a
// memory-hard construction.
//
// The construction is Colin Percival's ROMix (the core of scrypt,
// https://www.tarsnap.com/scrypt/scrypt.pdf) instantiated with SHA-512:
// a lookup table is filled with chained hash outputs, then mixed by
// repeatedly XORing the running state with pseudorandomly indexed table
// entries and re-hashing. Memory hardness forces an attacker's guess
// pipeline to hold the whole table, which neutralizes GPU parallelism.
//
// A Romix instance is configured once, either by timing-based
// calibration (ComputeParams) or from parameters stored in a wallet
// header (UsePrecomputedParams), and then derives any number of keys.
// The scratch table is reused across derivations on the same instance,
// so a single instance must not be shared between concurrent
// derivations.
package kdf
