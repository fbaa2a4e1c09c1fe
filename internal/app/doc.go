// Package app wires the walletcrypt primitives into the passphrase ->
// derived key -> encrypted private key data flow a wallet host drives.
//
// An App owns one calibrated (or header-restored) KDF instance and uses
// it to seal private keys into (iv, ciphertext) envelopes and open them
// again. The KDF scratch table makes an App unsafe for concurrent
// seal/open calls; hosts wanting parallelism build one App per worker.
package app
