// Package ec wraps the secp256k1 operations the wallet needs: key
// generation, fixed-width parsing and serialization, ECDSA signing and
// verification over SHA-256 digests, and private/public consistency
// checks.
//
// Wire formats are the classic wallet ones: private keys are 32
// big-endian bytes, public keys are 65 bytes (0x04 || X || Y,
// uncompressed) and signatures are 64 bytes (r || s, each 32 bytes
// big-endian). Signing uses RFC 6979 deterministic nonces and emits
// low-s signatures; verification accepts both halves of the order.
//
// The package holds no state and is safe for concurrent use.
package ec
