// Package aescfb encrypts and decrypts wallet key material with AES in
// cipher-feedback mode.
//
// CFB is a self-synchronizing stream construction over the 128-bit AES
// block, so ciphertext length always equals plaintext length and no
// padding is involved. The caller supplies the IV and must use a unique
// one per encryption under the same key; the host stores it alongside
// the ciphertext. Keys of 16, 24 or 32 bytes select AES-128/192/256.
//
// The package holds no state and is safe for concurrent use.
package aescfb
