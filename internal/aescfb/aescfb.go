package aescfb

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"walletcrypt/internal/secure"
)

const (
	// IVBytes is the required IV length: one AES block.
	IVBytes = aes.BlockSize
)

var (
	// ErrBadKeyLength reports a key that is not 16, 24 or 32 bytes.
	ErrBadKeyLength = errors.New("aes key must be 16, 24 or 32 bytes")

	// ErrBadIvLength reports an IV that is not exactly one block.
	ErrBadIvLength = errors.New("aes iv must be 16 bytes")
)

// Encrypt returns the CFB encryption of plaintext under key and iv in
// fresh locked storage. The inputs are not modified.
func Encrypt(plaintext, key, iv *secure.Buffer) (*secure.Buffer, error) {
	stream, err := newStream(key, iv, true)
	if err != nil {
		return nil, err
	}
	out := secure.New(plaintext.Len())
	stream.XORKeyStream(out.Bytes(), plaintext.Bytes())
	return out, nil
}

// Decrypt inverts Encrypt for the same key and iv. The inputs are not
// modified.
func Decrypt(ciphertext, key, iv *secure.Buffer) (*secure.Buffer, error) {
	stream, err := newStream(key, iv, false)
	if err != nil {
		return nil, err
	}
	out := secure.New(ciphertext.Len())
	stream.XORKeyStream(out.Bytes(), ciphertext.Bytes())
	return out, nil
}

func newStream(key, iv *secure.Buffer, encrypt bool) (cipher.Stream, error) {
	switch key.Len() {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrBadKeyLength, key.Len())
	}
	if iv.Len() != IVBytes {
		return nil, fmt.Errorf("%w: got %d", ErrBadIvLength, iv.Len())
	}
	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		// Lengths are validated above; aes.NewCipher has no other
		// failure mode for them.
		return nil, fmt.Errorf("%w: %v", ErrBadKeyLength, err)
	}
	if encrypt {
		return cipher.NewCFBEncrypter(block, iv.Bytes()), nil
	}
	return cipher.NewCFBDecrypter(block, iv.Bytes()), nil
}
