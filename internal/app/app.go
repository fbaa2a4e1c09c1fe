package app

import (
	"errors"
	"fmt"

	"walletcrypt/internal/aescfb"
	"walletcrypt/internal/kdf"
	"walletcrypt/internal/secure"
)

// ErrBadEnvelope reports a sealed-key envelope too short to contain an
// IV.
var ErrBadEnvelope = errors.New("sealed key envelope truncated")

// SealedKey is an encrypted private-key envelope: the IV chosen at seal
// time and the CFB ciphertext. The host persists it next to the KDF
// parameter block.
type SealedKey struct {
	IV         []byte
	Ciphertext []byte
}

// MarshalBinary encodes the envelope as iv || ciphertext.
func (s *SealedKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, len(s.IV)+len(s.Ciphertext))
	out = append(out, s.IV...)
	out = append(out, s.Ciphertext...)
	return out, nil
}

// UnmarshalBinary decodes an envelope produced by MarshalBinary.
func (s *SealedKey) UnmarshalBinary(data []byte) error {
	if len(data) < aescfb.IVBytes {
		return fmt.Errorf("%w: %d bytes", ErrBadEnvelope, len(data))
	}
	s.IV = append([]byte(nil), data[:aescfb.IVBytes]...)
	s.Ciphertext = append([]byte(nil), data[aescfb.IVBytes:]...)
	return nil
}

// App bundles a configured KDF with the cipher layer.
type App struct {
	KDF *kdf.Romix
}

// New calibrates a fresh KDF for this host and returns an App around
// it.
func New(cfg Config) (*App, error) {
	cfg = cfg.withDefaults()
	k := kdf.New()
	if err := k.ComputeParams(cfg.KDFTarget, cfg.KDFMaxMemory); err != nil {
		return nil, err
	}
	return &App{KDF: k}, nil
}

// Open rebuilds an App from KDF parameters stored in a wallet header.
func Open(memory, iterations uint32, salt *secure.Buffer) (*App, error) {
	k, err := kdf.NewPrecomputed(memory, iterations, salt)
	if err != nil {
		return nil, err
	}
	return &App{KDF: k}, nil
}

// SealKey derives an encryption key from password and encrypts the
// private-key bytes under a fresh random IV.
func (a *App) SealKey(password, priv *secure.Buffer) (*SealedKey, error) {
	key, err := a.KDF.Derive(password)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	iv, err := secure.Random(aescfb.IVBytes)
	if err != nil {
		return nil, err
	}
	defer iv.Destroy()

	ct, err := aescfb.Encrypt(priv, key, iv)
	if err != nil {
		return nil, err
	}
	defer ct.Destroy()

	return &SealedKey{
		IV:         append([]byte(nil), iv.Bytes()...),
		Ciphertext: append([]byte(nil), ct.Bytes()...),
	}, nil
}

// OpenKey inverts SealKey. A wrong password yields garbage bytes, not
// an error: CFB carries no authenticator, and telling the two apart is
// the caller's job (typically by checking the decrypted key against a
// stored public key).
func (a *App) OpenKey(password *secure.Buffer, sealed *SealedKey) (*secure.Buffer, error) {
	key, err := a.KDF.Derive(password)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	iv := secure.FromBytes(sealed.IV)
	defer iv.Destroy()
	ct := secure.FromBytes(sealed.Ciphertext)
	defer ct.Destroy()

	return aescfb.Decrypt(ct, key, iv)
}

// Close destroys the KDF scratch table and salt.
func (a *App) Close() {
	a.KDF.Destroy()
}
