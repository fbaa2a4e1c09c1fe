package ec

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"walletcrypt/internal/secure"
)

const (
	// PrivateKeyBytes is the serialized private-key width.
	PrivateKeyBytes = 32

	// PublicKeyBytes is the serialized public-key width: a 0x04 prefix
	// followed by the 32-byte X and Y coordinates.
	PublicKeyBytes = 65

	// pubKeyPrefix marks an uncompressed point.
	pubKeyPrefix = 0x04
)

var (
	// ErrBadKeyFormat reports structurally malformed key bytes.
	ErrBadKeyFormat = errors.New("malformed key encoding")

	// ErrNotOnCurve reports coordinates that do not satisfy the curve
	// equation.
	ErrNotOnCurve = errors.New("point is not on the secp256k1 curve")

	// ErrIsIdentity reports the point at infinity, which is not a valid
	// public key.
	ErrIsIdentity = errors.New("point is the identity")

	// ErrOutOfRange reports a private scalar outside [1, n-1].
	ErrOutOfRange = errors.New("scalar outside the curve order")
)

// GeneratePrivateKey returns a uniformly random scalar in [1, n-1],
// serialized big-endian into locked storage. Values of zero or at
// least the curve order are rejection-sampled away.
func GeneratePrivateKey() (*secure.Buffer, error) {
	return GeneratePrivateKeyFromRand(rand.Reader)
}

// GeneratePrivateKeyFromRand is GeneratePrivateKey reading entropy from
// r, so tests and seed ceremonies can supply their own source.
func GeneratePrivateKeyFromRand(r io.Reader) (*secure.Buffer, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", secure.ErrEntropyUnavailable, err)
	}
	defer priv.Zero()
	return SerializePrivateKey(priv), nil
}

// ParsePrivateKey validates 32 big-endian bytes as a scalar in
// [1, n-1]. Wrong length is ErrBadKeyFormat; zero or >= n is
// ErrOutOfRange.
func ParsePrivateKey(b []byte) (*secp256k1.PrivateKey, error) {
	if len(b) != PrivateKeyBytes {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d",
			ErrBadKeyFormat, PrivateKeyBytes, len(b))
	}
	var k secp256k1.ModNScalar
	overflow := k.SetByteSlice(b)
	if overflow {
		return nil, fmt.Errorf("%w: scalar not below the curve order",
			ErrOutOfRange)
	}
	if k.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero", ErrOutOfRange)
	}
	priv := secp256k1.NewPrivateKey(&k)
	k.Zero()
	return priv, nil
}

// ParsePublicKey validates a 65-byte uncompressed point: 0x04 prefix,
// coordinates below the field prime, on the curve and not the identity.
func ParsePublicKey(b []byte) (*secp256k1.PublicKey, error) {
	if len(b) != PublicKeyBytes {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			ErrBadKeyFormat, PublicKeyBytes, len(b))
	}
	if b[0] != pubKeyPrefix {
		return nil, fmt.Errorf("%w: missing 0x04 uncompressed prefix",
			ErrBadKeyFormat)
	}
	return ParsePublicKeyCoords(b[1:33], b[33:65])
}

// ParsePublicKeyCoords applies the ParsePublicKey checks to bare
// 32-byte X and Y coordinates.
func ParsePublicKeyCoords(x32, y32 []byte) (*secp256k1.PublicKey, error) {
	if len(x32) != 32 || len(y32) != 32 {
		return nil, fmt.Errorf("%w: coordinates must be 32 bytes each",
			ErrBadKeyFormat)
	}

	var x, y secp256k1.FieldVal
	if x.SetByteSlice(x32) {
		return nil, fmt.Errorf("%w: x coordinate not below the field prime",
			ErrBadKeyFormat)
	}
	if y.SetByteSlice(y32) {
		return nil, fmt.Errorf("%w: y coordinate not below the field prime",
			ErrBadKeyFormat)
	}
	if x.IsZero() && y.IsZero() {
		return nil, ErrIsIdentity
	}

	// y^2 = x^3 + 7
	lhs := new(secp256k1.FieldVal).SquareVal(&y).Normalize()
	rhs := new(secp256k1.FieldVal).SquareVal(&x).Mul(&x).AddInt(7).Normalize()
	if !lhs.Equals(rhs) {
		return nil, ErrNotOnCurve
	}

	return secp256k1.NewPublicKey(&x, &y), nil
}

// SerializePrivateKey returns the 32-byte big-endian scalar in locked
// storage.
func SerializePrivateKey(priv *secp256k1.PrivateKey) *secure.Buffer {
	raw := priv.Serialize()
	out := secure.FromBytes(raw)
	secure.Zero(raw)
	return out
}

// SerializePublicKey returns the 65-byte uncompressed encoding
// 0x04 || X || Y.
func SerializePublicKey(pub *secp256k1.PublicKey) []byte {
	return pub.SerializeUncompressed()
}

// ComputePublicKey returns the 65-byte public point for a 32-byte
// private scalar.
func ComputePublicKey(priv32 []byte) ([]byte, error) {
	priv, err := ParsePrivateKey(priv32)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()
	return SerializePublicKey(priv.PubKey()), nil
}

// CheckMatch reports whether pub65 is byte-for-byte the public point of
// priv32. Malformed inputs simply do not match.
func CheckMatch(priv32, pub65 []byte) bool {
	derived, err := ComputePublicKey(priv32)
	if err != nil {
		return false
	}
	return bytes.Equal(derived, pub65)
}
