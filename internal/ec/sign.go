package ec

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"walletcrypt/internal/secure"
)

// SignatureBytes is the serialized signature width: r || s, each a
// 32-byte big-endian value.
const SignatureBytes = 64

// Sign hashes message with SHA-256 and signs the digest with the
// 32-byte private scalar held in priv. The nonce is deterministic per
// RFC 6979, so equal inputs produce equal signatures and nonce reuse
// across distinct messages cannot occur. The returned signature is
// r || s with s in the low half of the order.
func Sign(message []byte, priv *secure.Buffer) ([]byte, error) {
	key, err := ParsePrivateKey(priv.Bytes())
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	digest := sha256.Sum256(message)

	// The compact serialization is header || r || s with both values
	// already normalized to the low-s form; drop the recovery header.
	compact := secpecdsa.SignCompact(key, digest[:], true)
	sig := make([]byte, SignatureBytes)
	copy(sig, compact[1:])
	secure.Zero(compact)
	return sig, nil
}

// Verify reports whether sig64 is a valid signature over the SHA-256
// digest of message for the 65-byte public key. Both low- and high-s
// encodings are accepted. Every malformed input yields false rather
// than an error: at this boundary a corrupt signature and an invalid
// one are the same answer.
func Verify(message, sig64, pub65 []byte) bool {
	if len(sig64) != SignatureBytes {
		return false
	}
	pub, err := ParsePublicKey(pub65)
	if err != nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig64[:32]) || r.IsZero() {
		return false
	}
	if s.SetByteSlice(sig64[32:]) || s.IsZero() {
		return false
	}

	digest := sha256.Sum256(message)
	return secpecdsa.NewSignature(&r, &s).Verify(digest[:], pub)
}
