package aescfb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"walletcrypt/internal/secure"
)

func testKey(t *testing.T, n int) *secure.Buffer {
	t.Helper()
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = byte(i)
	}
	b := secure.FromBytes(raw)
	t.Cleanup(b.Destroy)
	return b
}

func TestKnownVector(t *testing.T) {
	// AES-256-CFB of the 43-byte pangram under key 00..1f and an
	// all-0xFF IV, cross-checked against OpenSSL.
	key := testKey(t, 32)
	iv := secure.New(IVBytes)
	defer iv.Destroy()
	iv.Fill(0xFF)

	plaintext := secure.FromString("The quick brown fox jumps over the lazy dog")
	defer plaintext.Destroy()

	ct, err := Encrypt(plaintext, key, iv)
	require.NoError(t, err)
	defer ct.Destroy()
	require.Equal(t, plaintext.Len(), ct.Len())
	require.Equal(t,
		"bdf1813d3dd219b938a7730932f839ce7605dee3a50cb5920485f712"+
			"c150a73b5c39187ddc126caa8a5e0c",
		ct.Hex())

	pt, err := Decrypt(ct, key, iv)
	require.NoError(t, err)
	defer pt.Destroy()
	require.True(t, plaintext.Equal(pt))
}

func TestRoundTripAllKeySizes(t *testing.T) {
	iv, err := secure.Random(IVBytes)
	require.NoError(t, err)
	defer iv.Destroy()

	msg := secure.FromString("wallet private key material")
	defer msg.Destroy()

	for _, keyLen := range []int{16, 24, 32} {
		key := testKey(t, keyLen)

		ct, err := Encrypt(msg, key, iv)
		require.NoError(t, err)
		require.Equal(t, msg.Len(), ct.Len())

		pt, err := Decrypt(ct, key, iv)
		require.NoError(t, err)
		require.True(t, msg.Equal(pt))
		ct.Destroy()
		pt.Destroy()
	}
}

func TestRoundTripLengths(t *testing.T) {
	key := testKey(t, 32)
	iv, err := secure.Random(IVBytes)
	require.NoError(t, err)
	defer iv.Destroy()

	// Stream mode: every length round-trips without padding, block
	// boundaries included.
	for _, n := range []int{0, 1, 15, 16, 17, 32, 100} {
		msg, err := secure.Random(n)
		require.NoError(t, err)

		ct, err := Encrypt(msg, key, iv)
		require.NoError(t, err)
		require.Equal(t, n, ct.Len())

		pt, err := Decrypt(ct, key, iv)
		require.NoError(t, err)
		require.True(t, msg.Equal(pt))
		msg.Destroy()
		ct.Destroy()
		pt.Destroy()
	}
}

func TestBadKeyLength(t *testing.T) {
	iv := secure.New(IVBytes)
	defer iv.Destroy()
	msg := secure.FromString("m")
	defer msg.Destroy()

	for _, n := range []int{0, 8, 15, 17, 33, 64} {
		key := secure.New(n)
		_, err := Encrypt(msg, key, iv)
		require.ErrorIs(t, err, ErrBadKeyLength)
		_, err = Decrypt(msg, key, iv)
		require.ErrorIs(t, err, ErrBadKeyLength)
		key.Destroy()
	}
}

func TestBadIvLength(t *testing.T) {
	key := testKey(t, 32)
	msg := secure.FromString("m")
	defer msg.Destroy()

	for _, n := range []int{0, 15, 17, 32} {
		iv := secure.New(n)
		_, err := Encrypt(msg, key, iv)
		require.ErrorIs(t, err, ErrBadIvLength)
		_, err = Decrypt(msg, key, iv)
		require.ErrorIs(t, err, ErrBadIvLength)
		iv.Destroy()
	}
}

func TestKeySensitivity(t *testing.T) {
	key := testKey(t, 32)
	iv := secure.New(IVBytes)
	defer iv.Destroy()

	msg := secure.FromString("The quick brown fox jumps over the lazy dog")
	defer msg.Destroy()

	ct, err := Encrypt(msg, key, iv)
	require.NoError(t, err)
	defer ct.Destroy()

	wrongKey := key.Copy()
	defer wrongKey.Destroy()
	wrongKey.Bytes()[0] ^= 0x01

	pt, err := Decrypt(ct, wrongKey, iv)
	require.NoError(t, err)
	defer pt.Destroy()
	require.False(t, msg.Equal(pt))
}

func TestInputsNotMutated(t *testing.T) {
	key := testKey(t, 32)
	keySnapshot := append([]byte(nil), key.Bytes()...)

	iv := secure.New(IVBytes)
	defer iv.Destroy()
	iv.Fill(0x42)
	ivSnapshot := append([]byte(nil), iv.Bytes()...)

	msg := secure.FromString("immutable inputs")
	defer msg.Destroy()
	msgSnapshot := append([]byte(nil), msg.Bytes()...)

	ct, err := Encrypt(msg, key, iv)
	require.NoError(t, err)
	ct.Destroy()

	require.True(t, bytes.Equal(keySnapshot, key.Bytes()))
	require.True(t, bytes.Equal(ivSnapshot, iv.Bytes()))
	require.True(t, bytes.Equal(msgSnapshot, msg.Bytes()))
}
