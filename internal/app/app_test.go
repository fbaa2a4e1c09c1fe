package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"walletcrypt/internal/aescfb"
	"walletcrypt/internal/kdf"
	"walletcrypt/internal/secure"
)

// testApp builds an App around small precomputed KDF parameters so the
// tests stay fast and deterministic.
func testApp(t *testing.T) *App {
	t.Helper()
	salt, err := secure.Random(kdf.SaltBytes)
	require.NoError(t, err)
	defer salt.Destroy()

	a, err := Open(4096, 2, salt)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestSealOpenRoundTrip(t *testing.T) {
	a := testApp(t)

	password := secure.FromString("correct horse battery staple")
	defer password.Destroy()
	priv, err := secure.Random(32)
	require.NoError(t, err)
	defer priv.Destroy()

	sealed, err := a.SealKey(password, priv)
	require.NoError(t, err)
	require.Len(t, sealed.IV, aescfb.IVBytes)
	require.Len(t, sealed.Ciphertext, priv.Len())

	opened, err := a.OpenKey(password, sealed)
	require.NoError(t, err)
	defer opened.Destroy()
	require.True(t, priv.Equal(opened))
}

func TestWrongPasswordYieldsGarbage(t *testing.T) {
	a := testApp(t)

	password := secure.FromString("right")
	defer password.Destroy()
	wrong := secure.FromString("wrong")
	defer wrong.Destroy()

	priv, err := secure.Random(32)
	require.NoError(t, err)
	defer priv.Destroy()

	sealed, err := a.SealKey(password, priv)
	require.NoError(t, err)

	opened, err := a.OpenKey(wrong, sealed)
	require.NoError(t, err)
	defer opened.Destroy()
	require.False(t, priv.Equal(opened))
}

func TestFreshIVPerSeal(t *testing.T) {
	a := testApp(t)

	password := secure.FromString("pw")
	defer password.Destroy()
	priv, err := secure.Random(32)
	require.NoError(t, err)
	defer priv.Destroy()

	first, err := a.SealKey(password, priv)
	require.NoError(t, err)
	second, err := a.SealKey(password, priv)
	require.NoError(t, err)
	require.NotEqual(t, first.IV, second.IV)
	require.NotEqual(t, first.Ciphertext, second.Ciphertext)
}

func TestSealedKeyMarshalRoundTrip(t *testing.T) {
	orig := &SealedKey{
		IV:         make([]byte, aescfb.IVBytes),
		Ciphertext: []byte{1, 2, 3, 4, 5},
	}
	blob, err := orig.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, blob, aescfb.IVBytes+5)

	var back SealedKey
	require.NoError(t, back.UnmarshalBinary(blob))
	require.Equal(t, orig.IV, back.IV)
	require.Equal(t, orig.Ciphertext, back.Ciphertext)

	require.ErrorIs(t, back.UnmarshalBinary(blob[:8]), ErrBadEnvelope)
}

func TestHeaderRestoredAppOpensSeal(t *testing.T) {
	// Seal with a calibrated-style App, persist the parameter block,
	// then rebuild from the header and open.
	salt, err := secure.Random(kdf.SaltBytes)
	require.NoError(t, err)
	defer salt.Destroy()

	sealer, err := Open(4096, 3, salt)
	require.NoError(t, err)
	defer sealer.Close()

	password := secure.FromString("walletpass")
	defer password.Destroy()
	priv, err := secure.Random(32)
	require.NoError(t, err)
	defer priv.Destroy()

	sealed, err := sealer.SealKey(password, priv)
	require.NoError(t, err)
	header, err := sealer.KDF.Params().MarshalBinary()
	require.NoError(t, err)
	envelope, err := sealed.MarshalBinary()
	require.NoError(t, err)
	record := append(header, envelope...)

	// Host side: reparse the record and reconstruct everything.
	params, rest, err := kdf.ParseParams(record)
	require.NoError(t, err)
	defer params.Salt.Destroy()

	var restored SealedKey
	require.NoError(t, restored.UnmarshalBinary(rest))

	opener, err := Open(params.Memory, params.Iterations, params.Salt)
	require.NoError(t, err)
	defer opener.Close()

	opened, err := opener.OpenKey(password, &restored)
	require.NoError(t, err)
	defer opened.Destroy()
	require.True(t, priv.Equal(opened))
}
