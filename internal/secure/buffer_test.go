package secure

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDestroyZeroizesBackingStorage(t *testing.T) {
	b := FromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	alias := b.Bytes()
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, alias)

	b.Destroy()
	require.Equal(t, make([]byte, 4), alias)
	require.Zero(t, b.Len())
	require.Zero(t, b.Cap())
}

func TestReallocationZeroizesOldStorage(t *testing.T) {
	b := FromBytes([]byte{1, 2, 3, 4})
	old := b.Bytes()

	b.Resize(1024)
	require.Equal(t, make([]byte, 4), old)
	require.Equal(t, []byte{1, 2, 3, 4}, b.Bytes()[:4])
	require.Equal(t, make([]byte, 1020), b.Bytes()[4:])
	b.Destroy()
}

func TestCopyIndependence(t *testing.T) {
	orig := FromBytes([]byte{1, 2, 3})
	defer orig.Destroy()

	dup := orig.Copy()
	defer dup.Destroy()
	require.True(t, orig.Equal(dup))

	dup.Bytes()[0] = 9
	require.Equal(t, byte(1), orig.Bytes()[0])

	orig.Bytes()[2] = 7
	require.Equal(t, byte(3), dup.Bytes()[2])
}

func TestHexRoundTrip(t *testing.T) {
	for _, src := range [][]byte{
		nil,
		{0x00},
		{0xFF, 0x00, 0x7F},
		bytes.Repeat([]byte{0xAB}, 100),
	} {
		b := FromBytes(src)
		back, err := FromHex(b.Hex())
		require.NoError(t, err)
		require.True(t, b.Equal(back))
		b.Destroy()
		back.Destroy()
	}
}

func TestFromHexRejectsBadInput(t *testing.T) {
	_, err := FromHex("abc")
	require.ErrorIs(t, err, ErrBadEncoding)

	_, err = FromHex("zz")
	require.ErrorIs(t, err, ErrBadEncoding)
}

func TestResizeShrinkWipesTail(t *testing.T) {
	b := FromBytes([]byte{1, 2, 3, 4})
	defer b.Destroy()

	b.Resize(2)
	require.Equal(t, 2, b.Len())

	// Growing back inside the retained capacity must expose zeros, not
	// the old tail.
	b.Resize(4)
	require.Equal(t, []byte{1, 2, 0, 0}, b.Bytes())
}

func TestReserveKeepsContents(t *testing.T) {
	b := FromBytes([]byte{5, 6})
	defer b.Destroy()

	b.Reserve(128)
	require.Equal(t, 2, b.Len())
	require.GreaterOrEqual(t, b.Cap(), 128)
	require.Equal(t, []byte{5, 6}, b.Bytes())
}

func TestFillAndClear(t *testing.T) {
	b := New(4)
	b.Fill(0xAA)
	require.Equal(t, bytes.Repeat([]byte{0xAA}, 4), b.Bytes())

	capBefore := b.Cap()
	b.Clear()
	require.Zero(t, b.Len())
	require.Equal(t, capBefore, b.Cap())

	// The cleared capacity must read back as zeros.
	b.Resize(4)
	require.Equal(t, make([]byte, 4), b.Bytes())
	b.Destroy()
}

func TestAppendAndConcat(t *testing.T) {
	a := FromBytes([]byte{1, 2})
	c := FromBytes([]byte{3, 4, 5})
	defer a.Destroy()
	defer c.Destroy()

	joined := a.Concat(c)
	defer joined.Destroy()
	require.Equal(t, []byte{1, 2, 3, 4, 5}, joined.Bytes())
	require.Equal(t, []byte{1, 2}, a.Bytes())
	require.Equal(t, []byte{3, 4, 5}, c.Bytes())

	a.Append(c)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, a.Bytes())

	a.Append(a)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}, a.Bytes())
}

func TestEqual(t *testing.T) {
	a := FromBytes([]byte{1, 2, 3})
	b := FromBytes([]byte{1, 2, 3})
	c := FromBytes([]byte{1, 2, 4})
	d := FromBytes([]byte{1, 2})
	defer a.Destroy()
	defer b.Destroy()
	defer c.Destroy()
	defer d.Destroy()

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(d))
	require.False(t, a.Equal(nil))
}

func TestRandom(t *testing.T) {
	a, err := Random(32)
	require.NoError(t, err)
	defer a.Destroy()
	require.Equal(t, 32, a.Len())

	b, err := Random(32)
	require.NoError(t, err)
	defer b.Destroy()
	require.False(t, a.Equal(b))
}

func TestStringDoesNotLeakContents(t *testing.T) {
	b := FromBytes([]byte("hunter2"))
	defer b.Destroy()
	require.NotContains(t, b.String(), "hunter2")
}
