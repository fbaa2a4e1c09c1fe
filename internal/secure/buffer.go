package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrBadEncoding reports hex input that cannot be decoded.
	ErrBadEncoding = errors.New("malformed hex encoding")

	// ErrEntropyUnavailable reports that the platform entropy source
	// failed to produce random bytes.
	ErrEntropyUnavailable = errors.New("platform entropy unavailable")
)

// Buffer is a byte container for key material. Its backing storage is
// page-locked while allocated and every byte is zeroized before the
// storage is released or abandoned by a reallocation.
//
// The zero value is an empty buffer with no locked storage.
type Buffer struct {
	// data holds the logical contents; the full capacity data[:cap] is
	// the locked region.
	data []byte
}

// New returns a zero-filled buffer of the given size.
func New(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	return &Buffer{data: allocLocked(size, size)}
}

// FromBytes returns a buffer holding a copy of src. The source slice is
// left untouched; callers holding secrets in src should Zero it
// themselves once the copy is made.
func FromBytes(src []byte) *Buffer {
	b := &Buffer{data: allocLocked(len(src), len(src))}
	copy(b.data, src)
	return b
}

// FromString returns a buffer holding a copy of the bytes of s.
func FromString(s string) *Buffer {
	b := &Buffer{data: allocLocked(len(s), len(s))}
	copy(b.data, s)
	return b
}

// FromHex decodes an even-length hex string directly into locked
// storage. It returns ErrBadEncoding on odd length or a non-hex digit.
func FromHex(text string) (*Buffer, error) {
	if len(text)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrBadEncoding, len(text))
	}
	b := &Buffer{data: allocLocked(len(text)/2, len(text)/2)}
	if _, err := hex.Decode(b.data, []byte(text)); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return b, nil
}

// Random returns a buffer filled with n cryptographically strong random
// bytes. It returns ErrEntropyUnavailable if the entropy source fails.
func Random(n int) (*Buffer, error) {
	b := New(n)
	if _, err := rand.Read(b.data); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return b, nil
}

// Len returns the logical length in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the locked capacity in bytes.
func (b *Buffer) Cap() int { return cap(b.data) }

// Bytes returns a view of the contents, not a copy. The view is
// invalidated by Resize, Append, Clear and Destroy.
func (b *Buffer) Bytes() []byte { return b.data }

// Hex returns the contents as a lowercase hex string. The returned
// string is ordinary unlocked memory.
func (b *Buffer) Hex() string { return hex.EncodeToString(b.data) }

// String identifies the buffer without exposing its contents, so that
// accidental formatting of a Buffer cannot leak a secret.
func (b *Buffer) String() string {
	return fmt.Sprintf("secure.Buffer(%d bytes)", len(b.data))
}

// Resize sets the logical length to n. Growth beyond the current
// capacity moves the contents into fresh locked storage and zeroizes
// the old allocation; new bytes are zero. Shrinking wipes the abandoned
// tail but keeps the storage.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	switch {
	case n <= len(b.data):
		Zero(b.data[n:len(b.data)])
		b.data = b.data[:n]
	case n <= cap(b.data):
		b.data = b.data[:n]
	default:
		b.relocate(n, n)
	}
}

// Reserve grows the locked capacity to at least n without changing the
// contents or the logical length.
func (b *Buffer) Reserve(n int) {
	if n <= cap(b.data) {
		return
	}
	b.relocate(len(b.data), n)
}

// relocate moves the contents into a fresh locked allocation of the
// given size and capacity, then zeroizes and unlocks the old storage.
func (b *Buffer) relocate(size, capacity int) {
	next := allocLocked(size, capacity)
	copy(next, b.data)
	b.release()
	b.data = next
}

// Fill overwrites every byte of the logical contents with v.
func (b *Buffer) Fill(v byte) {
	for i := range b.data {
		b.data[i] = v
	}
}

// Clear zeroizes the full capacity and sets the length to zero. The
// locked storage is retained for reuse.
func (b *Buffer) Clear() {
	full := b.data[:cap(b.data)]
	Zero(full)
	b.data = full[:0]
}

// Append copies the contents of other onto the end of b, reallocating
// into larger locked storage when needed.
func (b *Buffer) Append(other *Buffer) {
	if other == nil || other.Len() == 0 {
		return
	}
	if other == b {
		// Self-append would read from storage a reallocation has
		// already wiped; work from a snapshot.
		dup := b.Copy()
		defer dup.Destroy()
		other = dup
	}
	need := len(b.data) + len(other.data)
	if need > cap(b.data) {
		b.relocate(len(b.data), need)
	}
	b.data = append(b.data, other.data...)
}

// Concat returns a new buffer holding b followed by other. Neither
// input is modified.
func (b *Buffer) Concat(other *Buffer) *Buffer {
	out := &Buffer{data: allocLocked(b.Len()+other.Len(), b.Len()+other.Len())}
	n := copy(out.data, b.data)
	copy(out.data[n:], other.data)
	return out
}

// Copy returns an independent locked clone of b.
func (b *Buffer) Copy() *Buffer { return FromBytes(b.data) }

// Equal reports whether b and other hold identical contents. The byte
// comparison runs in constant time for equal lengths.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return b == nil || len(b.data) == 0
	}
	return subtle.ConstantTimeCompare(b.data, other.data) == 1
}

// Destroy zeroizes the full capacity, unlocks the storage and detaches
// it from the buffer. The buffer reverts to the empty zero value and
// may be reused.
func (b *Buffer) Destroy() {
	b.release()
	b.data = nil
}

// release wipes and unlocks the current storage without resetting data;
// callers either reassign or nil it out.
func (b *Buffer) release() {
	if cap(b.data) == 0 {
		return
	}
	full := b.data[:cap(b.data)]
	Zero(full)
	unlockMemory(full)
}

// allocLocked allocates a slice with the exact requested capacity and
// page-locks the full capacity region.
func allocLocked(size, capacity int) []byte {
	if capacity == 0 {
		return nil
	}
	buf := make([]byte, size, capacity)
	lockMemory(buf[:cap(buf)])
	return buf
}
