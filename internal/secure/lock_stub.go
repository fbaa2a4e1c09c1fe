//go:build !unix

package secure

// Page-locking is unavailable on this platform; buffers still zeroize
// on release.

func lockMemory(buf []byte) {}

func unlockMemory(buf []byte) {}
