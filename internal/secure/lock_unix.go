//go:build unix

package secure

import (
	"sync"

	"golang.org/x/sys/unix"
)

var lockWarnOnce sync.Once

// lockMemory pins buf against paging to disk. Locking is a hardening,
// not a correctness requirement: when the per-process locked-memory
// budget is exhausted the failure is logged once and the buffer carries
// on with unlocked storage.
func lockMemory(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if err := unix.Mlock(buf); err != nil {
		lockWarnOnce.Do(func() {
			log.Warnf("unable to page-lock secret storage "+
				"(RLIMIT_MEMLOCK exhausted?), continuing unlocked: %v",
				err)
		})
	}
}

// unlockMemory releases the pin established by lockMemory. The buffer
// must already be zeroized.
func unlockMemory(buf []byte) {
	if len(buf) == 0 {
		return
	}
	// A buffer that never locked successfully makes this a no-op error;
	// either way there is nothing further to do.
	_ = unix.Munlock(buf)
}
