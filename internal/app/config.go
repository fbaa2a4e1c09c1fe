package app

import (
	"time"

	"walletcrypt/internal/kdf"
)

// Config holds the tunables for building a freshly calibrated App.
type Config struct {
	// KDFTarget is the wall-clock a full derivation should cost on this
	// host. Zero selects kdf.DefaultTarget.
	KDFTarget time.Duration

	// KDFMaxMemory caps the lookup-table size chosen by calibration.
	// Zero selects kdf.DefaultMaxMemory.
	KDFMaxMemory uint32
}

func (c Config) withDefaults() Config {
	if c.KDFTarget <= 0 {
		c.KDFTarget = kdf.DefaultTarget
	}
	if c.KDFMaxMemory == 0 {
		c.KDFMaxMemory = kdf.DefaultMaxMemory
	}
	return c
}
