package kdf

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"time"

	"walletcrypt/internal/secure"
)

const (
	// hashName records the internal hash for wallet headers and
	// diagnostics; the implementation is fixed to SHA-512.
	hashName = "SHA-512"

	// calibrateStartMemory is where the doubling search begins: 1 KiB,
	// sixteen table entries.
	calibrateStartMemory = 1024

	// DefaultTarget is the derivation wall-clock the calibration aims
	// for when the caller does not specify one.
	DefaultTarget = 250 * time.Millisecond
)

// Romix derives keys with the ROMix memory-hard function. An instance
// is configured exactly once and holds a preallocated scratch table of
// Params.Memory bytes which is reused across derivations, so a single
// instance must not be used concurrently. The table is zeroized when
// the instance is destroyed.
type Romix struct {
	params   Params
	seqCount uint32
	lookup   *secure.Buffer
}

// New returns an unconfigured instance. Call ComputeParams or
// UsePrecomputedParams before deriving.
func New() *Romix {
	return &Romix{}
}

// NewPrecomputed returns an instance configured from stored wallet
// parameters. The salt is copied; the caller keeps ownership of its
// buffer.
func NewPrecomputed(memory, iterations uint32, salt *secure.Buffer) (*Romix, error) {
	k := New()
	if err := k.UsePrecomputedParams(memory, iterations, salt); err != nil {
		return nil, err
	}
	return k, nil
}

// UsePrecomputedParams configures the instance from parameters stored
// in a wallet header, bypassing calibration.
func (k *Romix) UsePrecomputedParams(memory, iterations uint32, salt *secure.Buffer) error {
	saltCopy := salt.Copy()
	if err := k.setParams(Params{
		Memory:     memory,
		Iterations: iterations,
		Salt:       saltCopy,
	}); err != nil {
		saltCopy.Destroy()
		return err
	}
	return nil
}

// ComputeParams selects derivation parameters for this host: the table
// doubles from 1 KiB until a single pass costs at least a quarter of
// the target or the next doubling would exceed maxMemory, then an
// iteration count is chosen that lands the full
// derivation between target/2 and target. A fresh random salt is
// generated. Zero arguments select DefaultTarget and DefaultMaxMemory.
func (k *Romix) ComputeParams(target time.Duration, maxMemory uint32) error {
	if k.lookup != nil {
		return fmt.Errorf("%w: parameters already set", ErrBadParams)
	}
	if target <= 0 {
		target = DefaultTarget
	}
	if maxMemory == 0 {
		maxMemory = DefaultMaxMemory
	}
	maxMemory -= maxMemory % HashBytes
	if maxMemory < MinMemory {
		return fmt.Errorf("%w: memory ceiling %d below %d bytes",
			ErrBadParams, maxMemory, MinMemory)
	}

	salt, err := secure.Random(SaltBytes)
	if err != nil {
		return err
	}

	memory := uint32(calibrateStartMemory)
	if memory > maxMemory {
		memory = maxMemory
	}

	// Time single passes while doubling the table. The scratch table is
	// allocated before each measurement so first-touch page faults do
	// not distort the sample.
	sample := secure.FromString("calibration sample passphrase")
	defer sample.Destroy()

	var onePass time.Duration
	for {
		if err := k.setParams(Params{
			Memory:     memory,
			Iterations: 1,
			Salt:       salt,
		}); err != nil {
			salt.Destroy()
			return err
		}

		start := time.Now()
		key, err := k.DeriveOneIter(sample)
		if err != nil {
			k.resetParams()
			salt.Destroy()
			return err
		}
		onePass = time.Since(start)
		key.Destroy()

		if onePass >= target/4 || uint64(memory)*2 > uint64(maxMemory) {
			break
		}
		k.resetParams()
		memory *= 2
	}

	iterations := uint32(1)
	if onePass > 0 {
		if n := target.Nanoseconds() / onePass.Nanoseconds(); n > 1 {
			iterations = uint32(n)
		}
	}
	k.params.Iterations = iterations

	log.Debugf("calibrated kdf: memory=%d iterations=%d onePass=%v",
		memory, iterations, onePass)
	return nil
}

// setParams installs validated parameters and allocates the scratch
// table. The instance takes ownership of p.Salt.
func (k *Romix) setParams(p Params) error {
	if k.lookup != nil {
		return fmt.Errorf("%w: parameters already set", ErrBadParams)
	}
	if err := p.validate(); err != nil {
		return err
	}
	k.params = p
	k.seqCount = p.Memory / HashBytes
	k.lookup = secure.New(int(p.Memory))
	return nil
}

// resetParams releases the scratch table so calibration can retry at a
// different size. The salt is owned by the calibration loop.
func (k *Romix) resetParams() {
	k.lookup.Destroy()
	k.lookup = nil
	k.params = Params{}
	k.seqCount = 0
}

// Params returns the configured parameters. The salt buffer is shared
// with the instance; callers serializing a wallet header must not
// destroy it.
func (k *Romix) Params() Params { return k.params }

// HashName names the internal hash function.
func (k *Romix) HashName() string { return hashName }

// SequenceCount returns the number of 64-byte lookup-table entries.
func (k *Romix) SequenceCount() uint32 { return k.seqCount }

// String summarizes the configured parameters for diagnostics. The
// salt is included: it is stored in the clear in wallet headers and is
// not a secret.
func (k *Romix) String() string {
	if k.lookup == nil {
		return "kdf.Romix(unconfigured)"
	}
	return fmt.Sprintf("kdf.Romix(%s, memory=%d, sequences=%d, iterations=%d, salt=%x)",
		hashName, k.params.Memory, k.seqCount, k.params.Iterations,
		k.params.saltBytes())
}

// DeriveOneIter runs a single ROMix pass over the password and returns
// the first KeyBytes of the final state in fresh locked storage.
func (k *Romix) DeriveOneIter(password *secure.Buffer) (*secure.Buffer, error) {
	if k.lookup == nil {
		return nil, fmt.Errorf("%w: parameters not set", ErrBadParams)
	}

	table := k.lookup.Bytes()
	seq := uint64(k.seqCount)

	h := sha512.New()
	h.Write(password.Bytes())
	h.Write(k.params.saltBytes())
	var x [HashBytes]byte
	h.Sum(x[:0])

	// Fill phase: table[i] = H^i(X).
	for i := uint64(0); i < seq; i++ {
		copy(table[i*HashBytes:(i+1)*HashBytes], x[:])
		x = sha512.Sum512(x[:])
	}

	// Mix phase: follow the pseudorandom walk the state dictates,
	// folding one table entry into the state per step.
	var mixed [HashBytes]byte
	for i := uint64(0); i < seq; i++ {
		j := binary.LittleEndian.Uint64(x[:8]) % seq
		entry := table[j*HashBytes : (j+1)*HashBytes]
		for b := range mixed {
			mixed[b] = x[b] ^ entry[b]
		}
		x = sha512.Sum512(mixed[:])
	}

	key := secure.FromBytes(x[:KeyBytes])
	secure.Zero(x[:])
	secure.Zero(mixed[:])
	return key, nil
}

// Derive applies DeriveOneIter Params.Iterations times, feeding each
// output to the next pass, and returns the final KeyBytes-wide key.
func (k *Romix) Derive(password *secure.Buffer) (*secure.Buffer, error) {
	if k.lookup == nil {
		return nil, fmt.Errorf("%w: parameters not set", ErrBadParams)
	}

	current := password
	for i := uint32(0); i < k.params.Iterations; i++ {
		next, err := k.DeriveOneIter(current)
		if err != nil {
			if current != password {
				current.Destroy()
			}
			return nil, err
		}
		if current != password {
			current.Destroy()
		}
		current = next
	}
	return current, nil
}

// Destroy zeroizes the scratch table and salt and leaves the instance
// unusable.
func (k *Romix) Destroy() {
	if k.lookup != nil {
		k.lookup.Destroy()
		k.lookup = nil
	}
	if k.params.Salt != nil {
		k.params.Salt.Destroy()
	}
	k.params = Params{}
	k.seqCount = 0
}
