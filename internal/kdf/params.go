package kdf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"walletcrypt/internal/secure"
)

const (
	// HashBytes is the output width of the internal hash (SHA-512) and
	// therefore the width of one lookup-table entry.
	HashBytes = 64

	// KeyBytes is the width of a derived key.
	KeyBytes = 32

	// SaltBytes is the recommended salt length; calibration always
	// generates salts of this size.
	SaltBytes = 32

	// MinMemory is the smallest legal lookup-table size.
	MinMemory = HashBytes

	// DefaultMaxMemory caps calibration at 32 MiB. Past that point the
	// table no longer buys extra GPU resistance and only hurts hosts
	// with small locked-memory budgets.
	DefaultMaxMemory = 32 * 1024 * 1024

	// headerLen is the fixed prefix of the serialized parameter block:
	// memory u32 LE, iterations u32 LE, salt length u8.
	headerLen = 9
)

// ErrBadParams reports illegal derivation parameters.
var ErrBadParams = errors.New("illegal kdf parameters")

// Params is the full derivation tuple a wallet header round-trips:
// lookup-table size in bytes, iteration count and salt.
type Params struct {
	Memory     uint32
	Iterations uint32
	Salt       *secure.Buffer
}

func (p Params) validate() error {
	switch {
	case p.Memory < MinMemory:
		return fmt.Errorf("%w: memory %d below %d bytes",
			ErrBadParams, p.Memory, MinMemory)
	case p.Memory%HashBytes != 0:
		return fmt.Errorf("%w: memory %d not a multiple of %d",
			ErrBadParams, p.Memory, HashBytes)
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations must be at least 1", ErrBadParams)
	}
	return nil
}

// saltBytes tolerates a nil salt so that zero-salt parameter blocks
// round-trip.
func (p Params) saltBytes() []byte {
	if p.Salt == nil {
		return nil
	}
	return p.Salt.Bytes()
}

// MarshalBinary encodes the parameters in the wallet-header layout:
// memory u32 LE || iterations u32 LE || salt length u8 || salt.
func (p Params) MarshalBinary() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	salt := p.saltBytes()
	if len(salt) > 0xFF {
		return nil, fmt.Errorf("%w: salt length %d exceeds 255",
			ErrBadParams, len(salt))
	}
	out := make([]byte, headerLen+len(salt))
	binary.LittleEndian.PutUint32(out[0:4], p.Memory)
	binary.LittleEndian.PutUint32(out[4:8], p.Iterations)
	out[8] = byte(len(salt))
	copy(out[headerLen:], salt)
	return out, nil
}

// UnmarshalBinary decodes a parameter block produced by MarshalBinary.
// The input must contain exactly one block.
func (p *Params) UnmarshalBinary(data []byte) error {
	parsed, rest, err := ParseParams(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		parsed.Salt.Destroy()
		return fmt.Errorf("%w: %d trailing bytes after parameter block",
			ErrBadParams, len(rest))
	}
	*p = parsed
	return nil
}

// ParseParams decodes one parameter block from the front of data and
// returns the unconsumed remainder, for hosts that store the block as a
// prefix of a larger wallet record. The salt is returned in fresh
// locked storage.
func ParseParams(data []byte) (Params, []byte, error) {
	if len(data) < headerLen {
		return Params{}, nil, fmt.Errorf(
			"%w: parameter block truncated at %d bytes",
			ErrBadParams, len(data))
	}
	saltLen := int(data[8])
	if len(data) < headerLen+saltLen {
		return Params{}, nil, fmt.Errorf(
			"%w: salt truncated (%d of %d bytes)",
			ErrBadParams, len(data)-headerLen, saltLen)
	}
	p := Params{
		Memory:     binary.LittleEndian.Uint32(data[0:4]),
		Iterations: binary.LittleEndian.Uint32(data[4:8]),
		Salt:       secure.FromBytes(data[headerLen : headerLen+saltLen]),
	}
	if err := p.validate(); err != nil {
		p.Salt.Destroy()
		return Params{}, nil, err
	}
	return p, data[headerLen+saltLen:], nil
}
