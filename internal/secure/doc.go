// Package secure provides a page-locked, self-zeroizing byte buffer used
// to carry every secret that crosses a walletcrypt API boundary.
//
// Contents
//
//   - Buffer, a variable-length byte container that keeps its backing
//     storage mlock'd while allocated and overwrites it with zeros on
//     Clear, Destroy and reallocation
//   - Constructors from raw bytes, strings, hex text and the platform
//     entropy source (New, FromBytes, FromString, FromHex, Random)
//   - Zero, a best-effort wipe for transient byte slices
//
// # Notes
//
// Page-locking is advisory hardening: a failed mlock is logged once per
// process and otherwise ignored. A Buffer is not internally synchronized;
// sharing one across goroutines requires external coordination.
// Independent Buffers are freely usable from different goroutines.
package secure
