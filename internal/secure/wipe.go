package secure

import "crypto/subtle"

// Zero overwrites b with zeros in a constant-time friendly way. Use it
// for transient slices that hold secrets outside a Buffer, such as hash
// state copied onto the stack.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}
