// Package chacha implements the raw ChaCha block function used by the
// entropy pool as its mixing permutation. The pool treats it as an
// opaque one-way function over a 64-byte block; nothing in here knows
// about keys, nonces or stream positions.
package chacha

import (
	"encoding/binary"
	"math/bits"
)

// BlockSize is the width of the permutation input and output, in bytes.
const BlockSize = 64

// Block runs the ChaCha block function: the input is read as sixteen
// little-endian words, mixed for the given number of rounds (two per
// double-round pass), and the original input words are added back in
// before serialisation. rounds must be even; 8, 12 and 20 are the
// usual choices.
func Block(out, in *[BlockSize]byte, rounds int) {
	var x, orig [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(in[i*4:])
		orig[i] = x[i]
	}

	for r := 0; r < rounds; r += 2 {
		// Column round.
		quarter(&x, 0, 4, 8, 12)
		quarter(&x, 1, 5, 9, 13)
		quarter(&x, 2, 6, 10, 14)
		quarter(&x, 3, 7, 11, 15)

		// Diagonal round.
		quarter(&x, 0, 5, 10, 15)
		quarter(&x, 1, 6, 11, 12)
		quarter(&x, 2, 7, 8, 13)
		quarter(&x, 3, 4, 9, 14)
	}

	for i := range x {
		binary.LittleEndian.PutUint32(out[i*4:], x[i]+orig[i])
	}
}

func quarter(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 7)
}
