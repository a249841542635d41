package rng

import (
	"encoding/binary"

	"github.com/avaropoint/entropy/internal/chacha"
)

const (
	// poolSize is the number of secret state bytes fed to the
	// permutation after the fixed domain prefix.
	poolSize = 48

	// counterOffset locates the 32-bit block counter inside the pool.
	// The counter is incremented before every permutation call and
	// never reset.
	counterOffset = 32

	// perturbOffset locates the word that is XOR-perturbed with a
	// fine-grained timer sample during rekey, for request-to-request
	// variation on top of the deterministic counter.
	perturbOffset = 36
)

// domainPrefix occupies the first sixteen bytes of every permutation
// input block. It is the standard constant identifying 256-bit ChaCha
// keys and is never secret and never mutated.
var domainPrefix = [16]byte{
	'e', 'x', 'p', 'a', 'n', 'd', ' ', '3',
	'2', '-', 'b', 'y', 't', 'e', ' ', 'k',
}

// initPool is the deterministic starting value for the secret region:
// the ChaCha20 output of hashing the domain prefix followed by the
// byte sequence 1..48, truncated to 48 bytes. It starts the pool in a
// semi-chaotic state when no saved seed is available. The value is not
// secret.
var initPool = [poolSize]byte{
	0xB0, 0x2A, 0xAE, 0x7D, 0xEE, 0xCB, 0xBB, 0xB1,
	0xFC, 0x03, 0x6F, 0xDD, 0xDC, 0x7D, 0x76, 0x67,
	0x0C, 0xE8, 0x1F, 0x0D, 0xA3, 0xA0, 0xAA, 0x1E,
	0xB0, 0xBD, 0x72, 0x6B, 0x2B, 0x4C, 0x8A, 0x7E,
	0x34, 0xFC, 0x37, 0x60, 0xF4, 0x1E, 0x22, 0xA0,
	0x0B, 0xFB, 0x18, 0x84, 0x60, 0xA5, 0x77, 0x72,
}

// mixState is the permutation input block in structured form: the
// constant domain prefix plus the mutable 48-byte secret region.
// Serialisation to the flat 64-byte block happens only at the
// permutation boundary.
type mixState struct {
	pool [poolSize]byte
}

// reset loads the fixed semi-chaotic baseline.
func (s *mixState) reset() {
	s.pool = initPool
}

// incrementCounter bumps the low counter word ahead of a permutation
// call.
func (s *mixState) incrementCounter() {
	w := binary.LittleEndian.Uint32(s.pool[counterOffset:])
	binary.LittleEndian.PutUint32(s.pool[counterOffset:], w+1)
}

// perturb folds a fine-grained timer sample into the designated word.
func (s *mixState) perturb(sample uint32) {
	w := binary.LittleEndian.Uint32(s.pool[perturbOffset:])
	binary.LittleEndian.PutUint32(s.pool[perturbOffset:], w^sample)
}

// xor folds data onto the front of the secret region. Callers pass at
// most poolSize bytes per call.
func (s *mixState) xor(data []byte) {
	for i, b := range data {
		s.pool[i] ^= b
	}
}

// xorWord folds a 32-bit sample into pool word i (0..11).
func (s *mixState) xorWord(i int, sample uint32) {
	off := i * 4
	w := binary.LittleEndian.Uint32(s.pool[off:])
	binary.LittleEndian.PutUint32(s.pool[off:], w^sample)
}

// serialize assembles the flat permutation input block.
func (s *mixState) serialize(block *[chacha.BlockSize]byte) {
	copy(block[:len(domainPrefix)], domainPrefix[:])
	copy(block[len(domainPrefix):], s.pool[:])
}

// adopt replaces the secret region with the first poolSize bytes of a
// permutation output block, discarding the old region entirely.
func (s *mixState) adopt(stream *[chacha.BlockSize]byte) {
	copy(s.pool[:], stream[:poolSize])
}

// wipe overwrites the secret region in place.
func (s *mixState) wipe() {
	for i := range s.pool {
		s.pool[i] = 0
	}
}
