package noise

import (
	"crypto/rand"

	"github.com/avaropoint/entropy/rng"
)

// OS feeds kernel CSPRNG bytes into the pool on every housekeeping
// pass, asserting full credit. Hosts with a trustworthy kernel entropy
// pool saturate the engine almost immediately; constrained targets
// without one leave this source out.
type OS struct {
	// Chunk is the number of bytes fed per pass. Defaults to 32.
	Chunk int
}

func (s *OS) Added() {}

func (s *OS) Stir(pool rng.Stirrer) {
	n := s.Chunk
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return
	}
	pool.Stir(buf, uint(n)*8)
}
