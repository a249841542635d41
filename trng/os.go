package trng

import (
	"crypto/rand"
	"encoding/binary"
)

// OS reads words from the operating system CSPRNG. On hosts with a
// kernel entropy pool this is the strongest source available; bare
// metal builds leave it out and use Jitter or a register-backed
// source instead.
type OS struct{}

func NewOS() *OS {
	return &OS{}
}

func (*OS) PollWord() (uint32, bool) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf[:]), true
}
