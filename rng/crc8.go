package rng

// crc8 computes the one-byte integrity tag for persisted seeds: CRC-8
// with polynomial 0x1D, initialised from a domain-separation byte so
// tags computed for different purposes never collide by construction.
func crc8(domain byte, data []byte) byte {
	crc := domain
	for _, b := range data {
		crc ^= b
		for bit := 0; bit < 8; bit++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x1d
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
