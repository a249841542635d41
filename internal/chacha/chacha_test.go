package chacha

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// RFC 8439 section 2.3.2: key 00..1f, counter 1,
// nonce 00:00:00:09:00:00:00:4a:00:00:00:00.
func rfcInput() [BlockSize]byte {
	var in [BlockSize]byte
	copy(in[:16], "expand 32-byte k")
	for i := 0; i < 32; i++ {
		in[16+i] = byte(i)
	}
	binary.LittleEndian.PutUint32(in[48:], 1)
	copy(in[52:], []byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00})
	return in
}

func TestBlockRFC8439Vector(t *testing.T) {
	want := []byte{
		0x10, 0xf1, 0xe7, 0xe4, 0xd1, 0x3b, 0x59, 0x15,
		0x50, 0x0f, 0xdd, 0x1f, 0xa3, 0x20, 0x71, 0xc4,
		0xc7, 0xd1, 0xf4, 0xc7, 0x33, 0xc0, 0x68, 0x03,
		0x04, 0x22, 0xaa, 0x9a, 0xc3, 0xd4, 0x6c, 0x4e,
		0xd2, 0x82, 0x64, 0x46, 0x07, 0x9f, 0xaa, 0x09,
		0x14, 0xc2, 0xd7, 0x05, 0xd9, 0x8b, 0x02, 0xa2,
		0xb5, 0x12, 0x9c, 0xd1, 0xde, 0x16, 0x4e, 0xb9,
		0xcb, 0xd0, 0x83, 0xe8, 0xa2, 0x50, 0x3c, 0x4e,
	}

	in := rfcInput()
	var out [BlockSize]byte
	Block(&out, &in, 20)

	if !bytes.Equal(out[:], want) {
		t.Errorf("ChaCha20 block mismatch\n got %x\nwant %x", out[:], want)
	}
}

func TestBlockDeterministic(t *testing.T) {
	in := rfcInput()
	var a, b [BlockSize]byte
	Block(&a, &in, 20)
	Block(&b, &in, 20)
	if a != b {
		t.Error("repeated calls with identical input differ")
	}
}

func TestBlockRoundsMatter(t *testing.T) {
	in := rfcInput()
	var r8, r12, r20 [BlockSize]byte
	Block(&r8, &in, 8)
	Block(&r12, &in, 12)
	Block(&r20, &in, 20)
	if r8 == r12 || r8 == r20 || r12 == r20 {
		t.Error("different round counts produced identical output")
	}
}

func TestBlockDoesNotClobberInput(t *testing.T) {
	in := rfcInput()
	orig := in
	var out [BlockSize]byte
	Block(&out, &in, 20)
	if in != orig {
		t.Error("input block was modified")
	}
}
