package noise

import "testing"

// recorder captures what a source pushed into the pool.
type recorder struct {
	data []byte
	bits uint
	hits int
}

func (r *recorder) Stir(data []byte, creditBits uint) {
	r.data = append([]byte(nil), data...)
	r.bits = creditBits
	r.hits++
}

func TestOSAssertsFullCredit(t *testing.T) {
	rec := &recorder{}
	src := &OS{}
	src.Stir(rec)

	if rec.hits != 1 {
		t.Fatalf("stirred %d times, want 1", rec.hits)
	}
	if len(rec.data) != 32 {
		t.Errorf("pushed %d bytes, want 32", len(rec.data))
	}
	if rec.bits != 256 {
		t.Errorf("asserted %d bits, want 256", rec.bits)
	}
}

func TestOSChunkOverride(t *testing.T) {
	rec := &recorder{}
	src := &OS{Chunk: 8}
	src.Stir(rec)

	if len(rec.data) != 8 || rec.bits != 64 {
		t.Errorf("pushed %d bytes / %d bits, want 8 / 64", len(rec.data), rec.bits)
	}
}

func TestTimingCreditsOneBitPerByte(t *testing.T) {
	rec := &recorder{}
	src := &Timing{Bytes: 2}
	src.Stir(rec)

	if rec.hits == 0 {
		// A coarse timer may yield nothing within the attempt bound;
		// that is a permitted outcome, not a failure.
		t.Skip("timer too coarse to harvest on this host")
	}
	if len(rec.data) == 0 || len(rec.data) > 2 {
		t.Errorf("harvested %d bytes, want 1..2", len(rec.data))
	}
	if rec.bits != uint(len(rec.data)) {
		t.Errorf("asserted %d bits for %d bytes, want one per byte", rec.bits, len(rec.data))
	}
}

func TestTimingIsBounded(t *testing.T) {
	rec := &recorder{}
	src := &Timing{Bytes: 1}
	done := make(chan struct{})
	go func() {
		src.Stir(rec)
		close(done)
	}()
	<-done // the attempt bound guarantees termination
}
