package noise

import (
	"time"

	"github.com/avaropoint/entropy/rng"
)

// Timing harvests bytes from sleep-timing jitter: it asks the runtime
// to sleep for a short interval and keeps the unpredictable low bits
// of the overshoot. It works anywhere a clock ticks but the yield is
// thin, so it credits one bit of entropy per harvested byte.
type Timing struct {
	// Bytes per housekeeping pass. Defaults to 4.
	Bytes int

	// Step is the base sleep interval. Defaults to ~11us.
	Step time.Duration
}

func (s *Timing) Added() {}

func (s *Timing) Stir(pool rng.Stirrer) {
	count := s.Bytes
	if count <= 0 {
		count = 4
	}
	step := s.Step
	if step <= 0 {
		step = 11579 * time.Nanosecond
	}

	buf := make([]byte, 0, count)
	delay := step
	// Bounded: a too-coarse timer yields fewer bytes, never a stall.
	for attempts := 0; len(buf) < count && attempts < count*64; attempts++ {
		start := time.Now()
		time.Sleep(delay)
		delta := time.Since(start)

		jitter := delta - delay
		if jitter < 0 {
			jitter = -jitter
		}
		nano := jitter.Nanoseconds()

		// Drop trailing zeroes in case the timer is not granular
		// enough, then two more bits that carry no information.
		for nano > 0 && nano&1 == 0 {
			nano >>= 1
		}
		nano >>= 2
		if nano < 0x100 {
			// Possibly contains meaningless leading zero bits.
			delay = step
			continue
		}

		buf = append(buf, byte(nano))
		delay = delta
		if delay > step*13 {
			delay = step
		}
	}

	if len(buf) == 0 {
		return
	}
	pool.Stir(buf, uint(len(buf)))
}
