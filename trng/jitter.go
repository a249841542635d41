package trng

import (
	"sync"
	"time"
)

// Jitter harvests entropy from the drift between a periodic timer and
// the monotonic clock. A background goroutine plays the role of the
// interrupt handler: it only ever folds samples into a small shared
// accumulator and never blocks. PollWord is the foreground side, a
// short bounded critical section that reads and clears the
// accumulator once 32 samples have been collected.
//
// Jitter is slow — accumulating a few hundred bits of credit takes on
// the order of tens of seconds. It is a better-than-nothing source;
// a real noise source is still recommended.
type Jitter struct {
	mu   sync.Mutex
	hash uint32
	bits int

	period time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewJitter starts the harvester with the given sampling period.
// Periods below one millisecond are coerced up so the goroutine does
// not spin.
func NewJitter(period time.Duration) *Jitter {
	if period < time.Millisecond {
		period = time.Millisecond
	}
	j := &Jitter{period: period, stop: make(chan struct{})}
	go j.run()
	return j
}

func (j *Jitter) run() {
	t := time.NewTicker(j.period)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-j.stop:
			return
		case now := <-t.C:
			sample := uint32(now.Sub(last).Nanoseconds())
			last = now
			j.fold(sample)
		}
	}
}

// fold scatters one sample across the accumulator word with a step of
// the Jenkins one-at-a-time hash.
func (j *Jitter) fold(sample uint32) {
	j.mu.Lock()
	j.hash += sample
	j.hash += j.hash << 10
	j.hash ^= j.hash >> 6
	j.bits++
	j.mu.Unlock()
}

// PollWord returns a harvested word once 32 samples have accumulated.
func (j *Jitter) PollWord() (uint32, bool) {
	j.mu.Lock()
	if j.bits < 32 {
		j.mu.Unlock()
		return 0, false
	}
	value := j.hash
	j.hash = 0
	j.bits = 0
	j.mu.Unlock()

	// Finalisation steps of the one-at-a-time hash.
	value += value << 3
	value ^= value >> 11
	value += value << 15
	return value, true
}

// Close stops the harvester goroutine. Safe to call more than once.
func (j *Jitter) Close() {
	j.once.Do(func() { close(j.stop) })
}
