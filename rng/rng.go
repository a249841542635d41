package rng

import (
	"sync"
	"time"

	"github.com/avaropoint/entropy/internal/chacha"
	"github.com/avaropoint/entropy/seedstore"
	"github.com/avaropoint/entropy/trng"
)

const (
	// MaxCredits is the hard ceiling on pool entropy credit, in bits.
	// It equals the secret region size expressed in bits.
	MaxCredits = poolSize * 8

	// SeedSize is the number of seed bytes persisted across power
	// cycles, excluding the one-byte integrity tag.
	SeedSize = poolSize

	// DefaultAutoSave is the default interval between automatic seed
	// saves. Short intervals wear out EEPROM-class storage faster.
	DefaultAutoSave = time.Hour

	rounds      = 20 // ChaCha rounds per permutation call
	rekeyBlocks = 16 // force a rekey after this many blocks in one request
	maxSources  = 4  // noise source registry capacity

	// seedDomain separates the persisted-seed CRC from any other use
	// of the same checksum.
	seedDomain = 'S'
)

// Stirrer is the injection side of the pool, handed to noise sources
// so they can push entropy without a full Pool reference.
type Stirrer interface {
	Stir(data []byte, creditBits uint)
}

// NoiseSource is implemented by entropy sources that the pool polls on
// every housekeeping pass. A source decides its own credit assertion
// and pushes data back through the Stirrer it is given.
type NoiseSource interface {
	// Stir pushes whatever entropy the source has accumulated since
	// the last pass into the pool.
	Stir(pool Stirrer)

	// Added is called once when the source is registered.
	Added()
}

// Config wires the pool's collaborators. Every field is optional; the
// zero Config yields a pool with no persistence and no hardware TRNG.
type Config struct {
	// Store persists partial entropy across power cycles.
	Store seedstore.Store

	// TRNG supplies hardware random words, polled from Loop and
	// opportunistically from Rand.
	TRNG trng.Source

	// DeviceID is a device-unique identifier stirred in (uncredited)
	// during Begin to decorrelate devices of the same class.
	DeviceID []byte

	// AutoSave overrides the interval between automatic seed saves.
	AutoSave time.Duration
}

// Pool is the entropy pool engine. One Pool per process is the
// intended usage; construct it with New, initialise it with Begin and
// hand it (or its Stirrer face) to whatever needs randomness.
//
// All methods are safe for concurrent use. Every operation completes
// in time proportional to the requested byte count and never blocks on
// entropy.
type Pool struct {
	mu sync.Mutex

	state  mixState
	block  [chacha.BlockSize]byte // permutation input scratch
	stream [chacha.BlockSize]byte // most recent permutation output

	credits   uint // bits, 0..MaxCredits
	ready     bool
	firstSave bool

	trngPending bool
	trngPosn    int

	sources [maxSources]NoiseSource
	count   int

	store    seedstore.Store
	trng     trng.Source
	deviceID []byte

	autoSave time.Duration
	lastSave time.Time

	// Clock hooks, overridden in tests.
	now   func() time.Time
	ticks func() uint32
}

// New constructs a pool around the given collaborators. Begin must be
// called before the pool produces output, although Rand and Stir
// self-heal by calling it with no tag if the application forgot.
func New(cfg Config) *Pool {
	p := &Pool{
		store:    cfg.Store,
		trng:     cfg.TRNG,
		deviceID: cfg.DeviceID,
		autoSave: cfg.AutoSave,
		now:      time.Now,
		ticks:    microTicks,
	}
	if p.autoSave <= 0 {
		p.autoSave = DefaultAutoSave
	}
	return p
}

// microTicks samples the clock at microsecond granularity for the
// rekey perturbation word.
func microTicks() uint32 {
	return uint32(time.Now().UnixMicro())
}

// Begin initialises the pool: fixed baseline, persisted seed (if its
// integrity tag validates), immediate rekey, application tag and
// device identifier, then an immediate re-save so the seed just
// consumed can never be replayed. A second call before Destroy is a
// no-op.
//
// tag should identify the application and version, e.g. "sensord 1.2",
// so that different applications on the same device class diverge even
// on first boot. It earns no entropy credit.
func (p *Pool) Begin(tag string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.begin(tag)
}

func (p *Pool) begin(tag string) {
	if p.ready {
		return
	}

	// Deterministic, non-zero starting point even with no
	// collaborators present.
	p.state.reset()

	// Fold in the persisted seed when its tag checks out. XOR rather
	// than overwrite: a corrupted or forged seed can never push the
	// state below the fixed baseline.
	if p.store != nil {
		if seed, err := p.store.Load(); err == nil && len(seed) == SeedSize+1 &&
			crc8(seedDomain, seed[:SeedSize]) == seed[SeedSize] {
			p.state.xor(seed[:SeedSize])
		}
	}

	// First-boot insurance: fold in a best-effort batch of TRNG words
	// in case there was no saved seed to diverge from the baseline.
	p.mixTRNG()

	// Loaded material is never credited; its current trustworthiness
	// cannot be verified.
	p.credits = 0
	p.firstSave = true

	// Move away from the raw loaded state before any output.
	p.rekey()

	if tag != "" {
		p.stir([]byte(tag), 0)
	}
	if len(p.deviceID) > 0 {
		p.stir(p.deviceID, 0)
	}

	// Re-save immediately so an unclean shutdown cannot replay the
	// seed consumed above.
	p.save()

	p.ready = true
}

// AddNoiseSource registers source for polling by Loop. The registry
// holds at most four sources; registrations past capacity are silently
// rejected and the application must poll such sources itself, feeding
// them through Stir.
func (p *Pool) AddNoiseSource(source NoiseSource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count >= maxSources {
		return
	}
	p.sources[p.count] = source
	p.count++
	source.Added()
}

// SetAutoSaveInterval sets the number of minutes between automatic
// seed saves. Zero is coerced to one minute.
func (p *Pool) SetAutoSaveInterval(minutes uint16) {
	if minutes == 0 {
		minutes = 1 // just in case
	}
	p.mu.Lock()
	p.autoSave = time.Duration(minutes) * time.Minute
	p.mu.Unlock()
}

// Rand fills buf with random bytes. The request consumes
// len(buf)*8 bits of credit, saturating at zero: when the pool holds
// less credit than requested, best-effort output is still produced.
// Callers needing a quality guarantee consult Available first.
func (p *Pool) Rand(buf []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		p.begin("")
	}

	if bits := uint(len(buf)) * 8; bits > p.credits {
		p.credits = 0
	} else {
		p.credits -= bits
	}

	// Diffuse any TRNG words the housekeeping pass parked in the state
	// since the last extraction. Otherwise mix a fresh batch in case
	// the application forgot to call Loop.
	if p.trngPending {
		p.stir(nil, 0)
		p.trngPending = false
		p.trngPosn = 0
	} else {
		p.mixTRNG()
	}

	blocks := 0
	for len(buf) > 0 {
		// Bound how much output a single state may produce within one
		// request.
		if blocks >= rekeyBlocks {
			p.rekey()
			blocks = 1
		} else {
			blocks++
		}

		p.state.incrementCounter()
		p.permute()

		n := copy(buf, p.stream[:])
		buf = buf[n:]
	}

	// Inter-request backtracking resistance.
	p.rekey()
}

// Available reports whether the pool holds at least n bytes worth of
// entropy credit. Requests at or above the pool's capacity (48 bytes)
// are answered against full saturation instead: no request can ever be
// satisfied with more trust than the pool can represent. Pure query,
// no side effects.
func (p *Pool) Available(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n <= 0 {
		return true
	}
	if n >= MaxCredits/8 {
		return p.credits >= MaxCredits
	}
	return uint(n) <= p.credits/8
}

// Stir mixes data into the pool, crediting at most creditBits bits of
// entropy for it. The credit is clamped so a caller can never claim
// more entropy than bytes supplied; zero-credit data (serial numbers,
// MAC addresses) still changes the state. Stirring an empty slice
// forces a rekey without new input, which diffuses entropy that was
// injected into the state out-of-band.
func (p *Pool) Stir(data []byte, creditBits uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		p.begin("")
	}
	p.stir(data, creditBits)
}

func (p *Pool) stir(data []byte, creditBits uint) {
	if ceiling := uint(len(data)) * 8; creditBits > ceiling {
		creditBits = ceiling
	}
	if p.credits+creditBits >= MaxCredits {
		p.credits = MaxCredits
	} else {
		p.credits += creditBits
	}

	if len(data) == 0 {
		p.rekey()
	} else {
		// XOR the input onto the secret region in pool-sized chunks,
		// rekeying between chunks so any true randomness in the input
		// is scattered across the whole permutation rather than
		// concentrated in one segment.
		for len(data) > 0 {
			n := len(data)
			if n > poolSize {
				n = poolSize
			}
			p.state.xor(data[:n])
			data = data[n:]
			p.rekey()
		}
	}

	// One automatic save the first time the pool fills, in case power
	// is lost before the scheduled auto-save.
	if p.firstSave && p.credits >= MaxCredits {
		p.firstSave = false
		p.save()
	}
}

// Save extracts one block as the candidate seed, persists it with its
// integrity tag, then rekeys so the stored value can never reproduce a
// future extraction. Persistence is fire-and-forget: a failed write is
// not surfaced.
func (p *Pool) Save() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.save()
}

func (p *Pool) save() {
	p.state.incrementCounter()
	p.permute()

	if p.store != nil {
		seed := make([]byte, SeedSize+1)
		copy(seed, p.stream[:SeedSize])
		seed[SeedSize] = crc8(seedDomain, seed[:SeedSize])
		_ = p.store.Save(seed)
	}

	p.rekey()
	p.lastSave = p.now()
}

// Loop runs one housekeeping pass and must be called regularly by the
// host application: it dispatches every registered noise source, polls
// the TRNG for one word, and triggers an automatic save when the
// interval has elapsed.
func (p *Pool) Loop() {
	// Dispatch noise sources without holding the pool lock; each
	// source calls back into Stir.
	p.mu.Lock()
	var srcs [maxSources]NoiseSource
	n := copy(srcs[:], p.sources[:p.count])
	p.mu.Unlock()
	for _, s := range srcs[:n] {
		s.Stir(p)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Fold one hardware word into the state at a rotating offset. The
	// word is parked until the next extraction diffuses it; stirring
	// on every tick would be needlessly slow for a fast TRNG.
	if p.trng != nil {
		if w, ok := p.trng.PollWord(); ok {
			p.state.xorWord(p.trngPosn, w)
			p.trngPosn++
			if p.trngPosn >= poolSize/4 {
				p.trngPosn = 0
			}
			if p.credits < MaxCredits {
				// One bit of credit per word. The hardware is likely
				// better than that, but collect more data before
				// telling the application the pool is full.
				p.credits++
			}
			p.trngPending = true
		}
	}

	if p.now().Sub(p.lastSave) >= p.autoSave {
		p.save()
	}
}

// Destroy zeroes the mixing state and keystream buffer in place,
// erases the persisted seed, and marks the pool uninitialised. Begin
// is required before reuse. Intended for devices anticipating capture,
// decommissioning or resale.
func (p *Pool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.wipe()
	for i := range p.block {
		p.block[i] = 0
	}
	for i := range p.stream {
		p.stream[i] = 0
	}

	if p.store != nil {
		_ = p.store.Erase()
	}

	p.credits = 0
	p.trngPending = false
	p.trngPosn = 0
	p.ready = false
}

// rekey discards the current secret region so the prior state cannot
// be recomputed from the new one, while remaining deterministic going
// forward. No external side effects; cannot fail.
func (p *Pool) rekey() {
	p.state.incrementCounter()
	p.permute()
	p.state.adopt(&p.stream)
	p.state.perturb(p.ticks())
}

// permute serialises the state and runs the block permutation into the
// keystream buffer.
func (p *Pool) permute() {
	p.state.serialize(&p.block)
	chacha.Block(&p.stream, &p.block, rounds)
}

// mixTRNG folds a best-effort batch of hardware words directly into
// the secret region, uncredited.
func (p *Pool) mixTRNG() {
	if p.trng == nil {
		return
	}
	for i := 0; i < poolSize/4; i++ {
		w, ok := p.trng.PollWord()
		if !ok {
			break
		}
		p.state.xorWord(i, w)
	}
}
