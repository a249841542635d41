package seedstore

import "errors"

// ErrNoSeed is returned by Load when no seed has been persisted yet,
// for example on first boot or after Erase.
var ErrNoSeed = errors.New("seedstore: no saved seed")

// Store persists an opaque seed blob across power cycles.
// Implementations must tolerate load-before-first-save and should
// treat Save as best-effort: the engine never retries and never
// surfaces a write failure.
type Store interface {
	// Load returns the most recently saved blob.
	Load() ([]byte, error)

	// Save replaces the persisted blob.
	Save(seed []byte) error

	// Erase destroys the persisted blob so it cannot be recovered.
	Erase() error
}
