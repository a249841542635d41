// Package seedstore defines the persistence interface for the entropy
// pool's saved seed. All backends (file, SQLite, memory) satisfy the
// Store interface so the engine can swap storage without changing the
// save/load protocol.
//
// A stored blob is opaque to the backend: seed bytes plus a one-byte
// integrity tag, 49 bytes in total. The engine validates the tag
// itself; a backend only has to return whatever it last persisted, or
// ErrNoSeed when nothing has been saved yet.
package seedstore
