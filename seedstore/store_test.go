package seedstore

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

// backends returns one fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := NewSQLite(filepath.Join(dir, "seed.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() }) //nolint:errcheck

	return map[string]Store{
		"memory": NewMemory(),
		"file":   NewFile(filepath.Join(dir, "seed.bin")),
		"sqlite": sqlite,
	}
}

func TestLoadBeforeFirstSave(t *testing.T) {
	for name, s := range backends(t) {
		if _, err := s.Load(); !errors.Is(err, ErrNoSeed) {
			t.Errorf("%s: Load on empty store = %v, want ErrNoSeed", name, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	blob := make([]byte, 49)
	for i := range blob {
		blob[i] = byte(i * 3)
	}

	for name, s := range backends(t) {
		if err := s.Save(blob); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if !bytes.Equal(got, blob) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}
}

func TestSaveReplaces(t *testing.T) {
	first := bytes.Repeat([]byte{0x11}, 49)
	second := bytes.Repeat([]byte{0x22}, 49)

	for name, s := range backends(t) {
		if err := s.Save(first); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		if err := s.Save(second); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if !bytes.Equal(got, second) {
			t.Errorf("%s: Save did not replace the previous blob", name)
		}
	}
}

func TestErase(t *testing.T) {
	blob := bytes.Repeat([]byte{0x5A}, 49)

	for name, s := range backends(t) {
		if err := s.Save(blob); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		if err := s.Erase(); err != nil {
			t.Fatalf("%s: Erase: %v", name, err)
		}
		if _, err := s.Load(); !errors.Is(err, ErrNoSeed) {
			t.Errorf("%s: Load after Erase = %v, want ErrNoSeed", name, err)
		}
	}
}

func TestEraseEmptyStore(t *testing.T) {
	for name, s := range backends(t) {
		if err := s.Erase(); err != nil {
			t.Errorf("%s: Erase on empty store: %v", name, err)
		}
	}
}
