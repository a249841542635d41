package seedstore

import "os"

// File persists the seed as a single file created with 0600
// permissions. This is the EEPROM analog for platforms that have a
// filesystem.
type File struct {
	path string
}

// NewFile returns a file-backed store at path. The file is created on
// the first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSeed
	}
	return data, err
}

func (f *File) Save(seed []byte) error {
	// Write-then-rename so a power cut mid-write leaves the previous
	// seed intact instead of a truncated blob.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, seed, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Erase() error {
	// Overwrite in place before unlinking so the seed bytes do not
	// survive at the old file location.
	if info, err := os.Stat(f.path); err == nil {
		blank := make([]byte, info.Size())
		for i := range blank {
			blank[i] = 0xFF
		}
		_ = os.WriteFile(f.path, blank, 0600)
	}
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
