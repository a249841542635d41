// Package deviceid derives a stable device-unique identifier blob that
// the application stirs into the entropy pool at startup. The
// identifier is not secret and earns no entropy credit; it only
// decorrelates devices of the same class that would otherwise boot
// with identical state.
package deviceid

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/crypto/hkdf"
)

// Size is the length of a derived identifier, in bytes.
const Size = 32

// LoadOrCreate returns the device identifier, generating and
// persisting a random salt under dataDir on first use. The salt keeps
// the identifier stable across boots yet distinct between devices that
// share hostname and interface layout.
func LoadOrCreate(dataDir string) ([]byte, error) {
	salt, err := loadOrCreateSalt(filepath.Join(dataDir, "device.salt"))
	if err != nil {
		return nil, err
	}
	return derive(salt), nil
}

func derive(salt []byte) []byte {
	host, _ := os.Hostname()
	material := []byte(host)
	if ifaces, err := net.Interfaces(); err == nil {
		for _, ifc := range ifaces {
			material = append(material, ifc.HardwareAddr...)
		}
	}

	id := make([]byte, Size)
	r := hkdf.New(sha256.New, material, salt, []byte("entropy-device-id-v1"))
	io.ReadFull(r, id) //nolint:errcheck
	return id
}

func loadOrCreateSalt(path string) ([]byte, error) {
	if salt, err := os.ReadFile(path); err == nil && len(salt) == Size {
		return salt, nil
	}
	salt := make([]byte, Size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate device salt: %w", err)
	}
	if err := os.WriteFile(path, salt, 0600); err != nil {
		return nil, fmt.Errorf("persist device salt: %w", err)
	}
	return salt, nil
}
