package seedstore

import "sync"

// Memory is an in-process store for tests and diskless deployments.
// Seeds do not survive a restart.
type Memory struct {
	mu   sync.Mutex
	seed []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seed == nil {
		return nil, ErrNoSeed
	}
	out := make([]byte, len(m.seed))
	copy(out, m.seed)
	return out, nil
}

func (m *Memory) Save(seed []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seed = append(m.seed[:0:0], seed...)
	return nil
}

func (m *Memory) Erase() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.seed {
		m.seed[i] = 0
	}
	m.seed = nil
	return nil
}
