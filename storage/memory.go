package storage

import (
	"context"
	"sync"

	"github.com/cppla/askboard/models"
)

// Memory keeps the encoded corpus in process memory. It goes through the
// codec so it behaves like the durable adapters.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) ([]models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Decode(m.data)
}

func (m *Memory) Save(ctx context.Context, corpus []models.Question) error {
	b, err := Encode(corpus)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = b
	m.mu.Unlock()
	return nil
}

// Bytes returns the last saved encoding.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
