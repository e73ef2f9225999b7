package basket

import "storefront/internal/domain"

// MemoryStorage keeps basket state in memory. It backs tests and sessions
// that do not need durability.
type MemoryStorage struct {
	lines []domain.BasketLine
	saved bool

	// FailSave, when set, makes Save report this error.
	FailSave error
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() ([]domain.BasketLine, error) {
	if !m.saved {
		return nil, nil
	}
	out := make([]domain.BasketLine, len(m.lines))
	copy(out, m.lines)
	return out, nil
}

func (m *MemoryStorage) Save(lines []domain.BasketLine) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.lines = make([]domain.BasketLine, len(lines))
	copy(m.lines, lines)
	m.saved = true
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.lines = nil
	m.saved = false
	return nil
}
