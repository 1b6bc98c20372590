package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/eugenenazirov/basket-splitter/internal/deliveryconfig"
)

var (
	// ErrInvalidTable indicates the provided delivery table violates validation rules.
	ErrInvalidTable = errors.New("delivery table must contain at least one product with non-blank names")
)

// Storage provides access to the delivery table used by the splitter.
type Storage interface {
	Table() (deliveryconfig.Table, error)
	SetTable(table deliveryconfig.Table) error
}

// MemoryStorage keeps the delivery table in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu    sync.RWMutex
	table deliveryconfig.Table
}

// NewMemoryStorage initialises empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		table: deliveryconfig.Table{},
	}
}

// Table returns a defensive copy of the current delivery table.
func (s *MemoryStorage) Table() (deliveryconfig.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.table.Clone(), nil
}

// SetTable validates and stores a copy of the provided delivery table.
func (s *MemoryStorage) SetTable(table deliveryconfig.Table) error {
	if table.Len() == 0 {
		return ErrInvalidTable
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	clone := table.Clone()

	s.mu.Lock()
	s.table = clone
	s.mu.Unlock()

	return nil
}
