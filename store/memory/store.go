// Package memory implements store.Store entirely in memory. It is safe for
// concurrent access and intended for unit testing and development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

var _ business.Store = (*Store)(nil)

// Store is a fully in-memory implementation of store.Store.
type Store struct {
	mu         sync.RWMutex
	businesses map[string]*business.Business
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		businesses: make(map[string]*business.Business),
	}
}

// Migrate is a no-op for the memory store.
func (m *Store) Migrate(_ context.Context) error { return nil }

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }

// GetBusiness retrieves a business by FEIN.
func (m *Store) GetBusiness(_ context.Context, fein string) (*business.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.businesses[fein]
	if !ok {
		return nil, prospect.ErrBusinessNotFound
	}
	return b.Clone(), nil
}

// CreateBusiness persists a new business.
func (m *Store) CreateBusiness(_ context.Context, b *business.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.businesses[b.FEIN]; exists {
		return prospect.ErrBusinessExists
	}
	m.businesses[b.FEIN] = b.Clone()
	return nil
}

// UpdateBusiness persists b if the stored version equals expectedVersion.
func (m *Store) UpdateBusiness(_ context.Context, b *business.Business, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.businesses[b.FEIN]
	if !ok {
		return prospect.ErrBusinessNotFound
	}
	if cur.Version != expectedVersion {
		return prospect.ErrVersionConflict
	}

	cp := b.Clone()
	cp.Name = cur.Name
	cp.CreatedAt = cur.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	m.businesses[b.FEIN] = cp
	b.UpdatedAt = cp.UpdatedAt
	return nil
}

// Len returns the number of stored businesses.
func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.businesses)
}
