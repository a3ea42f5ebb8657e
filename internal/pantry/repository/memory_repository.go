package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tair/pantry/internal/pantry/domain"
)

// MemoryItemRepository keeps items in process memory. Reads and writes copy
// items so callers never hold references into the store.
type MemoryItemRepository struct {
	mu    sync.Mutex
	items map[string]map[string]*domain.Item
}

// NewMemoryItemRepository creates an empty in-memory repository
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{items: map[string]map[string]*domain.Item{}}
}

// ListByOwner returns the owner's items ordered by item id, descending
func (r *MemoryItemRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Item, 0, len(r.items[ownerID]))
	for _, it := range r.items[ownerID] {
		out = append(out, *it.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID > out[j].ItemID })
	return out, nil
}

// Create stores the item unless the key is already taken
func (r *MemoryItemRepository) Create(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned, ok := r.items[item.OwnerID]
	if !ok {
		owned = map[string]*domain.Item{}
		r.items[item.OwnerID] = owned
	}
	if _, exists := owned[item.ItemID]; exists {
		return domain.ErrConditionFailed
	}
	owned[item.ItemID] = item.Clone()
	return nil
}

// Update patches an existing item
func (r *MemoryItemRepository) Update(_ context.Context, ownerID, itemID string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[ownerID][itemID]
	if !ok {
		return nil, domain.ErrConditionFailed
	}
	it.Apply(patch, updatedAt)
	return it.Clone(), nil
}

// Delete removes an existing item
func (r *MemoryItemRepository) Delete(_ context.Context, ownerID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[ownerID][itemID]; !ok {
		return domain.ErrConditionFailed
	}
	delete(r.items[ownerID], itemID)
	if len(r.items[ownerID]) == 0 {
		delete(r.items, ownerID)
	}
	return nil
}

// Ping always succeeds
func (r *MemoryItemRepository) Ping(context.Context) error { return nil }
