package query

import (
	"context"
	"fmt"

	"github.com/tair/pantry/internal/pantry/domain"
)

// ListItemsQuery represents the query to list an owner's items
type ListItemsQuery struct {
	OwnerID string
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	repo domain.ItemRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle returns the owner's items ordered by item id, descending. An owner
// without items gets an empty slice.
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) ([]domain.Item, error) {
	items, err := h.repo.ListByOwner(ctx, query.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}
