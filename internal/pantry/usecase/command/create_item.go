package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/pantry/internal/pantry/domain"
)

// CreateItemCommand represents the command to add a pantry item
type CreateItemCommand struct {
	OwnerID    string
	Name       string
	Quantity   *float64
	Unit       *string
	Category   *string
	ExpiryDate *string
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
	clock     Clock
	newID     IDGenerator
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher, clock Clock, newID IDGenerator) *CreateItemHandler {
	return &CreateItemHandler{repo: repo, publisher: publisher, clock: clock, newID: newID}
}

// Handle validates the name, assigns an id and stamps, and stores the item
// conditioned on the key being unused.
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*domain.Item, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, invalid("name is required")
	}

	now := stamp(h.clock)
	item := &domain.Item{
		OwnerID:    cmd.OwnerID,
		ItemID:     h.newID(),
		Name:       name,
		Quantity:   cmd.Quantity,
		Unit:       cmd.Unit,
		Category:   cmd.Category,
		ExpiryDate: cmd.ExpiryDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	publish(ctx, h.publisher, domain.EventTypeItemCreated, item.OwnerID, item.ItemID, item.Clone(), now)
	return item, nil
}
