package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/pantry/internal/pantry/domain"
)

// UpdateItemCommand represents the command to patch a pantry item
type UpdateItemCommand struct {
	OwnerID string
	ItemID  string
	Patch   domain.ItemPatch
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
	clock     Clock
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher, clock Clock) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo, publisher: publisher, clock: clock}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.Patch.IsEmpty() {
		return nil, invalid("No updatable fields provided")
	}
	if cmd.Patch.Name != nil {
		name := strings.TrimSpace(*cmd.Patch.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		cmd.Patch.Name = &name
	}

	now := stamp(h.clock)
	item, err := h.repo.Update(ctx, cmd.OwnerID, cmd.ItemID, cmd.Patch, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	publish(ctx, h.publisher, domain.EventTypeItemUpdated, cmd.OwnerID, cmd.ItemID, item.Clone(), now)
	return item, nil
}
