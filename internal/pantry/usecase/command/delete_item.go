package command

import (
	"context"
	"fmt"

	"github.com/tair/pantry/internal/pantry/domain"
)

// DeleteItemCommand represents the command to remove a pantry item
type DeleteItemCommand struct {
	OwnerID string
	ItemID  string
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
	clock     Clock
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher, clock Clock) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo, publisher: publisher, clock: clock}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if err := h.repo.Delete(ctx, cmd.OwnerID, cmd.ItemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	publish(ctx, h.publisher, domain.EventTypeItemDeleted, cmd.OwnerID, cmd.ItemID, nil, stamp(h.clock))
	return nil
}
