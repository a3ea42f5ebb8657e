package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/tair/pantry/internal/pantry/domain"
	"github.com/tair/pantry/internal/pantry/usecase/command"
	"github.com/tair/pantry/internal/pantry/usecase/query"
	"github.com/tair/pantry/pkg/logger"
)

const (
	msgTableNotSet  = "INVENTORY_TABLE_NAME is not set"
	msgUnauthorized = "Unauthorized: missing user context"
	msgMissingID    = "Missing id"
	msgNotFound     = "Not found"
	msgInternal     = "Internal server error"
)

// TableName names the backing table or key space. An empty name fails every request.
type TableName string

// Handler answers canonical requests against the pantry item use cases.
type Handler struct {
	table  TableName
	list   *query.ListItemsHandler
	create *command.CreateItemHandler
	update *command.UpdateItemHandler
	delete *command.DeleteItemHandler
}

// NewHandler creates a new gateway handler
func NewHandler(
	table TableName,
	list *query.ListItemsHandler,
	create *command.CreateItemHandler,
	update *command.UpdateItemHandler,
	delete *command.DeleteItemHandler,
) *Handler {
	return &Handler{
		table:  table,
		list:   list,
		create: create,
		update: update,
		delete: delete,
	}
}

// Handle checks configuration, answers preflight, resolves the caller and runs the
// routed operation. It never returns an error: every failure is a response.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	if h.table == "" {
		logger.Error(ctx).Msg(msgTableNotSet)
		return respondError(http.StatusInternalServerError, msgTableNotSet)
	}

	if IsPreflight(req) {
		return respondJSON(http.StatusNoContent, nil)
	}

	ownerID, ok := ResolveOwner(req)
	if !ok {
		logger.Debug(ctx).Str("path", req.Path).Msg("Request without user context")
		return respondError(http.StatusUnauthorized, msgUnauthorized)
	}

	key := RouteKey(req)
	ctx = logger.WithFields(ctx, map[string]string{"route": key, "owner_id": ownerID})

	resp := h.dispatch(ctx, ResolveRoute(key), key, ownerID, req)
	resp.RouteKey = key
	return resp
}

func (h *Handler) dispatch(ctx context.Context, route Route, key, ownerID string, req Request) Response {
	switch route {
	case RouteList:
		items, err := h.list.Handle(ctx, query.ListItemsQuery{OwnerID: ownerID})
		if err != nil {
			return h.failure(ctx, err)
		}
		return respondJSON(http.StatusOK, items)

	case RouteCreate:
		cmd, err := parseCreate(ownerID, req.Body)
		if err != nil {
			return h.failure(ctx, err)
		}
		item, err := h.create.Handle(ctx, cmd)
		if err != nil {
			return h.failure(ctx, err)
		}
		logger.Info(ctx).Str("item_id", item.ItemID).Msg("Item created")
		return respondJSON(http.StatusCreated, item)

	case RouteUpdate:
		itemID, ok := ItemID(req)
		if !ok {
			return respondError(http.StatusBadRequest, msgMissingID)
		}
		patch, err := parsePatch(req.Body)
		if err != nil {
			return h.failure(ctx, err)
		}
		item, err := h.update.Handle(ctx, command.UpdateItemCommand{OwnerID: ownerID, ItemID: itemID, Patch: patch})
		if err != nil {
			return h.failure(logger.WithFields(ctx, map[string]string{"item_id": itemID}), err)
		}
		return respondJSON(http.StatusOK, item)

	case RouteDelete:
		itemID, ok := ItemID(req)
		if !ok {
			return respondError(http.StatusBadRequest, msgMissingID)
		}
		if err := h.delete.Handle(ctx, command.DeleteItemCommand{OwnerID: ownerID, ItemID: itemID}); err != nil {
			return h.failure(logger.WithFields(ctx, map[string]string{"item_id": itemID}), err)
		}
		return respondJSON(http.StatusOK, okBody{OK: true})

	case RouteNone:
		return respondError(http.StatusNotFound, "No route for "+key)
	}

	return respondError(http.StatusNotFound, "No route for "+key)
}

// failure maps an operation error onto the wire: validation to 400, a violated
// existence condition to 404, anything else to a logged 500 without detail.
func (h *Handler) failure(ctx context.Context, err error) Response {
	var verr *command.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Warn(ctx).Str("reason", verr.Message).Msg("Rejected invalid request")
		return respondError(http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrConditionFailed):
		logger.Debug(ctx).Err(err).Msg("Conditional write failed")
		return respondError(http.StatusNotFound, msgNotFound)
	default:
		logger.Error(ctx).Err(err).Msg("Inventory API error")
		return respondError(http.StatusInternalServerError, msgInternal)
	}
}
