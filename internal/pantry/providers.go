package pantry

import (
	"github.com/google/uuid"
	"github.com/google/wire"

	"github.com/tair/pantry/internal/config"
	"github.com/tair/pantry/internal/pantry/delivery/gateway"
	"github.com/tair/pantry/internal/pantry/domain"
	"github.com/tair/pantry/internal/pantry/repository"
	"github.com/tair/pantry/internal/pantry/usecase/command"
	"github.com/tair/pantry/internal/pantry/usecase/query"
)

// ProvideItemRepository wraps the backend with tracing
func ProvideItemRepository(b Backend) domain.ItemRepository {
	return repository.NewTracingItemRepository(b, b.Name())
}

// ProvideEventPublisher exposes the publisher to the use cases
func ProvideEventPublisher(p Publisher) domain.EventPublisher {
	return p
}

// ProvideTableName reads the table name from configuration
func ProvideTableName(cfg *config.Config) gateway.TableName {
	return gateway.TableName(cfg.TableName)
}

// ProvideClock provides the wall clock
func ProvideClock() command.Clock {
	return command.SystemClock
}

// ProvideIDGenerator provides random UUID item ids
func ProvideIDGenerator() command.IDGenerator {
	return uuid.NewString
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideItemRepository,
	ProvideEventPublisher,
)

var UseCaseSet = wire.NewSet(
	ProvideClock,
	ProvideIDGenerator,
	query.NewListItemsHandler,
	command.NewCreateItemHandler,
	command.NewUpdateItemHandler,
	command.NewDeleteItemHandler,
)

var GatewaySet = wire.NewSet(
	RepositorySet,
	UseCaseSet,
	ProvideTableName,
	gateway.NewHandler,
)
