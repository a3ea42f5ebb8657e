//go:build wireinject
// +build wireinject

package pantry

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/pantry/internal/config"
	httpDelivery "github.com/tair/pantry/internal/pantry/delivery/http"
	lambdaDelivery "github.com/tair/pantry/internal/pantry/delivery/lambda"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(cfg *config.Config, b Backend, p Publisher, reg prometheus.Registerer) (*httpDelivery.PantryHandler, error) {
	wire.Build(
		GatewaySet,
		httpDelivery.NewPantryHandler,
	)
	return nil, nil
}

// InitializeLambdaHandler initializes the Lambda handler with all dependencies
func InitializeLambdaHandler(cfg *config.Config, b Backend, p Publisher) (*lambdaDelivery.Handler, error) {
	wire.Build(
		GatewaySet,
		lambdaDelivery.NewHandler,
	)
	return nil, nil
}
