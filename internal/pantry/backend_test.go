package pantry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/pantry/internal/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		TableName:    "pantry-items",
		StoreBackend: config.BackendMemory,
		KafkaTopic:   "pantry-item-events",
	}
}

func TestOpenBackend_Memory(t *testing.T) {
	b, err := OpenBackend(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	if b.Name() != config.BackendMemory {
		t.Errorf("expected memory backend, got %s", b.Name())
	}
	if err := b.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoreBackend = "cassandra"

	if _, err := OpenBackend(context.Background(), cfg); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestOpenPublisher_DisabledWithoutBrokers(t *testing.T) {
	p, err := OpenPublisher(memoryConfig())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := p.(noopPublisher); !ok {
		t.Errorf("expected the no-op publisher, got %T", p)
	}
}

func TestInitializeHandlers(t *testing.T) {
	cfg := memoryConfig()
	b, _ := OpenBackend(context.Background(), cfg)
	p, _ := OpenPublisher(cfg)

	if _, err := InitializeHTTPHandler(cfg, b, p, prometheus.NewRegistry()); err != nil {
		t.Fatalf("http handler: %v", err)
	}

	h, err := InitializeLambdaHandler(cfg, b, p)
	if err != nil {
		t.Fatalf("lambda handler: %v", err)
	}

	event, _ := json.Marshal(events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/inventory",
		Body:       `{"name":"Rice"}`,
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{"claims": map[string]interface{}{"sub": "u1"}},
		},
	})
	out, err := h.Invoke(context.Background(), event)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if resp := out.(events.APIGatewayProxyResponse); resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d (%s)", resp.StatusCode, resp.Body)
	}
}
