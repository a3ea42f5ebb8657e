package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tair/pantry/internal/pantry/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisItemRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) domain.ItemRepository {
		client := getRedisClient(t)
		prefix := "pantry-test-" + uuid.NewString()
		repo := NewRedisItemRepository(client, prefix)

		t.Cleanup(func() {
			ctx := context.Background()
			client.Del(ctx, repo.ownerKey("u1"), repo.ownerKey("u2"))
			client.Close()
		})
		return repo
	})
}

func TestRedisPatch(t *testing.T) {
	set, cleared := redisPatch(domain.ItemPatch{
		Name:     strPtr("Rice"),
		Quantity: domain.Set(2.5),
		Unit:     domain.Null[string](),
	})

	if set["name"] != "Rice" || set["quantity"] != 2.5 {
		t.Errorf("unexpected set fields %v", set)
	}
	if _, ok := set["unit"]; ok {
		t.Error("cleared field must not be set")
	}
	if len(cleared) != 1 || cleared[0] != "unit" {
		t.Errorf("expected unit cleared, got %v", cleared)
	}
}
