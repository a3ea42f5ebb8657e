package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/pantry/internal/pantry/domain"
)

// updateItemScript merges a JSON patch into an existing hash field. It returns
// nil when the field is missing so the caller can report a failed condition.
var updateItemScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], ARGV[1])
if not current then
	return false
end

local item = cjson.decode(current)
for k, v in pairs(cjson.decode(ARGV[2])) do
	item[k] = v
end
for _, k in ipairs(cjson.decode(ARGV[3])) do
	item[k] = nil
end
item['updatedAt'] = ARGV[4]

local encoded = cjson.encode(item)
redis.call('HSET', KEYS[1], ARGV[1], encoded)
return encoded
`)

type redisItem struct {
	ItemID     string   `json:"itemId"`
	Name       string   `json:"name"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	Category   *string  `json:"category,omitempty"`
	ExpiryDate *string  `json:"expiryDate,omitempty"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

// RedisItemRepository keeps one hash per owner; fields are item ids, values JSON items.
type RedisItemRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisItemRepository creates a repository whose keys live under the given prefix
func NewRedisItemRepository(client redis.UniversalClient, prefix string) *RedisItemRepository {
	return &RedisItemRepository{client: client, prefix: prefix}
}

func (r *RedisItemRepository) ownerKey(ownerID string) string {
	return r.prefix + ":owner:" + ownerID
}

// ListByOwner reads the owner's hash and orders items by id, descending
func (r *RedisItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	values, err := r.client.HVals(ctx, r.ownerKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]domain.Item, 0, len(values))
	for _, v := range values {
		it, err := decodeRedisItem(ownerID, v)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID > items[j].ItemID })
	return items, nil
}

// Create sets the hash field only if it is absent
func (r *RedisItemRepository) Create(ctx context.Context, item *domain.Item) error {
	payload, err := json.Marshal(redisItem{
		ItemID:     item.ItemID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		Category:   item.Category,
		ExpiryDate: item.ExpiryDate,
		CreatedAt:  formatTime(item.CreatedAt),
		UpdatedAt:  formatTime(item.UpdatedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	ok, err := r.client.HSetNX(ctx, r.ownerKey(item.OwnerID), item.ItemID, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	if !ok {
		return domain.ErrConditionFailed
	}
	return nil
}

// Update merges the patch atomically inside Redis
func (r *RedisItemRepository) Update(ctx context.Context, ownerID, itemID string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	set, cleared := redisPatch(patch)
	setJSON, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}
	clearedJSON, err := json.Marshal(cleared)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}

	raw, err := updateItemScript.Run(ctx, r.client,
		[]string{r.ownerKey(ownerID)},
		itemID, string(setJSON), string(clearedJSON), formatTime(updatedAt),
	).Text()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrConditionFailed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	it, err := decodeRedisItem(ownerID, raw)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Delete removes the hash field if present
func (r *RedisItemRepository) Delete(ctx context.Context, ownerID, itemID string) error {
	n, err := r.client.HDel(ctx, r.ownerKey(ownerID), itemID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n == 0 {
		return domain.ErrConditionFailed
	}
	return nil
}

// Ping checks the Redis connection
func (r *RedisItemRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func redisPatch(p domain.ItemPatch) (map[string]interface{}, []string) {
	set := map[string]interface{}{}
	cleared := []string{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	collect := func(key string, present bool, value interface{}, isNil bool) {
		if !present {
			return
		}
		if isNil {
			cleared = append(cleared, key)
			return
		}
		set[key] = value
	}
	collect("quantity", p.Quantity.Present, derefOr(p.Quantity.Value), p.Quantity.Value == nil)
	collect("unit", p.Unit.Present, derefOr(p.Unit.Value), p.Unit.Value == nil)
	collect("category", p.Category.Present, derefOr(p.Category.Value), p.Category.Value == nil)
	collect("expiryDate", p.ExpiryDate.Present, derefOr(p.ExpiryDate.Value), p.ExpiryDate.Value == nil)
	return set, cleared
}

func derefOr[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func decodeRedisItem(ownerID, raw string) (domain.Item, error) {
	var rec redisItem
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.Item{}, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return domain.Item{}, fmt.Errorf("invalid createdAt %q: %w", rec.CreatedAt, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	if err != nil {
		return domain.Item{}, fmt.Errorf("invalid updatedAt %q: %w", rec.UpdatedAt, err)
	}
	return domain.Item{
		OwnerID:    ownerID,
		ItemID:     rec.ItemID,
		Name:       rec.Name,
		Quantity:   rec.Quantity,
		Unit:       rec.Unit,
		Category:   rec.Category,
		ExpiryDate: rec.ExpiryDate,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}
