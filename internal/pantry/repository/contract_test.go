package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tair/pantry/internal/pantry/domain"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 123456000, time.UTC)

func newTestItem(owner, id, name string) *domain.Item {
	q := 5.0
	unit := "kg"
	return &domain.Item{
		OwnerID:   owner,
		ItemID:    id,
		Name:      name,
		Quantity:  &q,
		Unit:      &unit,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

// runRepositoryContract exercises the behaviour every backend must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) domain.ItemRepository) {
	t.Run("create then list", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, id := range []string{"b", "c", "a"} {
			if err := repo.Create(ctx, newTestItem("u1", id, "Rice "+id)); err != nil {
				t.Fatalf("create %s: %v", id, err)
			}
		}

		items, err := repo.ListByOwner(ctx, "u1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		for i, want := range []string{"c", "b", "a"} {
			if items[i].ItemID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, items[i].ItemID)
			}
		}
		if items[0].Quantity == nil || *items[0].Quantity != 5 {
			t.Errorf("expected quantity 5, got %v", items[0].Quantity)
		}
		if !items[0].CreatedAt.Equal(baseTime) {
			t.Errorf("expected createdAt %s, got %s", baseTime, items[0].CreatedAt)
		}
	})

	t.Run("owners are isolated", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Create(ctx, newTestItem("u1", "a", "Rice")); err != nil {
			t.Fatalf("create: %v", err)
		}

		items, err := repo.ListByOwner(ctx, "u2")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if items == nil || len(items) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", items)
		}

		if _, err := repo.Update(ctx, "u2", "a", domain.ItemPatch{Name: strPtr("x")}, baseTime.Add(time.Second)); !errors.Is(err, domain.ErrConditionFailed) {
			t.Errorf("expected cross-owner update to fail the condition, got %v", err)
		}
		if err := repo.Delete(ctx, "u2", "a"); !errors.Is(err, domain.ErrConditionFailed) {
			t.Errorf("expected cross-owner delete to fail the condition, got %v", err)
		}
	})

	t.Run("duplicate create fails the condition", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Create(ctx, newTestItem("u1", "a", "Rice")); err != nil {
			t.Fatalf("create: %v", err)
		}
		err := repo.Create(ctx, newTestItem("u1", "a", "Beans"))
		if !errors.Is(err, domain.ErrConditionFailed) {
			t.Fatalf("expected ErrConditionFailed, got %v", err)
		}

		items, _ := repo.ListByOwner(ctx, "u1")
		if len(items) != 1 || items[0].Name != "Rice" {
			t.Errorf("original item must survive a colliding create, got %+v", items)
		}
	})

	t.Run("update patches selected fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Create(ctx, newTestItem("u1", "a", "Rice")); err != nil {
			t.Fatalf("create: %v", err)
		}

		later := baseTime.Add(time.Minute)
		got, err := repo.Update(ctx, "u1", "a", domain.ItemPatch{
			Quantity: domain.Set(3.0),
			Unit:     domain.Null[string](),
			Category: domain.Set("grains"),
		}, later)
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		if got.Name != "Rice" {
			t.Errorf("expected name unchanged, got %s", got.Name)
		}
		if got.Quantity == nil || *got.Quantity != 3 {
			t.Errorf("expected quantity 3, got %v", got.Quantity)
		}
		if got.Unit != nil {
			t.Errorf("expected unit cleared, got %v", *got.Unit)
		}
		if got.Category == nil || *got.Category != "grains" {
			t.Errorf("expected category grains, got %v", got.Category)
		}
		if !got.UpdatedAt.Equal(later) {
			t.Errorf("expected updatedAt %s, got %s", later, got.UpdatedAt)
		}
		if !got.CreatedAt.Equal(baseTime) {
			t.Errorf("createdAt changed to %s", got.CreatedAt)
		}
	})

	t.Run("updates a microsecond apart keep distinct stamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Create(ctx, newTestItem("u1", "a", "Rice")); err != nil {
			t.Fatalf("create: %v", err)
		}

		first := baseTime.Add(time.Second)
		second := first.Add(time.Microsecond)
		if _, err := repo.Update(ctx, "u1", "a", domain.ItemPatch{Quantity: domain.Set(1.0)}, first); err != nil {
			t.Fatalf("first update: %v", err)
		}
		if _, err := repo.Update(ctx, "u1", "a", domain.ItemPatch{Quantity: domain.Set(2.0)}, second); err != nil {
			t.Fatalf("second update: %v", err)
		}

		items, err := repo.ListByOwner(ctx, "u1")
		if err != nil || len(items) != 1 {
			t.Fatalf("list: %v %v", items, err)
		}
		if !items[0].UpdatedAt.Equal(second) {
			t.Errorf("expected updatedAt %s, got %s", second, items[0].UpdatedAt)
		}
		if !items[0].CreatedAt.Equal(baseTime) {
			t.Errorf("expected createdAt %s, got %s", baseTime, items[0].CreatedAt)
		}
	})

	t.Run("update and delete of missing item fail the condition", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Update(ctx, "u1", "missing", domain.ItemPatch{Name: strPtr("x")}, baseTime); !errors.Is(err, domain.ErrConditionFailed) {
			t.Errorf("update: expected ErrConditionFailed, got %v", err)
		}
		if err := repo.Delete(ctx, "u1", "missing"); !errors.Is(err, domain.ErrConditionFailed) {
			t.Errorf("delete: expected ErrConditionFailed, got %v", err)
		}
	})

	t.Run("delete then update", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Create(ctx, newTestItem("u1", "a", "Rice")); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Delete(ctx, "u1", "a"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, "u1", "a"); !errors.Is(err, domain.ErrConditionFailed) {
			t.Errorf("second delete: expected ErrConditionFailed, got %v", err)
		}
		if _, err := repo.Update(ctx, "u1", "a", domain.ItemPatch{Name: strPtr("x")}, baseTime); !errors.Is(err, domain.ErrConditionFailed) {
			t.Errorf("update after delete: expected ErrConditionFailed, got %v", err)
		}
	})

	t.Run("concurrent creates on one key admit a single winner", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var wins, conflicts atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				err := repo.Create(ctx, newTestItem("u1", "same", fmt.Sprintf("Rice %d", n)))
				switch {
				case err == nil:
					wins.Add(1)
				case errors.Is(err, domain.ErrConditionFailed):
					conflicts.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()

		if wins.Load() != 1 || conflicts.Load() != 19 {
			t.Errorf("expected 1 win and 19 conflicts, got %d and %d", wins.Load(), conflicts.Load())
		}
	})
}

func strPtr(s string) *string { return &s }
