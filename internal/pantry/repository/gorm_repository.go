package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/pantry/internal/pantry/domain"
)

// GormItemRepository stores items in a SQL table keyed by (owner_id, item_id).
type GormItemRepository struct {
	db    *gorm.DB
	table string
}

// NewGormItemRepository creates a repository over the named table
func NewGormItemRepository(db *gorm.DB, table string) *GormItemRepository {
	return &GormItemRepository{db: db, table: table}
}

// AutoMigrate creates or updates the items table
func (r *GormItemRepository) AutoMigrate() error {
	if r.table == "" {
		return nil
	}
	return r.db.Table(r.table).AutoMigrate(&domain.Item{})
}

func (r *GormItemRepository) scope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// ListByOwner returns the owner's items ordered by item id, descending
func (r *GormItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	items := []domain.Item{}
	err := r.scope(ctx).
		Where("owner_id = ?", ownerID).
		Order("item_id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Create inserts the item unless the key is already taken. MySQL rewrites
// ON CONFLICT DO NOTHING into an upsert that reports a found row, so there the
// insert is plain and the duplicate-key error is the fence.
func (r *GormItemRepository) Create(ctx context.Context, item *domain.Item) error {
	if r.db.Dialector.Name() == "mysql" {
		err := r.scope(ctx).Create(item).Error
		if isDuplicateKey(err) {
			return domain.ErrConditionFailed
		}
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		return nil
	}

	res := r.scope(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item)
	if res.Error != nil {
		return fmt.Errorf("failed to create item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConditionFailed
	}
	return nil
}

// ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// Update applies the patch to an existing row and reads it back in the same transaction
func (r *GormItemRepository) Update(ctx context.Context, ownerID, itemID string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	updates := patchColumns(patch)
	updates["updated_at"] = updatedAt

	var updated domain.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(r.table).
			Where("owner_id = ? AND item_id = ?", ownerID, itemID).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrConditionFailed
		}

		err := tx.Table(r.table).
			Where("owner_id = ? AND item_id = ?", ownerID, itemID).
			Take(&updated).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrConditionFailed
		}
		if err != nil {
			return fmt.Errorf("failed to read updated item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an existing row
func (r *GormItemRepository) Delete(ctx context.Context, ownerID, itemID string) error {
	res := r.scope(ctx).
		Where("owner_id = ? AND item_id = ?", ownerID, itemID).
		Delete(&domain.Item{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConditionFailed
	}
	return nil
}

// Ping checks database connectivity
func (r *GormItemRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func patchColumns(p domain.ItemPatch) map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Quantity.Present {
		cols["quantity"] = p.Quantity.Value
	}
	if p.Unit.Present {
		cols["unit"] = p.Unit.Value
	}
	if p.Category.Present {
		cols["category"] = p.Category.Value
	}
	if p.ExpiryDate.Present {
		cols["expiry_date"] = p.ExpiryDate.Value
	}
	return cols
}
