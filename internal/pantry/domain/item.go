package domain

import (
	"context"
	"errors"
	"time"
)

// ErrConditionFailed is returned by a repository when the existence condition of a
// conditional write does not hold: the key already exists on create, or is missing
// on update and delete.
var ErrConditionFailed = errors.New("conditional check failed")

// Item is a pantry item owned by exactly one caller.
type Item struct {
	OwnerID    string    `json:"-" gorm:"primaryKey;column:owner_id;type:varchar(255)"`
	ItemID     string    `json:"id" gorm:"primaryKey;column:item_id;type:varchar(64)"`
	Name       string    `json:"name" gorm:"not null"`
	Quantity   *float64  `json:"quantity,omitempty"`
	Unit       *string   `json:"unit,omitempty"`
	Category   *string   `json:"category,omitempty"`
	ExpiryDate *string   `json:"expiryDate,omitempty" gorm:"column:expiry_date"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime:false;precision:6"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime:false;precision:6"`
}

// Clone returns a deep copy so callers never share state with a store.
func (i *Item) Clone() *Item {
	c := *i
	c.Quantity = clonePtr(i.Quantity)
	c.Unit = clonePtr(i.Unit)
	c.Category = clonePtr(i.Category)
	c.ExpiryDate = clonePtr(i.ExpiryDate)
	return &c
}

// Apply copies the provided patch fields onto the item and stamps updatedAt.
func (i *Item) Apply(p ItemPatch, updatedAt time.Time) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Quantity.Present {
		i.Quantity = clonePtr(p.Quantity.Value)
	}
	if p.Unit.Present {
		i.Unit = clonePtr(p.Unit.Value)
	}
	if p.Category.Present {
		i.Category = clonePtr(p.Category.Value)
	}
	if p.ExpiryDate.Present {
		i.ExpiryDate = clonePtr(p.ExpiryDate.Value)
	}
	i.UpdatedAt = updatedAt
}

// Field is an optional patch value. Present with a nil Value clears the attribute.
type Field[T any] struct {
	Present bool
	Value   *T
}

// Set returns a present field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: &v}
}

// Null returns a present field that clears the attribute.
func Null[T any]() Field[T] {
	return Field[T]{Present: true}
}

// ItemPatch is the whitelisted set of mutable fields.
type ItemPatch struct {
	Name       *string
	Quantity   Field[float64]
	Unit       Field[string]
	Category   Field[string]
	ExpiryDate Field[string]
}

// IsEmpty reports whether no field was provided.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil &&
		!p.Quantity.Present &&
		!p.Unit.Present &&
		!p.Category.Present &&
		!p.ExpiryDate.Present
}

// ItemRepository defines the contract for pantry item storage. Every method is a
// single atomic operation against the backing store.
type ItemRepository interface {
	// ListByOwner returns all items of the owner ordered by item id, descending.
	ListByOwner(ctx context.Context, ownerID string) ([]Item, error)
	// Create stores the item if (ownerID, itemID) does not exist yet.
	Create(ctx context.Context, item *Item) error
	// Update applies the patch if (ownerID, itemID) exists and returns the stored result.
	Update(ctx context.Context, ownerID, itemID string, patch ItemPatch, updatedAt time.Time) (*Item, error)
	// Delete removes the item if (ownerID, itemID) exists.
	Delete(ctx context.Context, ownerID, itemID string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
