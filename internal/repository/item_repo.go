package repository

import (
	"context"
	"errors"
	"time"

	"go-store-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateSKU is returned by Insert when the store already holds the SKU.
var ErrDuplicateSKU = errors.New("sku already exists for store")

// ItemRepository reads and writes items. Every call is scoped to one store and
// every returned item has its internal fields stripped.
type ItemRepository interface {
	List(ctx context.Context, storeID string) ([]model.Item, error)
	ExistsBySKU(ctx context.Context, storeID, sku string) (bool, error)
	Insert(ctx context.Context, storeID string, item *model.Item) (*model.Item, error)
	EnsureSchema(ctx context.Context) error
}

// Columns that never leave the repository.
var internalColumns = []string{"id", "store_id", "created_at"}

type itemRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db, now: time.Now}
}

func (r *itemRepo) EnsureSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.Item{})
}

func (r *itemRepo) List(ctx context.Context, storeID string) ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.WithContext(ctx).
		Omit(internalColumns...).
		Where("store_id = ?", storeID).
		Order("last_updated DESC").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) ExistsBySKU(ctx context.Context, storeID, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("store_id = ? AND sku = ?", storeID, sku).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// Insert stamps the owner and lastUpdated, writes the row, then reads it back
// without internal columns.
func (r *itemRepo) Insert(ctx context.Context, storeID string, item *model.Item) (*model.Item, error) {
	record := *item
	record.ID = uuid.Nil
	record.StoreID = storeID
	record.LastUpdated = r.now().UTC()

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}

	var created model.Item
	if err := r.db.WithContext(ctx).Omit(internalColumns...).First(&created, "id = ?", record.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}
