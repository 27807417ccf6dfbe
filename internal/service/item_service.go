package service

import (
	"context"
	"errors"
	"fmt"

	"go-store-inventory/internal/events"
	"go-store-inventory/internal/metrics"
	"go-store-inventory/internal/model"
	"go-store-inventory/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrSKUExists = errors.New("SKU already exists in this store")
	ErrStorage   = errors.New("storage failure")
)

type ItemService interface {
	ListItems(ctx context.Context, storeID string) ([]model.Item, error)
	CreateItem(ctx context.Context, storeID string, req *model.CreateItemRequest) (*model.Item, error)
}

type itemService struct {
	itemRepo  repository.ItemRepository
	publisher events.Publisher
	metrics   *metrics.ItemMetrics
	logger    *zap.Logger
}

func NewItemService(repo repository.ItemRepository, publisher events.Publisher, m *metrics.ItemMetrics, logger *zap.Logger) ItemService {
	return &itemService{
		itemRepo:  repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With(zap.String("component", "item_service")),
	}
}

func (s *itemService) ListItems(ctx context.Context, storeID string) ([]model.Item, error) {
	items, err := s.itemRepo.List(ctx, storeID)
	if err != nil {
		s.metrics.Observe("list", metrics.OutcomeStorageErr)
		s.logger.Error("list items failed", zap.String("store_id", storeID), zap.Error(err))
		return nil, fmt.Errorf("%w: list items: %w", ErrStorage, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	s.metrics.Observe("list", metrics.OutcomeOK)
	return items, nil
}

// CreateItem validates req, rejects a SKU the store already holds, and inserts.
// The existence check and the insert are separate calls; a concurrent duplicate
// that slips between them is caught by the storage unique index and reported as
// ErrSKUExists as well.
func (s *itemService) CreateItem(ctx context.Context, storeID string, req *model.CreateItemRequest) (*model.Item, error) {
	// 1. Validate and normalize
	item, verr := NormalizeItem(storeID, *req)
	if verr != nil {
		s.metrics.Observe("create", metrics.OutcomeInvalid)
		return nil, verr
	}

	// 2. SKU uniqueness within the store
	exists, err := s.itemRepo.ExistsBySKU(ctx, storeID, item.SKU)
	if err != nil {
		return nil, s.storageFailure(storeID, "check sku", err)
	}
	if exists {
		s.metrics.Observe("create", metrics.OutcomeConflict)
		return nil, ErrSKUExists
	}

	// 3. Persist
	created, err := s.itemRepo.Insert(ctx, storeID, item)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			s.metrics.Observe("create", metrics.OutcomeConflict)
			return nil, ErrSKUExists
		}
		return nil, s.storageFailure(storeID, "insert item", err)
	}

	s.metrics.Observe("create", metrics.OutcomeOK)
	s.metrics.ItemCreated()

	// 4. Notify the store's feed. Failure here never fails the request.
	if s.publisher != nil {
		event := events.Event{StoreID: storeID, Type: events.TypeItemCreated, Item: created}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.metrics.EventDropped()
			s.logger.Warn("publish item event failed", zap.String("store_id", storeID), zap.String("sku", created.SKU), zap.Error(err))
		}
	}

	return created, nil
}

func (s *itemService) storageFailure(storeID, op string, err error) error {
	s.metrics.Observe("create", metrics.OutcomeStorageErr)
	s.logger.Error("create item failed", zap.String("store_id", storeID), zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
