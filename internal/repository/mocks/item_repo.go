package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-store-inventory/internal/model"
	"go-store-inventory/internal/repository"

	"github.com/google/uuid"
)

// MockItemRepository is an in-memory repository.ItemRepository for tests.
// Each insert advances a fake clock by one second so lastUpdated values are distinct.
type MockItemRepository struct {
	mu    sync.Mutex
	items []model.Item
	clock time.Time

	ListErr    error
	ExistsErr  error
	InsertErr  error
	SchemaErr  error
	// SkipExists makes ExistsBySKU report false, simulating a concurrent insert
	// landing between the existence check and the write.
	SkipExists bool

	ListCalls   int
	ExistsCalls int
	InsertCalls int
}

func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *MockItemRepository) EnsureSchema(ctx context.Context) error {
	return m.SchemaErr
}

func (m *MockItemRepository) List(ctx context.Context, storeID string) ([]model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	items := []model.Item{}
	for _, it := range m.items {
		if it.StoreID == storeID {
			items = append(items, it.Public())
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastUpdated.After(items[j].LastUpdated)
	})
	return items, nil
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, storeID, sku string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExistsCalls++
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	if m.SkipExists {
		return false, nil
	}
	return m.findLocked(storeID, sku), nil
}

func (m *MockItemRepository) Insert(ctx context.Context, storeID string, item *model.Item) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	if m.findLocked(storeID, item.SKU) {
		return nil, repository.ErrDuplicateSKU
	}

	m.clock = m.clock.Add(time.Second)
	record := *item
	record.ID = uuid.New()
	record.StoreID = storeID
	record.LastUpdated = m.clock
	m.items = append(m.items, record)

	created := record.Public()
	return &created, nil
}

// Count returns how many items storeID owns.
func (m *MockItemRepository) Count(storeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.items {
		if it.StoreID == storeID {
			n++
		}
	}
	return n
}

// TotalCalls is the number of storage operations performed so far.
func (m *MockItemRepository) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCalls + m.ExistsCalls + m.InsertCalls
}

func (m *MockItemRepository) findLocked(storeID, sku string) bool {
	for _, it := range m.items {
		if it.StoreID == storeID && it.SKU == sku {
			return true
		}
	}
	return false
}
