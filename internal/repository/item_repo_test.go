package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"go-store-inventory/internal/model"
	"go-store-inventory/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

// exerciseItemRepository runs the behaviour every ItemRepository must share.
// Stores are random so runs against a shared database do not collide.
func exerciseItemRepository(t *testing.T, repo ItemRepository) {
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	storeA := "store-" + uuid.NewString()
	storeB := "store-" + uuid.NewString()

	t.Run("empty store lists nothing", func(t *testing.T) {
		items, err := repo.List(ctx, storeA)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("insert returns public fields", func(t *testing.T) {
		created, err := repo.Insert(ctx, storeA, &model.Item{SKU: "A1", Name: "Widget", Unit: "pcs", Quantity: 3, Price: 1.5})
		require.NoError(t, err)
		assert.Equal(t, "A1", created.SKU)
		assert.Equal(t, "Widget", created.Name)
		assert.Equal(t, "pcs", created.Unit)
		assert.Equal(t, 3, created.Quantity)
		assert.Equal(t, 1.5, created.Price)
		assert.Empty(t, created.StoreID)
		assert.Equal(t, uuid.Nil, created.ID)
		assert.False(t, created.LastUpdated.IsZero())
	})

	t.Run("exists is scoped to store", func(t *testing.T) {
		exists, err := repo.ExistsBySKU(ctx, storeA, "A1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySKU(ctx, storeB, "A1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate sku rejected by storage", func(t *testing.T) {
		_, err := repo.Insert(ctx, storeA, &model.Item{SKU: "A1", Name: "Again"})
		assert.ErrorIs(t, err, ErrDuplicateSKU)

		_, err = repo.Insert(ctx, storeB, &model.Item{SKU: "A1", Name: "Other store"})
		assert.NoError(t, err)
	})

	t.Run("list is newest first and isolated", func(t *testing.T) {
		_, err := repo.Insert(ctx, storeA, &model.Item{SKU: "A2", Name: "Second"})
		require.NoError(t, err)
		_, err = repo.Insert(ctx, storeA, &model.Item{SKU: "A3", Name: "Third"})
		require.NoError(t, err)

		items, err := repo.List(ctx, storeA)
		require.NoError(t, err)
		skus := make([]string, 0, len(items))
		for _, it := range items {
			skus = append(skus, it.SKU)
			assert.Empty(t, it.StoreID)
		}
		assert.Equal(t, []string{"A3", "A2", "A1"}, skus)

		items, err = repo.List(ctx, storeB)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Other store", items[0].Name)
	})
}

func TestItemRepo_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL environment variable is not set")
	}
	db, err := database.ConnectPostgres(dsn)
	require.NoError(t, err)

	exerciseItemRepository(t, &itemRepo{db: db, now: steppingClock()})
}

func TestItemRepo_Mongo(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("Skipping integration test: TEST_MONGO_URI environment variable is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := database.ConnectMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := NewItemMongoRepo(client.Database("inventory_test")).(*itemMongoRepo)
	repo.now = steppingClock()
	exerciseItemRepository(t, repo)
}
