package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-store-inventory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delivery struct {
	storeID string
	payload []byte
}

type fakeSink struct {
	mu         sync.Mutex
	deliveries []delivery
	err        error
}

func (s *fakeSink) Deliver(ctx context.Context, storeID string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, delivery{storeID: storeID, payload: payload})
	return s.err
}

func (s *fakeSink) snapshot() []delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]delivery(nil), s.deliveries...)
}

func sampleEvent() Event {
	return Event{
		StoreID: "T1",
		Type:    TypeItemCreated,
		Item: &model.Item{
			SKU:         "A1",
			Name:        "Widget",
			Quantity:    2,
			LastUpdated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestEventPayload_OmitsStore(t *testing.T) {
	payload, err := sampleEvent().Payload()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, TypeItemCreated, decoded["type"])
	assert.NotContains(t, decoded, "storeId")

	item, ok := decoded["item"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A1", item["sku"])
	assert.NotContains(t, item, "storeId")
}

func TestHubPublisher(t *testing.T) {
	sink := &fakeSink{}
	pub := NewHubPublisher(sink)

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))

	got := sink.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].storeID)
	assert.Contains(t, string(got[0].payload), `"sku":"A1"`)
}

func TestHubPublisher_PropagatesSinkError(t *testing.T) {
	boom := errors.New("buffer full")
	pub := NewHubPublisher(&fakeSink{err: boom})

	assert.ErrorIs(t, pub.Publish(context.Background(), sampleEvent()), boom)
}
