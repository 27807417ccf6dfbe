// Package events carries item notifications from the write path to the
// per-store websocket feed, either in-process or through redis pub/sub.
package events

import (
	"context"
	"encoding/json"

	"go-store-inventory/internal/model"
)

const TypeItemCreated = "item_created"

// Event is addressed to one store. StoreID routes the event and is never part of
// the payload clients receive.
type Event struct {
	StoreID string      `json:"-"`
	Type    string      `json:"type"`
	Item    *model.Item `json:"item"`
}

// Payload is the JSON written to feed clients.
func (e Event) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Sink receives rendered payloads for a store; *ws.Hub implements it.
type Sink interface {
	Deliver(ctx context.Context, storeID string, payload []byte) error
}

// HubPublisher hands events straight to an in-process sink.
type HubPublisher struct {
	sink Sink
}

func NewHubPublisher(sink Sink) *HubPublisher {
	return &HubPublisher{sink: sink}
}

func (p *HubPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := event.Payload()
	if err != nil {
		return err
	}
	return p.sink.Deliver(ctx, event.StoreID, payload)
}
