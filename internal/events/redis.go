package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultChannel is the redis channel shared by every API instance.
const DefaultChannel = "items:events"

// envelope is the inter-instance wire format. It is only ever seen by other
// instances; clients get the inner payload.
type envelope struct {
	StoreID string          `json:"storeId"`
	Payload json.RawMessage `json:"payload"`
}

// RedisPublisher publishes events on a redis channel so every instance's relay
// can deliver them to its own feed clients.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := event.Payload()
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{StoreID: event.StoreID, Payload: payload})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

// RedisRelay subscribes to the channel and forwards each event to the local sink.
type RedisRelay struct {
	client  *redis.Client
	channel string
	sink    Sink
	logger  *zap.Logger
}

func NewRedisRelay(client *redis.Client, channel string, sink Sink, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		sink:    sink,
		logger:  logger.With(zap.String("component", "redis_relay")),
	}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (r *RedisRelay) Run(ctx context.Context) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	r.logger.Info("relaying item events", zap.String("channel", r.channel))
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				r.logger.Warn("redis subscription closed")
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.logger.Warn("discarding malformed event", zap.Error(err))
				continue
			}
			if env.StoreID == "" {
				continue
			}
			if err := r.sink.Deliver(ctx, env.StoreID, env.Payload); err != nil {
				r.logger.Warn("failed to deliver event", zap.String("store_id", env.StoreID), zap.Error(err))
			}
		}
	}
}
