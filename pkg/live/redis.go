package live

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher shares events between API instances over Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := encode(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, Channel, payload).Err()
}

// Relay forwards Redis messages into the local hub until ctx is done.
func Relay(ctx context.Context, client *redis.Client, hub *Hub) {
	pubsub := client.Subscribe(ctx, Channel)
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			ev, err := decode(msg.Payload)
			if err != nil {
				log.Printf("live: dropping malformed event: %v", err)
				continue
			}
			hub.Broadcast(ev)
		}
	}
}
