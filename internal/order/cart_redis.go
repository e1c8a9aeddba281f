package order

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// CartStore loads and saves the durable cart record for a session. The
// record never expires; last write wins across tabs.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
}

type RedisCartStore struct {
	rdb *redis.Client
}

func NewRedisCartStore(rdb *redis.Client) *RedisCartStore {
	return &RedisCartStore{rdb: rdb}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Load returns the stored cart, or an empty one when nothing is stored.
// Records written under a different layout version are discarded.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	val, err := s.rdb.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return NewCart(), nil
	}
	if err != nil {
		return nil, err
	}

	var cart Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return NewCart(), nil
	}
	if cart.Version != cartVersion {
		return NewCart(), nil
	}
	if cart.Items == nil {
		cart.Items = []LineItem{}
	}
	if cart.DeliveryType != Pickup {
		cart.DeliveryType = Delivery
	}

	return &cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(sessionID), data, 0).Err()
}

// InMemoryCartStore backs tests.
type InMemoryCartStore struct {
	carts map[string][]byte
}

func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{carts: make(map[string][]byte)}
}

func (s *InMemoryCartStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	data, ok := s.carts[sessionID]
	if !ok {
		return NewCart(), nil
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return NewCart(), nil
	}
	if cart.Version != cartVersion {
		return NewCart(), nil
	}
	if cart.Items == nil {
		cart.Items = []LineItem{}
	}
	if cart.DeliveryType != Pickup {
		cart.DeliveryType = Delivery
	}

	return &cart, nil
}

func (s *InMemoryCartStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	s.carts[sessionID] = data
	return nil
}
