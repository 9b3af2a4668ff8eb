// Package redis holds the session-scoped cart store. Authenticated
// users keep their source-of-truth cart in PostgreSQL; this store holds
// the per-session copy and the carts of anonymous visitors.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
)

const sessionCartKeyPrefix = "cart:session:"

// SessionCartStore implements repository.SessionCartStore on Redis. Each
// session cart is stored as one JSON blob and overwritten wholesale on
// every mutation.
type SessionCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCartStore creates a Redis-backed session cart store. Entries
// expire after ttl of inactivity.
func NewSessionCartStore(client *redis.Client, ttl time.Duration) *SessionCartStore {
	return &SessionCartStore{client: client, ttl: ttl}
}

func sessionCartKey(sessionID string) string {
	return sessionCartKeyPrefix + sessionID
}

// Get loads the cart for a session. A missing key yields an empty cart.
func (s *SessionCartStore) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, sessionCartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.Cart{SessionID: sessionID, Lines: []domain.CartLine{}}, nil
		}
		return nil, fmt.Errorf("get session cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal session cart: %w", err)
	}
	cart.SessionID = sessionID

	return &cart, nil
}

// Save overwrites the session cart and refreshes its TTL.
func (s *SessionCartStore) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal session cart: %w", err)
	}

	if err := s.client.Set(ctx, sessionCartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session cart: %w", err)
	}

	return nil
}

// Delete removes the session cart. Deleting a missing key is a no-op.
func (s *SessionCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionCartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session cart: %w", err)
	}

	return nil
}
