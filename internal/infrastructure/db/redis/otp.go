package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore keeps phone-verification codes in Redis with a TTL, so a code
// expires on its own and is deleted once consumed.
// Key format: otp:<user_id>
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTPStore wrapping the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Set stores the code for a user, replacing any previous one.
func (s *OTPStore) Set(ctx context.Context, userID, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), code, ttl).Err(); err != nil {
		return fmt.Errorf("otp set: %w", err)
	}
	return nil
}

// Get returns the pending code for a user, or "" when none exists.
func (s *OTPStore) Get(ctx context.Context, userID string) (string, error) {
	code, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("otp get: %w", err)
	}
	return code, nil
}

// Delete clears a consumed code.
func (s *OTPStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *OTPStore) key(userID string) string {
	return "otp:" + userID
}
