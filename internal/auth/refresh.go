package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshPrefix = "refresh:"

// ErrInvalidRefreshToken is returned when a refresh token is unknown or
// expired.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type refreshEntry struct {
	username string
	expires  time.Time
}

// RefreshStore issues and redeems single-use refresh tokens. Tokens live
// in Redis when a client is configured, otherwise in process memory.
type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration

	mu     sync.Mutex
	tokens map[string]refreshEntry
}

func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &RefreshStore{
		rdb:    rdb,
		ttl:    ttl,
		tokens: map[string]refreshEntry{},
	}
}

// Issue creates a fresh refresh token for the user.
func (s *RefreshStore) Issue(username string) (string, error) {
	token := uuid.NewString()

	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.rdb.Set(ctx, refreshPrefix+token, username, s.ttl).Err(); err != nil {
			return "", err
		}
		return token, nil
	}

	s.mu.Lock()
	s.tokens[token] = refreshEntry{username: username, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Redeem consumes a refresh token and returns the username it was issued
// for. A token can be redeemed once.
func (s *RefreshStore) Redeem(token string) (string, error) {
	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		username, err := s.rdb.GetDel(ctx, refreshPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidRefreshToken
		}
		return username, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok || time.Now().After(entry.expires) {
		return "", ErrInvalidRefreshToken
	}
	delete(s.tokens, token)
	return entry.username, nil
}

// Cleanup purges expired in-memory tokens. Redis expires its own keys.
func (s *RefreshStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for token, entry := range s.tokens {
		if now.After(entry.expires) {
			delete(s.tokens, token)
		}
	}
}

// StartCleaner runs Cleanup on an interval; intended for a goroutine.
func (s *RefreshStore) StartCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		s.Cleanup()
	}
}
