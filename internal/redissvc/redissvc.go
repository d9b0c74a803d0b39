// Package redissvc holds the Redis-backed transaction guard used for
// duplicate transaction-id detection ahead of the core workflow.
package redissvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const reservationPrefix = "tx:"

// TxGuard reserves transaction ids so that a duplicate submission is
// rejected before any stock mutation occurs. The transactions table's
// unique constraint remains the final word.
type TxGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTxGuard(rdb *redis.Client, ttl time.Duration) *TxGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TxGuard{rdb: rdb, ttl: ttl}
}

// Reserve claims a transaction id. Returns false when the id is already
// reserved.
func (g *TxGuard) Reserve(ctx context.Context, txID string) (bool, error) {
	return g.rdb.SetNX(ctx, reservationPrefix+txID, 1, g.ttl).Result()
}

// Release frees a reservation after a failed workflow so the id can be
// retried.
func (g *TxGuard) Release(ctx context.Context, txID string) error {
	return g.rdb.Del(ctx, reservationPrefix+txID).Err()
}
