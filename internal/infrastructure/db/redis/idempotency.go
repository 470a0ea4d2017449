package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const captureTTL = 24 * time.Hour

// CaptureGuard provides first-delivery-wins claims on payment transaction
// ids, backed by Redis SETNX.
// Key format: payment:txn:<transaction_id>
type CaptureGuard struct {
	client *redis.Client
}

// NewCaptureGuard creates a CaptureGuard wrapping the given Redis client.
func NewCaptureGuard(client *redis.Client) *CaptureGuard {
	return &CaptureGuard{client: client}
}

// Claim atomically marks the transaction id as processed. It returns true
// exactly once per id within the TTL; re-deliveries get false.
func (g *CaptureGuard) Claim(ctx context.Context, transactionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(transactionID), "1", captureTTL).Result()
	if err != nil {
		return false, fmt.Errorf("capture claim: %w", err)
	}
	return ok, nil
}

// Release deletes the claim so a later delivery of the same transaction id
// claims fresh again. Called when capture fails after the claim was taken.
func (g *CaptureGuard) Release(ctx context.Context, transactionID string) error {
	if err := g.client.Del(ctx, g.key(transactionID)).Err(); err != nil {
		return fmt.Errorf("capture release: %w", err)
	}
	return nil
}

func (g *CaptureGuard) key(transactionID string) string {
	return "payment:txn:" + transactionID
}
