package contracts

import (
	"context"
	"time"
)

// LockerService provides redis-backed single-flight locks. TryLock returns the
// ownership value required to release; a false acquire without error means the
// lock is held elsewhere.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
