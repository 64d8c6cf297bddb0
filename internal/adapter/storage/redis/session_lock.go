package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces session locks; the inventory path follows it.
const KeyPrefix = "vend:session:"

// releaseScript deletes the lock only while it still holds the caller's token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SessionLock implements ports.SessionLock using Redis SET NX PX.
type SessionLock struct {
	client *goredis.Client
	key    string
}

// NewSessionLock creates a lock for the machine backed by inventoryPath.
func NewSessionLock(client *goredis.Client, inventoryPath string) *SessionLock {
	return &SessionLock{
		client: client,
		key:    KeyPrefix + inventoryPath,
	}
}

// Key returns the Redis key guarding this machine.
func (l *SessionLock) Key() string {
	return l.key
}

// Acquire takes the lock for owner. Returns false if another owner holds it.
func (l *SessionLock) Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	result, err := l.client.SetArgs(ctx, l.key, owner, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis session lock acquire: %w", err)
	}
	return result == "OK", nil
}

// Release drops the lock if owner still holds it. Releasing a lock that
// expired or passed to another owner is not an error.
func (l *SessionLock) Release(ctx context.Context, owner string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, owner).Err(); err != nil {
		return fmt.Errorf("redis session lock release: %w", err)
	}
	return nil
}
