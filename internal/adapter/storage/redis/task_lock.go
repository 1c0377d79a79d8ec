package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only if this instance still holds it.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// TaskLock implements ports.TaskLock using SET NX with a per-instance token.
type TaskLock struct {
	client goredis.UniversalClient
	prefix string
	token  string
}

// NewTaskLock creates a lease store. Each instance gets its own token.
func NewTaskLock(client goredis.UniversalClient) *TaskLock {
	return &TaskLock{
		client: client,
		prefix: keyPrefix + "lock:",
		token:  uuid.NewString(),
	}
}

// Acquire takes the named lease for ttl. Returns false if another instance holds it.
func (l *TaskLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	result, err := l.client.SetArgs(ctx, l.prefix+name, l.token, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis lock acquire: %w", err)
	}
	return result == "OK", nil
}

// Release gives up the named lease if this instance holds it.
func (l *TaskLock) Release(ctx context.Context, name string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.prefix + name}, l.token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis lock release: %w", err)
	}
	return nil
}
