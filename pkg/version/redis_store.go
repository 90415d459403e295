package version

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash key used by RedisStore.
const DefaultRedisKey = "docsite:version"

const (
	fieldValue     = "value"
	fieldCheckedAt = "checked_at"
)

// RedisStore keeps the record in a Redis hash with value and checked_at fields.
// The client should be obtained from pkg/redis.Open.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a store for key. An empty key uses DefaultRedisKey.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load reads the hash. A missing key yields ErrNoRecord.
func (s *RedisStore) Load(ctx context.Context) (Record, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Record{}, err
	}

	value, ok := fields[fieldValue]
	if !ok {
		return Record{}, ErrNoRecord
	}

	rec := Record{Value: value}
	if raw := fields[fieldCheckedAt]; raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Record{}, fmt.Errorf("version: invalid checked_at %q: %w", raw, err)
		}
		rec.CheckedAt = t
	}

	return rec, nil
}

// Save overwrites both fields in one command.
func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	checkedAt := ""
	if !rec.CheckedAt.IsZero() {
		checkedAt = rec.CheckedAt.UTC().Format(time.RFC3339Nano)
	}

	if err := s.client.HSet(ctx, s.key, fieldValue, rec.Value, fieldCheckedAt, checkedAt).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
