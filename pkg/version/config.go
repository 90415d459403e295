package version

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Store kinds accepted by Config.Store.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds version synchronizer settings loaded from the environment.
type Config struct {
	File             string        `env:"VERSION_FILE" envDefault:"CURRENT_VERSION.txt"`
	URL              string        `env:"VERSION_URL" envDefault:"https://raw.githubusercontent.com/jmrenouard/MySQLTuner-perl/refs/heads/master/CURRENT_VERSION.txt"`
	MaxAge           time.Duration `env:"VERSION_MAX_AGE" envDefault:"1h"`
	FetchTimeout     time.Duration `env:"VERSION_FETCH_TIMEOUT" envDefault:"15s"`
	RefreshSchedule  string        `env:"VERSION_REFRESH_SCHEDULE" envDefault:"@every 1h"`
	Store            string        `env:"VERSION_STORE" envDefault:"file"`
	RedisKey         string        `env:"VERSION_REDIS_KEY" envDefault:"docsite:version"`
	DisableScheduler bool          `env:"VERSION_DISABLE_SCHEDULER"`
}

// NewStore builds the configured Store.
// The Redis client is only required when Store is "redis".
func (c Config) NewStore(client redis.UniversalClient) (Store, error) {
	switch c.Store {
	case "", StoreFile:
		return NewFileStore(c.File), nil
	case StoreRedis:
		if client == nil {
			return nil, ErrNoRedisClient
		}
		return NewRedisStore(client, c.RedisKey), nil
	case StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, ErrUnknownStore
	}
}
