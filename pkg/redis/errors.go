package redis

import "errors"

var (
	// ErrNoURL is returned when REDIS_URL is not set.
	ErrNoURL = errors.New("redis: no connection URL configured")
	// ErrInvalidURL is returned for a URL that is not a redis:// or rediss:// URL.
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrUnreachable is returned when no connect attempt got a PING reply.
	ErrUnreachable = errors.New("redis: server unreachable")
	// ErrPingFailed is reported by Healthcheck.
	ErrPingFailed = errors.New("redis: ping failed")
)
