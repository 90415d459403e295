// Package redis opens the Redis connection used by the Redis version store.
//
// It wraps [github.com/redis/go-redis/v9] with environment-driven
// configuration, startup retries and the hooks the application needs:
// a readiness check and a shutdown function.
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	if err != nil {
//		return err
//	}
//
//	app := docsite.New(
//		docsite.WithHealthChecks(docsite.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	err = app.Run(addr, docsite.ShutdownHook(redis.Shutdown(client)))
//
// Both redis:// and rediss:// (TLS) URLs are accepted.
package redis
