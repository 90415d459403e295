// Package health provides liveness and readiness HTTP handlers.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs named [Checks] in parallel with a shared timeout and
// answers 503 when any of them fails. The site registers a check for its
// documentation source and, when the Redis version store is used, a Redis ping.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"docs":  sourceCheck,
//		"redis": redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are never cached. They are plain text ("OK", or "unavailable: "
// followed by the failing check names) unless the client sends
// Accept: application/json or ?format=json, in which case each check is
// reported:
//
//	{"status":"unhealthy","checks":{"docs":{"status":"healthy"},"redis":{"status":"unhealthy","error":"..."}}}
package health
