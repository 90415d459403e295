// Package version keeps a cached "current release" label in sync with a
// remote plain-text endpoint.
//
// A [Synchronizer] reads the cached [Record] from a [Store]. When the record
// is older than the configured max age, or holds a placeholder value such as
// "Unknown", the remote endpoint is queried and the store updated. Remote
// failures never reach the caller: the last known value is served instead.
//
// Stores:
//
//   - [FileStore] keeps the value in a plain text file and uses the file
//     modification time as the check timestamp
//   - [RedisStore] keeps value and timestamp in a Redis hash
//   - [MemoryStore] is process-local
//
// A [Scheduler] refreshes the value periodically on a cron schedule so
// requests rarely hit a stale record.
//
// Example:
//
//	sync := version.NewSynchronizer(
//		version.NewFileStore("CURRENT_VERSION.txt"),
//		version.NewHTTPRemote(version.DefaultRemoteURL, nil),
//		version.WithLogger(log),
//	)
//	label := sync.Current(ctx)
package version
