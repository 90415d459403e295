// Package storage provides read access to documentation sources kept in
// S3-compatible object storage (AWS S3, MinIO, R2).
//
// The site never writes documentation at runtime, so the package exposes only
// the read side: fetching an object body and checking that an object exists.
//
// # Basic Usage
//
//	bucket, err := storage.New(storage.Config{
//		Bucket:    "docs",
//		AccessKey: os.Getenv("DOCS_BUCKET_ACCESS_KEY"),
//		SecretKey: os.Getenv("DOCS_BUCKET_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	body, err := bucket.Get(ctx, "docs/overview.md")
//	if errors.Is(err, storage.ErrNotFound) {
//		// object absent
//	}
//	defer body.Close()
//
// # Error Handling
//
// S3 errors are normalized to sentinel errors:
//
//   - [ErrNotFound]: NoSuchKey, NotFound
//   - [ErrNoSuchBucket]: NoSuchBucket
//   - [ErrAccessDenied]: AccessDenied, Forbidden
//   - [ErrReadFailed]: any other failure
//
// The message names the operation and key and keeps the AWS error text, but
// only the sentinel is in the error chain; use [errors.Is] with the sentinels.
package storage
