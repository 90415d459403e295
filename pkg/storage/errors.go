package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	// ErrInvalidConfig is returned by New when the bucket or credentials are missing.
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	// ErrNotFound means the requested documentation object does not exist.
	ErrNotFound = errors.New("storage: object not found")
	// ErrNoSuchBucket means the configured bucket does not exist.
	ErrNoSuchBucket = errors.New("storage: bucket not found")
	// ErrAccessDenied means the credentials may not read the object.
	ErrAccessDenied = errors.New("storage: access denied")
	// ErrReadFailed covers every other failure.
	ErrReadFailed = errors.New("storage: read failed")
)

// errorCodes maps S3 API error codes to sentinels. HEAD responses carry no
// body, so a missing object surfaces there as the bare "NotFound" code.
var errorCodes = map[string]error{
	"NoSuchKey":    ErrNotFound,
	"NotFound":     ErrNotFound,
	"NoSuchBucket": ErrNoSuchBucket,
	"AccessDenied": ErrAccessDenied,
	"Forbidden":    ErrAccessDenied,
}

// classify returns the sentinel matching an S3 error.
func classify(err error) error {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return ErrNotFound
	}
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return ErrNoSuchBucket
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if sentinel, ok := errorCodes[apiErr.ErrorCode()]; ok {
			return sentinel
		}
	}
	return ErrReadFailed
}

// wrapS3Error names the operation and key and keeps only the sentinel in the
// chain; the AWS error text is formatted with %v.
func wrapS3Error(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", classify(err), op, key, err)
}
