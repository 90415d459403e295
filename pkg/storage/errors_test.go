package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

type apiError struct{ code string }

func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return "msg" }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultServer }
func (e *apiError) Error() string                 { return fmt.Sprintf("api error %s", e.code) }

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing page", &apiError{code: "NoSuchKey"}, ErrNotFound},
		{"head on missing page", &apiError{code: "NotFound"}, ErrNotFound},
		{"typed missing page", &types.NoSuchKey{}, ErrNotFound},
		{"missing bucket", &apiError{code: "NoSuchBucket"}, ErrNoSuchBucket},
		{"typed missing bucket", fmt.Errorf("op: %w", &types.NoSuchBucket{}), ErrNoSuchBucket},
		{"denied", &apiError{code: "AccessDenied"}, ErrAccessDenied},
		{"forbidden", &apiError{code: "Forbidden"}, ErrAccessDenied},
		{"throttled", &apiError{code: "SlowDown"}, ErrReadFailed},
		{"network", errors.New("dial tcp: connection refused"), ErrReadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := wrapS3Error("get", "docs/overview.md", tt.err)
			require.ErrorIs(t, got, tt.want)
			require.Contains(t, got.Error(), "get docs/overview.md")
			require.Contains(t, got.Error(), tt.err.Error())
			require.NotErrorIs(t, got, tt.err)
		})
	}
}
