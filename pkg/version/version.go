package version

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// Unknown is reported until a value has been fetched.
	Unknown = "Unknown"

	// DefaultMaxAge is how long a fetched value stays fresh.
	DefaultMaxAge = time.Hour

	// DefaultFetchTimeout bounds a shared refresh.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultRemoteURL is the plain text file holding the latest release.
	DefaultRemoteURL = "https://raw.githubusercontent.com/jmrenouard/MySQLTuner-perl/refs/heads/master/CURRENT_VERSION.txt"
)

// DefaultPlaceholders are values that always trigger a refresh.
// "1.0.4" is a stale label shipped with old deployments.
var DefaultPlaceholders = []string{Unknown, "1.0.4"}

// Normalize trims v and rejects empty or multi-line values.
func Normalize(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ErrEmptyVersion
	}
	if strings.ContainsAny(v, "\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return v, nil
}

// Record is the cached version together with the time it was last checked.
type Record struct {
	Value     string
	CheckedAt time.Time
}

// Policy decides when a record must be refreshed.
type Policy struct {
	Placeholders []string
	MaxAge       time.Duration
}

// DefaultPolicy returns the policy with DefaultPlaceholders and DefaultMaxAge.
func DefaultPolicy() Policy {
	return Policy{
		Placeholders: slices.Clone(DefaultPlaceholders),
		MaxAge:       DefaultMaxAge,
	}
}

// IsPlaceholder reports whether v is empty or one of the placeholder values.
func (p Policy) IsPlaceholder(v string) bool {
	return v == "" || slices.Contains(p.Placeholders, v)
}

// IsStale reports whether rec must be refreshed at now.
// Placeholder values are stale regardless of age.
func (p Policy) IsStale(rec Record, now time.Time) bool {
	if p.IsPlaceholder(rec.Value) || rec.CheckedAt.IsZero() {
		return true
	}
	return now.Sub(rec.CheckedAt) > p.MaxAge
}
