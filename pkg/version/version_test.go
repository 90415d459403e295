package version_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docsite/pkg/version"
)

type fakeRemote struct {
	mu    sync.Mutex
	value string
	err   error
	calls int
	gate  chan struct{}
}

func (r *fakeRemote) Fetch(ctx context.Context) (string, error) {
	r.mu.Lock()
	r.calls++
	gate := r.gate
	r.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, r.err
}

func (r *fakeRemote) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPolicy(t *testing.T) {
	t.Parallel()

	p := version.DefaultPolicy()

	tests := []struct {
		name  string
		rec   version.Record
		stale bool
	}{
		{name: "fresh", rec: version.Record{Value: "2.6.0", CheckedAt: baseTime.Add(-time.Minute)}, stale: false},
		{name: "expired", rec: version.Record{Value: "2.6.0", CheckedAt: baseTime.Add(-2 * time.Hour)}, stale: true},
		{name: "never checked", rec: version.Record{Value: "2.6.0"}, stale: true},
		{name: "unknown placeholder", rec: version.Record{Value: version.Unknown, CheckedAt: baseTime}, stale: true},
		{name: "sticky placeholder", rec: version.Record{Value: "1.0.4", CheckedAt: baseTime}, stale: true},
		{name: "empty value", rec: version.Record{Value: "", CheckedAt: baseTime}, stale: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.stale, p.IsStale(tt.rec, baseTime))
		})
	}
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		store := version.NewFileStore(filepath.Join(t.TempDir(), "CURRENT_VERSION.txt"))
		_, err := store.Load(ctx)
		require.ErrorIs(t, err, version.ErrNoRecord)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		store := version.NewFileStore(filepath.Join(t.TempDir(), "nested", "CURRENT_VERSION.txt"))
		require.NoError(t, store.Save(ctx, version.Record{Value: "2.0.1", CheckedAt: baseTime}))

		rec, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "2.0.1", rec.Value)
		require.True(t, rec.CheckedAt.Equal(baseTime), "got %s", rec.CheckedAt)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "CURRENT_VERSION.txt")
		require.NoError(t, os.WriteFile(path, []byte("  2.6.0\n"), 0o644))

		rec, err := version.NewFileStore(path).Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "2.6.0", rec.Value)
	})

	t.Run("save trims the value", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "CURRENT_VERSION.txt")
		require.NoError(t, version.NewFileStore(path).Save(ctx, version.Record{Value: " 2.7.0\n"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "2.7.0", string(data))
	})

	t.Run("save rejects multi-line values", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "CURRENT_VERSION.txt")
		store := version.NewFileStore(path)
		require.NoError(t, store.Save(ctx, version.Record{Value: "2.6.0"}))

		err := store.Save(ctx, version.Record{Value: "2.7.0\n<script>"})
		require.ErrorIs(t, err, version.ErrSaveFailed)
		require.ErrorIs(t, err, version.ErrInvalidVersion)

		rec, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "2.6.0", rec.Value)
	})

	t.Run("empty file reads as unknown", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "CURRENT_VERSION.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		rec, err := version.NewFileStore(path).Load(ctx)
		require.NoError(t, err)
		require.Equal(t, version.Unknown, rec.Value)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := version.NewMemoryStore()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, version.ErrNoRecord)

	require.NoError(t, store.Save(ctx, version.Record{Value: "2.0.1", CheckedAt: baseTime}))
	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, version.Record{Value: "2.0.1", CheckedAt: baseTime}, rec)
}

func TestSynchronizer_Current(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("fresh record skips remote", func(t *testing.T) {
		t.Parallel()

		store := version.NewMemoryStore()
		require.NoError(t, store.Save(ctx, version.Record{Value: "2.6.0", CheckedAt: baseTime.Add(-10 * time.Minute)}))
		remote := &fakeRemote{value: "2.7.0"}
		clock := &fixedClock{t: baseTime}

		s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now))
		require.Equal(t, "2.6.0", s.Current(ctx))
		require.Zero(t, remote.Calls())
	})

	t.Run("stale record is replaced", func(t *testing.T) {
		t.Parallel()

		store := version.NewMemoryStore()
		require.NoError(t, store.Save(ctx, version.Record{Value: "2.6.0", CheckedAt: baseTime.Add(-2 * time.Hour)}))
		remote := &fakeRemote{value: "2.7.0"}
		clock := &fixedClock{t: baseTime}

		s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now))
		require.Equal(t, "2.7.0", s.Current(ctx))

		rec, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, version.Record{Value: "2.7.0", CheckedAt: baseTime}, rec)
	})

	t.Run("equal value only updates timestamp", func(t *testing.T) {
		t.Parallel()

		store := version.NewMemoryStore()
		require.NoError(t, store.Save(ctx, version.Record{Value: "2.6.0", CheckedAt: baseTime.Add(-2 * time.Hour)}))
		remote := &fakeRemote{value: "2.6.0"}
		clock := &fixedClock{t: baseTime}

		s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now))
		require.Equal(t, "2.6.0", s.Current(ctx))

		rec, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, baseTime, rec.CheckedAt)
	})

	t.Run("placeholder always fetches", func(t *testing.T) {
		t.Parallel()

		for _, placeholder := range version.DefaultPlaceholders {
			store := version.NewMemoryStore()
			require.NoError(t, store.Save(ctx, version.Record{Value: placeholder, CheckedAt: baseTime}))
			remote := &fakeRemote{value: "2.7.0"}
			clock := &fixedClock{t: baseTime}

			s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now))
			require.Equal(t, "2.7.0", s.Current(ctx))
			require.Equal(t, 1, remote.Calls(), placeholder)
		}
	})

	t.Run("no record fetches", func(t *testing.T) {
		t.Parallel()

		remote := &fakeRemote{value: "2.7.0"}
		s := version.NewSynchronizer(version.NewMemoryStore(), remote)
		require.Equal(t, "2.7.0", s.Current(ctx))
		require.Equal(t, 1, remote.Calls())
	})

	t.Run("fetch failure keeps value and timestamp", func(t *testing.T) {
		t.Parallel()

		before := version.Record{Value: "2.6.0", CheckedAt: baseTime.Add(-2 * time.Hour)}
		store := version.NewMemoryStore()
		require.NoError(t, store.Save(ctx, before))
		remote := &fakeRemote{err: errors.New("dial tcp: connection refused")}
		clock := &fixedClock{t: baseTime}

		s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now))
		require.Equal(t, "2.6.0", s.Current(ctx))

		rec, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, before, rec)
	})

	t.Run("fetch failure without record is unknown", func(t *testing.T) {
		t.Parallel()

		remote := &fakeRemote{err: errors.New("offline")}
		s := version.NewSynchronizer(version.NewMemoryStore(), remote)
		require.Equal(t, version.Unknown, s.Current(ctx))
	})

	t.Run("custom max age", func(t *testing.T) {
		t.Parallel()

		store := version.NewMemoryStore()
		require.NoError(t, store.Save(ctx, version.Record{Value: "2.6.0", CheckedAt: baseTime.Add(-10 * time.Minute)}))
		remote := &fakeRemote{value: "2.7.0"}
		clock := &fixedClock{t: baseTime}

		s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now), version.WithMaxAge(5*time.Minute))
		require.Equal(t, "2.7.0", s.Current(ctx))
	})

	t.Run("custom placeholders", func(t *testing.T) {
		t.Parallel()

		store := version.NewMemoryStore()
		require.NoError(t, store.Save(ctx, version.Record{Value: "1.0.4", CheckedAt: baseTime}))
		remote := &fakeRemote{value: "2.7.0"}
		clock := &fixedClock{t: baseTime}

		s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now), version.WithPlaceholders(version.Unknown))
		require.Equal(t, "1.0.4", s.Current(ctx))
		require.Zero(t, remote.Calls())
	})
}

func TestSynchronizer_FileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "CURRENT_VERSION.txt")
	remote := &fakeRemote{value: "2.0.1"}

	s := version.NewSynchronizer(version.NewFileStore(path), remote)
	require.Equal(t, "2.0.1", s.Current(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "2.0.1", string(data))

	// Fresh now; a second call must not hit the remote.
	require.Equal(t, "2.0.1", s.Current(ctx))
	require.Equal(t, 1, remote.Calls())
}

type failingStore struct {
	version.MemoryStore
}

func (s *failingStore) Save(context.Context, version.Record) error {
	return errors.New("read-only file system")
}

func TestSynchronizer_SaveFailure(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{value: "2.7.0"}
	s := version.NewSynchronizer(&failingStore{}, remote)

	require.Equal(t, "2.7.0", s.Current(context.Background()))

	rec, err := s.Refresh(context.Background())
	require.ErrorIs(t, err, version.ErrSaveFailed)
	require.Equal(t, "2.7.0", rec.Value)
}

func TestSynchronizer_Refresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := version.NewMemoryStore()
	require.NoError(t, store.Save(ctx, version.Record{Value: "2.6.0", CheckedAt: baseTime}))
	clock := &fixedClock{t: baseTime.Add(time.Minute)}

	remote := &fakeRemote{value: "2.7.0"}
	s := version.NewSynchronizer(store, remote, version.WithClock(clock.Now))

	rec, err := s.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, version.Record{Value: "2.7.0", CheckedAt: clock.t}, rec)

	remote.mu.Lock()
	remote.err = errors.New("boom")
	remote.mu.Unlock()

	rec, err = s.Refresh(ctx)
	require.Error(t, err)
	require.Equal(t, "2.7.0", rec.Value)
}

func TestSynchronizer_SharesInFlightFetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := &fakeRemote{value: "2.7.0", gate: make(chan struct{})}
	s := version.NewSynchronizer(version.NewMemoryStore(), remote)

	const callers = 8
	var (
		wg      sync.WaitGroup
		started atomic.Int32
		results = make([]string, callers)
	)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Add(1)
			results[i] = s.Current(ctx)
		}()
	}

	require.Eventually(t, func() bool {
		return started.Load() == callers && remote.Calls() == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(remote.gate)
	wg.Wait()

	for _, r := range results {
		require.Equal(t, "2.7.0", r)
	}
	require.LessOrEqual(t, remote.Calls(), callers)
}

func TestSynchronizer_SharedFetchOutlivesCancelledCaller(t *testing.T) {
	t.Parallel()

	store := version.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), version.Record{Value: "2.6.0", CheckedAt: baseTime}))
	remote := &fakeRemote{value: "2.7.0", gate: make(chan struct{})}
	s := version.NewSynchronizer(store, remote)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan string, 1)
	go func() { first <- s.Current(ctx) }()

	require.Eventually(t, func() bool { return remote.Calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	require.Equal(t, "2.6.0", <-first)

	// The fetch started by the cancelled caller is still in flight.
	second := make(chan string, 1)
	go func() { second <- s.Current(context.Background()) }()

	close(remote.gate)
	require.Equal(t, "2.7.0", <-second)
	require.Equal(t, 1, remote.Calls())

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2.7.0", rec.Value)
}

func TestSynchronizer_RejectsMultiLineRemoteValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := version.NewMemoryStore()
	require.NoError(t, store.Save(ctx, version.Record{Value: "2.6.0", CheckedAt: baseTime}))
	s := version.NewSynchronizer(store, &fakeRemote{value: "2.7.0\nextra"})

	require.Equal(t, "2.6.0", s.Current(ctx))

	_, err := s.Refresh(ctx)
	require.ErrorIs(t, err, version.ErrInvalidVersion)

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "2.6.0", rec.Value)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "plain", in: "2.7.0", want: "2.7.0"},
		{name: "surrounding whitespace", in: "\t2.7.0\r\n", want: "2.7.0"},
		{name: "empty", in: "  \n", wantErr: version.ErrEmptyVersion},
		{name: "embedded newline", in: "2.7.0\n2.6.0", wantErr: version.ErrInvalidVersion},
		{name: "embedded carriage return", in: "2.7.0\r2.6.0", wantErr: version.ErrInvalidVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := version.Normalize(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPRemote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("trims body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("2.6.0\n"))
		}))
		t.Cleanup(srv.Close)

		v, err := version.NewHTTPRemote(srv.URL, srv.Client()).Fetch(ctx)
		require.NoError(t, err)
		require.Equal(t, "2.6.0", v)
	})

	t.Run("non-2xx", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)

		_, err := version.NewHTTPRemote(srv.URL, srv.Client()).Fetch(ctx)
		require.ErrorIs(t, err, version.ErrUnexpectedStatus)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("  \n"))
		}))
		t.Cleanup(srv.Close)

		_, err := version.NewHTTPRemote(srv.URL, srv.Client()).Fetch(ctx)
		require.ErrorIs(t, err, version.ErrEmptyVersion)
	})
}

func TestConfig_NewStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := version.Config{Store: version.StoreFile, File: filepath.Join(dir, "v.txt")}.NewStore(nil)
	require.NoError(t, err)
	require.IsType(t, &version.FileStore{}, store)

	store, err = version.Config{Store: version.StoreMemory}.NewStore(nil)
	require.NoError(t, err)
	require.IsType(t, &version.MemoryStore{}, store)

	_, err = version.Config{Store: version.StoreRedis}.NewStore(nil)
	require.ErrorIs(t, err, version.ErrNoRedisClient)

	_, err = version.Config{Store: "etcd"}.NewStore(nil)
	require.ErrorIs(t, err, version.ErrUnknownStore)
}
