package internal_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docsite/internal"
)

type ctxKey struct{}

type stubHandler struct{}

func (stubHandler) Routes(r internal.Router) {
	r.GET("/hello/{name}", func(c internal.Context) error {
		return c.String(http.StatusOK, "hello "+c.Param("name")+c.QueryDefault("suffix", "!"))
	})
	r.GET("/json", func(c internal.Context) error {
		return c.JSON(http.StatusCreated, map[string]string{"ok": "yes"})
	})
	r.GET("/missing", func(c internal.Context) error {
		return c.Error(http.StatusNotFound, "nothing here")
	})
	r.GET("/boom", func(c internal.Context) error {
		return errors.New("database on fire")
	})
	r.GET("/value", func(c internal.Context) error {
		v, _ := c.Get(ctxKey{}).(string)
		return c.String(http.StatusOK, v)
	})
	r.GET("/redirect", func(c internal.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/")
	})
	r.Route("/grouped", func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			return c.String(http.StatusOK, c.Header("X-Route-MW"))
		}, func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Request().Header.Set("X-Route-MW", "applied")
				return next(c)
			}
		})
	})
	r.HEAD("/head", func(c internal.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	r.Page("/page", func(c internal.Context) error {
		return c.String(http.StatusOK, c.Header("X-Order"))
	}, appendOrder("outer"), appendOrder("inner"))
}

func appendOrder(name string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Request().Header.Add("X-Order", name)
			return next(c)
		}
	}
}

type component string

func (s component) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

func setValue(next internal.HandlerFunc) internal.HandlerFunc {
	return func(c internal.Context) error {
		c.Set(ctxKey{}, "from middleware")
		return next(c)
	}
}

func serve(t *testing.T, app *internal.App, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(setValue),
		internal.WithHandlers(stubHandler{}),
	)

	tests := []struct {
		name   string
		method string
		target string
		code   int
		body   string
	}{
		{name: "param and query", method: http.MethodGet, target: "/hello/docs?suffix=?", code: http.StatusOK, body: "hello docs?"},
		{name: "query default", method: http.MethodGet, target: "/hello/docs", code: http.StatusOK, body: "hello docs!"},
		{name: "json", method: http.MethodGet, target: "/json", code: http.StatusCreated, body: "{\"ok\":\"yes\"}\n"},
		{name: "http error", method: http.MethodGet, target: "/missing", code: http.StatusNotFound, body: "nothing here\n"},
		{name: "plain error", method: http.MethodGet, target: "/boom", code: http.StatusInternalServerError, body: "Internal Server Error\n"},
		{name: "middleware value", method: http.MethodGet, target: "/value", code: http.StatusOK, body: "from middleware"},
		{name: "route middleware", method: http.MethodGet, target: "/grouped/", code: http.StatusOK, body: "applied"},
		{name: "head", method: http.MethodHead, target: "/head", code: http.StatusNoContent},
		{name: "page get runs route middleware in order", method: http.MethodGet, target: "/page", code: http.StatusOK, body: "outer"},
		{name: "page head", method: http.MethodHead, target: "/page", code: http.StatusOK},
		{name: "page post", method: http.MethodPost, target: "/page", code: http.StatusMethodNotAllowed},
		{name: "redirect", method: http.MethodGet, target: "/redirect", code: http.StatusMovedPermanently},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, app, tt.method, tt.target)
			require.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				require.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestApp_ErrorHandler(t *testing.T) {
	t.Parallel()

	var seen error
	app := internal.New(
		internal.WithHandlers(stubHandler{}),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			seen = err
			code := http.StatusInternalServerError
			if httpErr := internal.AsHTTPError(err); httpErr != nil {
				code = httpErr.Code
			}
			return c.Render(code, component("<p>custom</p>"))
		}),
	)

	rec := serve(t, app, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "<p>custom</p>", rec.Body.String())
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.True(t, internal.IsHTTPError(seen))
}

func TestApp_NotFoundHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "custom 404")
		}),
		internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
			return c.String(http.StatusMethodNotAllowed, "custom 405")
		}),
		internal.WithHandlers(stubHandler{}),
	)

	rec := serve(t, app, http.MethodGet, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "custom 404", rec.Body.String())

	rec = serve(t, app, http.MethodPost, "/json")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "custom 405", rec.Body.String())
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"public/assets/site.css": {Data: []byte("body{}")},
	}
	app := internal.New(internal.WithStaticFiles("/assets/", fsys, "public/assets"))

	rec := serve(t, app, http.MethodGet, "/assets/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, internal.DefaultStaticCacheControl, rec.Header().Get("Cache-Control"))

	rec = serve(t, app, http.MethodGet, "/assets/")
	require.Equal(t, http.StatusNotFound, rec.Code)

	docs := internal.New(internal.WithStaticFiles("/public/", fstest.MapFS{
		"faq.md": {Data: []byte("# FAQ")},
	}, ".", internal.StaticCacheControl("no-cache")))
	rec = serve(t, docs, http.MethodGet, "/public/faq.md")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	var healthy atomic.Bool
	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("docs", func(context.Context) error {
			if healthy.Load() {
				return nil
			}
			return errors.New("docs unavailable")
		}),
		internal.WithReadinessTimeout(time.Second),
	))

	require.Equal(t, http.StatusOK, serve(t, app, http.MethodGet, "/health/live").Code)
	require.Equal(t, http.StatusServiceUnavailable, serve(t, app, http.MethodGet, "/health/ready").Code)

	healthy.Store(true)
	require.Equal(t, http.StatusOK, serve(t, app, http.MethodGet, "/health/ready").Code)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := internal.New(internal.WithHandlers(stubHandler{}))

	var started, stopped atomic.Bool
	addrCh := make(chan net.Addr, 1)
	errCh := make(chan error, 1)

	go func() {
		errCh <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.StartupHook(func(context.Context) error { started.Store(true); return nil }),
			internal.ShutdownHook(func(context.Context) error { stopped.Store(true); return nil }),
			internal.ShutdownTimeout(time.Second),
			internal.OnReady(func(a net.Addr) { addrCh <- a }),
		)
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-errCh:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	require.True(t, started.Load())

	resp, err := http.Get("http://" + addr.String() + "/hello/run")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, "hello run!", string(body))

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	require.True(t, stopped.Load())
}

func TestApp_RunStartupHookFailure(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	boom := errors.New("scheduler failed")

	err := internal.New().Run("127.0.0.1:0",
		internal.StartupHook(func(context.Context) error { return boom }),
		internal.ShutdownHook(func(context.Context) error { stopped.Store(true); return nil }),
	)
	require.ErrorIs(t, err, boom)
	require.True(t, stopped.Load())
}
