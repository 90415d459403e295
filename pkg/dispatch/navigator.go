package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/logger"
	"github.com/dmitrymomot/docsite/pkg/pages"
	"github.com/dmitrymomot/docsite/pkg/route"
)

// View is the display surface driven by a Navigator.
// Methods are called from the navigator's event loop goroutine only.
type View interface {
	ShowHome()
	ShowDoc()
	ShowLoading()
	ShowArtifact(a content.Artifact)
	SetActive(id pages.ID)
	ScrollTop()
}

// AsyncLoader starts loads in the background.
// *content.Loader satisfies it.
type AsyncLoader interface {
	LoadAsync(ctx context.Context, id pages.ID) <-chan content.Artifact
	LoadResourceAsync(ctx context.Context, location string) <-chan content.Artifact
}

// State is the navigator's current display state.
type State struct {
	Page     pages.ID
	Resource string
	Loading  bool
}

// IsHome reports whether the landing view is showing.
func (s State) IsHome() bool {
	return s.Page.IsHome()
}

type completion struct {
	generation uint64
	artifact   content.Artifact
}

// Navigator is the hash-routed client dispatcher.
type Navigator struct {
	resolver *route.Resolver
	loader   AsyncLoader
	view     View
	logger   *slog.Logger

	events      chan string
	completions chan completion
	started     chan struct{}
	done        chan struct{}
	once        sync.Once

	mu    sync.RWMutex
	state State

	// generation is only touched by the event loop.
	generation uint64

	// pending counts accepted navigations not yet handled by the loop.
	pending atomic.Int64
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithLogger sets the navigator logger.
func WithLogger(l *slog.Logger) NavigatorOption {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithQueueSize sets how many navigation events may be buffered.
// Default: 16
func WithQueueSize(size int) NavigatorOption {
	return func(n *Navigator) {
		if size > 0 {
			n.events = make(chan string, size)
		}
	}
}

// NewNavigator creates a Navigator in the home state.
func NewNavigator(resolver *route.Resolver, loader AsyncLoader, view View, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		resolver:    resolver,
		loader:      loader,
		view:        view,
		logger:      logger.NewNope(),
		events:      make(chan string, 16),
		completions: make(chan completion),
		started:     make(chan struct{}),
		done:        make(chan struct{}),
		state:       State{Page: pages.Home},
	}
	for _, opt := range opts {
		opt(n)
	}
	// The initial fragment handed to Run counts as pending.
	n.pending.Store(1)
	return n
}

// State returns a snapshot of the current display state.
func (n *Navigator) State() State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// Navigate enqueues a hash change. It blocks while the queue is full.
// Once Run has returned, every call fails with ErrNotRunning.
func (n *Navigator) Navigate(ctx context.Context, fragment string) error {
	select {
	case <-n.started:
	default:
		return ErrNotRunning
	}
	select {
	case <-n.done:
		return ErrNotRunning
	default:
	}

	n.pending.Add(1)
	select {
	case n.events <- fragment:
		// The loop may have stopped while the send was in flight; nobody
		// will read the queue again.
		select {
		case <-n.done:
			n.drain()
			return ErrNotRunning
		default:
			return nil
		}
	case <-n.done:
		n.pending.Add(-1)
		return ErrNotRunning
	case <-ctx.Done():
		n.pending.Add(-1)
		return ctx.Err()
	}
}

// Idle reports whether every accepted navigation has been handled and no
// load is outstanding.
func (n *Navigator) Idle() bool {
	return n.pending.Load() == 0 && !n.State().Loading
}

// Run processes events until ctx is cancelled. The initial fragment is
// handled first, as on page load.
func (n *Navigator) Run(ctx context.Context, initial string) error {
	first := false
	n.once.Do(func() { first = true })
	if !first {
		return ErrAlreadyRunning
	}

	close(n.started)
	defer func() {
		close(n.done)
		n.drain()
	}()

	n.transition(ctx, initial)
	n.pending.Add(-1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fragment := <-n.events:
			n.transition(ctx, fragment)
			n.pending.Add(-1)
		case c := <-n.completions:
			n.complete(c)
		}
	}
}

// drain discards queued events once the loop has stopped so that pending
// returns to zero.
func (n *Navigator) drain() {
	for {
		select {
		case <-n.events:
			n.pending.Add(-1)
		default:
			return
		}
	}
}

func (n *Navigator) transition(ctx context.Context, fragment string) {
	target := n.resolver.ResolveHash(fragment)
	n.generation++

	if target.IsHome() {
		n.setState(State{Page: pages.Home})
		n.view.ShowHome()
		n.view.SetActive(pages.Home)
		n.view.ScrollTop()
		return
	}

	n.setState(State{Page: target.Page, Resource: target.Resource, Loading: true})
	n.view.ShowDoc()
	n.view.ShowLoading()
	n.view.SetActive(target.Page)
	n.view.ScrollTop()

	var ch <-chan content.Artifact
	if target.Resource != "" {
		ch = n.loader.LoadResourceAsync(ctx, target.Resource)
	} else {
		ch = n.loader.LoadAsync(ctx, target.Page)
	}

	n.logger.DebugContext(ctx, "navigation",
		slog.String("fragment", fragment),
		slog.String("page", target.Page.String()),
		slog.String("resource", target.Resource),
		slog.Uint64("generation", n.generation),
	)

	go n.forward(ctx, n.generation, ch)
}

// forward posts a load result back to the event loop.
func (n *Navigator) forward(ctx context.Context, gen uint64, ch <-chan content.Artifact) {
	var art content.Artifact
	select {
	case a, ok := <-ch:
		if !ok {
			return
		}
		art = a
	case <-ctx.Done():
		return
	}

	select {
	case n.completions <- completion{generation: gen, artifact: art}:
	case <-n.done:
	case <-ctx.Done():
	}
}

func (n *Navigator) complete(c completion) {
	state := n.State()
	if c.generation != n.generation || state.IsHome() {
		n.logger.Debug("dropping stale load", slog.Uint64("generation", c.generation))
		return
	}

	state.Loading = false
	n.setState(state)
	n.view.ShowArtifact(c.artifact)
}

func (n *Navigator) setState(s State) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}
