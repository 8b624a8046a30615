package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shandysiswandi/otpgate/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 64

// Manager runs background tasks that must outlive the request that started
// them (event publishing after a response is written) with bounded
// concurrency. Wait stops intake and drains what is running.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	wg      sync.WaitGroup
	sema    chan struct{}
	timeout time.Duration

	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager. Every task gets its own deadline of timeout
// (zero means none) on a context detached from the caller's cancellation.
func NewManager(maxGoroutine int, timeout time.Duration) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		sema:    make(chan struct{}, maxGoroutine),
		timeout: timeout,
	}
}

// Go schedules f. It reports false when the manager is closed or full; the
// task is dropped in that case.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(pCtx, "goroutine manager is closed, task dropped")
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(pCtx, "goroutine limit reached, task dropped", "limit", cap(g.sema))
		return false
	}

	ctx := context.WithoutCancel(pCtx)
	cancel := context.CancelFunc(func() {})
	if g.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer cancel()
		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", paths)
				} else {
					slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", string(stack))
				}
			}
		}()

		if err := f(ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	}()

	return true
}

// Wait closes the manager, blocks until running tasks finish and returns
// their joined errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}

// Close implements io.Closer so the manager can sit in the app closer list.
func (g *Manager) Close() error {
	return g.Wait()
}
