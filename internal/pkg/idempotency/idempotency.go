// Package idempotency guards operations that must not run twice for the same
// key, using a Redis key as a state machine: none -> in_progress ->
// completed | failed | released.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateError      State = "error"
)

func (s State) String() string {
	return string(s)
}

type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// StateTracker implements Idempotency on Redis.
type StateTracker struct {
	client redis.Cmdable
	prefix string
}

// New returns a tracker whose keys live under prefix (default "idempotency:").
func New(client redis.Cmdable, prefix string) *StateTracker {
	if prefix == "" {
		prefix = "idempotency:"
	}
	return &StateTracker{client: client, prefix: prefix}
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Minute
)

type Option func(*execOptions)

type execOptions struct {
	lockDuration     time.Duration
	stateTTL         time.Duration
	releaseOnFailure bool
}

// WithLockDuration bounds how long an in-progress marker survives a crash.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long a completed or failed outcome is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// WithReleaseOnFailure deletes the key when fn fails so the caller can retry
// straight away with corrected input.
func WithReleaseOnFailure() Option {
	return func(o *execOptions) { o.releaseOnFailure = true }
}

// Acquire tries to start an operation.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
	if err != nil {
		return StateError, err
	}
	if acquired {
		return StateNone, nil
	}

	result, err := s.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		acquired, err = s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}
		return StateError, ErrInvalidState
	}
	if err != nil {
		return StateError, err
	}

	switch State(result) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(result), nil
	default:
		return StateError, ErrInvalidState
	}
}

func (s *StateTracker) mark(ctx context.Context, key string, state State, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, state.String(), ttl).Err()
}

// Release forgets key entirely.
func (s *StateTracker) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Exec runs fn unless another call for key is running or already finished.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	execOpt := &execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(execOpt)
	}
	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}
	if execOpt.stateTTL <= 0 {
		execOpt.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, execOpt.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		var markErr error
		if execOpt.releaseOnFailure {
			markErr = s.Release(ctx, key)
		} else {
			markErr = s.mark(ctx, key, StateFailed, execOpt.stateTTL)
		}
		return errors.Join(err, markErr)
	}

	return s.mark(ctx, key, StateCompleted, execOpt.stateTTL)
}
