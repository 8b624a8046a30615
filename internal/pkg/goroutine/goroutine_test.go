package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestManagerOutlivesCaller(t *testing.T) {
	// Arrange
	m := NewManager(2, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Bool

	// Act
	ok := m.Go(ctx, func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ran.Store(true)
		return nil
	})
	cancel()
	err := m.Wait()

	// Assert
	if !ok {
		t.Fatalf("task should have been scheduled")
	}
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if !ran.Load() {
		t.Fatalf("task did not run to completion after caller cancel")
	}
}

func TestManagerCollectsErrorsAndPanics(t *testing.T) {
	m := NewManager(4, 0)
	boom := errors.New("publish failed")

	m.Go(context.Background(), func(context.Context) error { return boom })
	m.Go(context.Background(), func(context.Context) error { panic("kaboom") })

	if err := m.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait() = %v, want %v", err, boom)
	}
}

func TestManagerRejectsWhenFullOrClosed(t *testing.T) {
	m := NewManager(1, 0)
	release := make(chan struct{})

	if !m.Go(context.Background(), func(context.Context) error { <-release; return nil }) {
		t.Fatalf("first task should be scheduled")
	}
	if m.Go(context.Background(), func(context.Context) error { return nil }) {
		t.Fatalf("second task should be rejected while full")
	}

	close(release)
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if m.Go(context.Background(), func(context.Context) error { return nil }) {
		t.Fatalf("closed manager must reject tasks")
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager
	if m.Go(context.Background(), func(context.Context) error { return nil }) {
		t.Fatalf("nil manager must not schedule")
	}
	if err := m.Wait(); err != nil {
		t.Fatalf("nil Wait() = %v", err)
	}
}
