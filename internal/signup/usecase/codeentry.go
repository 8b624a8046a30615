package usecase

import (
	"context"
	"sync"

	"github.com/shandysiswandi/otpgate/internal/signup/entity"
)

// CodeEntry drives the six-cell code screen and submits the code once the
// last cell is filled.
type CodeEntry struct {
	mu     sync.Mutex
	grid   entity.CodeGrid
	submit func(ctx context.Context, code string) error
}

func NewCodeEntry(submit func(ctx context.Context, code string) error) *CodeEntry {
	return &CodeEntry{submit: submit}
}

// NewCodeEntry returns an entry that confirms the challenge identified by
// username and session. onResult receives every submission's outcome.
func (s *Usecase) NewCodeEntry(username, session string, onResult func(*ConfirmOutput, error)) *CodeEntry {
	return NewCodeEntry(func(ctx context.Context, code string) error {
		out, err := s.Confirm(ctx, ConfirmInput{Username: username, Session: session, Code: code})
		if onResult != nil {
			onResult(out, err)
		}
		return err
	})
}

// Type puts text into cell i. When that completes the grid the code is
// submitted and the submission error is returned.
func (c *CodeEntry) Type(ctx context.Context, i int, text string) error {
	c.mu.Lock()
	ready, err := c.grid.Input(i, text)
	code := c.grid.Code()
	c.mu.Unlock()

	if err != nil || !ready {
		return err
	}
	return c.submit(ctx, code)
}

func (c *CodeEntry) Backspace(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid.Backspace(i)
}

// Reset clears the grid, as done on resend.
func (c *CodeEntry) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid.Reset()
}

func (c *CodeEntry) Focus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Focus()
}

func (c *CodeEntry) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Code()
}
