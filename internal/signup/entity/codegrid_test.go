package entity

import (
	"errors"
	"testing"
)

func TestCodeGridSequentialEntry(t *testing.T) {
	// Arrange
	var g CodeGrid
	digits := []string{"4", "8", "1", "2", "9", "0"}
	readyCount := 0

	// Act
	for i, d := range digits {
		ready, err := g.Input(i, d)
		if err != nil {
			t.Fatalf("Input(%d) error = %v", i, err)
		}
		if ready {
			readyCount++
		}
		if i < 5 && g.Focus() != i+1 {
			t.Fatalf("focus after cell %d = %d", i, g.Focus())
		}
	}

	// Assert
	if readyCount != 1 {
		t.Fatalf("ready fired %d times", readyCount)
	}
	if g.Code() != "481290" {
		t.Fatalf("Code() = %q", g.Code())
	}
	if g.Focus() != 5 {
		t.Fatalf("focus should stay on the last cell, got %d", g.Focus())
	}

	if ready, _ := g.Input(5, "1"); ready {
		t.Fatalf("overwriting a full grid must not resubmit")
	}
}

func TestCodeGridRejectsNonDigits(t *testing.T) {
	var g CodeGrid

	for _, in := range []string{"a", "12", "-", " "} {
		if _, err := g.Input(0, in); !errors.Is(err, ErrNotDigit) {
			t.Fatalf("Input(%q) error = %v", in, err)
		}
	}
	if _, err := g.Input(6, "1"); !errors.Is(err, ErrCellOutside) {
		t.Fatalf("out of range error = %v", err)
	}
	if g.Focus() != 0 || g.Code() != "" {
		t.Fatalf("rejected input changed the grid")
	}
}

func TestCodeGridBackspace(t *testing.T) {
	var g CodeGrid
	_, _ = g.Input(0, "4")
	_, _ = g.Input(1, "8")

	g.Backspace(2)
	if g.Focus() != 1 {
		t.Fatalf("backspace on empty cell should move focus back, got %d", g.Focus())
	}

	g.Backspace(1)
	if g.Cells()[1] != "" || g.Focus() != 1 {
		t.Fatalf("backspace on filled cell should clear it in place")
	}

	g.Backspace(0)
	g.Backspace(0)
	if g.Focus() != 0 {
		t.Fatalf("focus cannot go before the first cell")
	}
}

func TestCodeGridResubmitsAfterEdit(t *testing.T) {
	var g CodeGrid
	for i, d := range []string{"1", "1", "1", "1", "1", "1"} {
		_, _ = g.Input(i, d)
	}

	g.Backspace(5)
	ready, _ := g.Input(5, "2")

	if !ready || g.Code() != "111112" {
		t.Fatalf("edited grid should be ready again, code %q", g.Code())
	}
}

func TestCodeGridReset(t *testing.T) {
	var g CodeGrid
	_, _ = g.Input(0, "4")

	g.Reset()

	if g.Code() != "" || g.Focus() != 0 || g.Complete() {
		t.Fatalf("Reset() left state behind")
	}
}
