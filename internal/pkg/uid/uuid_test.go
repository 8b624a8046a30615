package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerate(t *testing.T) {
	gen := NewUUID()

	a, b := gen.Generate(), gen.Generate()

	if a == b {
		t.Fatalf("ids must differ")
	}
	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("not a uuid: %v", err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("version = %d, want 7", parsed.Version())
	}
}
