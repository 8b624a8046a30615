package hash

import "testing"

func TestHMACSHA256(t *testing.T) {
	// RFC 4231 test case 2.
	const (
		key  = "Jefe"
		data = "what do ya want for nothing?"
		hex  = "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
		b64  = "W9zBRr9gdU5qBCQmCJV1x1oAPwidJzmDnexYuWTsOEM="
	)

	if got := NewHMACSHA256(key).String(data); got != hex {
		t.Fatalf("hex = %s", got)
	}
	if got := NewHMACSHA256Base64(key).String(data); got != b64 {
		t.Fatalf("base64 = %s", got)
	}
	if !NewHMACSHA256Base64(key).Verify(b64, data) {
		t.Fatalf("Verify() should accept its own digest")
	}
	if NewHMACSHA256(key).Verify(hex, data+"!") {
		t.Fatalf("Verify() accepted a different message")
	}
}
