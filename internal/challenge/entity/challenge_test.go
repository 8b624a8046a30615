package entity

import (
	"testing"
	"time"
)

func TestRecipientFromAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  Recipient
		ok    bool
	}{
		{
			name:  "phone wins over email",
			attrs: map[string]string{"phone_number": "+15551234567", "email": "a@b.co"},
			want:  Recipient{Channel: ChannelSMS, Address: "+15551234567"},
			ok:    true,
		},
		{
			name:  "email only",
			attrs: map[string]string{"email": "a@b.co"},
			want:  Recipient{Channel: ChannelEmail, Address: "a@b.co"},
			ok:    true,
		},
		{
			name:  "blank phone falls back to email",
			attrs: map[string]string{"phone_number": " ", "email": "a@b.co"},
			want:  Recipient{Channel: ChannelEmail, Address: "a@b.co"},
			ok:    true,
		},
		{name: "neither", attrs: map[string]string{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecipientFromAttributes(tt.attrs)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("RecipientFromAttributes() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMaskAddress(t *testing.T) {
	tests := map[string]string{
		"+919876543210":    "+91******3210",
		"jane@example.com": "j***@example.com",
		"@example.com":     "***@example.com",
		"1234":             "****",
		"98765":            "*8765",
	}

	for in, want := range tests {
		if got := MaskAddress(in); got != want {
			t.Fatalf("MaskAddress(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestChallengeParameters(t *testing.T) {
	// Arrange
	exp := time.Unix(1767225600, 0)
	c := Challenge{Answer: "481290", ExpiresAt: exp, Recipient: Recipient{Channel: ChannelEmail, Address: "jane@example.com"}}

	// Act
	private := c.PrivateParameters()
	public := c.PublicParameters()

	// Assert
	if private["answer"] != "481290" || private["expiresAt"] != "1767225600" {
		t.Fatalf("private = %v", private)
	}
	if public["deliveryMedium"] != "EMAIL" || public["destination"] != "j***@example.com" {
		t.Fatalf("public = %v", public)
	}
	if _, found := public["answer"]; found {
		t.Fatalf("answer must never be public")
	}

	got, ok, err := ExpiryFromParameters(private)
	if err != nil || !ok || !got.Equal(exp) {
		t.Fatalf("ExpiryFromParameters() = %v, %v, %v", got, ok, err)
	}
}

func TestExpiryFromParameters(t *testing.T) {
	if _, ok, err := ExpiryFromParameters(map[string]string{"answer": "1"}); ok || err != nil {
		t.Fatalf("absent expiry should be ok=false err=nil")
	}
	if _, ok, err := ExpiryFromParameters(map[string]string{"expiresAt": "soon"}); !ok || err == nil {
		t.Fatalf("malformed expiry should be ok=true err!=nil")
	}
}
