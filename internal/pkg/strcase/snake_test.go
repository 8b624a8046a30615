package strcase

import "testing"

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"PhoneNumber": "phone_number",
		"DateOfBirth": "date_of_birth",
		"AccessToken": "access_token",
		"UserID":      "user_id",
		"HTTPServer":  "http_server",
		"Code":        "code",
		"IDToken":     "id_token",
		"SessionTTL":  "session_ttl",
	}

	for in, want := range tests {
		if got := ToLowerSnake(in); got != want {
			t.Fatalf("ToLowerSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToUpperSnake(t *testing.T) {
	tests := map[string]string{
		"modules.challenge.ratelimit.table": "MODULES_CHALLENGE_RATELIMIT_TABLE",
		"aws.timeout_seconds":               "AWS_TIMEOUT_SECONDS",
		"mail from":                         "MAIL_FROM",
	}

	for in, want := range tests {
		if got := ToUpperSnake(in); got != want {
			t.Fatalf("ToUpperSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWordsSkipsEmpty(t *testing.T) {
	got := Words("..a--B")
	if len(got) != 2 || got[0] != "a" || got[1] != "B" {
		t.Fatalf("Words() = %q", got)
	}
}
