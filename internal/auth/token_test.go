package auth

import "testing"

func TestGenerateSubscriptionToken_Shape(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		token := GenerateSubscriptionToken()
		if len(token) != SubscriptionTokenLen {
			t.Fatalf("token %q has length %d, want %d", token, len(token), SubscriptionTokenLen)
		}
		if !isSubscriptionToken(token) {
			t.Fatalf("token %q contains non-alphanumeric characters", token)
		}
	}
}

func TestGenerateSubscriptionToken_Varies(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[GenerateSubscriptionToken()] = struct{}{}
	}
	if len(seen) < 99 {
		t.Errorf("expected distinct tokens, got %d unique out of 100", len(seen))
	}
}

func TestIsSubscriptionTokenHelper(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "abcdefghijklmnopqrstuvwxY", true},
		{"digits", "0123456789012345678901234", true},
		{"too short", "abc", false},
		{"too long", "abcdefghijklmnopqrstuvwxyz", false},
		{"symbol", "abcdefghijklmnopqrstuvwx-", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isSubscriptionToken(tt.input); got != tt.want {
				t.Errorf("isSubscriptionToken(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// isSubscriptionToken reports whether s has the shape of a generated token.
func isSubscriptionToken(s string) bool {
	if len(s) != SubscriptionTokenLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
