package auth

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestParseBasicAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		wantUser string
		wantPass string
		wantErr  error
	}{
		{"valid", BasicAuthHeader("alice", "s3cret"), "alice", "s3cret", nil},
		{"password with colon", BasicAuthHeader("alice", "a:b:c"), "alice", "a:b:c", nil},
		{"empty password", BasicAuthHeader("alice", ""), "alice", "", nil},
		{"missing header", "", "", "", ErrMissingAuthorization},
		{"bearer scheme", "Bearer abc", "", "", ErrNotBasicScheme},
		{"lowercase scheme", "basic " + base64.StdEncoding.EncodeToString([]byte("a:b")), "", "", ErrNotBasicScheme},
		{"bad base64", "Basic !!!", "", "", ErrInvalidBase64},
		{"no separator", "Basic " + base64.StdEncoding.EncodeToString([]byte("alice")), "", "", ErrMissingPassword},
		{"empty username", "Basic " + base64.StdEncoding.EncodeToString([]byte(":pw")), "", "", ErrMissingUsername},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			creds, err := ParseBasicAuth(tt.header)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseBasicAuth error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBasicAuth failed: %v", err)
			}
			if creds.Username != tt.wantUser || creds.Password != tt.wantPass {
				t.Errorf("got %q/%q, want %q/%q", creds.Username, creds.Password, tt.wantUser, tt.wantPass)
			}
		})
	}
}
