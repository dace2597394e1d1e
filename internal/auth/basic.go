package auth

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/newsroom/newsroom/internal/model"
)

var (
	// ErrMissingAuthorization indicates the Authorization header was absent.
	ErrMissingAuthorization = errors.New("the 'Authorization' header was missing")
	// ErrNotBasicScheme indicates the header used a scheme other than Basic.
	ErrNotBasicScheme = errors.New("the authorization scheme was not 'Basic'")
	// ErrInvalidBase64 indicates the credential segment could not be decoded.
	ErrInvalidBase64 = errors.New("failed to base64-decode 'Basic' credentials")
	// ErrMissingUsername indicates no username was present.
	ErrMissingUsername = errors.New("a username must be provided in 'Basic' auth")
	// ErrMissingPassword indicates no password separator was present.
	ErrMissingPassword = errors.New("a password must be provided in 'Basic' auth")
)

const basicPrefix = "Basic "

// ParseBasicAuth extracts credentials from an Authorization header value.
// The password is everything after the first colon, so it may itself contain colons.
func ParseBasicAuth(header string) (model.Credentials, error) {
	if header == "" {
		return model.Credentials{}, ErrMissingAuthorization
	}
	if !strings.HasPrefix(header, basicPrefix) {
		return model.Credentials{}, ErrNotBasicScheme
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, basicPrefix))
	if err != nil {
		return model.Credentials{}, ErrInvalidBase64
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if username == "" {
		return model.Credentials{}, ErrMissingUsername
	}
	if !ok {
		return model.Credentials{}, ErrMissingPassword
	}

	return model.Credentials{Username: username, Password: password}, nil
}

// BasicAuthHeader encodes credentials as an Authorization header value.
func BasicAuthHeader(username, password string) string {
	return basicPrefix + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
