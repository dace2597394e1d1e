package email

import "fmt"

// ProviderError is a non-2xx answer from a provider HTTP API.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Provider, e.StatusCode, e.Body)
}
