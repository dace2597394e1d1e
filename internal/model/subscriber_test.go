package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "ursula_le_guin@gmail.com", false},
		{"subdomain", "reader@mail.example.co.uk", false},
		{"plus tag", "reader+news@example.com", false},
		{"empty", "", true},
		{"missing at", "ursuladomain.com", true},
		{"missing local part", "@domain.com", true},
		{"missing domain", "ursula@", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			email, err := ParseSubscriberEmail(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidEmail))
				assert.Equal(t, tt.input+" is not valid email", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, email.String())
		})
	}
}

func TestParseSubscriberName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "Ursula Le Guin", false},
		{"exactly max length", strings.Repeat("a", MaxSubscriberNameLength), false},
		{"max length multibyte", strings.Repeat("ё", MaxSubscriberNameLength), false},
		{"too long", strings.Repeat("a", MaxSubscriberNameLength+1), true},
		{"empty", "", true},
		{"whitespace only", " \t ", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"open paren", "a(b", true},
		{"close paren", "a)b", true},
		{"less than", "a<b", true},
		{"greater than", "a>b", true},
		{"open brace", "a{b", true},
		{"close brace", "a}b", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, err := ParseSubscriberName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidName))
				assert.Equal(t, tt.input+" is not valid subscriber name", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, name.String())
		})
	}
}

func TestSubscriberID_RoundTrip(t *testing.T) {
	t.Parallel()

	id := NewSubscriberID()
	parsed, err := ParseSubscriberID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestSubscriberID_Ordered(t *testing.T) {
	t.Parallel()

	first := NewSubscriberID()
	time.Sleep(2 * time.Millisecond)
	second := NewSubscriberID()

	assert.Less(t, first.String(), second.String())
}

func TestParseSubscriberID_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not-an-id", "01ARZ3NDEKTSV4RRFFQ69G5FA", "!!ARZ3NDEKTSV4RRFFQ69G5FAV"} {
		_, err := ParseSubscriberID(raw)
		assert.ErrorIs(t, err, ErrInvalidSubscriberID, "raw=%q", raw)
	}
}

func TestParseConfirmationStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseConfirmationStatus("confirmed")
	require.NoError(t, err)
	assert.True(t, status.IsConfirmed())

	status, err = ParseConfirmationStatus("pending_confirmation")
	require.NoError(t, err)
	assert.False(t, status.IsConfirmed())

	_, err = ParseConfirmationStatus("unsubscribed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewPendingSubscriber(t *testing.T) {
	t.Parallel()

	email, err := ParseSubscriberEmail("reader@example.com")
	require.NoError(t, err)
	name, err := ParseSubscriberName("Reader")
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	sub := NewPendingSubscriber(NewSubscriber{Email: email, Name: name}, now)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.Equal(t, "Reader", sub.Name)
	assert.Equal(t, StatusPendingConfirmation, sub.Status)
	assert.Equal(t, time.UTC, sub.SubscribedAt.Location())
	assert.True(t, sub.SubscribedAt.Equal(now))
}

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"not-an-email", "***@***"},
	}

	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, RedactEmail(tt.in))
	}
}
