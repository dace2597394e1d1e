package service

import (
	"errors"

	"github.com/newsroom/newsroom/internal/repository"
)

// Kind classifies an application failure. Transports map each kind to a status.
type Kind int

const (
	// KindRepository is an unrecoverable storage fault.
	KindRepository Kind = iota
	// KindInternalLogic is a server-side failure that is not storage:
	// outbound email delivery, or corrupt stored data.
	KindInternalLogic
	// KindDomain is a client-correctable failure, such as invalid input or an unknown token.
	KindDomain
	// KindAuth is a failed credential check.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindRepository:
		return "repository"
	case KindInternalLogic:
		return "internal_logic"
	case KindDomain:
		return "domain"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// Error is returned by every service operation that fails.
// Message is short and safe to show; Err carries the detail.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Messages shared by handlers and tests.
const (
	MsgTokenNotFound     = "Token wasn't found"
	MsgDatabase          = "Database error"
	MsgAuthFailed        = "Authentication failed"
	MsgConfirmationEmail = "Failed to send confirmation email"
	MsgNewsletterSend    = "Failed to deliver newsletter"
	MsgCorruptData       = "Stored data is inconsistent"
)

// DomainError reports a client-correctable failure.
func DomainError(message string, err error) *Error {
	return &Error{Kind: KindDomain, Message: message, Err: err}
}

// AuthError reports a failed credential check. Every cause gets the same message.
func AuthError(err error) *Error {
	return &Error{Kind: KindAuth, Message: MsgAuthFailed, Err: err}
}

// InternalLogicError reports a non-storage server-side failure.
func InternalLogicError(message string, err error) *Error {
	return &Error{Kind: KindInternalLogic, Message: message, Err: err}
}

// FromRepository lifts a repository failure into the application taxonomy.
// Database faults stay storage faults; repository domain faults mean the stored
// data is inconsistent, which the client cannot fix, so they become internal logic errors.
func FromRepository(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var repoErr *repository.Error
	if errors.As(err, &repoErr) && repoErr.Kind == repository.KindDomain {
		return InternalLogicError(MsgCorruptData, err)
	}
	return &Error{Kind: KindRepository, Message: MsgDatabase, Err: err}
}

// KindOf returns the kind of err, treating unclassified errors as internal logic failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternalLogic
}
