package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a repository failure.
type Kind int

const (
	// KindDatabase is a storage fault: connectivity, query or commit failure.
	KindDatabase Kind = iota
	// KindDomain is a business-rule failure found while assembling results,
	// such as a stored identifier that no longer parses.
	KindDomain
)

func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// Error is returned by every storage operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func dbError(op string, err error) error {
	return &Error{Kind: KindDatabase, Op: op, Err: err}
}

func domainError(op string, err error) error {
	return &Error{Kind: KindDomain, Op: op, Err: err}
}

// IsKind reports whether err is a repository Error of kind k.
func IsKind(err error, k Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == k
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
