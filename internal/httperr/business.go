package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindExpired
	KindAlreadyProcessed
	KindInternal
)

// BusinessError is an expected failure with a stable code the client can
// switch on. Message is optional human readable text.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func New(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return New(KindValidation, code, message)
}

func NotFoundErr(code, message string) error {
	return New(KindNotFound, code, message)
}

func Conflict(code, message string) error {
	return New(KindConflict, code, message)
}

func Expired(code, message string) error {
	return New(KindExpired, code, message)
}

func AlreadyProcessed(code, message string) error {
	return New(KindAlreadyProcessed, code, message)
}

func Forbidden(code, message string) error {
	return New(KindForbidden, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return KindInternal, false
}

// IsExclusionConflict reports whether err is a PostgreSQL unique or
// exclusion constraint violation.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
