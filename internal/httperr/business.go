package httperr

import (
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeValidation       = "validation_error"
	CodeSlotUnavailable  = "slot_unavailable"
	CodeNotFound         = "appointment_not_found"
	CodeAlreadyCancelled = "already_cancelled"
	CodeInvalidState     = "invalid_state"
	CodeServiceNotFound  = "service_not_found"
	CodeRateLimited      = "rate_limited"
)

// BusinessError is an expected, recoverable failure. Fields carries one
// message per invalid input field for validation errors.
type BusinessError struct {
	Code   string
	Fields map[string]string
}

func (e BusinessError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Code + " (" + strings.Join(parts, "; ") + ")"
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrValidation(fields map[string]string) error {
	return BusinessError{Code: CodeValidation, Fields: fields}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsExclusionConflict reports a Postgres exclusion constraint violation,
// raised when two overlapping appointments race past the row lock.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
