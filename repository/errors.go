package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrStaleVersion is returned when an optimistic-lock update touched no rows
var ErrStaleVersion = errors.New("stale lock version")

// IsStaleVersion reports whether err is an optimistic-lock conflict
func IsStaleVersion(err error) bool {
	return errors.Is(err, ErrStaleVersion)
}

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a postgres unique-constraint violation
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
