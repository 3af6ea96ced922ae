// Package pgerrors classifies low-level PostgreSQL errors shared by the
// storage packages.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE codes the repositories care about.
const (
	CodeUniqueViolation = "23505"
)

// IsUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != CodeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
