// internal/services/errors.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation recognizes a unique-index rejection from the store. It is
// the last line of defense behind the application-level uniqueness checks,
// which are racy by design.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite (tests)
}
