package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input the caller has to fix.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate is a validation error caused by a unique value already in use.
	ErrDuplicate = fmt.Errorf("%w: duplicate", ErrValidation)
	// ErrInUse is a validation error for deleting something still referenced.
	ErrInUse = fmt.Errorf("%w: in use", ErrValidation)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func duplicate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}

// Message returns the human-readable part of a service error, without the
// sentinel prefixes.
func Message(err error) string {
	msg := err.Error()
	for _, prefix := range []string{ErrDuplicate.Error() + ": ", ErrInUse.Error() + ": ", ErrValidation.Error() + ": ", ErrNotFound.Error() + ": "} {
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

// notFound converts gorm's missing-record error into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

// isDuplicateKey recognises unique-constraint violations from MySQL and SQLite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
