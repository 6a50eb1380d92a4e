package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrConnection is returned when the database cannot be opened or reached
	ErrConnection = errors.New("database connection failed")

	// ErrState is returned on transaction misuse, e.g. Begin with a transaction already open
	ErrState = errors.New("invalid transaction state")

	// ErrConstraint is returned for unique or foreign key violations
	ErrConstraint = errors.New("constraint violation")

	// ErrInvalidTask is returned for a task that ends before it starts
	ErrInvalidTask = errors.New("invalid task")
)

// DataError describes a malformed row found while reading. It is reported per
// row so a listing can skip the row and carry on.
type DataError struct {
	TaskID uint
	Reason string
}

func (e DataError) Error() string {
	return fmt.Sprintf("invalid task %d in database (%s)", e.TaskID, e.Reason)
}

// wrapConstraint tags storage constraint failures with ErrConstraint and leaves
// everything else alone.
func wrapConstraint(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	// sqlite reports constraint failures in the message even when the
	// driver error is not translated
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return err
}
