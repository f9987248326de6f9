package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ErrDuplicate is returned when the store rejects a write because of a
// primary key or unique index violation.
var ErrDuplicate = errors.New("duplicate key")

const (
	mysqlDuplicateEntry     = 1062
	postgresUniqueViolation = "23505"
)

// DuplicateKeyError reports a unique violation on Table. Primary is true
// when the colliding key is the primary key; false means a secondary unique
// index such as users.username. It matches ErrDuplicate with errors.Is.
type DuplicateKeyError struct {
	Table   string
	Primary bool
	Err     error
}

func (e *DuplicateKeyError) Error() string {
	key := "unique key"
	if e.Primary {
		key = "primary key"
	}
	return fmt.Sprintf("duplicate %s on %s: %v", key, e.Table, e.Err)
}

// Unwrap returns the driver error.
func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// Is matches ErrDuplicate.
func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicate }

// duplicateOr converts unique violations on table reported by either driver
// into a *DuplicateKeyError and returns every other error unchanged.
func duplicateOr(table string, err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		// MySQL 5.7 names the key 'PRIMARY', 8.0 names it 'table.PRIMARY'.
		primary := strings.HasSuffix(myErr.Message, "PRIMARY'")
		return &DuplicateKeyError{Table: table, Primary: primary, Err: err}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == postgresUniqueViolation {
		return &DuplicateKeyError{Table: table, Primary: strings.HasSuffix(pqErr.Constraint, "_pkey"), Err: err}
	}
	return err
}
