package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// rowExists runs a SELECT 1 ... LIMIT 1 style query written with ?
// placeholders and reports whether it matched a row.
func rowExists(ctx context.Context, db sqlx.QueryerContext, query string, args ...interface{}) (bool, error) {
	var found int
	if err := sqlx.GetContext(ctx, db, &found, sqlx.Rebind(bindTypeOf(db), query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func bindTypeOf(db sqlx.QueryerContext) int {
	if binder, ok := db.(interface{ DriverName() string }); ok {
		return sqlx.BindType(binder.DriverName())
	}
	return sqlx.QUESTION
}

// execAffecting runs a statement that must touch at least one row. It
// returns sql.ErrNoRows when nothing matched.
func execAffecting(ctx context.Context, db *sqlx.DB, what, query string, args ...interface{}) error {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, sql.ErrNoRows)
	}
	return nil
}

// timestampLayout is how MySQL renders TIMESTAMP(6) when parseTime is off.
const timestampLayout = "2006-01-02 15:04:05.999999"

// dbTimestamp scans a timestamp delivered either as time.Time (lib/pq) or as
// text (go-sql-driver/mysql without parseTime). Text values are UTC.
type dbTimestamp time.Time

func (t *dbTimestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = dbTimestamp(v.UTC())
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *dbTimestamp) parse(raw string) error {
	parsed, err := time.ParseInLocation(timestampLayout, raw, time.UTC)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return fmt.Errorf("parse timestamp %q: %w", raw, err)
		}
	}
	*t = dbTimestamp(parsed.UTC())
	return nil
}
