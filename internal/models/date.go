package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day kept as YYYY-MM-DD text. Keeping it as a string
// means range filters compare lexicographically and no timezone is applied.
type Date string

// NormalizeDate keeps the date portion of an ISO timestamp. Values without a
// time part are returned unchanged.
func NormalizeDate(raw string) Date {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		raw = raw[:i]
	}
	return Date(raw)
}

// String returns the textual form.
func (d Date) String() string { return string(d) }

// Scan implements sql.Scanner for DATE columns from either driver.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(dateLayout))
	case []byte:
		*d = NormalizeDate(string(v))
	case string:
		*d = NormalizeDate(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// Value implements driver.Valuer. The empty date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}
