package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateOnly wraps time.Time for calendar dates exchanged as ISO 8601
// YYYY-MM-DD, with no time-of-day and no timezone arithmetic. It controls
// both JSON un/marshaling and SQL driver encoding.
type DateOnly time.Time

const dateLayout = "2006-01-02"

// UnmarshalJSON accepts "2024-05-15" and, for tolerance with older mobile
// clients, a full RFC3339 timestamp whose date part is kept.
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*d = DateOnly(time.Time{})
		return nil
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = DateOnly(t)
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = DateOnly(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
		return nil
	}
	return fmt.Errorf("DateOnly.UnmarshalJSON: cannot parse %q as YYYY-MM-DD", s)
}

// MarshalJSON always emits plain YYYY-MM-DD.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(dateLayout) + `"`), nil
}

// Value implements driver.Valuer so GORM/pgx can bind DateOnly to a SQL
// DATE parameter.
func (d DateOnly) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements sql.Scanner so GORM can read DATE columns back.
func (d *DateOnly) Scan(src interface{}) error {
	if src == nil {
		*d = DateOnly(time.Time{})
		return nil
	}
	switch v := src.(type) {
	case time.Time:
		*d = DateOnly(v)
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return fmt.Errorf("DateOnly.Scan: parse %q: %w", string(v), err)
		}
		*d = DateOnly(t)
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return fmt.Errorf("DateOnly.Scan: parse %q: %w", v, err)
		}
		*d = DateOnly(t)
		return nil
	default:
		return fmt.Errorf("DateOnly.Scan: unsupported type %T", src)
	}
}

// Time returns the underlying calendar day.
func (d DateOnly) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the date is unset.
func (d DateOnly) IsZero() bool {
	return time.Time(d).IsZero()
}
