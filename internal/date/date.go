// Package date provides a calendar date with day granularity.
package date

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Format is the canonical string representation, ISO-8601.
const Format = "2006-01-02"

// slashFormat is the month/day/year shape used by inventory snapshots.
// Single-digit months and days are accepted.
const slashFormat = "1/2/2006"

// Date represents a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// After reports whether the day d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Before reports whether the day d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in its canonical ISO form.
func (d Date) String() string { return d.time().Format(Format) }

// Parse parses an ISO formatted date such as "2026-09-01".
func Parse(str string) (Date, error) {
	t, err := time.Parse(Format, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(t.Date()), nil
}

// ParseSlash parses a month/day/year formatted date such as "3/22/2026"
// or "03/22/2026".
func ParseSlash(str string) (Date, error) {
	t, err := time.Parse(slashFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format MM/DD/YYYY: %w", str, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Value implements driver.Valuer, persisting the date in ISO form.
func (d Date) Value() (driver.Value, error) { return d.String(), nil }

// Scan implements sql.Scanner for ISO formatted date columns.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case time.Time:
		*d = New(v.Date())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into date.Date", value)
	}
}
