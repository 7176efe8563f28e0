// Package types implements special types for the Amount Tracker.
package types

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the format dates use on the API, e.g. 05-Aug-2024.
const DateFormat = "02-Jan-2006"

// ErrDateFormat is returned when a date is not in DD-MMM-YYYY format.
var ErrDateFormat = errors.New("not a valid date in DD-MMM-YYYY format, e.g. 05-Aug-2024")

// Date is a calendar day without a time of day.
//
// It is always normalized to midnight UTC so that two Date values for
// the same calendar day compare as equal no matter where they were
// parsed or read from.
type Date time.Time

// NewDate returns the Date for a calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date of the calendar day a time occurs on.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a string in DD-MMM-YYYY format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%q is %w", s, ErrDateFormat)
	}

	return DateOf(t), nil
}

// String returns the date formatted as DD-MMM-YYYY.
func (d Date) String() string {
	return time.Time(d).Format(DateFormat)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The date is expected to be a string in DD-MMM-YYYY format.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Scan reads the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	nullInt := &sql.NullInt64{}
	err = nullInt.Scan(value)
	*d = DateOf(time.Unix(nullInt.Int64, 0).UTC())
	return err
}

// Value returns the value for the SQL driver to write to the database.
// Dates are persisted as epoch seconds at midnight UTC.
func (d Date) Value() (driver.Value, error) {
	return time.Time(d).Unix(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "integer"
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// Unix returns the epoch seconds of midnight UTC on the date.
func (d Date) Unix() int64 {
	return time.Time(d).Unix()
}

// Before reports whether the day d is before the day e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the day d is after the day e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e are the same calendar day.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}
