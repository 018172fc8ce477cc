package core

import (
	"regexp"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// NoDate is how a missing date is rendered and stored.
	NoDate = "no date"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is an optional calendar date. The zero value means "no date".
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date. Malformed input and impossible calendar
// dates (2023-02-30, 2023-02-29) both fail with ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// IsEmpty returns true if the date is the "no date" sentinel
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsEmpty() {
		return NoDate
	}
	return d.Format(DateLayout)
}

// Equal reports whether both dates denote the same day, or are both empty.
func (d Date) Equal(o Date) bool {
	if d.IsEmpty() || o.IsEmpty() {
		return d.IsEmpty() == o.IsEmpty()
	}
	return d.Time.Equal(o.Time)
}
