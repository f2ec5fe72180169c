package model

import "time"

// Date is a calendar day in "2006-01-02" form. Promotion windows have day
// granularity and the backend sends plain day strings, so comparisons are
// string ordering: lexical order matches chronological order for the fixed
// format. The zero value means "unbounded".
type Date string

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format("2006-01-02"))
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d < other
}

// After reports whether d is a later calendar day than other.
func (d Date) After(other Date) bool {
	return d > other
}
