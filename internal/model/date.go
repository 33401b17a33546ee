package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time component. It is persisted as an ISO
// YYYY-MM-DD string so date comparisons in SQLite stay lexicographic.
// All Dates are normalized to midnight UTC internally; the timezone that
// decides which day "today" is lives in the clock package, not here.
type Date time.Time

func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date(t), nil
}

func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return time.Time(d).Before(time.Time(o)) }
func (d Date) After(o Date) bool  { return time.Time(d).After(time.Time(o)) }
func (d Date) Equal(o Date) bool  { return time.Time(d).Equal(time.Time(o)) }

// Weekday returns the day of the week with Monday as 0 and Sunday as 6,
// matching the digit encoding used in MasterTask.RecurrenceDays.
func (d Date) Weekday() int {
	return (int(time.Time(d).Weekday()) + 6) % 7
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	t := time.Time(d)
	return NewDate(t.Year(), t.Month(), 1)
}

// FirstOfNextMonth returns the first day of the month after d's.
func (d Date) FirstOfNextMonth() Date {
	t := time.Time(d)
	return NewDate(t.Year(), t.Month()+1, 1)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner, accepting ISO strings and time values.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

// GormDataType keeps the column declared as a date even though SQLite
// stores it as text.
func (Date) GormDataType() string { return "date" }
