package internal

import (
	"fmt"
	"time"
)

const DateFormat = "2006-01-02"

// Date is a calendar day at midnight UTC.
type Date struct {
	time.Time
}

func Today() Date {
	return NewDateFromTime(time.Now().UTC())
}

func NewDateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) AddDate(years, months, days int) Date {
	t := d.Time.AddDate(years, months, days)
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Parse(layout, value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, err
	}
	return NewDateFromTime(t), nil
}

func (d *Date) Set(v string) error {
	parsed, err := Parse(DateFormat, v)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
	}
	*d = parsed
	return nil
}

func (d Date) Type() string {
	return "date"
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateFormat)
}

// Window is an inclusive time range covering whole days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns a window from the start of first to 23:59:59 of last.
func Days(first, last Date) Window {
	return Window{
		Start: first.Time,
		End:   last.AddDate(0, 0, 1).Add(-time.Second),
	}
}

func (w Window) String() string {
	return w.Start.Format(time.RFC3339) + ".." + w.End.Format(time.RFC3339)
}
