package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskcal/internal/common"
)

const dateLayout = "2006-01-02"

// CalendarDate is a day on the calendar. The time of day never takes part in
// comparisons or storage.
type CalendarDate struct {
	time.Time
}

// NewCalendarDate drops the clock part of t, keeping its year, month and day.
func NewCalendarDate(t time.Time) CalendarDate {
	return CalendarDate{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseCalendarDate accepts "2006-01-02" or an RFC 3339 timestamp, of which
// only the date part is kept.
func ParseCalendarDate(s string) (CalendarDate, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewCalendarDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewCalendarDate(t), nil
	}
	return CalendarDate{}, fmt.Errorf("%w: date %q is not a valid date", common.ErrorValidation, s)
}

func (d CalendarDate) String() string {
	return d.Format(dateLayout)
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *CalendarDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: date must be a string", common.ErrorValidation)
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as a DATE literal.
func (d CalendarDate) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan reads DATE columns, which pgx hands over as time.Time.
func (d *CalendarDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewCalendarDate(v)
		return nil
	case string:
		parsed, err := ParseCalendarDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	}
	return fmt.Errorf("cannot scan %T into CalendarDate", src)
}
