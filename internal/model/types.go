package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	clockLayout     = "15:04"
	clockLayoutLong = "15:04:05"
)

// Date is a calendar day with no time or timezone component. It maps to a
// SQL DATE column and marshals as "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("unsupported date source type %T", src)
	}
}

// ClockTime is a wall-clock time of day with no date component. It maps to a
// SQL TIME column and marshals as "15:04".
type ClockTime struct {
	time.Time
}

func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{clockLayout, clockLayoutLong} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Time: t}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("failed to parse time of day %q", s)
}

func (c ClockTime) String() string {
	return c.Format(clockLayout)
}

// Before reports whether c falls earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	a := c.Hour()*3600 + c.Minute()*60 + c.Second()
	b := other.Hour()*3600 + other.Minute()*60 + other.Second()
	return a < b
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Format(clockLayout))
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.Format(clockLayoutLong), nil
}

func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		c.Time = v
		return nil
	case []byte:
		parsed, err := ParseClockTime(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case string:
		parsed, err := ParseClockTime(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("unsupported time source type %T", src)
	}
}
