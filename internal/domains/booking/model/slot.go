package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"roombook/shared/constant"
)

// Day is a calendar date without a time part, stored as YYYY-MM-DD.
type Day struct {
	time.Time
}

func ParseDay(value string) (Day, error) {
	t, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return Day{Time: t}, nil
}

func (d Day) Equal(other Day) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

func (d Day) String() string {
	return d.Format(constant.DayFormat)
}

// Value implements driver.Valuer.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Day) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		d.Time = time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)

		return nil
	case []byte:
		return d.parse(string(value))
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("cannot scan %T into Day", src)
	}
}

func (d *Day) parse(value string) error {
	parsed, err := ParseDay(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// TimeOfDay is a wall clock time within a day at minute precision, stored as HH:MM.
type TimeOfDay struct {
	time.Time
}

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse(constant.ClockFormat, value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", value, err)
	}

	return TimeOfDay{Time: t}, nil
}

// Minutes returns the minutes elapsed since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour()*60 + t.Minute()
}

func (t TimeOfDay) String() string {
	return t.Format(constant.ClockFormat)
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as time.Time on year zero.
func (t *TimeOfDay) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		t.Time = time.Date(0, time.January, 1, value.Hour(), value.Minute(), 0, 0, time.UTC)

		return nil
	case []byte:
		return t.parse(string(value))
	case string:
		return t.parse(value)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) parse(value string) error {
	// postgres renders TIME as HH:MM:SS
	if len(value) > len(constant.ClockFormat) {
		value = value[:len(constant.ClockFormat)]
	}

	parsed, err := ParseTimeOfDay(value)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
