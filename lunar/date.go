package lunar

import (
	"time"
)

// Date wraps a time.Time with lunar accessors, lunar arithmetic and
// lunar-aware formatting. Native units and layouts behave exactly as the
// time package does. The zero time is an invalid Date.
type Date struct {
	t   time.Time
	cal *Calendar
}

func (d Date) calendar() *Calendar {
	if d.cal == nil {
		return defaultCalendar
	}
	return d.cal
}

func (d Date) with(t time.Time) Date {
	return Date{t: t, cal: d.cal}
}

// Time returns the underlying time.
func (d Date) Time() time.Time { return d.t }

// IsValid reports whether the date holds a time.
func (d Date) IsValid() bool { return !d.t.IsZero() }

// Equal reports whether both dates are the same instant.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Before reports whether d is before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// StartOfDay returns midnight of the date's civil day.
func (d Date) StartOfDay() Date {
	y, m, day := d.t.Date()
	return d.with(time.Date(y, m, day, 0, 0, 0, 0, d.t.Location()))
}

func (d Date) String() string {
	if !d.IsValid() {
		return "Invalid Date"
	}
	return d.t.Format(time.RFC3339)
}

// =============================================================================
// Lunar accessors
// =============================================================================

// ToLunarHour returns the lunar dual-hour of the date.
func (d Date) ToLunarHour() (Hour, error) {
	if !d.IsValid() {
		return Hour{}, ErrInvalidDate
	}
	l, err := toLunar(d.t)
	if err != nil {
		return Hour{}, err
	}
	return Hour{view{l: l, names: &d.calendar().names}}, nil
}

// ToLunarDay returns the lunar day of the date.
func (d Date) ToLunarDay() (Day, error) {
	h, err := d.ToLunarHour()
	if err != nil {
		return Day{}, err
	}
	return h.Day(), nil
}

// ToLunarMonth returns the lunar month of the date.
func (d Date) ToLunarMonth() (Month, error) {
	day, err := d.ToLunarDay()
	if err != nil {
		return Month{}, err
	}
	return day.Month(), nil
}

// ToLunarSeason returns the lunar season of the date.
func (d Date) ToLunarSeason() (Season, error) {
	m, err := d.ToLunarMonth()
	if err != nil {
		return Season{}, err
	}
	return m.Season(), nil
}

// ToLunarYear returns the lunar year of the date.
func (d Date) ToLunarYear() (Year, error) {
	m, err := d.ToLunarMonth()
	if err != nil {
		return Year{}, err
	}
	return m.Year(), nil
}

// =============================================================================
// Native arithmetic with lunar dispatch
// =============================================================================

// Add adds value units to the date. A unit with the lunar- prefix is
// dispatched to AddLunar; any other unit is native time arithmetic:
// year, month, week, day, hour, minute, second, millisecond (plural and
// short forms y, M, w, d, h, m, s, ms are accepted).
func (d Date) Add(value int, unit string) (Date, error) {
	if IsLunarUnit(unit) {
		u, err := ParseUnit(unit)
		if err != nil {
			return d, err
		}
		return d.AddLunar(value, u)
	}
	return d.addNative(value, unit)
}

// Subtract is Add with the value negated.
func (d Date) Subtract(value int, unit string) (Date, error) {
	if IsLunarUnit(unit) {
		u, err := ParseUnit(unit)
		if err != nil {
			return d, err
		}
		return d.SubtractLunar(value, u)
	}
	return d.addNative(-value, unit)
}

func (d Date) addNative(value int, unit string) (Date, error) {
	t := d.t
	switch unit {
	case "year", "years", "y":
		t = t.AddDate(value, 0, 0)
	case "month", "months", "M":
		t = t.AddDate(0, value, 0)
	case "week", "weeks", "w":
		t = t.AddDate(0, 0, 7*value)
	case "day", "days", "d":
		t = t.AddDate(0, 0, value)
	case "hour", "hours", "h":
		t = t.Add(time.Duration(value) * time.Hour)
	case "minute", "minutes", "m":
		t = t.Add(time.Duration(value) * time.Minute)
	case "second", "seconds", "s":
		t = t.Add(time.Duration(value) * time.Second)
	case "millisecond", "milliseconds", "ms":
		t = t.Add(time.Duration(value) * time.Millisecond)
	default:
		return d, &UnitError{Unit: unit}
	}
	if !d.IsValid() {
		return d, nil
	}
	return d.with(t), nil
}
