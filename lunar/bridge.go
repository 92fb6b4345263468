package lunar

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// =============================================================================
// Bridge between time.Time and lunar-go values
// =============================================================================

// guard runs fn and turns a panic raised inside the lunar library into an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNoSuchDate, r)
		}
	}()
	fn()
	return nil
}

// toLunar reads the wall-clock fields of t and converts them to a lunar value.
func toLunar(t time.Time) (*calendar.Lunar, error) {
	if t.Year() < MinYear || t.Year() > MaxYear+1 {
		return nil, fmt.Errorf("%w: solar year %d is outside the supported range", ErrOutOfRange, t.Year())
	}
	var l *calendar.Lunar
	err := guard(func() {
		l = calendar.NewSolar(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()).GetLunar()
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// fromLunar returns the solar moment of l in loc, carrying nsec as the
// sub-second component the lunar library does not model.
func fromLunar(l *calendar.Lunar, loc *time.Location, nsec int) time.Time {
	s := l.GetSolar()
	return time.Date(s.GetYear(), time.Month(s.GetMonth()), s.GetDay(),
		s.GetHour(), s.GetMinute(), s.GetSecond(), nsec, loc)
}

// newLunar builds a lunar value from validated fields, rejecting dates the
// calendar does not contain.
func newLunar(f Fields) (*calendar.Lunar, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if f.IsLeap() {
		leap, err := leapMonth(f.Year)
		if err != nil {
			return nil, err
		}
		if leap != -f.Month {
			return nil, fmt.Errorf("%w: lunar year %d has no leap month %d", ErrNoSuchDate, f.Year, -f.Month)
		}
	}

	days, err := dayCount(f.Year, f.Month)
	if err != nil {
		return nil, err
	}
	if f.Day > days {
		return nil, fmt.Errorf("%w: lunar month %d/%d has %d days, got day %d", ErrNoSuchDate, f.Year, f.Month, days, f.Day)
	}

	var l *calendar.Lunar
	err = guard(func() {
		l = calendar.NewLunar(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// leapMonth returns the leap month of a lunar year, or 0 when it has none.
func leapMonth(year int) (int, error) {
	var leap int
	err := guard(func() {
		leap = calendar.NewLunarYear(year).GetLeapMonth()
	})
	return leap, err
}

// lunarMonth returns the library's month of a lunar year, or nil when the
// year has no month with that number.
func lunarMonth(year, month int) (*calendar.LunarMonth, error) {
	var m *calendar.LunarMonth
	err := guard(func() {
		m = calendar.NewLunarMonthFromYm(year, month)
	})
	return m, err
}

// dayCount returns the number of days (29 or 30) in a lunar month.
func dayCount(year, month int) (int, error) {
	m, err := lunarMonth(year, month)
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 0, fmt.Errorf("%w: lunar year %d has no month %d", ErrNoSuchDate, year, month)
	}
	return m.GetDayCount(), nil
}

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return &FieldError{Field: "year", Value: year, Min: MinYear, Max: MaxYear}
	}
	return nil
}

// monthsOf returns the months of a lunar year in calendar order. Most years
// have 12 or 13; a few historical years skip a month number.
func monthsOf(year int) ([]*calendar.LunarMonth, error) {
	var months []*calendar.LunarMonth
	err := guard(func() {
		for e := calendar.NewLunarYear(year).GetMonthsInYear().Front(); e != nil; e = e.Next() {
			months = append(months, e.Value.(*calendar.LunarMonth))
		}
	})
	return months, err
}

// nearestMonth returns the last month of year, in calendar order, whose
// number does not exceed month. It falls back to the first month of the
// year.
func nearestMonth(year, month int) (*calendar.LunarMonth, error) {
	months, err := monthsOf(year)
	if err != nil {
		return nil, err
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("%w: lunar year %d has no months", ErrNoSuchDate, year)
	}
	found := months[0]
	for _, m := range months {
		if abs(m.GetMonth()) <= abs(month) {
			found = m
		}
	}
	return found, nil
}

// shiftMonth moves (year, month) by n months in the lunar library's month
// order.
func shiftMonth(year, month, n int) (int, int, error) {
	// a year holds at most 15 month entries, so n/15 years is the least the
	// shift can move
	if target := year + n/15; target < MinYear || target > MaxYear {
		return 0, 0, checkYear(target)
	}

	m, err := lunarMonth(year, month)
	if err != nil {
		return 0, 0, err
	}
	if m == nil {
		return 0, 0, fmt.Errorf("%w: lunar year %d has no month %d", ErrNoSuchDate, year, month)
	}

	var next *calendar.LunarMonth
	if err := guard(func() { next = m.Next(n) }); err != nil {
		return 0, 0, err
	}
	if next == nil {
		return 0, 0, fmt.Errorf("%w: no lunar month %d months from %d/%d", ErrNoSuchDate, n, year, month)
	}
	if err := checkYear(next.GetYear()); err != nil {
		return 0, 0, err
	}
	return next.GetYear(), next.GetMonth(), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
