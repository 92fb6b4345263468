package lunar

import (
	"time"
)

// AddLunar adds value lunar units to the date.
//
// dual-hour and day move the wall clock by 2h and one day per unit. month
// and year move the lunar month or year, keep the time of day, and clamp
// the lunar day to the length of the target month. When adding years, a
// leap month the target year does not have becomes the regular month of
// the same number.
func (d Date) AddLunar(value int, unit Unit) (Date, error) {
	if !unit.IsValid() {
		return d, &UnitError{Unit: string(unit), Lunar: true}
	}
	if value == 0 || !d.IsValid() {
		return d, nil
	}

	t := d.t
	switch unit {
	case UnitDualHour:
		return d.with(time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+2*value,
			t.Minute(), t.Second(), t.Nanosecond(), t.Location())), nil
	case UnitDay:
		return d.with(time.Date(t.Year(), t.Month(), t.Day()+value,
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())), nil
	}

	l, err := toLunar(t)
	if err != nil {
		return d, err
	}

	var f Fields
	switch unit {
	case UnitMonth:
		year, month, err := shiftMonth(l.GetYear(), l.GetMonth(), value)
		if err != nil {
			return d, err
		}
		days, err := dayCount(year, month)
		if err != nil {
			return d, err
		}
		f = Fields{Year: year, Month: month, Day: min(l.GetDay(), days)}
	case UnitYear:
		f, err = d.calendar().Normalize(l.GetYear()+value, l.GetMonth(), l.GetDay())
		if err != nil {
			return d, err
		}
	}

	f.Hour, f.Minute, f.Second = t.Hour(), t.Minute(), t.Second()
	out, err := d.calendar().fromFields(f, t.Location(), t.Nanosecond())
	if err != nil {
		return d, err
	}
	return d.with(out.t), nil
}

// SubtractLunar is AddLunar with the value negated.
func (d Date) SubtractLunar(value int, unit Unit) (Date, error) {
	return d.AddLunar(-value, unit)
}
