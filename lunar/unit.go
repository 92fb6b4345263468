package lunar

import "strings"

// Unit is a lunar arithmetic unit.
type Unit string

const (
	UnitDualHour Unit = "dual-hour"
	UnitDay      Unit = "day"
	UnitMonth    Unit = "month"
	UnitYear     Unit = "year"
)

// LunarPrefix marks a unit passed to Date.Add or Date.Subtract as lunar.
const LunarPrefix = "lunar-"

// Units returns all lunar units.
func Units() []Unit {
	return []Unit{UnitDualHour, UnitDay, UnitMonth, UnitYear}
}

// IsValid reports whether u is a known lunar unit.
func (u Unit) IsValid() bool {
	for _, valid := range Units() {
		if u == valid {
			return true
		}
	}
	return false
}

// ParseUnit accepts a unit with or without the lunar- prefix.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.TrimPrefix(s, LunarPrefix))
	if !u.IsValid() {
		return "", &UnitError{Unit: string(u), Lunar: true}
	}
	return u, nil
}

// IsLunarUnit reports whether a unit string carries the lunar prefix.
func IsLunarUnit(s string) bool {
	return strings.HasPrefix(s, LunarPrefix)
}
