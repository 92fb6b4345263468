package lunar

import (
	"github.com/6tail/lunar-go/calendar"
)

// Traditional and numeric lunar month names.
var (
	TraditionalMonthNames = [12]string{
		"正月", "二月", "三月", "四月", "五月", "六月",
		"七月", "八月", "九月", "十月", "冬月", "腊月",
	}
	NumericMonthNames = [12]string{
		"正月", "二月", "三月", "四月", "五月", "六月",
		"七月", "八月", "九月", "十月", "十一月", "十二月",
	}
)

const leapPrefix = "闰"

// view is the shared state behind every lunar view: the lunar value and the
// month-name table of the Calendar that produced it.
type view struct {
	l     *calendar.Lunar
	names *[12]string
}

func (v view) monthName() string {
	m := v.l.GetMonth()
	if m < 0 {
		return leapPrefix + v.names[-m-1]
	}
	return v.names[m-1]
}

func (v view) prefix() string {
	return "农历" + v.l.GetYearInGanZhi() + "年"
}

// =============================================================================
// Hour
// =============================================================================

// Hour is the lunar dual-hour (时辰) view of a moment.
type Hour struct{ view }

// Name returns the dual-hour name, e.g. 午时.
func (h Hour) Name() string { return h.l.GetTimeZhi() + "时" }

// GanZhi returns the sexagenary name of the dual-hour, e.g. 丙午.
func (h Hour) GanZhi() string { return h.l.GetTimeInGanZhi() }

// Branch returns the earth branch of the dual-hour, e.g. 午.
func (h Hour) Branch() string { return h.l.GetTimeZhi() }

// Index returns the dual-hour index, 0 (子) through 11 (亥).
func (h Hour) Index() int { return h.l.GetTimeZhiIndex() }

// Clock returns the wall-clock hour, minute and second.
func (h Hour) Clock() (hour, minute, second int) {
	return h.l.GetHour(), h.l.GetMinute(), h.l.GetSecond()
}

// Quarter returns the traditional quarter-hour label, e.g. 正二刻.
func (h Hour) Quarter() string { return quarterLabel(h.l.GetHour(), h.l.GetMinute()) }

// Day returns the lunar day containing the dual-hour.
func (h Hour) Day() Day { return Day{h.view} }

func (h Hour) String() string {
	return h.prefix() + h.monthName() + h.l.GetDayInChinese() + h.GanZhi() + "时"
}

// =============================================================================
// Day
// =============================================================================

// Day is a lunar day.
type Day struct{ view }

// Name returns the day name, e.g. 初十.
func (d Day) Name() string { return d.l.GetDayInChinese() }

// Number returns the day of the lunar month, 1 through 30.
func (d Day) Number() int { return d.l.GetDay() }

// Month returns the lunar month containing the day.
func (d Day) Month() Month { return Month{d.view} }

func (d Day) String() string {
	return d.prefix() + d.monthName() + d.Name()
}

// =============================================================================
// Month
// =============================================================================

// Month is a lunar month.
type Month struct{ view }

// Name returns the month name from the Calendar's table, with 闰 for a leap month.
func (m Month) Name() string { return m.monthName() }

// Number returns the month number 1 through 12, ignoring the leap flag.
func (m Month) Number() int {
	if n := m.l.GetMonth(); n < 0 {
		return -n
	}
	return m.l.GetMonth()
}

// NumberWithLeap returns the month number, negative for a leap month.
func (m Month) NumberWithLeap() int { return m.l.GetMonth() }

// IsLeap reports whether this is an intercalary month.
func (m Month) IsLeap() bool { return m.l.GetMonth() < 0 }

// DayCount returns the number of days in the month.
func (m Month) DayCount() int {
	n, err := dayCount(m.l.GetYear(), m.l.GetMonth())
	if err != nil {
		return 0
	}
	return n
}

// Season returns the season the month belongs to.
func (m Month) Season() Season { return Season{m.view} }

// Year returns the lunar year containing the month.
func (m Month) Year() Year { return Year{m.view} }

func (m Month) String() string {
	return m.prefix() + m.Name()
}

// =============================================================================
// Season
// =============================================================================

// Season is one of the twelve month-seasons (孟春 … 季冬).
type Season struct{ view }

// Index returns the season index, 0 (孟春) through 11 (季冬).
func (s Season) Index() int { return abs(s.l.GetMonth()) - 1 }

// Name returns the season name, e.g. 季春.
func (s Season) Name() string { return s.l.GetSeason() }

func (s Season) String() string { return s.Name() }

// =============================================================================
// Year
// =============================================================================

// Year is a lunar year.
type Year struct{ view }

// Number returns the lunar year number.
func (y Year) Number() int { return y.l.GetYear() }

// GanZhi returns the sexagenary name of the year, e.g. 癸酉.
func (y Year) GanZhi() string { return y.l.GetYearInGanZhi() }

// Zodiac returns the zodiac animal of the year, e.g. 鸡.
func (y Year) Zodiac() string { return y.l.GetYearShengXiao() }

// LeapMonth returns the leap month of the year, or 0 if there is none.
func (y Year) LeapMonth() int {
	leap, err := leapMonth(y.l.GetYear())
	if err != nil {
		return 0
	}
	return leap
}

func (y Year) String() string { return y.prefix() }
