package lunar

import (
	"log/slog"
	"time"
)

// Calendar is the entry point of the package. It owns the month-name table
// and the location used when building dates from lunar fields. A Calendar
// is immutable after New and safe for concurrent use.
type Calendar struct {
	names  [12]string
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithTraditional selects the traditional month names (冬月, 腊月) when true,
// or numeric names (十一月, 十二月) when false. The default is true.
func WithTraditional(traditional bool) Option {
	return func(c *Calendar) {
		if traditional {
			c.names = TraditionalMonthNames
		} else {
			c.names = NumericMonthNames
		}
	}
}

// WithLocation sets the location of dates built from lunar fields.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithNow overrides the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Calendar) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calendar) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Calendar.
func New(opts ...Option) *Calendar {
	c := &Calendar{
		names:  TraditionalMonthNames,
		loc:    time.Local,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalendar = New()

// MonthNames returns the month-name table in use.
func (c *Calendar) MonthNames() [12]string { return c.names }

// Location returns the location of dates built from lunar fields.
func (c *Calendar) Location() *time.Location { return c.loc }

// Now returns the current moment.
func (c *Calendar) Now() Date {
	return c.New(c.now().In(c.loc))
}

// New wraps t.
func (c *Calendar) New(t time.Time) Date {
	return Date{t: t, cal: c}
}

// Parse parses value with a Go reference layout in the Calendar's location.
func (c *Calendar) Parse(layout, value string) (Date, error) {
	t, err := time.ParseInLocation(layout, value, c.loc)
	if err != nil {
		return Date{cal: c}, err
	}
	return c.New(t), nil
}

// Lunar builds a date from loosely typed lunar fields:
// year, month, day, hour, minute, second. Month is negative for a leap
// month. With no arguments it returns the current moment.
func (c *Calendar) Lunar(args ...any) (Date, error) {
	if len(args) == 0 {
		return c.Now(), nil
	}
	f, err := Coerce(args...)
	if err != nil {
		c.logger.Debug("lunar arguments rejected", slog.Any("args", args), slog.Any("error", err))
		return Date{cal: c}, err
	}
	return c.FromFields(f)
}

// FromLunar builds a date from lunar fields.
func (c *Calendar) FromLunar(year, month, day, hour, minute, second int) (Date, error) {
	return c.FromFields(Fields{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	})
}

// FromFields validates f and converts it to a solar date.
func (c *Calendar) FromFields(f Fields) (Date, error) {
	return c.fromFields(f, c.loc, 0)
}

func (c *Calendar) fromFields(f Fields, loc *time.Location, nsec int) (Date, error) {
	l, err := newLunar(f)
	if err != nil {
		c.logger.Debug("lunar date rejected",
			slog.Int("year", f.Year),
			slog.Int("month", f.Month),
			slog.Int("day", f.Day),
			slog.Any("error", err),
		)
		return Date{cal: c}, err
	}
	return c.New(fromLunar(l, loc, nsec)), nil
}

// Normalize adapts a lunar (year, month, day) to the given year: a leap
// month the year does not have becomes the regular month of the same
// number, and the day is clamped to the month's length. In the few
// historical years that skip a month number, a missing month becomes the
// nearest earlier month of that year.
func (c *Calendar) Normalize(year, month, day int) (Fields, error) {
	f := Fields{Year: year, Month: month, Day: day}
	if err := checkYear(year); err != nil {
		return f, err
	}
	if f.IsLeap() {
		leap, err := leapMonth(year)
		if err != nil {
			return f, err
		}
		if leap != -month {
			f.Month = -month
		}
	}

	m, err := lunarMonth(f.Year, f.Month)
	if err != nil {
		return f, err
	}
	if m == nil {
		if m, err = nearestMonth(f.Year, f.Month); err != nil {
			return f, err
		}
		f.Month = m.GetMonth()
	}
	f.Day = min(f.Day, m.GetDayCount())
	return f, nil
}

// YearMonths lists the months of a lunar year in calendar order.
func (c *Calendar) YearMonths(year int) ([]MonthInfo, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	lms, err := monthsOf(year)
	if err != nil {
		return nil, err
	}

	months := make([]MonthInfo, 0, len(lms))
	for _, lm := range lms {
		first, err := c.FromLunar(year, lm.GetMonth(), 1, 0, 0, 0)
		if err != nil {
			return nil, err
		}
		named, err := first.ToLunarMonth()
		if err != nil {
			return nil, err
		}
		months = append(months, MonthInfo{
			Month:    lm.GetMonth(),
			Name:     named.Name(),
			DayCount: lm.GetDayCount(),
			FirstDay: first.Time(),
		})
	}
	return months, nil
}

// MonthInfo summarizes one month of a lunar year.
type MonthInfo struct {
	Month    int       `json:"month"` // negative for a leap month
	Name     string    `json:"name"`
	DayCount int       `json:"day_count"`
	FirstDay time.Time `json:"first_day"`
}
