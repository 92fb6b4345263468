package lunar

// Valid ranges for lunar fields.
const (
	MinYear = -1
	MaxYear = 9999
)

// Fields is a lunar date and wall-clock time. Month is negative for a leap month.
type Fields struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// bound is one row of the validation table.
type bound struct {
	field    string
	min, max int
	hint     string
	value    func(Fields) int
	excluded func(int) bool
}

var bounds = []bound{
	{field: "year", min: MinYear, max: MaxYear, value: func(f Fields) int { return f.Year }},
	{
		field: "month", min: -12, max: 12,
		hint:     "where negative values represent leap months",
		value:    func(f Fields) int { return f.Month },
		excluded: func(v int) bool { return v == 0 },
	},
	{field: "day", min: 1, max: 30, value: func(f Fields) int { return f.Day }},
	{field: "hour", min: 0, max: 23, value: func(f Fields) int { return f.Hour }},
	{field: "minute", min: 0, max: 59, value: func(f Fields) int { return f.Minute }},
	{field: "second", min: 0, max: 59, value: func(f Fields) int { return f.Second }},
}

// Validate checks every field against its range and returns a *FieldError
// for the first violation, in year, month, day, hour, minute, second order.
func (f Fields) Validate() error {
	for _, b := range bounds {
		v := b.value(f)
		if v < b.min || v > b.max || (b.excluded != nil && b.excluded(v)) {
			return &FieldError{Field: b.field, Value: v, Min: b.min, Max: b.max, Hint: b.hint}
		}
	}
	return nil
}

// Validate is a convenience wrapper around Fields.Validate.
func Validate(year, month, day, hour, minute, second int) error {
	return Fields{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}.Validate()
}

// IsLeap reports whether the fields name a leap month.
func (f Fields) IsLeap() bool {
	return f.Month < 0
}
