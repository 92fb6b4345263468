package lunar

import "time"

// Summary is a flat description of a date in both calendars, shaped for
// JSON output.
type Summary struct {
	Solar      string `json:"solar"` // RFC 3339
	Weekday    string `json:"weekday"`
	Year       int    `json:"lunar_year"`
	YearGanZhi string `json:"year_ganzhi"`
	Zodiac     string `json:"zodiac"`
	LeapOfYear int    `json:"leap_of_year"` // leap month of the lunar year, 0 if none
	Month      int    `json:"lunar_month"`  // negative for a leap month
	MonthName  string `json:"month_name"`
	LeapMonth  bool   `json:"leap_month"`
	MonthDays  int    `json:"month_days"`
	Season     string `json:"season"`
	Day        int    `json:"lunar_day"`
	DayName    string `json:"day_name"`
	Hour       string `json:"hour"`
	HourGanZhi string `json:"hour_ganzhi"`
	Quarter    string `json:"quarter"`
	Text       string `json:"text"`
	HourText   string `json:"hour_text"`
}

// Summary collects every lunar view of d.
func (d Date) Summary() (Summary, error) {
	hour, err := d.ToLunarHour()
	if err != nil {
		return Summary{}, err
	}
	day := hour.Day()
	month := day.Month()
	year := month.Year()

	return Summary{
		Solar:      d.t.Format(time.RFC3339),
		Weekday:    d.t.Weekday().String(),
		Year:       year.Number(),
		YearGanZhi: year.GanZhi(),
		Zodiac:     year.Zodiac(),
		LeapOfYear: year.LeapMonth(),
		Month:      month.NumberWithLeap(),
		MonthName:  month.Name(),
		LeapMonth:  month.IsLeap(),
		MonthDays:  month.DayCount(),
		Season:     month.Season().Name(),
		Day:        day.Number(),
		DayName:    day.Name(),
		Hour:       hour.Name(),
		HourGanZhi: hour.GanZhi(),
		Quarter:    hour.Quarter(),
		Text:       day.String(),
		HourText:   hour.String(),
	}, nil
}
