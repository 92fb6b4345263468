// Package lunar adds Chinese lunisolar calendar support to time.Time.
//
// A Calendar is created once and passed to call sites:
//
//	cal := lunar.New(lunar.WithLocation(shanghai))
//	d := cal.New(time.Date(1993, 5, 1, 12, 40, 0, 0, shanghai))
//
//	month, _ := d.ToLunarMonth()   // 闰三月
//	next, _ := d.AddLunar(1, lunar.UnitYear)
//	d.Format("LY年LM LD LH LK")    // 癸酉年闰三月 初十 午时 正二刻
//
//	birthday, err := cal.Lunar(1993, -3, 10, 12, 40)
//
// Date composes over time.Time: Add, Subtract and Format behave like the
// time package unless a unit carries the "lunar-" prefix or a layout
// contains a lunar token. Leap-month placement, month lengths and
// sexagenary names come from github.com/6tail/lunar-go.
package lunar
