package lunar

import (
	"regexp"
	"strings"
	"time"
)

// Lunar format tokens.
const (
	TokenYear    = "LY" // sexagenary year, 癸酉
	TokenZodiac  = "LZ" // zodiac, 鸡
	TokenMonth   = "LM" // month name, 闰三月
	TokenDay     = "LD" // day name, 初十
	TokenHour    = "LH" // dual-hour name, 午时
	TokenBranch  = "LB" // earth branch of the dual-hour, 午
	TokenQuarter = "LK" // quarter-hour label, 正二刻
)

var (
	tokenPattern   = regexp.MustCompile(`\[[^\]]*\]|L[YZMDHBK]`)
	literalPattern = regexp.MustCompile(`\[[^\]]*\]`)
)

var quarterNames = [4]string{"初", "一", "二", "三"}

// quarterLabel names the quarter of the hour: 初 for the first (odd) hour of
// a dual-hour and 正 for the second, then the quarter by minute.
func quarterLabel(hour, minute int) string {
	half := "正"
	if hour%2 == 1 {
		half = "初"
	}
	return half + quarterNames[minute/15%4] + "刻"
}

// Format renders the date. Lunar tokens (LY, LZ, LM, LD, LH, LB, LK) are
// substituted first; the result is then formatted as a Go reference layout.
// Text in square brackets is printed literally without the brackets.
// An empty layout formats as RFC 3339.
func (d Date) Format(layout string) string {
	if !d.IsValid() || layout == "" {
		return d.formatNative(layout)
	}

	h, err := d.ToLunarHour()
	if err != nil {
		return d.formatNative(layout)
	}

	replaced := tokenPattern.ReplaceAllStringFunc(layout, func(match string) string {
		switch match {
		case TokenYear:
			return h.l.GetYearInGanZhi()
		case TokenZodiac:
			return h.l.GetYearShengXiao()
		case TokenMonth:
			return h.monthName()
		case TokenDay:
			return h.Day().Name()
		case TokenHour:
			return h.Name()
		case TokenBranch:
			return h.Branch()
		case TokenQuarter:
			return h.Quarter()
		default:
			return match
		}
	})
	return d.formatNative(replaced)
}

// formatNative applies time.Format to everything outside square brackets.
func (d Date) formatNative(layout string) string {
	if !d.IsValid() {
		return "Invalid Date"
	}
	if layout == "" {
		return d.t.Format(time.RFC3339)
	}

	var b strings.Builder
	last := 0
	for _, span := range literalPattern.FindAllStringIndex(layout, -1) {
		b.WriteString(d.t.Format(layout[last:span[0]]))
		b.WriteString(layout[span[0]+1 : span[1]-1])
		last = span[1]
	}
	b.WriteString(d.t.Format(layout[last:]))
	return b.String()
}
