package lunar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat_LunarTokens(t *testing.T) {
	d := base(newCalendar())

	tests := []struct {
		layout string
		want   string
	}{
		{layout: "LY", want: "癸酉"},
		{layout: "LZ", want: "鸡"},
		{layout: "LM", want: "闰三月"},
		{layout: "LD", want: "初十"},
		{layout: "LH", want: "午时"},
		{layout: "LB", want: "午"},
		{layout: "LK", want: "正二刻"},
		{layout: "LY年LM LD", want: "癸酉年闰三月 初十"},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Format(tt.layout))
		})
	}
}

func TestFormat_MixesNativeLayout(t *testing.T) {
	d := base(newCalendar())

	assert.Equal(t, "1993-05-01 闰三月初十", d.Format("2006-01-02 LMLD"))
	assert.Equal(t, "12:40 LH 午时", d.Format("15:04 [LH] LH"))
	assert.Equal(t, "2006 1993", d.Format("[2006] 2006"))
}

func TestFormat_UnmatchedTokensPassThrough(t *testing.T) {
	d := base(newCalendar())

	assert.Equal(t, "LX LQ", d.Format("LX LQ"))
}

func TestFormat_EmptyLayoutIsRFC3339(t *testing.T) {
	d := base(newCalendar())

	assert.Equal(t, d.Time().Format(time.RFC3339), d.Format(""))
}

func TestFormat_QuarterLabels(t *testing.T) {
	cal := newCalendar()

	tests := []struct {
		hour, minute int
		want         string
	}{
		{hour: 12, minute: 40, want: "正二刻"},
		{hour: 11, minute: 5, want: "初初刻"},
		{hour: 23, minute: 59, want: "初三刻"},
		{hour: 0, minute: 15, want: "正一刻"},
		{hour: 13, minute: 30, want: "初二刻"},
	}

	for _, tt := range tests {
		d := cal.New(time.Date(2024, 6, 1, tt.hour, tt.minute, 0, 0, cst))
		assert.Equal(t, tt.want, d.Format("LK"), "%02d:%02d", tt.hour, tt.minute)
	}
}
