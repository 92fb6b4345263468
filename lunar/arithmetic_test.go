package lunar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

func TestAddLunar_Examples(t *testing.T) {
	d := base(newCalendar())

	next, err := d.AddLunar(1, lunar.UnitDualHour)
	require.NoError(t, err)
	hour, err := next.ToLunarHour()
	require.NoError(t, err)
	assert.Equal(t, "未时", hour.Name())
	assert.Equal(t, time.Date(1993, 5, 1, 14, 40, 0, 0, cst), next.Time())

	next, err = d.AddLunar(1, lunar.UnitDay)
	require.NoError(t, err)
	day, err := next.ToLunarDay()
	require.NoError(t, err)
	assert.Equal(t, "十一", day.Name())

	next, err = d.AddLunar(-1, lunar.UnitMonth)
	require.NoError(t, err)
	month, err := next.ToLunarMonth()
	require.NoError(t, err)
	assert.Equal(t, "三月", month.Name())
	assert.False(t, month.IsLeap())

	next, err = d.AddLunar(1, lunar.UnitYear)
	require.NoError(t, err)
	year, err := next.ToLunarYear()
	require.NoError(t, err)
	assert.Equal(t, 1994, year.Number())
	month, err = next.ToLunarMonth()
	require.NoError(t, err)
	assert.Equal(t, 3, month.NumberWithLeap(), "1994 has no leap third month")
	assert.Equal(t, 12, next.Time().Hour())
	assert.Equal(t, 40, next.Time().Minute())
}

func TestAddLunar_InvalidUnit(t *testing.T) {
	d := base(newCalendar())

	_, err := d.AddLunar(1, lunar.Unit("foo"))
	require.Error(t, err)
	assert.Equal(t, "Invalid lunar unit: foo", err.Error())
	assert.True(t, lunar.IsInvalidUnit(err))

	_, err = d.AddLunar(0, lunar.Unit("foo"))
	assert.Error(t, err)
}

func TestAddLunar_ZeroIsNoOp(t *testing.T) {
	d := base(newCalendar())
	for _, u := range lunar.Units() {
		got, err := d.AddLunar(0, u)
		require.NoError(t, err)
		assert.True(t, got.Equal(d), "unit %s", u)
	}
}

func TestAddLunar_MonthStepsThroughLeapMonth(t *testing.T) {
	cal := newCalendar()

	// 1993: 三月, 闰三月, 四月
	start, err := cal.FromLunar(1993, 3, 10, 8, 0, 0)
	require.NoError(t, err)

	tests := []struct {
		n         int
		wantYear  int
		wantMonth int
	}{
		{n: 1, wantYear: 1993, wantMonth: -3},
		{n: 2, wantYear: 1993, wantMonth: 4},
		{n: 10, wantYear: 1993, wantMonth: 12},
		{n: 11, wantYear: 1994, wantMonth: 1},
		{n: -2, wantYear: 1993, wantMonth: 1},
		{n: -3, wantYear: 1992, wantMonth: 12},
	}

	for _, tt := range tests {
		got, err := start.AddLunar(tt.n, lunar.UnitMonth)
		require.NoError(t, err)
		m, err := got.ToLunarMonth()
		require.NoError(t, err)
		assert.Equal(t, tt.wantYear, m.Year().Number(), "n=%d", tt.n)
		assert.Equal(t, tt.wantMonth, m.NumberWithLeap(), "n=%d", tt.n)
		assert.Equal(t, 8, got.Time().Hour())
	}
}

func TestAddLunar_MonthAcrossSkippedMonthNumber(t *testing.T) {
	cal := newCalendar()

	start, err := cal.FromLunar(8, 1, 10, 0, 0, 0)
	require.NoError(t, err)

	got, err := start.AddLunar(12, lunar.UnitMonth)
	require.NoError(t, err)
	m, err := got.ToLunarMonth()
	require.NoError(t, err)
	assert.Equal(t, 9, m.Year().Number())
	assert.Equal(t, 1, m.NumberWithLeap())
	assert.True(t, got.After(start))

	back, err := got.AddLunar(-12, lunar.UnitMonth)
	require.NoError(t, err)
	assert.True(t, back.Equal(start))
}

func TestAddLunar_MonthClampsDay(t *testing.T) {
	cal := newCalendar()

	months, err := cal.YearMonths(2024)
	require.NoError(t, err)

	for i := 0; i+1 < len(months); i++ {
		if months[i].DayCount != 30 || months[i+1].DayCount != 29 {
			continue
		}
		start, err := cal.FromLunar(2024, months[i].Month, 30, 10, 0, 0)
		require.NoError(t, err)

		got, err := start.AddLunar(1, lunar.UnitMonth)
		require.NoError(t, err)
		day, err := got.ToLunarDay()
		require.NoError(t, err)
		assert.Equal(t, 29, day.Number())
		assert.Equal(t, months[i+1].Month, day.Month().NumberWithLeap())
		return
	}
	t.Skip("no 30-day month followed by a 29-day month in 2024")
}

func TestAddLunar_YearDropsMissingLeapMonth(t *testing.T) {
	cal := newCalendar()

	start, err := cal.FromLunar(2023, -2, 15, 0, 0, 0)
	require.NoError(t, err)

	got, err := start.AddLunar(1, lunar.UnitYear)
	require.NoError(t, err)
	m, err := got.ToLunarMonth()
	require.NoError(t, err)
	assert.Equal(t, 2024, m.Year().Number())
	assert.Equal(t, 2, m.NumberWithLeap())
}

func TestAddLunar_PreservesSubSecond(t *testing.T) {
	cal := newCalendar()
	d := cal.New(time.Date(2024, 3, 15, 10, 20, 30, 123456789, cst))

	for _, u := range lunar.Units() {
		got, err := d.AddLunar(2, u)
		require.NoError(t, err)
		assert.Equal(t, 123456789, got.Time().Nanosecond(), "unit %s", u)
		assert.Equal(t, 20, got.Time().Minute(), "unit %s", u)
	}
}

func TestAddLunar_OutOfRangeYear(t *testing.T) {
	cal := newCalendar()
	d, err := cal.FromLunar(2024, 1, 1, 0, 0, 0)
	require.NoError(t, err)

	_, err = d.AddLunar(8000, lunar.UnitYear)
	assert.True(t, lunar.IsOutOfRange(err))

	_, err = d.AddLunar(-2030, lunar.UnitYear)
	assert.True(t, lunar.IsOutOfRange(err))
}

func TestAddLunar_InverseAndSubtract(t *testing.T) {
	cal := newCalendar()
	dates := []lunar.Date{
		cal.New(time.Date(2024, 3, 15, 10, 0, 0, 0, cst)),
		cal.New(time.Date(1999, 12, 31, 23, 59, 59, 0, cst)),
		base(cal),
	}

	for _, d := range dates {
		for _, u := range lunar.Units() {
			for _, v := range []int{1, 5, 13} {
				added, err := d.AddLunar(v, u)
				require.NoError(t, err)

				subtracted, err := d.SubtractLunar(v, u)
				require.NoError(t, err)
				negated, err := d.AddLunar(-v, u)
				require.NoError(t, err)
				assert.True(t, subtracted.Equal(negated), "%s %d %s", d, v, u)

				back, err := added.AddLunar(-v, u)
				require.NoError(t, err)
				origin, err := d.ToLunarDay()
				require.NoError(t, err)
				returned, err := back.ToLunarDay()
				require.NoError(t, err)
				if origin.Number() <= 29 && !origin.Month().IsLeap() {
					assert.Equal(t, origin.String(), returned.String(), "%s %d %s", d, v, u)
				}
			}
		}
	}
}

// =============================================================================
// Native dispatch
// =============================================================================

func TestAdd_DispatchesLunarPrefix(t *testing.T) {
	d := base(newCalendar())

	viaAdd, err := d.Add(1, "lunar-month")
	require.NoError(t, err)
	direct, err := d.AddLunar(1, lunar.UnitMonth)
	require.NoError(t, err)
	assert.True(t, viaAdd.Equal(direct))

	viaSubtract, err := d.Subtract(1, "lunar-dual-hour")
	require.NoError(t, err)
	assert.Equal(t, 10, viaSubtract.Time().Hour())
}

func TestAdd_NativeUnits(t *testing.T) {
	d := base(newCalendar())
	origin := d.Time()

	tests := []struct {
		unit string
		want time.Time
	}{
		{unit: "year", want: origin.AddDate(1, 0, 0)},
		{unit: "M", want: origin.AddDate(0, 1, 0)},
		{unit: "weeks", want: origin.AddDate(0, 0, 7)},
		{unit: "d", want: origin.AddDate(0, 0, 1)},
		{unit: "hour", want: origin.Add(time.Hour)},
		{unit: "m", want: origin.Add(time.Minute)},
		{unit: "seconds", want: origin.Add(time.Second)},
		{unit: "ms", want: origin.Add(time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got, err := d.Add(1, tt.unit)
			require.NoError(t, err)
			assert.True(t, got.Time().Equal(tt.want))

			got, err = got.Subtract(1, tt.unit)
			require.NoError(t, err)
			if tt.unit != "M" && tt.unit != "year" {
				assert.True(t, got.Equal(d))
			}
		})
	}
}

func TestAdd_InvalidUnits(t *testing.T) {
	d := base(newCalendar())

	_, err := d.Add(1, "fortnight")
	var ue *lunar.UnitError
	require.True(t, errors.As(err, &ue))
	assert.False(t, ue.Lunar)
	assert.Equal(t, "Invalid unit: fortnight", err.Error())

	_, err = d.Add(1, "lunar-foo")
	require.True(t, errors.As(err, &ue))
	assert.True(t, ue.Lunar)
	assert.Equal(t, "Invalid lunar unit: foo", err.Error())
}
