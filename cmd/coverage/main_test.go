package main

import (
	"testing"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

func day(year, month, d, monthDays int) lunar.Summary {
	return lunar.Summary{
		Year:      year,
		Month:     month,
		Day:       d,
		MonthDays: monthDays,
		LeapMonth: month < 0,
		MonthName: "test",
	}
}

func TestCheckContinuity(t *testing.T) {
	tests := []struct {
		name    string
		prev    *lunar.Summary
		cur     lunar.Summary
		wantErr bool
	}{
		{name: "first day", prev: nil, cur: day(2024, 1, 5, 30)},
		{name: "next day", prev: ptr(day(2024, 1, 5, 30)), cur: day(2024, 1, 6, 30)},
		{name: "into leap month", prev: ptr(day(2023, 2, 29, 29)), cur: day(2023, -2, 1, 30)},
		{name: "new year", prev: ptr(day(2023, 12, 30, 30)), cur: day(2024, 1, 1, 29)},
		{name: "skipped day", prev: ptr(day(2024, 1, 5, 30)), cur: day(2024, 1, 7, 30), wantErr: true},
		{name: "early new month", prev: ptr(day(2024, 1, 28, 30)), cur: day(2024, 2, 1, 29), wantErr: true},
		{name: "repeated month", prev: ptr(day(2024, 1, 30, 30)), cur: day(2024, 1, 1, 30), wantErr: true},
		{name: "month changed mid-month", prev: ptr(day(2024, 1, 5, 30)), cur: day(2024, 2, 6, 30), wantErr: true},
		{name: "bad month length", prev: nil, cur: day(2024, 1, 5, 31), wantErr: true},
		{name: "day past month end", prev: nil, cur: day(2024, 1, 30, 29), wantErr: true},
		{
			name: "leap flag mismatch",
			prev: nil,
			cur: func() lunar.Summary {
				s := day(2023, 2, 5, 29)
				s.LeapMonth = true
				return s
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkContinuity(tt.prev, tt.cur)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkContinuity() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzeResults(t *testing.T) {
	results := []TestResult{
		{Date: "2024-02-09", Success: true, LunarYear: 2023, Month: "腊月", Day: "三十"},
		{Date: "2024-02-10", Success: true, LunarYear: 2024, Month: "正月", Day: "初一"},
		{Date: "2024-02-11", Success: false, LunarYear: 2024, Month: "正月", Day: "初三", Error: "day 3 follows day 1"},
		{Date: "2025-01-01", Success: false, Error: "API error: boom"},
	}

	a := analyzeResults(results)

	if a.TotalDays != 4 || a.TotalSuccess != 2 || a.TotalFailed != 2 {
		t.Fatalf("totals = %d/%d/%d, want 4/2/2", a.TotalDays, a.TotalSuccess, a.TotalFailed)
	}
	if got := a.ByYear[2024].FailedDays; got != 1 {
		t.Errorf("2024 failed days = %d, want 1", got)
	}
	if got := a.ByMonth["2024 正月"].TotalDays; got != 2 {
		t.Errorf("2024 正月 days = %d, want 2", got)
	}
	if got := a.ByMonth["(unresolved)"].FailedDates; len(got) != 1 || got[0] != "2025-01-01" {
		t.Errorf("unresolved failures = %v", got)
	}
	if percent(1, 0) != 0 {
		t.Error("percent with zero total should be 0")
	}
}

func ptr(s lunar.Summary) *lunar.Summary { return &s }
