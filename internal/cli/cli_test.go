package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--tz", "Asia/Shanghai"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// --- convert ---

func TestConvert_Text(t *testing.T) {
	out, err := run(t, "convert", "1993-05-01T12:40:00")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	for _, want := range []string{
		"1993-05-01 12:40:00 Saturday",
		"农历癸酉年闰三月初十",
		"癸酉年 (鸡)",
		"午时 (丙午) 正二刻",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvert_JSON(t *testing.T) {
	out, err := run(t, "--json", "convert", "1993-05-01")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	var s lunar.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if s.Month != -3 || s.Day != 10 {
		t.Errorf("month/day = %d/%d, want -3/10", s.Month, s.Day)
	}
}

func TestConvert_BadDate(t *testing.T) {
	if _, err := run(t, "convert", "May 1st"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

// --- solar ---

func TestSolar_LeapMonth(t *testing.T) {
	out, err := run(t, "solar", "1993", "-3", "10", "12", "40")
	if err != nil {
		t.Fatalf("solar failed: %v", err)
	}
	if !strings.Contains(out, "1993-05-01 12:40:00") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSolar_Errors(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"solar", "1993", "13"}, "Invalid lunar month: 13"},
		{[]string{"solar", "1994", "-3", "1"}, "no such lunar date"},
	}
	for _, c := range cases {
		_, err := run(t, c.args...)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Errorf("%v: error = %v, want containing %q", c.args, err, c.want)
		}
	}
}

// --- add ---

func TestAdd_LunarUnits(t *testing.T) {
	out, err := run(t, "add", "1993-05-01T12:40:00", "1", "lunar-dual-hour")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out, "未时") {
		t.Errorf("expected 未时 in output:\n%s", out)
	}

	out, err = run(t, "add", "1993-05-01T12:40:00", "-1", "lunar-month")
	if err != nil {
		t.Fatalf("add -1 failed: %v", err)
	}
	if !strings.Contains(out, "农历癸酉年三月初十") {
		t.Errorf("expected regular third month:\n%s", out)
	}

	out, err = run(t, "add", "--subtract", "1993-05-01T12:40:00", "1", "lunar-month")
	if err != nil {
		t.Fatalf("add --subtract failed: %v", err)
	}
	if !strings.Contains(out, "农历癸酉年三月初十") {
		t.Errorf("expected regular third month:\n%s", out)
	}
}

func TestAdd_InvalidUnit(t *testing.T) {
	_, err := run(t, "add", "1993-05-01", "1", "lunar-foo")
	if err == nil || err.Error() != "Invalid lunar unit: foo" {
		t.Errorf("error = %v, want Invalid lunar unit: foo", err)
	}

	if _, err := run(t, "add", "1993-05-01", "x", "day"); err == nil {
		t.Error("expected error for non-integer value")
	}
}

// --- format ---

func TestFormat(t *testing.T) {
	out, err := run(t, "format", "1993-05-01T12:40:00", "2006-01-02 LY年LMLD [LK] LK")
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "1993-05-01 癸酉年闰三月初十 LK 正二刻" {
		t.Errorf("format = %q", got)
	}
}

// --- months ---

func TestMonths(t *testing.T) {
	out, err := run(t, "months", "2023")
	if err != nil {
		t.Fatalf("months failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 13 {
		t.Fatalf("got %d lines, want 13:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "2023-01-22") {
		t.Errorf("first month line = %q, want 2023-01-22", lines[0])
	}
	if !strings.HasPrefix(lines[2], "闰二月") {
		t.Errorf("third month line = %q, want 闰二月", lines[2])
	}
}

func TestMonths_NumericNames(t *testing.T) {
	out, err := run(t, "--traditional=false", "months", "2024")
	if err != nil {
		t.Fatalf("months failed: %v", err)
	}
	if !strings.Contains(out, "十二月") || strings.Contains(out, "腊月") {
		t.Errorf("expected numeric month names:\n%s", out)
	}
}

// --- units ---

func TestUnits(t *testing.T) {
	out, err := run(t, "units")
	if err != nil {
		t.Fatalf("units failed: %v", err)
	}
	want := "lunar-dual-hour\nlunar-day\nlunar-month\nlunar-year\n"
	if out != want {
		t.Errorf("units = %q, want %q", out, want)
	}
}

func TestUnknownTimezone(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--tz", "Mars/Base", "convert"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown time zone")
	}
}
