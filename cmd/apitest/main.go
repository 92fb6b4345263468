// Command apitest smoke-tests a running lunar calendar API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status        string `json:"status"`
	SchemaVersion int    `json:"schema_version"`
	Anniversaries int    `json:"anniversaries"`
	Timezone      string `json:"timezone"`
}

// MonthsResponse is the response for /lunar/months/{year}
type MonthsResponse struct {
	Year   int               `json:"year"`
	Months []lunar.MonthInfo `json:"months"`
}

// FormatResponse is the response for /lunar/format
type FormatResponse struct {
	Formatted string `json:"formatted"`
}

// Anniversary mirrors the stored anniversary.
type Anniversary struct {
	ID         int64  `json:"id"`
	UID        string `json:"uid"`
	Name       string `json:"name"`
	LunarMonth int    `json:"lunar_month"`
	LunarDay   int    `json:"lunar_day"`
}

// OccurrencesResponse is the response for /anniversaries/{id}/occurrences
type OccurrencesResponse struct {
	Occurrences []struct {
		LunarYear int    `json:"lunar_year"`
		Label     string `json:"label"`
		Date      string `json:"date"`
		Adjusted  bool   `json:"adjusted"`
	} `json:"occurrences"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Lunar Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testToday()
	tr.testSpringFestivals()
	tr.testLeapMonth()
	tr.testArithmetic()
	tr.testFormat()
	tr.testMonths()
	tr.testEdgeCases()
	tr.testAnniversaries()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (schema v%d, %d anniversaries, %s)",
			health.SchemaVersion, health.Anniversaries, health.Timezone))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	resp, err := tr.get("/api/v1/lunar/today")
	if err != nil {
		tr.recordError("Today", err.Error())
		return
	}

	var s lunar.Summary
	if err := tr.parseDataAs(resp, &s); err != nil {
		tr.recordError("Today", err.Error())
		return
	}

	tr.recordSuccess(fmt.Sprintf("Today: %s %s", s.Text, s.Hour))
	tr.printSummaryDetail(&s)
}

func (tr *TestRunner) testSpringFestivals() {
	tr.printSection("Spring Festival (lunar 1/1 to solar)")

	testCases := []struct {
		year int
		want string
	}{
		{2020, "2020-01-25"},
		{2021, "2021-02-12"},
		{2022, "2022-02-01"},
		{2023, "2023-01-22"},
		{2024, "2024-02-10"},
		{2025, "2025-01-29"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/lunar/solar?year=%d", tc.year))
		if err != nil {
			tr.recordError(fmt.Sprint(tc.year), err.Error())
			continue
		}

		var s lunar.Summary
		if err := tr.parseDataAs(resp, &s); err != nil {
			tr.recordError(fmt.Sprint(tc.year), err.Error())
			continue
		}

		if strings.HasPrefix(s.Solar, tc.want) {
			tr.recordSuccess(fmt.Sprintf("%d: %s (%s年)", tc.year, tc.want, s.YearGanZhi))
		} else {
			tr.recordError(fmt.Sprint(tc.year), fmt.Sprintf("Expected %s, got %s", tc.want, s.Solar))
		}
	}
}

func (tr *TestRunner) testLeapMonth() {
	tr.printSection("Leap Month")

	resp, err := tr.get("/api/v1/lunar/date/1993-05-01T12:40:00")
	if err != nil {
		tr.recordError("1993-05-01", err.Error())
		return
	}

	var s lunar.Summary
	if err := tr.parseDataAs(resp, &s); err != nil {
		tr.recordError("1993-05-01", err.Error())
		return
	}

	if s.MonthName == "闰三月" && s.DayName == "初十" && s.Hour == "午时" {
		tr.recordSuccess("1993-05-01 12:40 is 闰三月初十 午时")
	} else {
		tr.recordError("1993-05-01", fmt.Sprintf("Got %s %s", s.Text, s.Hour))
	}
	if tr.verbose {
		tr.printSummaryDetail(&s)
	}

	resp2, _ := tr.getRaw("/api/v1/lunar/solar?year=1994&month=-3&day=1")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Missing leap month rejected (1994 has no 闰三月)")
	} else {
		tr.recordError("Missing leap month", "Should return 400")
	}
}

func (tr *TestRunner) testArithmetic() {
	tr.printSection("Lunar Arithmetic")

	testCases := []struct {
		unit  string
		value int
		check func(s lunar.Summary) bool
		label string
	}{
		{"lunar-dual-hour", 1, func(s lunar.Summary) bool { return s.Hour == "未时" }, "+1 dual-hour is 未时"},
		{"lunar-day", 1, func(s lunar.Summary) bool { return s.DayName == "十一" }, "+1 day is 十一"},
		{"lunar-month", -1, func(s lunar.Summary) bool { return s.MonthName == "三月" }, "-1 month is 三月"},
		{"lunar-year", 1, func(s lunar.Summary) bool { return s.Year == 1994 && s.Month == 3 }, "+1 year is 1994 三月"},
		{"day", 7, func(s lunar.Summary) bool { return strings.HasPrefix(s.Solar, "1993-05-08") }, "+7 native days"},
	}

	for _, tc := range testCases {
		path := "/api/v1/lunar/add?" + url.Values{
			"date":  {"1993-05-01T12:40:00"},
			"value": {fmt.Sprint(tc.value)},
			"unit":  {tc.unit},
		}.Encode()

		resp, err := tr.get(path)
		if err != nil {
			tr.recordError(tc.unit, err.Error())
			continue
		}

		var s lunar.Summary
		if err := tr.parseDataAs(resp, &s); err != nil {
			tr.recordError(tc.unit, err.Error())
			continue
		}

		if tc.check(s) {
			tr.recordSuccess(tc.label)
		} else {
			tr.recordError(tc.unit, fmt.Sprintf("Unexpected result %s %s", s.Text, s.Hour))
		}
	}

	resp, _ := tr.getRaw("/api/v1/lunar/add?date=1993-05-01&value=1&unit=lunar-foo")
	if resp != nil && resp.StatusCode == 400 {
		tr.recordSuccess("Invalid lunar unit rejected")
	} else {
		tr.recordError("Invalid unit", "Should return 400")
	}
}

func (tr *TestRunner) testFormat() {
	tr.printSection("Format")

	path := "/api/v1/lunar/format?" + url.Values{
		"date":   {"1993-05-01T12:40:00"},
		"layout": {"2006-01-02 LY年LMLD LH LK [LY]"},
	}.Encode()

	resp, err := tr.get(path)
	if err != nil {
		tr.recordError("Format", err.Error())
		return
	}

	var f FormatResponse
	if err := tr.parseDataAs(resp, &f); err != nil {
		tr.recordError("Format", err.Error())
		return
	}

	want := "1993-05-01 癸酉年闰三月初十 午时 正二刻 LY"
	if f.Formatted == want {
		tr.recordSuccess("Format: " + f.Formatted)
	} else {
		tr.recordError("Format", fmt.Sprintf("Expected %q, got %q", want, f.Formatted))
	}
}

func (tr *TestRunner) testMonths() {
	tr.printSection("Months of 2023")

	resp, err := tr.get("/api/v1/lunar/months/2023")
	if err != nil {
		tr.recordError("Months", err.Error())
		return
	}

	var m MonthsResponse
	if err := tr.parseDataAs(resp, &m); err != nil {
		tr.recordError("Months", err.Error())
		return
	}

	if len(m.Months) == 13 {
		tr.recordSuccess("2023 has 13 months")
	} else {
		tr.recordError("Months", fmt.Sprintf("Expected 13 months, got %d", len(m.Months)))
	}

	if tr.verbose {
		for _, month := range m.Months {
			fmt.Printf("    %s: %d days from %s\n", month.Name, month.DayCount, month.FirstDay.Format("2006-01-02"))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	// Invalid date format
	resp, _ := tr.getRaw("/api/v1/lunar/date/invalid")
	if resp != nil && resp.StatusCode == 400 {
		tr.recordSuccess("Invalid date format rejected")
	} else {
		tr.recordError("Invalid date", "Should return 400")
	}

	// Month out of range
	resp2, _ := tr.getRaw("/api/v1/lunar/solar?year=2024&month=13")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Month 13 rejected")
	} else {
		tr.recordError("Month 13", "Should return 400")
	}

	// Missing year
	resp3, _ := tr.getRaw("/api/v1/lunar/solar?month=1")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Missing year rejected")
	} else {
		tr.recordError("Missing year", "Should return 400")
	}

	// Year out of range
	resp4, _ := tr.getRaw("/api/v1/lunar/months/10000")
	if resp4 != nil && resp4.StatusCode == 400 {
		tr.recordSuccess("Year 10000 rejected")
	} else {
		tr.recordError("Year 10000", "Should return 400")
	}
}

func (tr *TestRunner) testAnniversaries() {
	tr.printSection("Anniversaries")

	body := map[string]any{
		"name":        "apitest leap birthday",
		"lunar_month": -3,
		"lunar_day":   10,
		"origin_year": 1993,
	}

	resp, err := tr.send(http.MethodPost, "/api/v1/anniversaries", body)
	if err != nil {
		tr.recordError("Create", err.Error())
		return
	}

	var a Anniversary
	if err := tr.parseDataAs(resp, &a); err != nil {
		tr.recordError("Create", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Created anniversary %d (%s)", a.ID, a.UID))

	resp, err = tr.get(fmt.Sprintf("/api/v1/anniversaries/%d/occurrences?from=1993-01-01&count=3", a.ID))
	if err != nil {
		tr.recordError("Occurrences", err.Error())
	} else {
		var occ OccurrencesResponse
		if err := tr.parseDataAs(resp, &occ); err != nil {
			tr.recordError("Occurrences", err.Error())
		} else if len(occ.Occurrences) == 3 && occ.Occurrences[0].Date == "1993-05-01" {
			tr.recordSuccess("Occurrences start on 1993-05-01")
			if tr.verbose {
				for _, o := range occ.Occurrences {
					fmt.Printf("    %d %s -> %s (adjusted: %v)\n", o.LunarYear, o.Label, o.Date, o.Adjusted)
				}
			}
		} else {
			tr.recordError("Occurrences", fmt.Sprintf("Unexpected occurrences: %+v", occ.Occurrences))
		}
	}

	if _, err := tr.send(http.MethodDelete, fmt.Sprintf("/api/v1/anniversaries/%d", a.ID), nil); err != nil {
		tr.recordError("Delete", err.Error())
	} else {
		tr.recordSuccess("Deleted anniversary")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	return tr.send(http.MethodGet, path, nil)
}

func (tr *TestRunner) send(method, path string, body any) (*APIResponse, error) {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	return resp, nil
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target any) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printSummaryDetail(s *lunar.Summary) {
	fmt.Printf("    Solar:  %s (%s)\n", s.Solar, s.Weekday)
	fmt.Printf("    Year:   %d %s年 %s\n", s.Year, s.YearGanZhi, s.Zodiac)
	fmt.Printf("    Month:  %s (%d days, %s)\n", s.MonthName, s.MonthDays, s.Season)
	fmt.Printf("    Hour:   %s %s %s\n", s.Hour, s.HourGanZhi, s.Quarter)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for write endpoints")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
