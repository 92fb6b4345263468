// Command coverage walks every solar day in a range through a running lunar
// calendar API and checks that consecutive days form an unbroken lunar
// sequence.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// TestResult holds the result for a single date
type TestResult struct {
	Date      string `json:"date"`
	Success   bool   `json:"success"`
	LunarYear int    `json:"lunar_year,omitempty"`
	Month     string `json:"month,omitempty"`
	Day       string `json:"day,omitempty"`
	Error     string `json:"error,omitempty"`
}

// MonthStats tracks statistics for each lunar month
type MonthStats struct {
	Label       string   `json:"label"`
	TotalDays   int      `json:"total_days"`
	FailedDays  int      `json:"failed_days"`
	FailedDates []string `json:"failed_dates,omitempty"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 4, "Number of years to test")
	verbose := flag.Bool("v", false, "Verbose output (show each date)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Lunar Calendar API - Continuity Test")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Printf("Total Years: %d\n", *years)
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	results := testAllDates(client, *baseURL, *startYear, endYear, *verbose)

	analysis := analyzeResults(results)

	printSummary(analysis, *startYear, endYear)
	printFailuresByMonth(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func testAllDates(client *http.Client, baseURL string, startYear, endYear int, verbose bool) []TestResult {
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	results := make([]TestResult, 0, totalDays)
	var prev *lunar.Summary
	failed := 0
	lastProgress := -1

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		dateStr := current.Format("2006-01-02")
		result := TestResult{Date: dateStr}

		s, err := fetchSummary(client, baseURL, dateStr)
		if err != nil {
			result.Error = err.Error()
			prev = nil
		} else {
			result.LunarYear = s.Year
			result.Month = s.MonthName
			result.Day = s.DayName
			if err := checkContinuity(prev, s); err != nil {
				result.Error = err.Error()
			} else {
				result.Success = true
			}
			prev = &s
		}

		results = append(results, result)
		if !result.Success {
			failed++
		}

		progress := (len(results) * 100) / totalDays
		if progress != lastProgress && progress%5 == 0 {
			fmt.Printf("  Progress: %d%% (%d/%d) - Failures: %d\n", progress, len(results), totalDays, failed)
			lastProgress = progress
		}

		if verbose {
			status := "✓"
			if !result.Success {
				status = "✗"
			}
			fmt.Printf("  %s %s: %d %s%s\n", status, dateStr, result.LunarYear, result.Month, result.Day)
			if !result.Success {
				fmt.Printf("      Error: %s\n", result.Error)
			}
		}
	}

	fmt.Println()
	return results
}

func fetchSummary(client *http.Client, baseURL, dateStr string) (lunar.Summary, error) {
	var s lunar.Summary

	resp, err := client.Get(fmt.Sprintf("%s/api/v1/lunar/date/%sT12:00:00", baseURL, dateStr))
	if err != nil {
		return s, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return s, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return s, fmt.Errorf("parse error: %w", err)
	}
	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return s, fmt.Errorf("API error: %s", errMsg)
	}

	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return s, fmt.Errorf("data error: %w", err)
	}
	if err := json.Unmarshal(dataBytes, &s); err != nil {
		return s, fmt.Errorf("data parse error: %w", err)
	}
	return s, nil
}

// checkContinuity reports whether cur is the lunar day after prev. A nil
// prev only checks cur on its own.
func checkContinuity(prev *lunar.Summary, cur lunar.Summary) error {
	if cur.MonthDays != 29 && cur.MonthDays != 30 {
		return fmt.Errorf("month %s has %d days", cur.MonthName, cur.MonthDays)
	}
	if cur.Day < 1 || cur.Day > cur.MonthDays {
		return fmt.Errorf("day %d outside month of %d days", cur.Day, cur.MonthDays)
	}
	if cur.LeapMonth != (cur.Month < 0) {
		return fmt.Errorf("leap flag %v disagrees with month %d", cur.LeapMonth, cur.Month)
	}
	if prev == nil {
		return nil
	}

	if cur.Day == 1 {
		if prev.Day != prev.MonthDays {
			return fmt.Errorf("new month after day %d of %d", prev.Day, prev.MonthDays)
		}
		if prev.Year == cur.Year && prev.Month == cur.Month {
			return fmt.Errorf("month %s repeated", cur.MonthName)
		}
		return nil
	}

	if cur.Day != prev.Day+1 {
		return fmt.Errorf("day %d follows day %d", cur.Day, prev.Day)
	}
	if cur.Year != prev.Year || cur.Month != prev.Month {
		return fmt.Errorf("month changed mid-month: %d/%d to %d/%d", prev.Year, prev.Month, cur.Year, cur.Month)
	}
	return nil
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int
	TotalSuccess int
	TotalFailed  int
	ByYear       map[int]*YearStats
	ByMonth      map[string]*MonthStats
	AllFailures  []TestResult
}

type YearStats struct {
	Year        int
	TotalDays   int
	SuccessDays int
	FailedDays  int
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByYear:  make(map[int]*YearStats),
		ByMonth: make(map[string]*MonthStats),
	}

	for _, r := range results {
		analysis.TotalDays++

		date, _ := time.Parse("2006-01-02", r.Date)
		year := date.Year()
		if _, ok := analysis.ByYear[year]; !ok {
			analysis.ByYear[year] = &YearStats{Year: year}
		}
		analysis.ByYear[year].TotalDays++

		label := "(unresolved)"
		if r.Month != "" {
			label = fmt.Sprintf("%d %s", r.LunarYear, r.Month)
		}
		if _, ok := analysis.ByMonth[label]; !ok {
			analysis.ByMonth[label] = &MonthStats{Label: label}
		}
		analysis.ByMonth[label].TotalDays++

		if r.Success {
			analysis.TotalSuccess++
			analysis.ByYear[year].SuccessDays++
		} else {
			analysis.TotalFailed++
			analysis.ByYear[year].FailedDays++
			analysis.ByMonth[label].FailedDays++
			analysis.ByMonth[label].FailedDates = append(analysis.ByMonth[label].FailedDates, r.Date)
			analysis.AllFailures = append(analysis.AllFailures, r)
		}
	}

	return analysis
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess, percent(analysis.TotalSuccess, analysis.TotalDays))
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed, percent(analysis.TotalFailed, analysis.TotalDays))
	fmt.Printf("Lunar Months:      %d\n", len(analysis.ByMonth))
	fmt.Println()

	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		if stats, ok := analysis.ByYear[year]; ok {
			status := "✓"
			if stats.FailedDays > 0 {
				status = "✗"
			}
			fmt.Printf("  %s %d: %d/%d days (%.1f%% success)\n",
				status, year, stats.SuccessDays, stats.TotalDays, percent(stats.SuccessDays, stats.TotalDays))
		}
	}
	fmt.Println()
}

func printFailuresByMonth(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY LUNAR MONTH")
	fmt.Println("================================================================")

	var months []*MonthStats
	for _, stats := range analysis.ByMonth {
		if stats.FailedDays > 0 {
			months = append(months, stats)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].FailedDays > months[j].FailedDays
	})

	for _, stats := range months {
		fmt.Printf("\n%s: %d failures\n", stats.Label, stats.FailedDays)
		for i, date := range stats.FailedDates {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(stats.FailedDates)-5)
				break
			}
			fmt.Printf("  - %s\n", date)
		}
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string         `json:"generated_at"`
		Summary     map[string]any `json:"summary"`
		Failures    []TestResult   `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: map[string]any{
			"total_days":    analysis.TotalDays,
			"total_success": analysis.TotalSuccess,
			"total_failed":  analysis.TotalFailed,
			"lunar_months":  len(analysis.ByMonth),
			"success_rate":  fmt.Sprintf("%.2f%%", percent(analysis.TotalSuccess, analysis.TotalDays)),
		},
		Failures: analysis.AllFailures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
