// Command apitest runs smoke checks against a running feast calendar API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -v
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/feastcal/internal/api"
	"github.com/zapponejosh/feastcal/internal/calendar"
	"github.com/zapponejosh/feastcal/internal/service"
)

// =============================================================================
// Response Types
// =============================================================================

// APIResponse is the envelope with the payload left undecoded.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *api.ErrorInfo  `json:"error,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Feast Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testKnownEasters()
	tr.testYearBoundaries()
	tr.testReformMonth()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (cache: %s)", health.Cache))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testKnownEasters() {
	tr.printSection("Known Easter Dates")

	known := map[int]string{
		1582: "1582-04-15",
		1583: "1583-04-10",
		2000: "2000-04-23",
		2024: "2024-03-31",
		2025: "2025-04-20",
	}
	for _, year := range []int{1582, 1583, 2000, 2024, 2025} {
		var info service.EasterInfo
		if err := tr.getData(fmt.Sprintf("/api/v1/years/%d/easter", year), &info); err != nil {
			tr.recordError(fmt.Sprint(year), err.Error())
			continue
		}
		if got := info.Date.String(); got != known[year] {
			tr.recordError(fmt.Sprint(year), fmt.Sprintf("Easter %s, want %s", got, known[year]))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%d: Easter %s (Julian %s, %s)",
			year, info.Date, info.Julian.GregorianEquivalent, info.Labels["offset"]))
	}
}

func (tr *TestRunner) testYearBoundaries() {
	tr.printSection("Feast Counts")

	for _, year := range []int{calendar.MinYear, -1, 0, 1, 1582, 2024, calendar.MaxYear} {
		var list api.HolidayList
		if err := tr.getData(fmt.Sprintf("/api/v1/years/%d/holidays", year), &list); err != nil {
			tr.recordError(fmt.Sprint(year), err.Error())
			continue
		}

		want := calendar.ExpectedFeastCount(year)
		if list.Count != want || len(list.Holidays) != want {
			tr.recordError(fmt.Sprint(year), fmt.Sprintf("%d feasts, want %d", list.Count, want))
			continue
		}
		for i, h := range list.Holidays {
			if h.Date.Year != year {
				tr.recordError(fmt.Sprint(year), fmt.Sprintf("%s dated %s", h.Key, h.Date))
			}
			if i > 0 && h.Date.Before(list.Holidays[i-1].Date) {
				tr.recordError(fmt.Sprint(year), "feasts out of order at "+h.Key)
			}
		}
		tr.recordSuccess(fmt.Sprintf("%d: %d feasts", year, list.Count))

		if tr.verbose {
			for _, h := range list.Holidays {
				fmt.Printf("    %s  %-7s %s\n", h.Date, h.Type, h.Name)
			}
		}
	}
}

func (tr *TestRunner) testReformMonth() {
	tr.printSection("October 1582")

	var view service.MonthView
	if err := tr.getData("/api/v1/years/1582/months/10", &view); err != nil {
		tr.recordError("October 1582", err.Error())
		return
	}

	skipped := 0
	for _, d := range view.Days {
		if d.Skipped {
			skipped++
		}
	}
	if skipped == 10 {
		tr.recordSuccess("10 days flagged as removed")
	} else {
		tr.recordError("October 1582", fmt.Sprintf("%d days flagged as removed, want 10", skipped))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tr.expectStatus("Year below range rejected", fmt.Sprintf("/api/v1/years/%d", calendar.MinYear-1), http.StatusBadRequest)
	tr.expectStatus("Year above range rejected", fmt.Sprintf("/api/v1/years/%d", calendar.MaxYear+1), http.StatusBadRequest)
	tr.expectStatus("Invalid month rejected", "/api/v1/years/2024/months/13", http.StatusBadRequest)
	tr.expectStatus("February 30 placeholder", "/api/v1/saints/2/30", http.StatusOK)
	tr.expectStatus("day 32 rejected", "/api/v1/saints/2/32", http.StatusBadRequest)
	tr.expectStatus("February 29 saint", "/api/v1/saints/2/29", http.StatusOK)
	tr.expectStatus("Month by name", "/api/v1/years/2024/months/dec", http.StatusOK)
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) expectStatus(name, path string, want int) {
	resp, err := tr.getRaw(path)
	if err != nil {
		tr.recordError(name, err.Error())
		return
	}
	resp.Body.Close()

	if resp.StatusCode == want {
		tr.recordSuccess(name)
	} else {
		tr.recordError(name, fmt.Sprintf("status %d, want %d", resp.StatusCode, want))
	}
}

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
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

func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.get(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
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
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}
	fmt.Println("All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (list every feast)")
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

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
