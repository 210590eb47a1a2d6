// Command coverage checks every archived year in the SQLite archive for
// completeness: the right number of feasts, none dated outside its year and
// none on the days removed in October 1582.
//
// Usage:
//
//	go run ./cmd/coverage -db data/feastcal.db -lang fr -o coverage.json
//
// Exits with status 1 when any year fails a check.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/zapponejosh/feastcal/internal/database"
	"github.com/zapponejosh/feastcal/internal/logger"
)

// Failure is one archived year that failed a check.
type Failure struct {
	Year     int      `json:"year"`
	Problems []string `json:"problems"`
}

// Analysis summarizes a coverage run.
type Analysis struct {
	Lang        string                  `json:"lang"`
	TotalYears  int                     `json:"total_years"`
	TotalFeasts int                     `json:"total_feasts"`
	TotalFailed int                     `json:"total_failed"`
	FirstYear   int                     `json:"first_year"`
	LastYear    int                     `json:"last_year"`
	Failures    []Failure               `json:"failures"`
	Years       []database.YearCoverage `json:"years"`
}

func main() {
	dbPath := flag.String("db", "data/feastcal.db", "Path to SQLite database")
	lang := flag.String("lang", "fr", "Archive language to check")
	verbose := flag.Bool("v", false, "Verbose output (show each year)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	log := logger.New(os.Stderr, "warn", "text")

	analysis, err := run(context.Background(), *dbPath, *lang, log)
	if err != nil {
		log.Error("coverage failed", slog.Any("error", err))
		os.Exit(1)
	}

	printSummary(analysis, *verbose)

	if *outputFile != "" {
		if err := saveResults(*outputFile, analysis); err != nil {
			log.Error("write results", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Exit with error code if there were failures
	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath, lang string, log *slog.Logger) (*Analysis, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	report, err := db.CoverageReport(ctx, lang)
	if err != nil {
		return nil, err
	}
	return analyze(lang, report), nil
}

func analyze(lang string, report []database.YearCoverage) *Analysis {
	a := &Analysis{Lang: lang, Years: report, Failures: []Failure{}}
	for i, y := range report {
		if i == 0 {
			a.FirstYear = y.Year
		}
		a.LastYear = y.Year
		a.TotalYears++
		a.TotalFeasts += y.Stored

		if problems := y.Problems(); len(problems) > 0 {
			a.Failures = append(a.Failures, Failure{Year: y.Year, Problems: problems})
			a.TotalFailed++
		}
	}
	return a
}

func printSummary(a *Analysis, verbose bool) {
	fmt.Println("================================================================")
	fmt.Println("Feast Archive - Coverage Check")
	fmt.Println("================================================================")
	fmt.Printf("Language:     %s\n", a.Lang)
	if a.TotalYears == 0 {
		fmt.Println("No archived years. Run dategen first.")
		return
	}
	fmt.Printf("Years:        %d to %d (%d archived)\n", a.FirstYear, a.LastYear, a.TotalYears)
	fmt.Printf("Feasts:       %d\n", a.TotalFeasts)
	fmt.Printf("Failed years: %d\n", a.TotalFailed)
	fmt.Println()

	if verbose {
		for _, y := range a.Years {
			fmt.Printf("  %6d  expected=%-3d stored=%-3d out_of_year=%d skipped=%d\n",
				y.Year, y.Expected, y.Stored, y.OutOfYear, y.Skipped)
		}
		fmt.Println()
	}

	if len(a.Failures) == 0 {
		fmt.Println("All archived years are complete.")
		return
	}
	fmt.Println("Failures:")
	for _, f := range a.Failures {
		fmt.Printf("  %6d  %s\n", f.Year, strings.Join(f.Problems, "; "))
	}
}

func saveResults(filename string, a *Analysis) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
