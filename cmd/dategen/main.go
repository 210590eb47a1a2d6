// Command dategen generates feast calendars for a range of years and
// writes them to the SQLite archive.
//
// Usage:
//
//	go run ./cmd/dategen -from 1583 -to 2100 -lang en -db data/feastcal.db
//	go run ./cmd/dategen -from 2025 -print
//
// Years are generated concurrently; every year written by one invocation
// carries the same run ID.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/feastcal/internal/calendar"
	"github.com/zapponejosh/feastcal/internal/database"
	"github.com/zapponejosh/feastcal/internal/i18n"
	"github.com/zapponejosh/feastcal/internal/logger"
	"github.com/zapponejosh/feastcal/internal/metrics"
	"github.com/zapponejosh/feastcal/internal/service"
)

type options struct {
	from, to    int
	lang        string
	defaultLang string
	dbPath      string
	workers     int
	print       bool
	verbose     bool
}

// parseFlags reads the command line. -to defaults to -from; year 0 is a
// real year, so whether -to was given is checked explicitly.
func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dategen", flag.ContinueOnError)
	fs.IntVar(&opts.from, "from", time.Now().Year(), "First year to generate")
	fs.IntVar(&opts.to, "to", 0, "Last year to generate (defaults to -from)")
	fs.StringVar(&opts.lang, "lang", i18n.DefaultLanguage, "Language of feast names")
	fs.StringVar(&opts.defaultLang, "default-lang", i18n.DefaultLanguage, "Language missing labels fall back to")
	fs.StringVar(&opts.dbPath, "db", "data/feastcal.db", "Path to SQLite database")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Years generated concurrently")
	fs.BoolVar(&opts.print, "print", false, "Print key dates and feasts instead of archiving")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	toSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "to" {
			toSet = true
		}
	})
	if !toSet {
		opts.to = opts.from
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	level := "info"
	if opts.verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, log); err != nil {
		log.Error("dategen failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *slog.Logger) error {
	if err := service.ValidateYear(opts.from); err != nil {
		return fmt.Errorf("-from %d: %w", opts.from, err)
	}
	if err := service.ValidateYear(opts.to); err != nil {
		return fmt.Errorf("-to %d: %w", opts.to, err)
	}
	if opts.from > opts.to {
		return fmt.Errorf("-from %d is after -to %d", opts.from, opts.to)
	}

	catalog, err := i18n.Load(opts.defaultLang, log)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	if !catalog.Has(opts.lang) {
		return fmt.Errorf("-lang %q: no locale table", opts.lang)
	}

	m := metrics.New(prometheus.NewRegistry())
	svc := service.New(service.Options{Catalog: catalog, Logger: log, Metrics: m})

	if opts.print {
		return printYears(ctx, svc, opts)
	}

	db, err := database.Open(database.DefaultConfig(opts.dbPath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	runID := uuid.NewString()
	start := time.Now()
	log.Info("generating years",
		slog.Int("from", opts.from),
		slog.Int("to", opts.to),
		slog.String("lang", opts.lang),
		slog.Int("workers", opts.workers),
		slog.String("run_id", runID),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))
	for year := opts.from; year <= opts.to; year++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			_, err := svc.ArchiveYear(gctx, db, year, opts.lang, runID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("generation complete",
		slog.Int("years", opts.to-opts.from+1),
		slog.Duration("duration", time.Since(start)),
		slog.String("run_id", runID),
	)
	return nil
}

// printYears writes the key dates and feasts of each year to stdout.
func printYears(ctx context.Context, svc *service.Calendar, opts options) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	for year := opts.from; year <= opts.to; year++ {
		overview, err := svc.YearOverview(ctx, year, opts.lang)
		if err != nil {
			return err
		}
		holidays, err := svc.Holidays(ctx, year, opts.lang)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "=== %s (%s, %s) ===\n", overview.DisplayYear, overview.Era.Era, overview.LeapLabel)
		fmt.Fprintf(w, "Easter:\t%s\n", overview.Easter.Date)
		if year >= 1 {
			fmt.Fprintf(w, "Christ the King:\t%s\n", calendar.ChristTheKing(year))
			fmt.Fprintf(w, "Advent start:\t%s\n", calendar.FirstSundayOfAdvent(year))
		}
		if overview.Notice != "" {
			fmt.Fprintln(w, overview.Notice)
		}
		fmt.Fprintln(w)

		for _, h := range holidays {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", h.Date, h.Type, h.Name)
		}
		fmt.Fprintln(w)
	}
	return nil
}
