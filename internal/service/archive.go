package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zapponejosh/feastcal/internal/database"
)

// YearStore persists a generated year. *database.DB satisfies it.
type YearStore interface {
	SaveYear(ctx context.Context, year database.CalendarYear, feasts []database.Feast) error
}

// ArchiveYear generates the feasts of year in lang and writes them to
// store under runID.
func (c *Calendar) ArchiveYear(ctx context.Context, store YearStore, year int, lang, runID string) (database.CalendarYear, error) {
	holidays, err := c.Holidays(ctx, year, lang)
	if err != nil {
		return database.CalendarYear{}, err
	}
	lang = c.catalog.Translator(lang).Lang()

	row := database.NewCalendarYear(year, lang, runID, holidays)
	if err := store.SaveYear(ctx, row, database.FeastsFromHolidays(year, lang, holidays)); err != nil {
		return database.CalendarYear{}, fmt.Errorf("archive year %d: %w", year, err)
	}
	c.metrics.IncrementYearsArchived()

	c.logger.DebugContext(ctx, "archived year",
		slog.Int("year", year),
		slog.String("lang", lang),
		slog.Int("feasts", len(holidays)),
		slog.String("run_id", runID),
	)
	return row, nil
}
