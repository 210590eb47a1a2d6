package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// =============================================================================
// Archive Writes
// =============================================================================

// SaveYear replaces the archived copy of a year in one transaction: the
// summary row is upserted and its feasts rewritten.
func (db *DB) SaveYear(ctx context.Context, year CalendarYear, feasts []Feast) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM feasts WHERE year = ? AND language = ?",
			year.Year, year.Language,
		)
		if err != nil {
			return fmt.Errorf("clear feasts for %d: %w", year.Year, err)
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO calendar_years (
				year, language, era, is_leap, easter, holiday_count, run_id
			) VALUES (
				:year, :language, :era, :is_leap, :easter, :holiday_count, :run_id
			)
			ON CONFLICT (year, language) DO UPDATE SET
				era = excluded.era,
				is_leap = excluded.is_leap,
				easter = excluded.easter,
				holiday_count = excluded.holiday_count,
				run_id = excluded.run_id,
				generated_at = datetime('now')
		`, year)
		if err != nil {
			return fmt.Errorf("upsert year %d: %w", year.Year, err)
		}

		// Years before 0 have no feasts; sqlx rejects an empty batch.
		if len(feasts) == 0 {
			return nil
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO feasts (
				year, language, feast_key, date, date_year, month, day,
				name, type, description
			) VALUES (
				:year, :language, :feast_key, :date, :date_year, :month, :day,
				:name, :type, :description
			)
		`, feasts)
		if err != nil {
			return fmt.Errorf("insert feasts for %d: %w", year.Year, translateError(err))
		}
		return nil
	})
}

// =============================================================================
// Archive Reads
// =============================================================================

// GetYear returns an archived year with its feasts in date order.
// Returns ErrNotFound if the year has not been archived in lang.
func (db *DB) GetYear(ctx context.Context, year int, lang string) (*ArchivedYear, error) {
	var out ArchivedYear
	err := db.GetContext(ctx, &out.CalendarYear, `
		SELECT year, language, era, is_leap, easter, holiday_count, run_id, generated_at
		FROM calendar_years
		WHERE year = ? AND language = ?
	`, year, lang)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get year %d: %w", year, err)
	}

	out.Feasts = []Feast{}
	err = db.SelectContext(ctx, &out.Feasts, `
		SELECT id, year, language, feast_key, date, date_year, month, day, name, type, description
		FROM feasts
		WHERE year = ? AND language = ?
		ORDER BY date_year, month, day, id
	`, year, lang)
	if err != nil {
		return nil, fmt.Errorf("list feasts for %d: %w", year, err)
	}

	return &out, nil
}

// FeastsOnDay lists every archived feast that fell on month/day, across
// years.
func (db *DB) FeastsOnDay(ctx context.Context, month, day int, lang string) ([]Feast, error) {
	feasts := []Feast{}
	err := db.SelectContext(ctx, &feasts, `
		SELECT id, year, language, feast_key, date, date_year, month, day, name, type, description
		FROM feasts
		WHERE language = ? AND month = ? AND day = ?
		ORDER BY year, feast_key
	`, lang, month, day)
	if err != nil {
		return nil, fmt.Errorf("list feasts on %d-%d: %w", month, day, err)
	}
	return feasts, nil
}

// FeastHistory lists the archived dates of one feast for years in
// [from, to].
func (db *DB) FeastHistory(ctx context.Context, key, lang string, from, to int) ([]Feast, error) {
	feasts := []Feast{}
	err := db.SelectContext(ctx, &feasts, `
		SELECT id, year, language, feast_key, date, date_year, month, day, name, type, description
		FROM feasts
		WHERE language = ? AND feast_key = ? AND year BETWEEN ? AND ?
		ORDER BY year
	`, lang, key, from, to)
	if err != nil {
		return nil, fmt.Errorf("feast history %s: %w", key, err)
	}
	return feasts, nil
}

// ArchivedYears returns the archived years in lang, ascending.
func (db *DB) ArchivedYears(ctx context.Context, lang string) ([]int, error) {
	var years []int
	err := db.SelectContext(ctx, &years,
		"SELECT year FROM calendar_years WHERE language = ? ORDER BY year", lang)
	if err != nil {
		return nil, fmt.Errorf("list archived years: %w", err)
	}
	return years, nil
}

// CoverageReport summarizes, per archived year, how many feasts are stored
// against how many the summary promised, and how many fall outside their
// year or inside the days removed in October 1582.
func (db *DB) CoverageReport(ctx context.Context, lang string) ([]YearCoverage, error) {
	report := []YearCoverage{}
	err := db.SelectContext(ctx, &report, `
		SELECT
			y.year AS year,
			y.holiday_count AS expected,
			COUNT(f.id) AS stored,
			COALESCE(SUM(CASE WHEN f.date_year != f.year THEN 1 ELSE 0 END), 0) AS out_of_year,
			COALESCE(SUM(CASE
				WHEN f.date_year = 1582 AND f.month = 10 AND f.day BETWEEN 5 AND 14 THEN 1
				ELSE 0
			END), 0) AS skipped
		FROM calendar_years y
		LEFT JOIN feasts f ON f.year = y.year AND f.language = y.language
		WHERE y.language = ?
		GROUP BY y.year, y.holiday_count
		ORDER BY y.year
	`, lang)
	if err != nil {
		return nil, fmt.Errorf("coverage report: %w", err)
	}
	return report, nil
}
