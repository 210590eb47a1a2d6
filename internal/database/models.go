package database

import (
	"fmt"

	"github.com/zapponejosh/feastcal/internal/calendar"
)

// CalendarYear is the archived summary of one year in one language.
type CalendarYear struct {
	Year         int    `db:"year" json:"year"`
	Language     string `db:"language" json:"language"`
	Era          string `db:"era" json:"era"`
	IsLeap       bool   `db:"is_leap" json:"is_leap"`
	Easter       string `db:"easter" json:"easter"`             // YYYY-MM-DD
	HolidayCount int    `db:"holiday_count" json:"holiday_count"`
	RunID        string `db:"run_id" json:"run_id"`
	GeneratedAt  string `db:"generated_at" json:"generated_at"` // SQLite datetime
}

// Feast is one archived feast.
type Feast struct {
	ID          int64  `db:"id" json:"id"`
	Year        int    `db:"year" json:"year"`
	Language    string `db:"language" json:"language"`
	Key         string `db:"feast_key" json:"key"`
	Date        string `db:"date" json:"date"`
	DateYear    int    `db:"date_year" json:"-"`
	Month       int    `db:"month" json:"month"`
	Day         int    `db:"day" json:"day"`
	Name        string `db:"name" json:"name"`
	Type        string `db:"type" json:"type"`
	Description string `db:"description" json:"description"`
}

// ArchivedYear is a year summary with its feasts.
type ArchivedYear struct {
	CalendarYear
	Feasts []Feast `json:"feasts"`
}

// YearCoverage compares the feasts stored for a year with what the
// summary row promises.
type YearCoverage struct {
	Year      int `db:"year" json:"year"`
	Expected  int `db:"expected" json:"expected"`
	Stored    int `db:"stored" json:"stored"`
	OutOfYear int `db:"out_of_year" json:"out_of_year"` // feasts dated outside their year
	Skipped   int `db:"skipped" json:"skipped"`         // feasts on 5-14 October 1582
}

// Problems describes what is wrong with an archived year. It returns nil
// for a complete and consistent year.
func (c YearCoverage) Problems() []string {
	var problems []string
	if want := calendar.ExpectedFeastCount(c.Year); c.Expected != want {
		problems = append(problems, fmt.Sprintf("summary promises %d feasts, year has %d", c.Expected, want))
	}
	if c.Stored != c.Expected {
		problems = append(problems, fmt.Sprintf("%d feasts stored, %d expected", c.Stored, c.Expected))
	}
	if c.OutOfYear > 0 {
		problems = append(problems, fmt.Sprintf("%d feasts dated outside the year", c.OutOfYear))
	}
	if c.Skipped > 0 {
		problems = append(problems, fmt.Sprintf("%d feasts on days removed in October 1582", c.Skipped))
	}
	return problems
}

// NewCalendarYear builds the summary row for year from the calendar
// package.
func NewCalendarYear(year int, lang, runID string, holidays []calendar.Holiday) CalendarYear {
	return CalendarYear{
		Year:         year,
		Language:     lang,
		Era:          calendar.Classify(year).String(),
		IsLeap:       calendar.IsLeapYear(year),
		Easter:       calendar.Easter(year).String(),
		HolidayCount: len(holidays),
		RunID:        runID,
	}
}

// FeastsFromHolidays converts a generated holiday list to archive rows.
func FeastsFromHolidays(year int, lang string, holidays []calendar.Holiday) []Feast {
	feasts := make([]Feast, 0, len(holidays))
	for _, h := range holidays {
		feasts = append(feasts, Feast{
			Year:        year,
			Language:    lang,
			Key:         h.Key,
			Date:        h.Date.String(),
			DateYear:    h.Date.Year,
			Month:       int(h.Date.Month),
			Day:         h.Date.Day,
			Name:        h.Name,
			Type:        string(h.Type),
			Description: h.Description,
		})
	}
	return feasts
}
