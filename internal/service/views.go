package service

import (
	"context"
	"strconv"
	"time"

	"github.com/zapponejosh/feastcal/internal/calendar"
	"github.com/zapponejosh/feastcal/internal/i18n"
)

// EasterInfo gathers both computations of Easter for a year.
type EasterInfo struct {
	// Date is the Easter the feast calendar is built on: the Julian date
	// before 1583, the Gregorian one after.
	Date calendar.Date `json:"date"`

	// Gregorian is nil before 1583.
	Gregorian *calendar.Date        `json:"gregorian,omitempty"`
	Julian    calendar.JulianEaster `json:"julian"`
	Labels    map[string]string     `json:"labels"`

	// DaysAfterGregorian counts from the Gregorian Easter to the Julian one
	// expressed in the Gregorian calendar. Zero before 1583.
	DaysAfterGregorian int `json:"days_after_gregorian"`
}

// YearOverview is the summary shown for a searched year.
type YearOverview struct {
	Year          int              `json:"year"`
	DisplayYear   string           `json:"display_year"`
	Lang          string           `json:"lang"`
	Era           calendar.EraInfo `json:"era"`
	IsLeap        bool             `json:"is_leap"`
	LeapJulian    bool             `json:"leap_julian"`
	LeapGregorian bool             `json:"leap_gregorian"`
	LeapLabel     string           `json:"leap_label"`
	DaysLabel     string           `json:"days_label"`
	Easter        EasterInfo       `json:"easter"`
	HolidayCount  int              `json:"holiday_count"`
	Notice        string           `json:"notice,omitempty"`
}

// Day is one cell of a month view. Date is nil for a day that never
// existed.
type Day struct {
	Date         *calendar.Date     `json:"date,omitempty"`
	Day          int                `json:"day"`
	Skipped      bool               `json:"skipped"`
	SkippedLabel string             `json:"skipped_label,omitempty"`
	Weekday      *int               `json:"weekday,omitempty"`
	WeekdayLabel string             `json:"weekday_label,omitempty"`
	Holidays     []calendar.Holiday `json:"holidays"`
	Saint        string             `json:"saint,omitempty"`
}

// MonthView lists every numbered day of a month. The days removed in
// October 1582 are present with Skipped set and carry no weekday, feast
// or saint.
type MonthView struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	MonthName    string `json:"month_name"`
	Lang         string `json:"lang"`
	DaysInMonth  int    `json:"days_in_month"`
	FirstWeekday int    `json:"first_weekday"`
	Days         []Day  `json:"days"`
}

// Saint is the saint commemorated on a month and day.
type Saint struct {
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Easter computes both Easters of year.
func (c *Calendar) Easter(year int, lang string) (EasterInfo, error) {
	if err := ValidateYear(year); err != nil {
		return EasterInfo{}, err
	}
	return c.easter(c.catalog.Translator(lang), year), nil
}

func (c *Calendar) easter(tr i18n.Translator, year int) EasterInfo {
	julian := calendar.EasterJulian(year)
	info := EasterInfo{
		Date:   calendar.Easter(year),
		Julian: julian,
		Labels: map[string]string{
			"gregorian": tr.Resolve("easter.gregorian"),
			"julian":    tr.Resolve("easter.julian"),
			"offset":    tr.Format("easter.days_diff", map[string]string{"days": strconv.Itoa(julian.Offset)}),
		},
	}
	if year >= calendar.FirstGregorianYear {
		g := calendar.EasterGregorian(year)
		info.Gregorian = &g
		info.DaysAfterGregorian = g.DaysUntil(julian.GregorianEquivalent)
	}
	return info
}

// YearOverview classifies year and summarizes its leap status, Easter and
// feast count in lang.
func (c *Calendar) YearOverview(ctx context.Context, year int, lang string) (YearOverview, error) {
	if err := ValidateYear(year); err != nil {
		return YearOverview{}, err
	}
	tr := c.catalog.Translator(lang)

	holidays, err := c.Holidays(ctx, year, tr.Lang())
	if err != nil {
		return YearOverview{}, err
	}

	leap := calendar.IsLeapYear(year)
	ov := YearOverview{
		Year:          year,
		DisplayYear:   calendar.FormatYear(tr, year),
		Lang:          tr.Lang(),
		Era:           calendar.Info(tr, year),
		IsLeap:        leap,
		LeapJulian:    calendar.IsLeapYearJulian(year),
		LeapGregorian: calendar.IsLeapYearGregorian(year),
		LeapLabel:     tr.Resolve("year.not_leap"),
		DaysLabel:     tr.Resolve("year.days_365"),
		Easter:        c.easter(tr, year),
		HolidayCount:  len(holidays),
	}
	if leap {
		ov.LeapLabel = tr.Resolve("year.leap")
		ov.DaysLabel = tr.Resolve("year.days_366")
	}
	ov.Notice = c.HolidayNotice(year, tr.Lang())
	return ov, nil
}

// HolidayNotice explains an empty holiday list. It is empty for year 0
// and later.
func (c *Calendar) HolidayNotice(year int, lang string) string {
	if year >= 0 {
		return ""
	}
	return c.catalog.Translator(lang).Resolve("no_holidays_before_year_0")
}

// Month returns every numbered day of month in year with its feasts and
// saint.
func (c *Calendar) Month(ctx context.Context, year int, month time.Month, lang string) (MonthView, error) {
	if err := ValidateYear(year); err != nil {
		return MonthView{}, err
	}
	if month < time.January || month > time.December {
		return MonthView{}, ErrInvalidMonth
	}
	tr := c.catalog.Translator(lang)

	holidays, err := c.Holidays(ctx, year, tr.Lang())
	if err != nil {
		return MonthView{}, err
	}

	month0 := int(month) - 1
	n := calendar.DaysInMonth(year, month0)
	view := MonthView{
		Year:         year,
		Month:        int(month),
		MonthName:    tr.Resolve("month." + strconv.Itoa(int(month))),
		Lang:         tr.Lang(),
		DaysInMonth:  n,
		FirstWeekday: int(calendar.NewDate(year, month, 1).Weekday()),
		Days:         make([]Day, 0, n),
	}

	for d := 1; d <= n; d++ {
		date := calendar.NewDate(year, month, d)
		day := Day{Day: d, Holidays: []calendar.Holiday{}}

		if calendar.IsDaySkipped(year, month0, d) {
			day.Skipped = true
			day.SkippedLabel = tr.Resolve("skipped_day")
			view.Days = append(view.Days, day)
			continue
		}

		day.Date = &date
		wd := int(date.Weekday())
		day.Weekday = &wd
		day.WeekdayLabel = tr.Resolve("weekday." + strconv.Itoa(wd))
		if on := calendar.HolidaysOn(holidays, date); len(on) > 0 {
			day.Holidays = on
		}
		day.Saint = calendar.SaintOfDay(int(month), d)
		view.Days = append(view.Days, day)
	}

	return view, nil
}

// Saint looks up the saint of month and day. The table does not depend
// on the year. Day numbers the month never reaches, such as 2/30, yield
// calendar.SaintPlaceholder; only numbers outside 1-12 and 1-31 fail.
func (c *Calendar) Saint(month, day int, lang string) (Saint, error) {
	if month < 1 || month > 12 {
		return Saint{}, ErrInvalidMonth
	}
	if day < 1 || day > 31 {
		return Saint{}, ErrInvalidDay
	}
	return Saint{
		Month: month,
		Day:   day,
		Name:  calendar.SaintOfDay(month, day),
		Label: c.catalog.Translator(lang).Resolve("saint_of_day"),
	}, nil
}

// SaintToday returns the saint of the current local day.
func (c *Calendar) SaintToday(lang string) Saint {
	now := c.now()
	s, _ := c.Saint(int(now.Month()), now.Day(), lang)
	return s
}
