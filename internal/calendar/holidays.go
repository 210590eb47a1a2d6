package calendar

import (
	"slices"
	"time"
)

// HolidayType classifies a feast for display. It does not affect when the
// feast falls.
type HolidayType string

const (
	HolidayFixed  HolidayType = "fixed"
	HolidayMobile HolidayType = "mobile"
	HolidayMajor  HolidayType = "major"
)

// Holiday is a feast on a given date. Holidays are values, regenerated on
// every call.
type Holiday struct {
	Key         string      `json:"key"`
	Date        Date        `json:"date"`
	Name        string      `json:"name"`
	Type        HolidayType `json:"type"`
	Description string      `json:"description"`
}

// fixedFeast is a feast on the same month and day every year.
type fixedFeast struct {
	key   string
	month time.Month
	day   int
	kind  HolidayType
}

// mobileFeast is a feast a fixed number of days from Easter.
type mobileFeast struct {
	key    string
	offset int
	kind   HolidayType
}

var fixedFeasts = []fixedFeast{
	{"mary_mother_of_god", time.January, 1, HolidayFixed},
	{"epiphany", time.January, 6, HolidayMajor},
	{"presentation", time.February, 2, HolidayFixed},
	{"saint_joseph", time.March, 19, HolidayFixed},
	{"annunciation", time.March, 25, HolidayMajor},
	{"nativity_of_john_the_baptist", time.June, 24, HolidayFixed},
	{"peter_and_paul", time.June, 29, HolidayMajor},
	{"transfiguration", time.August, 6, HolidayFixed},
	{"assumption", time.August, 15, HolidayMajor},
	{"nativity_of_mary", time.September, 8, HolidayFixed},
	{"exaltation_of_the_cross", time.September, 14, HolidayFixed},
	{"all_saints", time.November, 1, HolidayMajor},
	{"all_souls", time.November, 2, HolidayFixed},
	{"immaculate_conception", time.December, 8, HolidayMajor},
	{"christmas", time.December, 25, HolidayMajor},
	{"saint_stephen", time.December, 26, HolidayFixed},
	{"saint_john", time.December, 27, HolidayFixed},
	{"holy_innocents", time.December, 28, HolidayFixed},
}

var mobileFeasts = []mobileFeast{
	{"ash_wednesday", -46, HolidayMobile},
	{"palm_sunday", -7, HolidayMobile},
	{"holy_thursday", -3, HolidayMobile},
	{"good_friday", -2, HolidayMajor},
	{"holy_saturday", -1, HolidayMobile},
	{"easter", 0, HolidayMajor},
	{"easter_monday", 1, HolidayMobile},
	{"divine_mercy", 7, HolidayMobile},
	{"ascension", 39, HolidayMajor},
	{"pentecost", 49, HolidayMajor},
	{"pentecost_monday", 50, HolidayMobile},
	{"trinity_sunday", 56, HolidayMajor},
	{"corpus_christi", 60, HolidayMajor},
	{"sacred_heart", 68, HolidayMajor},
}

// Advent-derived feasts, computed backwards from Christmas.
const (
	keyChristTheKing       = "christ_the_king"
	keyFirstSundayOfAdvent = "first_sunday_of_advent"
)

// FeastsPerYear is the number of feasts HolidaysForYear returns for
// years from 1 onwards.
var FeastsPerYear = len(fixedFeasts) + len(mobileFeasts) + 2

// ExpectedFeastCount is the number of feasts HolidaysForYear returns for
// year.
func ExpectedFeastCount(year int) int {
	switch {
	case year < 0:
		return 0
	case year == 0:
		n := 0
		for _, f := range fixedFeasts {
			if f.month == time.December && f.day >= 25 {
				n++
			}
		}
		return n
	}
	return FeastsPerYear
}

// FeastKeys returns the identity keys of every feast, fixed feasts first.
func FeastKeys() []string {
	keys := make([]string, 0, FeastsPerYear)
	for _, f := range fixedFeasts {
		keys = append(keys, f.key)
	}
	for _, f := range mobileFeasts {
		keys = append(keys, f.key)
	}
	return append(keys, keyChristTheKing, keyFirstSundayOfAdvent)
}

// HolidaysForYear returns the feasts of year sorted by date. Names and
// descriptions are resolved through r under "feast.<key>.name" and
// "feast.<key>.description"; a nil r leaves the keys in place.
//
// Years before 0 have no feasts. Year 0 only keeps the feasts from
// Christmas onwards, the calendar of the faith beginning with the
// Nativity.
func HolidaysForYear(r Resolver, year int) []Holiday {
	if year < 0 {
		return []Holiday{}
	}
	r = orKeys(r)
	easter := Easter(year)

	holidays := make([]Holiday, 0, FeastsPerYear)
	for _, f := range fixedFeasts {
		holidays = append(holidays, newHoliday(r, f.key, f.kind, NewDate(year, f.month, f.day)))
	}
	for _, f := range mobileFeasts {
		holidays = append(holidays, newHoliday(r, f.key, f.kind, easter.AddDays(f.offset)))
	}
	holidays = append(holidays,
		newHoliday(r, keyChristTheKing, HolidayMajor, ChristTheKing(year)),
		newHoliday(r, keyFirstSundayOfAdvent, HolidayMobile, FirstSundayOfAdvent(year)),
	)

	slices.SortStableFunc(holidays, func(a, b Holiday) int {
		return a.Date.Compare(b.Date)
	})

	if year == 0 {
		holidays = slices.DeleteFunc(holidays, func(h Holiday) bool {
			return h.Date.Month != time.December || h.Date.Day < 25
		})
	}

	return holidays
}

func newHoliday(r Resolver, key string, kind HolidayType, date Date) Holiday {
	return Holiday{
		Key:         key,
		Date:        date,
		Name:        r.Resolve("feast." + key + ".name"),
		Type:        kind,
		Description: r.Resolve("feast." + key + ".description"),
	}
}

// HolidaysOn returns the holidays in hs that fall on date.
func HolidaysOn(hs []Holiday, date Date) []Holiday {
	var out []Holiday
	for _, h := range hs {
		if h.Date == date {
			out = append(out, h)
		}
	}
	return out
}
