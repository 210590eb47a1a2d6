package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date without time of day or location.
//
// The fields hold the date as written in the calendar in force at the
// time: Julian before 15 October 1582, Gregorian from then on. Years are
// astronomical, so 0 and negative years are valid. time.Time can not be
// used here because it always counts in the proleptic Gregorian calendar
// and has no notion of Julian February 29 in years such as 1500.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// gregorianStart is the first day of the Gregorian calendar.
var gregorianStart = Date{ReformYear, time.October, 15}

// The ten days dropped by the reform.
const (
	skippedFirstDay = 5
	skippedLastDay  = 14
)

// NewDate returns the date year-month-day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// MakeDate returns the date for a 0-based month (0 = January).
//
// The year is stored verbatim. Go's time package does not reinterpret
// years 0-99 the way some date libraries do, but Date avoids it anyway so
// that Julian dates keep their own numbering.
func MakeDate(year, month0, day int) Date {
	return Date{Year: year, Month: time.Month(month0 + 1), Day: day}
}

// IsDaySkipped reports whether the day never existed: 5 to 14 October 1582
// were removed by the Gregorian reform. month0 is 0-based.
func IsDaySkipped(year, month0, day int) bool {
	return year == ReformYear && month0 == 9 && day >= skippedFirstDay && day <= skippedLastDay
}

var monthLengths = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in a 0-based month of year,
// honoring the leap rule in force for that year. October 1582 still counts
// 31 days; use IsDaySkipped or MonthDays to leave out the dropped ones.
func DaysInMonth(year, month0 int) int {
	if month0 < 0 || month0 > 11 {
		return 0
	}
	if month0 == 1 && IsLeapYear(year) {
		return 29
	}
	return monthLengths[month0]
}

// MonthDays returns the days that actually existed in a 0-based month of
// year, in order.
func MonthDays(year, month0 int) []Date {
	n := DaysInMonth(year, month0)
	days := make([]Date, 0, n)
	for day := 1; day <= n; day++ {
		if IsDaySkipped(year, month0, day) {
			continue
		}
		days = append(days, MakeDate(year, month0, day))
	}
	return days
}

// Valid reports whether d names a day that existed.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	month0 := int(d.Month) - 1
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, month0) {
		return false
	}
	return !IsDaySkipped(d.Year, month0, d.Day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// AddDays returns the date n days after d (before, for negative n),
// crossing the reform gap the way the calendar did: 4 October 1582 is
// followed by 15 October 1582.
func (d Date) AddDays(n int) Date {
	return fromDayNumber(d.dayNumber() + n)
}

// DaysUntil returns the number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return other.dayNumber() - d.dayNumber()
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return time.Weekday(floorMod(d.dayNumber()+1, 7))
}

// dayNumber returns the Julian Day Number of d, read in the Julian
// calendar before the reform and in the Gregorian calendar after it.
func (d Date) dayNumber() int {
	if d.Before(gregorianStart) {
		return julianDayNumber(d.Year, int(d.Month), d.Day)
	}
	return gregorianDayNumber(d.Year, int(d.Month), d.Day)
}

// julianDayNumber converts a Julian calendar date to its Julian Day Number.
func julianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - 32083
}

// gregorianDayNumber converts a Gregorian calendar date to its Julian Day
// Number.
func gregorianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

var gregorianStartDayNumber = gregorianDayNumber(ReformYear, int(time.October), 15)

// fromDayNumber converts a Julian Day Number back to a date in the
// calendar in force on that day.
func fromDayNumber(jdn int) Date {
	var b, c int
	if jdn >= gregorianStartDayNumber {
		a := jdn + 32044
		b = floorDiv(4*a+3, 146097)
		c = a - floorDiv(146097*b, 4)
	} else {
		c = jdn + 32082
	}
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)

	return Date{
		Year:  100*b + d - 4800 + m/10,
		Month: time.Month(m + 3 - 12*(m/10)),
		Day:   e - (153*m+2)/5 + 1,
	}
}

// String returns d as YYYY-MM-DD. Negative years carry a leading minus
// sign.
func (d Date) String() string {
	sign := ""
	year := d.Year
	if year < 0 {
		sign = "-"
		year = -year
	}
	return fmt.Sprintf("%s%04d-%02d-%02d", sign, year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses a date written as YYYY-MM-DD, with an optional leading
// minus sign on the year. The result must name a day that existed.
func ParseDate(s string) (Date, error) {
	negative := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}

	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		fields[i] = n
	}
	if negative {
		fields[0] = -fields[0]
	}

	d := NewDate(fields[0], time.Month(fields[1]), fields[2])
	if !d.Valid() {
		return Date{}, fmt.Errorf("invalid date %q: day does not exist", s)
	}
	return d, nil
}

// FormatYear renders a year for display. Negative years use the
// "year.bc" template with {year} set to the absolute value, year 0 uses the
// "year.zero" label and positive years are plain numbers.
//
// Year 0 is deliberately not shown as 1 BC.
func FormatYear(r Resolver, year int) string {
	r = orKeys(r)
	switch {
	case year < 0:
		return strings.ReplaceAll(r.Resolve("year.bc"), "{year}", strconv.Itoa(-year))
	case year == 0:
		return r.Resolve("year.zero")
	default:
		return strconv.Itoa(year)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
