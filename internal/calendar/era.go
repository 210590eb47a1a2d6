package calendar

import (
	"fmt"
	"slices"
	"strings"

	"cloudeng.io/datetime"
)

// Supported year range. Callers reject years outside it before asking the
// calendar for anything; the functions themselves are total.
const (
	MinYear = -46
	MaxYear = 9999
)

// Calendar reform boundaries.
const (
	// ReformYear is the year of the Gregorian reform (October 1582).
	ReformYear = 1582

	// FirstGregorianYear is the first full year of the Gregorian calendar.
	FirstGregorianYear = 1583

	// julianIntroduction is the first year of the Julian calendar (45 BC).
	julianIntroduction = -44
)

// Era identifies the calendar system in force during a year.
type Era int

const (
	EraPreJulian Era = iota
	EraJulianBC
	EraJulianAD
	EraTransition
	EraGregorianFirst
	EraGregorian
)

var eraNames = [...]string{
	EraPreJulian:      "pre_julian",
	EraJulianBC:       "julian_bc",
	EraJulianAD:       "julian_ad",
	EraTransition:     "transition",
	EraGregorianFirst: "gregorian_first",
	EraGregorian:      "gregorian",
}

func (e Era) String() string {
	if e < 0 || int(e) >= len(eraNames) {
		return "unknown"
	}
	return eraNames[e]
}

// MarshalText encodes the era as its string identifier.
func (e Era) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes an era identifier produced by MarshalText.
func (e *Era) UnmarshalText(text []byte) error {
	i := slices.Index(eraNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown era %q", text)
	}
	*e = Era(i)
	return nil
}

// LeapRule is the leap-year rule associated with an era. It is
// informational; IsLeapYear is the authority on leap years.
type LeapRule int

const (
	LeapRuleRoman LeapRule = iota
	LeapRuleJulian
	LeapRuleTransition
	LeapRuleGregorian
)

var leapRuleNames = [...]string{
	LeapRuleRoman:      "roman",
	LeapRuleJulian:     "julian",
	LeapRuleTransition: "transition",
	LeapRuleGregorian:  "gregorian",
}

func (r LeapRule) String() string {
	if r < 0 || int(r) >= len(leapRuleNames) {
		return "unknown"
	}
	return leapRuleNames[r]
}

// MarshalText encodes the rule as its string identifier.
func (r LeapRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a rule identifier produced by MarshalText.
func (r *LeapRule) UnmarshalText(text []byte) error {
	i := slices.Index(leapRuleNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown leap rule %q", text)
	}
	*r = LeapRule(i)
	return nil
}

// Classify returns the calendar era governing year. The boundaries are
// evaluated in order:
//
//	year < -44          pre-Julian (Roman)
//	-44 <= year <= 0    Julian, before Christ
//	0 < year < 1582     Julian, anno Domini
//	year == 1582        reform year
//	year == 1583        first Gregorian year
//	year > 1583         Gregorian
func Classify(year int) Era {
	switch {
	case year < julianIntroduction:
		return EraPreJulian
	case year <= 0:
		return EraJulianBC
	case year < ReformYear:
		return EraJulianAD
	case year == ReformYear:
		return EraTransition
	case year == FirstGregorianYear:
		return EraGregorianFirst
	default:
		return EraGregorian
	}
}

// LeapRule returns the leap-year rule associated with the era.
func (e Era) LeapRule() LeapRule {
	switch e {
	case EraPreJulian:
		return LeapRuleRoman
	case EraJulianBC, EraJulianAD:
		return LeapRuleJulian
	case EraTransition:
		return LeapRuleTransition
	default:
		return LeapRuleGregorian
	}
}

// IsLeapYearJulian reports whether year is a leap year under the Julian rule.
func IsLeapYearJulian(year int) bool {
	return year%4 == 0
}

// IsLeapYearGregorian reports whether year is a leap year under the
// Gregorian rule.
func IsLeapYearGregorian(year int) bool {
	return datetime.IsLeap(year)
}

// IsLeapYear reports whether year is a leap year under the rule in force.
//
// Years before 1582 use the Julian rule and 1582 onwards the Gregorian one.
// Note that Classify treats 1582 as the transition year while this test
// already applies the Gregorian rule to it. 1582 is not a leap year under
// either rule, so the two never disagree in practice.
func IsLeapYear(year int) bool {
	if year < ReformYear {
		return IsLeapYearJulian(year)
	}
	return IsLeapYearGregorian(year)
}

// EraInfo describes the calendar in force during a year, with labels
// resolved for display.
type EraInfo struct {
	Year          int      `json:"year"`
	DisplayYear   string   `json:"display_year"`
	Era           Era      `json:"era"`
	LeapRule      LeapRule `json:"leap_rule"`
	Calendar      string   `json:"calendar"`
	LeapRuleLabel string   `json:"leap_rule_label"`
	Description   string   `json:"description"`
	IsGregorian   bool     `json:"is_gregorian"`
	IsJulian      bool     `json:"is_julian"`
	IsTransition  bool     `json:"is_transition"`
}

// Info classifies year and resolves its labels through r.
//
// Calendar names are looked up under "calendar.<name>" where the Julian BC
// and AD eras share "calendar.julian". Descriptions live under
// "era.<era>.description" and may reference {year}.
func Info(r Resolver, year int) EraInfo {
	r = orKeys(r)
	era := Classify(year)
	rule := era.LeapRule()

	calendarKey := era.String()
	if era == EraJulianBC || era == EraJulianAD {
		calendarKey = "julian"
	}

	return EraInfo{
		Year:          year,
		DisplayYear:   FormatYear(r, year),
		Era:           era,
		LeapRule:      rule,
		Calendar:      r.Resolve("calendar." + calendarKey),
		LeapRuleLabel: r.Resolve("leap_rule." + rule.String()),
		Description:   strings.ReplaceAll(r.Resolve("era."+era.String()+".description"), "{year}", FormatYear(r, year)),
		IsGregorian:   year >= FirstGregorianYear,
		IsJulian:      year < ReformYear,
		IsTransition:  year == ReformYear,
	}
}
