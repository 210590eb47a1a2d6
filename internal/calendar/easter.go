// Package calendar provides the calendar computations behind the feast
// calendar: era classification, leap years, Easter and the feasts derived
// from it.
package calendar

import (
	"time"
)

// EasterGregorian calculates the date of Easter Sunday for a given year
// using the Meeus/Jones/Butcher algorithm for the Gregorian calendar.
//
// The algorithm is defined for every year, but Easter only delegates to it
// from 1583, the first full Gregorian year.
func EasterGregorian(year int) Date {
	a := floorMod(year, 19)
	b := floorDiv(year, 100)
	c := floorMod(year, 100)
	d := floorDiv(b, 4)
	e := floorMod(b, 4)
	f := floorDiv(b+8, 25)
	g := floorDiv(b-f+1, 3)
	h := floorMod(19*a+b-d-g+15, 30)
	i := c / 4
	k := c % 4
	l := floorMod(32+2*e+2*i-h-k, 7)
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return NewDate(year, time.Month(month), day)
}

// JulianEaster is Easter computed with the Julian computus.
type JulianEaster struct {
	// JulianDate is Easter as numbered in the Julian calendar.
	JulianDate Date `json:"julian_date"`

	// GregorianEquivalent is JulianDate shifted by Offset days into the
	// Gregorian calendar.
	GregorianEquivalent Date `json:"gregorian_equivalent"`

	JulianDay   int `json:"julian_day"`
	JulianMonth int `json:"julian_month"`
	Offset      int `json:"offset"`
}

// EasterJulian calculates Easter Sunday for a given year using Meeus'
// Julian algorithm and derives its Gregorian equivalent.
func EasterJulian(year int) JulianEaster {
	a := floorMod(year, 4)
	b := floorMod(year, 7)
	c := floorMod(year, 19)
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7
	month := (d + e + 114) / 31
	day := ((d + e + 114) % 31) + 1

	offset := GregorianOffset(year)

	// The Julian numbers are shifted in proleptic Gregorian arithmetic,
	// which is what time.Date normalizes in. It handles years 0-99 and
	// negative years without reinterpreting them.
	shifted := time.Date(year, time.Month(month), day+offset, 0, 0, 0, 0, time.UTC)

	return JulianEaster{
		JulianDate:          NewDate(year, time.Month(month), day),
		GregorianEquivalent: NewDate(shifted.Year(), shifted.Month(), shifted.Day()),
		JulianDay:           day,
		JulianMonth:         month,
		Offset:              offset,
	}
}

// GregorianOffset returns the number of days added to a Julian Easter date
// to express it in the Gregorian calendar. The offset is a fixed table by
// century and is not extrapolated:
//
//	year < 1700         10
//	1700 <= year < 1800 11
//	1800 <= year < 1900 12
//	1900 <= year < 2100 13
//	year >= 2100        14
func GregorianOffset(year int) int {
	switch {
	case year >= 2100:
		return 14
	case year >= 1900:
		return 13
	case year >= 1800:
		return 12
	case year >= 1700:
		return 11
	default:
		return 10
	}
}

// Easter returns the Easter Sunday feasts are computed from: the Julian
// date (in Julian numbering) before 1583 and the Gregorian date from 1583.
func Easter(year int) Date {
	if year < FirstGregorianYear {
		return EasterJulian(year).JulianDate
	}
	return EasterGregorian(year)
}

// FirstSundayOfAdvent returns the first Sunday of Advent: three weeks before
// the fourth Sunday of Advent, which is the last Sunday on or before
// Christmas.
func FirstSundayOfAdvent(year int) Date {
	christmas := NewDate(year, time.December, 25)
	fourthSunday := christmas.AddDays(-int(christmas.Weekday()))
	return fourthSunday.AddDays(-21)
}

// ChristTheKing returns the feast of Christ the King, the Sunday before
// the first Sunday of Advent.
func ChristTheKing(year int) Date {
	return FirstSundayOfAdvent(year).AddDays(-7)
}
