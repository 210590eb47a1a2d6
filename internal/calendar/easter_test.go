package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasterGregorian(t *testing.T) {
	tests := []struct {
		year int
		want Date
	}{
		{1583, NewDate(1583, time.April, 10)},
		{1818, NewDate(1818, time.March, 22)}, // earliest possible
		{1943, NewDate(1943, time.April, 25)}, // latest possible
		{2000, NewDate(2000, time.April, 23)},
		{2024, NewDate(2024, time.March, 31)},
		{2025, NewDate(2025, time.April, 20)},
		{2026, NewDate(2026, time.April, 5)},
		{2038, NewDate(2038, time.April, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got := EasterGregorian(tt.year)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Sunday, got.Weekday())
		})
	}
}

func TestEasterJulian(t *testing.T) {
	tests := []struct {
		year       int
		julian     Date
		gregorian  Date
		wantOffset int
	}{
		{1583, NewDate(1583, time.March, 31), NewDate(1583, time.April, 10), 10},
		{2024, NewDate(2024, time.April, 22), NewDate(2024, time.May, 5), 13},
		{2025, NewDate(2025, time.April, 7), NewDate(2025, time.April, 20), 13},
		{2026, NewDate(2026, time.March, 30), NewDate(2026, time.April, 12), 13},
	}

	for _, tt := range tests {
		t.Run(tt.julian.String(), func(t *testing.T) {
			got := EasterJulian(tt.year)
			assert.Equal(t, tt.julian, got.JulianDate)
			assert.Equal(t, tt.gregorian, got.GregorianEquivalent)
			assert.Equal(t, tt.julian.Day, got.JulianDay)
			assert.Equal(t, int(tt.julian.Month), got.JulianMonth)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestEasterJulian_1583IsTenDaysAfterJulianDate(t *testing.T) {
	e := EasterJulian(1583)

	shifted := time.Date(1583, e.JulianDate.Month, e.JulianDate.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 10)
	assert.Equal(t, NewDate(shifted.Year(), shifted.Month(), shifted.Day()), e.GregorianEquivalent)
	assert.Equal(t, EasterGregorian(1583), e.GregorianEquivalent)
}

func TestGregorianOffset(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{-46, 10},
		{325, 10},
		{1583, 10},
		{1699, 10},
		{1700, 11},
		{1799, 11},
		{1800, 12},
		{1899, 12},
		{1900, 13},
		{2000, 13},
		{2099, 13},
		{2100, 14},
		{9999, 14},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GregorianOffset(tt.year), "GregorianOffset(%d)", tt.year)
	}
}

func TestEasterJulian_NeverBeforeGregorian(t *testing.T) {
	// Within the years the offset table is exact, the Julian Easter falls
	// on the Gregorian one or up to five weeks later.
	for year := FirstGregorianYear; year < 2100; year++ {
		julian := EasterJulian(year).GregorianEquivalent
		gregorian := EasterGregorian(year)
		diff := gregorian.DaysUntil(julian)
		require.True(t, diff >= 0 && diff <= 35 && diff%7 == 0, "year %d: julian %s, gregorian %s", year, julian, gregorian)
	}
}

func TestEaster_SelectsAlgorithmByYear(t *testing.T) {
	assert.Equal(t, EasterJulian(1582).JulianDate, Easter(1582))
	assert.Equal(t, EasterJulian(33).JulianDate, Easter(33))
	assert.Equal(t, EasterJulian(0).JulianDate, Easter(0))
	assert.Equal(t, EasterGregorian(1583), Easter(1583))
	assert.Equal(t, EasterGregorian(2024), Easter(2024))
}

func TestEaster_AlwaysSundayInMarchOrApril(t *testing.T) {
	for year := MinYear; year <= MaxYear; year++ {
		e := Easter(year)
		require.Equal(t, time.Sunday, e.Weekday(), "Easter %d = %s", year, e)
		require.True(t, e.Month == time.March || e.Month == time.April, "Easter %d = %s", year, e)
		require.True(t, e.Valid(), "Easter %d = %s", year, e)
	}
}

func TestFirstSundayOfAdvent(t *testing.T) {
	tests := []struct {
		year          int
		advent        Date
		christTheKing Date
	}{
		// Christmas on a Wednesday.
		{2024, NewDate(2024, time.December, 1), NewDate(2024, time.November, 24)},
		// Christmas on a Thursday.
		{2025, NewDate(2025, time.November, 30), NewDate(2025, time.November, 23)},
		// Christmas on a Sunday counts as the fourth Sunday.
		{2022, NewDate(2022, time.December, 4), NewDate(2022, time.November, 27)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.advent, FirstSundayOfAdvent(tt.year), "advent %d", tt.year)
		assert.Equal(t, tt.christTheKing, ChristTheKing(tt.year), "christ the king %d", tt.year)
	}
}

func TestFirstSundayOfAdvent_IsSunday(t *testing.T) {
	for year := 0; year <= MaxYear; year += 7 {
		assert.Equal(t, time.Sunday, FirstSundayOfAdvent(year).Weekday(), "year %d", year)
	}
}
