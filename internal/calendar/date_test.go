package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeDate_LowAndNegativeYears(t *testing.T) {
	tests := []struct {
		year, month0, day int
	}{
		{0, 11, 25},
		{33, 3, 5},
		{99, 0, 1},
		{-1, 5, 15},
		{-46, 0, 1},
	}

	for _, tt := range tests {
		d := MakeDate(tt.year, tt.month0, tt.day)
		assert.Equal(t, tt.year, d.Year)
		assert.Equal(t, time.Month(tt.month0+1), d.Month)
		assert.Equal(t, tt.day, d.Day)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month0, want int
	}{
		{2024, 1, 29},
		{2023, 1, 28},
		{1500, 1, 29}, // Julian leap year
		{1700, 1, 28},
		{2000, 1, 29},
		{0, 1, 29},
		{50, 1, 28},
		{-4, 1, 29},
		{2024, 0, 31},
		{2024, 3, 30},
		{1582, 9, 31},
		{2024, 12, 0},
		{2024, -1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month0), "DaysInMonth(%d, %d)", tt.year, tt.month0)
	}
}

func TestIsDaySkipped(t *testing.T) {
	for day := 1; day <= 31; day++ {
		want := day >= 5 && day <= 14
		assert.Equal(t, want, IsDaySkipped(1582, 9, day), "October %d 1582", day)
	}

	assert.False(t, IsDaySkipped(1582, 9, 4))
	assert.False(t, IsDaySkipped(1582, 9, 15))
	assert.False(t, IsDaySkipped(1583, 9, 10))
	assert.False(t, IsDaySkipped(1582, 10, 10))
}

func TestMonthDays_SkipsReformGap(t *testing.T) {
	days := MonthDays(1582, 9)
	require.Len(t, days, 21)

	for _, d := range days {
		assert.False(t, IsDaySkipped(d.Year, int(d.Month)-1, d.Day), "yielded skipped day %s", d)
	}
	assert.Equal(t, NewDate(1582, time.October, 4), days[3])
	assert.Equal(t, NewDate(1582, time.October, 15), days[4])

	assert.Len(t, MonthDays(1583, 9), 31)
	assert.Len(t, MonthDays(1500, 1), 29)
}

func TestDate_AddDays(t *testing.T) {
	tests := []struct {
		name string
		from Date
		n    int
		want Date
	}{
		{"across reform gap", NewDate(1582, time.October, 4), 1, NewDate(1582, time.October, 15)},
		{"back across reform gap", NewDate(1582, time.October, 15), -1, NewDate(1582, time.October, 4)},
		{"julian leap day", NewDate(1500, time.February, 28), 1, NewDate(1500, time.February, 29)},
		{"gregorian non-leap century", NewDate(1700, time.February, 28), 1, NewDate(1700, time.March, 1)},
		{"year end", NewDate(2024, time.December, 31), 1, NewDate(2025, time.January, 1)},
		{"into year 0", NewDate(1, time.January, 1), -1, NewDate(0, time.December, 31)},
		{"negative year", NewDate(-1, time.March, 1), -1, NewDate(-1, time.February, 28)},
		{"easter offset", NewDate(2024, time.March, 31), 60, NewDate(2024, time.May, 30)},
		{"zero", NewDate(800, time.December, 25), 0, NewDate(800, time.December, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AddDays(tt.n))
		})
	}
}

func TestDate_DaysUntil(t *testing.T) {
	assert.Equal(t, 1, NewDate(1582, time.October, 4).DaysUntil(NewDate(1582, time.October, 15)))
	assert.Equal(t, 366, NewDate(2024, time.January, 1).DaysUntil(NewDate(2025, time.January, 1)))
	assert.Equal(t, -10, NewDate(1583, time.April, 10).DaysUntil(NewDate(1583, time.March, 31)))
}

func TestDate_Weekday(t *testing.T) {
	tests := []struct {
		date Date
		want time.Weekday
	}{
		{NewDate(2000, time.January, 1), time.Saturday},
		{NewDate(2024, time.December, 25), time.Wednesday},
		{NewDate(1582, time.October, 4), time.Thursday},
		{NewDate(1582, time.October, 15), time.Friday},
		{NewDate(1066, time.October, 14), time.Saturday}, // Battle of Hastings, Julian
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.date.Weekday(), "%s", tt.date)
	}
}

func TestDate_WeekdayMatchesTimeAfterReform(t *testing.T) {
	d := NewDate(1583, time.January, 1)
	for i := 0; i < 3000; i++ {
		tm := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
		require.Equal(t, tm.Weekday(), d.Weekday(), "%s", d)
		d = d.AddDays(137)
	}
}

func TestDate_Valid(t *testing.T) {
	assert.True(t, NewDate(1500, time.February, 29).Valid())
	assert.False(t, NewDate(1700, time.February, 29).Valid())
	assert.False(t, NewDate(1582, time.October, 10).Valid())
	assert.True(t, NewDate(1582, time.October, 15).Valid())
	assert.False(t, NewDate(2024, time.April, 31).Valid())
	assert.False(t, NewDate(2024, time.Month(13), 1).Valid())
	assert.False(t, NewDate(2024, time.January, 0).Valid())
	assert.True(t, NewDate(-46, time.January, 1).Valid())
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(-5, time.December, 31)
	b := NewDate(0, time.January, 1)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, NewDate(2024, time.March, 31).Before(NewDate(2024, time.April, 1)))
}

func TestDate_StringAndParse(t *testing.T) {
	tests := []struct {
		date Date
		text string
	}{
		{NewDate(2024, time.March, 31), "2024-03-31"},
		{NewDate(33, time.April, 5), "0033-04-05"},
		{NewDate(0, time.December, 25), "0000-12-25"},
		{NewDate(-44, time.March, 15), "-0044-03-15"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.text, tt.date.String())

		parsed, err := ParseDate(tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.date, parsed)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024-03", "2024-xx-01", "1582-10-10", "2023-02-29", "2024-13-01"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "ParseDate(%q)", s)
	}
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Date Date `json:"date"`
	}{NewDate(1583, time.April, 10)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"1583-04-10"}`, string(b))

	var out struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, NewDate(1583, time.April, 10), out.Date)
}

func TestFormatYear(t *testing.T) {
	r := mapResolver{"year.bc": "{year} BC", "year.zero": "year 0"}

	assert.Equal(t, "46 BC", FormatYear(r, -46))
	assert.Equal(t, "1 BC", FormatYear(r, -1))
	assert.Equal(t, "year 0", FormatYear(r, 0))
	assert.Equal(t, "1", FormatYear(r, 1))
	assert.Equal(t, "2024", FormatYear(r, 2024))
}
