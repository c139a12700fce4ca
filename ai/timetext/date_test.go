package timetext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func TestResolveDate_RelativeTerms(t *testing.T) {
	testCases := []struct {
		input string
		want  time.Time
	}{
		{"remind me to buy milk tomorrow", date(2026, 3, 15)},
		{"do it tmr evening", date(2026, 3, 15)},
		{"plan for next week", date(2026, 3, 21)},
		{"review next month", date(2026, 4, 13)},
		{"call mom today", date(2026, 3, 14)},
		{"do it now", date(2026, 3, 14)},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveDate(tc.input, testNow))
		})
	}
}

func TestResolveDate_NumericPatterns(t *testing.T) {
	testCases := []struct {
		input string
		want  time.Time
	}{
		{"dentist on 25/04", date(2026, 4, 25)},
		{"dentist on 25/04/2027", date(2027, 4, 25)},
		{"dentist on 25-04", date(2026, 4, 25)},
		{"dentist on 25-04-2027", date(2027, 4, 25)},
		{"dentist on 2026-11-03", date(2026, 11, 3)},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveDate(tc.input, testNow))
		})
	}
}

func TestResolveDate_DefaultsToToday(t *testing.T) {
	assert.Equal(t, date(2026, 3, 14), ResolveDate("buy milk", testNow))
	assert.Equal(t, date(2026, 3, 14), ResolveDate("", testNow))
}

func TestResolveDate_InvalidNumbersFallThrough(t *testing.T) {
	// 45/19 is not a date; with no other pattern the result is today.
	assert.Equal(t, date(2026, 3, 14), ResolveDate("lot 45/19 cleanup", testNow))
}

func TestResolveDate_RecurrencePhraseIgnored(t *testing.T) {
	// "every 2 days" must not be read as a date term.
	got := ResolveDate("water plants every 2 days starting tomorrow", testNow)
	assert.Equal(t, date(2026, 3, 15), got)
}

func TestResolveDate_ISOWinsOverEmbeddedDayMonth(t *testing.T) {
	// The DD-MM pattern must not fire inside a full ISO date.
	assert.Equal(t, date(2026, 9, 5), ResolveDate("submit by 2026-09-05", testNow))
}

func TestExtractTimeRange_MeridiemPair(t *testing.T) {
	testCases := []struct {
		input      string
		start, end string
	}{
		{"meeting 2pm to 3pm", "14:00", "15:00"},
		{"from 9am to 11:30am", "09:00", "11:30"},
		{"sync 11am to 1pm", "11:00", "13:00"},
		{"12am to 12pm shift", "00:00", "12:00"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			start, end := ExtractTimeRange(tc.input)
			require.NotNil(t, start)
			require.NotNil(t, end)
			assert.Equal(t, tc.start, start.String())
			assert.Equal(t, tc.end, end.String())
		})
	}
}

func TestExtractTimeRange_MarkerNearestToken(t *testing.T) {
	// Each time resolves with its own marker: the trailing pm must not
	// leak onto the 10am side and vice versa.
	start, end := ExtractTimeRange("10am to 2pm")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "10:00", start.String())
	assert.Equal(t, "14:00", end.String())

	start, end = ExtractTimeRange("9pm to 10am")
	require.NotNil(t, start)
	assert.Equal(t, "21:00", start.String())
	assert.Equal(t, "10:00", end.String())
}

func TestExtractTimeRange_TwentyFourHour(t *testing.T) {
	start, end := ExtractTimeRange("standup 17:00 to 18:15")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "17:00", start.String())
	assert.Equal(t, "18:15", end.String())
}

func TestExtractTimeRange_SingleTimeImpliesHour(t *testing.T) {
	start, end := ExtractTimeRange("remind me at 6pm")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "18:00", start.String())
	assert.Equal(t, "19:00", end.String())

	start, end = ExtractTimeRange("call at 14:30")
	require.NotNil(t, start)
	assert.Equal(t, "14:30", start.String())
	assert.Equal(t, "15:30", end.String())
}

func TestExtractTimeRange_LateEveningWraps(t *testing.T) {
	start, end := ExtractTimeRange("at 11pm")
	require.NotNil(t, start)
	assert.Equal(t, "23:00", start.String())
	// Wraps past midnight; the draft layer pushes the event to the next day.
	assert.Equal(t, "00:00", end.String())
	assert.LessOrEqual(t, end.Minutes(), start.Minutes())
}

func TestExtractTimeRange_NoTime(t *testing.T) {
	start, end := ExtractTimeRange("buy milk tomorrow")
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestParseClock(t *testing.T) {
	c, ok := ParseClock("09:05")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 9, Minute: 5}, c)

	_, ok = ParseClock("25:00")
	assert.False(t, ok)
	_, ok = ParseClock("junk")
	assert.False(t, ok)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
