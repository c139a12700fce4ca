// Package timetext extracts calendar dates and clock times from free text.
//
// Everything past this package works with fully resolved values: a date is
// always a concrete calendar day and a time is always a 24-hour clock value.
// Relative phrases ("tomorrow", "next week") never survive extraction.
package timetext

import (
	"regexp"
	"strings"
	"time"
)

// Pre-compiled date patterns, evaluated in declaration order.
// The first pattern that matches and parses cleanly wins.
var (
	recurringPhraseRegex = regexp.MustCompile(`every\s+\d+\s*(?:day|week|month)s?`)

	// Word-bounded so "know" does not read as "now".
	tomorrowRegex  = regexp.MustCompile(`\b(?:tomorrow|tmr)\b`)
	nextWeekRegex  = regexp.MustCompile(`\bnext\s+week\b`)
	nextMonthRegex = regexp.MustCompile(`\bnext\s+month\b`)
	todayRegex     = regexp.MustCompile(`\b(?:today|now)\b`)

	daySlashMonthRegex = regexp.MustCompile(`\b(\d{2})/(\d{2})(?:/(\d{4}))?\b`)
	dayDashMonthRegex  = regexp.MustCompile(`\b(\d{2})-(\d{2})(?:-(\d{4}))?\b`)
	isoDateRegex       = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

// ResolveDate extracts a concrete calendar date from text, relative to now.
//
// Resolution order: relative terms first (today/now, tomorrow/tmr, next
// week, next month), then numeric patterns (YYYY-MM-DD, DD/MM[/YYYY],
// DD-MM[-YYYY]). A missing year defaults to now's year. When nothing matches
// the result is today. The returned time is midnight in now's location.
func ResolveDate(text string, now time.Time) time.Time {
	lower := strings.ToLower(text)
	// Recurrence phrases like "every 2 days" would otherwise look like
	// day-interval terms below.
	lower = recurringPhraseRegex.ReplaceAllString(lower, "")

	today := midnight(now)

	switch {
	case tomorrowRegex.MatchString(lower):
		return today.AddDate(0, 0, 1)
	case nextWeekRegex.MatchString(lower):
		return today.AddDate(0, 0, 7)
	case nextMonthRegex.MatchString(lower):
		return today.AddDate(0, 0, 30)
	case todayRegex.MatchString(lower):
		return today
	}

	if d, ok := matchNumericDate(text, now); ok {
		return d
	}
	return today
}

func matchNumericDate(text string, now time.Time) (time.Time, bool) {
	// YYYY-MM-DD first: the dash pattern would otherwise read the tail of
	// an ISO date ("2026-11-03" -> "11-03") as day and month.
	if m := isoDateRegex.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), now.Location()); ok {
			return d, true
		}
	}
	// Then DD/MM[/YYYY] and DD-MM[-YYYY].
	for _, re := range []*regexp.Regexp{daySlashMonthRegex, dayDashMonthRegex} {
		if m := re.FindStringSubmatch(text); m != nil {
			year := now.Year()
			if m[3] != "" {
				year = atoi(m[3])
			}
			if d, ok := makeDate(year, atoi(m[2]), atoi(m[1]), now.Location()); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// makeDate validates that year/month/day denote a real calendar date.
// time.Date normalizes overflow (month 13 becomes January), so a round-trip
// check is needed to reject garbage like 45/19.
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
