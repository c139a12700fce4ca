package timetext

import (
	"fmt"
	"regexp"
	"strings"
)

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock as 24-hour "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the clock as minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, bool) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, false
	}
	h, min := atoi(m[1]), atoi(m[2])
	if h > 23 || min > 59 {
		return Clock{}, false
	}
	return Clock{Hour: h, Minute: min}, true
}

var (
	clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

	// Each side of a meridiem range carries its own am/pm marker so the
	// marker nearest to a token is the one that resolves it. Splitting the
	// utterance on "to" and inspecting the halves mis-attributes markers
	// ("10 to 2pm" would turn the 10 into 22:00).
	meridiemRangeRegex = regexp.MustCompile(
		`(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s*to\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	clockRangeRegex   = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*to\s*(\d{1,2}):(\d{2})`)
	singleTimeRegex   = regexp.MustCompile(`(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	singleClockRegex  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

// ExtractTimeRange extracts a start/end clock-time pair from text.
//
// Recognized forms, first match wins:
//
//	"5pm to 6:30pm"  (each token resolved by its own am/pm marker)
//	"17:00 to 18:30" (24-hour)
//	"at 6pm" / "14:00" (single time, implied one-hour duration)
//
// Both results are nil when no time is present. An end time that lands on
// or before the start (e.g. "11pm" with its implied +1h) wraps past
// midnight; callers push such events to the next day.
func ExtractTimeRange(text string) (start, end *Clock) {
	lower := strings.ToLower(text)

	if m := meridiemRangeRegex.FindStringSubmatch(lower); m != nil {
		s := meridiemClock(atoi(m[1]), optMinute(m[2]), m[3])
		e := meridiemClock(atoi(m[4]), optMinute(m[5]), m[6])
		return &s, &e
	}

	if m := clockRangeRegex.FindStringSubmatch(lower); m != nil {
		s := Clock{Hour: atoi(m[1]) % 24, Minute: atoi(m[2]) % 60}
		e := Clock{Hour: atoi(m[3]) % 24, Minute: atoi(m[4]) % 60}
		return &s, &e
	}

	if m := singleTimeRegex.FindStringSubmatch(lower); m != nil {
		s := meridiemClock(atoi(m[1]), optMinute(m[2]), m[3])
		e := Clock{Hour: (s.Hour + 1) % 24, Minute: s.Minute}
		return &s, &e
	}

	if m := singleClockRegex.FindStringSubmatch(lower); m != nil {
		h, min := atoi(m[1]), atoi(m[2])
		if h <= 23 && min <= 59 {
			s := Clock{Hour: h, Minute: min}
			e := Clock{Hour: (h + 1) % 24, Minute: min}
			return &s, &e
		}
	}

	return nil, nil
}

// meridiemClock converts an hour with its am/pm marker to 24-hour form.
func meridiemClock(hour, minute int, marker string) Clock {
	hour %= 12
	if marker == "pm" {
		hour += 12
	}
	return Clock{Hour: hour, Minute: minute % 60}
}

func optMinute(s string) int {
	if s == "" {
		return 0
	}
	return atoi(s)
}
