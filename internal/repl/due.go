package repl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Hour used when a due date names a day but no time.
const defaultDueHour = 9

var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDue reads a due date typed at the prompt. Relative and zone-less forms
// are resolved in now's location:
//
//	today | tomorrow [HH:MM]
//	HH:MM                      today at that time
//	2006-01-02 [HH:MM]
//	RFC 3339
//	+30m | +2h | +3d | +1w
func ParseDue(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("due date is required")
	}
	loc := now.Location()
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "+") {
		return parseOffset(lower, now)
	}

	for _, day := range []struct {
		word   string
		offset int
	}{{"today", 0}, {"tomorrow", 1}} {
		if lower != day.word && !strings.HasPrefix(lower, day.word+" ") {
			continue
		}
		base := now.AddDate(0, 0, day.offset)
		hour, minute := defaultDueHour, 0
		if rest := strings.TrimSpace(lower[len(day.word):]); rest != "" {
			var err error
			if hour, minute, err = parseClock(rest); err != nil {
				return time.Time{}, err
			}
		}
		return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, loc), nil
	}

	if hour, minute, err := parseClock(lower); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), defaultDueHour, 0, 0, 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("unrecognised due date %q (try: tomorrow 18:00, 2025-06-01 09:30, +2h)", s)
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

func parseOffset(s string, now time.Time) (time.Time, error) {
	body := s[1:]
	if len(body) < 2 {
		return time.Time{}, fmt.Errorf("invalid offset %q", s)
	}

	unit := body[len(body)-1]
	switch unit {
	case 'd', 'w':
		n, err := strconv.Atoi(body[:len(body)-1])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid offset %q", s)
		}
		if unit == 'w' {
			n *= 7
		}
		return now.AddDate(0, 0, n), nil
	default:
		d, err := time.ParseDuration(body)
		if err != nil || d < 0 {
			return time.Time{}, fmt.Errorf("invalid offset %q", s)
		}
		return now.Add(d), nil
	}
}
