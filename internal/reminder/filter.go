package reminder

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects which reminders a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Filters lists every mode in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// ParseFilter accepts a mode name in any case. An empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending:
		return FilterPending, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("unknown filter: %s (available: all, pending, completed)", s)
	}
}

// Match reports whether r belongs to the filter. Unknown modes match everything.
func (f Filter) Match(r Reminder) bool {
	switch f {
	case FilterPending:
		return !r.Completed
	case FilterCompleted:
		return r.Completed
	default:
		return true
	}
}

// Label is the capitalised mode name used in headings.
func (f Filter) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Apply returns the reminders of list that match mode, in their original
// order. list is never modified; the result is a fresh slice.
func Apply(list []Reminder, mode Filter) []Reminder {
	out := make([]Reminder, 0, len(list))
	for _, r := range list {
		if mode.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Overdue returns pending reminders due strictly before now, in list order.
func Overdue(list []Reminder, now time.Time) []Reminder {
	var out []Reminder
	for _, r := range list {
		if !r.Completed && r.DueDate.Before(now) {
			out = append(out, r)
		}
	}
	return out
}

// CountsOf tallies list.
func CountsOf(list []Reminder) Counts {
	c := Counts{Total: len(list)}
	for _, r := range list {
		if !r.Completed {
			c.Pending++
		}
	}
	return c
}

// CountFor returns how many reminders mode would show.
func (c Counts) CountFor(mode Filter) int {
	switch mode {
	case FilterPending:
		return c.Pending
	case FilterCompleted:
		return c.Completed()
	default:
		return c.Total
	}
}
