package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/notexe/reminder-buddy/internal/ui"
)

// resolve turns a command argument into a reminder. An empty argument opens
// the selector over the current view, a number picks a row of the current
// view, and anything else is matched as a case-insensitive ID prefix.
func (r *REPL) resolve(args, verb string) (reminder.Reminder, error) {
	if args == "" {
		return r.choose(verb)
	}

	if n, err := strconv.Atoi(args); err == nil {
		view := r.currentView()
		if len(view) == 0 {
			return reminder.Reminder{}, fmt.Errorf("the %s list is empty", r.viewLabel())
		}
		if n < 1 || n > len(view) {
			return reminder.Reminder{}, fmt.Errorf("no reminder #%d in the current list (1-%d)", n, len(view))
		}
		return view[n-1], nil
	}

	prefix := strings.ToLower(args)
	var matches []reminder.Reminder
	for _, rem := range r.store.Snapshot() {
		if strings.HasPrefix(strings.ToLower(rem.ID), prefix) {
			matches = append(matches, rem)
		}
	}

	switch len(matches) {
	case 0:
		return reminder.Reminder{}, fmt.Errorf("no reminder with id %s", args)
	case 1:
		return matches[0], nil
	default:
		return reminder.Reminder{}, fmt.Errorf("id %s matches %s, type more characters", args, plural(len(matches), "reminder"))
	}
}

func (r *REPL) choose(verb string) (reminder.Reminder, error) {
	view := r.currentView()
	if len(view) == 0 {
		return reminder.Reminder{}, fmt.Errorf("nothing to %s in the %s list", verb, r.viewLabel())
	}

	now := r.store.Now()
	options := make([]ui.SelectorOption, len(view))
	for i, rem := range view {
		options[i] = ui.SelectorOption{
			Label:       rem.Title,
			Description: fmt.Sprintf("%s, %s", r.formatter.Badge(rem.DueDate, now).Label, rem.Status()),
		}
	}

	idx, err := r.pick(fmt.Sprintf("Which reminder do you want to %s?", verb), options)
	if err != nil {
		return reminder.Reminder{}, err
	}
	return view[idx], nil
}
