package repl

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/notexe/reminder-buddy/internal/ui"
	"go.uber.org/zap"
)

const addUsage = "usage: /add <title> @ <due> [:: <description>]"

func (r *REPL) handleAdd(args string) error {
	var (
		in  reminder.Input
		err error
	)
	if args == "" {
		in, err = r.promptInput()
	} else {
		in, err = r.parseInlineAdd(args)
	}
	if errors.Is(err, errAborted) {
		r.displaySystem(err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	in, err = reminder.ValidateInput(in)
	if err != nil {
		return err
	}

	added := r.store.Create(in)
	r.log.Info("reminder added", zap.String("id", added.ID))

	r.displaySuccess("Reminder added! " + quoted(added.Title) + " has been added to your reminders.")
	r.displayInfo(fmt.Sprintf("Due %s %s", r.formatter.FormatDate(added.DueDate),
		r.formatter.FormatBadge(r.formatter.Badge(added.DueDate, r.store.Now()))))
	return nil
}

// parseInlineAdd splits "title @ due :: description".
func (r *REPL) parseInlineAdd(args string) (reminder.Input, error) {
	title, rest, ok := strings.Cut(args, " @ ")
	if !ok {
		return reminder.Input{}, errors.New(addUsage)
	}

	dueText, desc, hasDesc := strings.Cut(rest, " :: ")
	due, err := ParseDue(dueText, r.store.Now())
	if err != nil {
		return reminder.Input{}, err
	}

	in := reminder.Input{Title: title, DueDate: due}
	if hasDesc {
		in.Description = &desc
	}
	return in, nil
}

func (r *REPL) promptInput() (reminder.Input, error) {
	r.displaySystem("New reminder (Ctrl+C to cancel)")

	title, err := r.promptField("Title")
	if err != nil {
		return reminder.Input{}, err
	}
	if title == "" {
		return reminder.Input{}, errAborted
	}

	var due time.Time
	for {
		dueText, err := r.promptField("Due (e.g. tomorrow 18:00)")
		if err != nil {
			return reminder.Input{}, err
		}
		if due, err = ParseDue(dueText, r.store.Now()); err == nil {
			break
		}
		r.displayError(err)
	}

	desc, err := r.promptField("Description (optional)")
	if err != nil {
		return reminder.Input{}, err
	}

	return reminder.Input{Title: title, Description: &desc, DueDate: due}, nil
}

func (r *REPL) handleList(args string) error {
	mode := r.mode
	if args != "" {
		var err error
		if mode, err = reminder.ParseFilter(args); err != nil {
			return err
		}
	}

	list := r.store.View(mode)
	r.displayTabs(mode)
	r.displayList(list, mode)
	r.setView(string(mode), list, func() []reminder.Reminder { return r.store.View(mode) })
	return nil
}

func (r *REPL) handleFilter(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /filter <all|pending|completed> (current: %s)", r.mode)
	}

	mode, err := reminder.ParseFilter(args)
	if err != nil {
		return err
	}
	r.mode = mode
	r.stale.Store(true)
	return r.handleList("")
}

func (r *REPL) handleToggle(args string) error {
	target, err := r.resolve(args, "toggle")
	if err != nil {
		return cancelledIsNil(r, err)
	}

	toggled, ok := r.store.ToggleComplete(target.ID)
	if !ok {
		return fmt.Errorf("reminder %s no longer exists", quoted(target.Title))
	}

	if toggled.Completed {
		r.displaySuccess("Reminder completed! " + quoted(toggled.Title) + " marked as completed.")
	} else {
		r.displaySystem("Reminder reopened. " + quoted(toggled.Title) + " marked as pending.")
	}
	return nil
}

func (r *REPL) handleDelete(args string) error {
	target, err := r.resolve(args, "delete")
	if err != nil {
		return cancelledIsNil(r, err)
	}

	removed, ok := r.store.Delete(target.ID)
	if !ok {
		return fmt.Errorf("reminder %s no longer exists", quoted(target.Title))
	}

	r.displaySystem("Reminder deleted. " + quoted(removed.Title) + " has been removed.")
	return nil
}

func (r *REPL) handleShow(args string) error {
	target, err := r.resolve(args, "show")
	if err != nil {
		return cancelledIsNil(r, err)
	}

	current, ok := r.store.Get(target.ID)
	if !ok {
		return fmt.Errorf("reminder %s no longer exists", quoted(target.Title))
	}

	r.displayDetail(current)
	return nil
}

func (r *REPL) handleOverdue() {
	source := func() []reminder.Reminder {
		return reminder.Overdue(r.store.Snapshot(), r.store.Now())
	}
	overdue := source()
	r.setView("overdue", overdue, source)
	if len(overdue) == 0 {
		r.displayInfo("Nothing is overdue.")
		return
	}

	r.displayHeader(fmt.Sprintf("Overdue (%d)", len(overdue)))
	r.displayList(overdue, reminder.FilterPending)
}

func cancelledIsNil(r *REPL, err error) error {
	if errors.Is(err, ui.ErrCancelled) {
		r.displaySystem("Cancelled.")
		return nil
	}
	return err
}
