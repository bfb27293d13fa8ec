package repl

import (
	"fmt"

	"github.com/notexe/reminder-buddy/internal/reminder"
)

func (r *REPL) displayError(err error) {
	fmt.Fprintln(r.out, r.formatter.FormatError(err))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayWelcome() {
	fmt.Fprint(r.out, r.formatter.FormatWelcome(r.location, r.store.Counts()))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayGoodbye() {
	fmt.Fprintln(r.out, "\nGoodbye!")
}

func (r *REPL) displayHelp() {
	fmt.Fprint(r.out, r.formatter.FormatHelp())
}

func (r *REPL) displayInfo(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatInfo(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displaySystem(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatSystem(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displaySuccess(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatSuccess(msg))
}

// DisplayWarning prints a warning outside the command loop, e.g. when stored
// reminders could not all be loaded.
func (r *REPL) DisplayWarning(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatWarning(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayHeader(title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.formatter.FormatInfo(title))
}

func (r *REPL) displayStats() {
	fmt.Fprintln(r.out, r.formatter.FormatStats(r.store.Counts()))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayTabs(active reminder.Filter) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.formatter.FormatTabs(active, r.store.Counts()))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayList(list []reminder.Reminder, mode reminder.Filter) {
	fmt.Fprintln(r.out, r.formatter.FormatList(list, mode, r.store.Now()))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayDetail(rem reminder.Reminder) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.formatter.FormatDetail(rem, r.store.Now(), r.markdown.Render(rem.DescriptionText())))
	fmt.Fprintln(r.out)
}
