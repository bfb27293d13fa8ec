package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/notexe/reminder-buddy/internal/reminder"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")). // Yellow
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Strikethrough(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("81")).
			Bold(true).
			Padding(0, 1)
)

const defaultDateFormat = "Jan 02, 2006 at 03:04 PM"

type Formatter struct {
	colored    bool
	dateFormat string
	loc        *time.Location
}

// NewFormatter returns a formatter that prints dates with dateFormat in the
// local time zone. An empty dateFormat uses the default layout.
func NewFormatter(colored bool, dateFormat string) *Formatter {
	if dateFormat == "" {
		dateFormat = defaultDateFormat
	}
	return &Formatter{
		colored:    colored,
		dateFormat: dateFormat,
		loc:        time.Local,
	}
}

// WithLocation changes the zone dates are shown in.
func (f *Formatter) WithLocation(loc *time.Location) *Formatter {
	if loc != nil {
		f.loc = loc
	}
	return f
}

func (f *Formatter) Colored() bool {
	return f.colored
}

func (f *Formatter) render(style lipgloss.Style, s string) string {
	if f.colored {
		return style.Render(s)
	}
	return s
}

func (f *Formatter) FormatError(err error) string {
	return f.render(ErrorStyle, "Error: ") + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	return f.render(InfoStyle, info)
}

func (f *Formatter) FormatSystem(msg string) string {
	return f.render(SystemStyle, msg)
}

func (f *Formatter) FormatSuccess(msg string) string {
	return f.render(SuccessStyle, msg)
}

func (f *Formatter) FormatWarning(msg string) string {
	return f.render(WarningStyle, "Warning: ") + msg
}

// FormatDate prints t in the formatter's zone and layout.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.In(f.loc).Format(f.dateFormat)
}

// FormatStats renders the header counters, e.g. "3 total | 2 pending | 1 completed".
func (f *Formatter) FormatStats(c reminder.Counts) string {
	total := fmt.Sprintf("%d total", c.Total)
	pending := fmt.Sprintf("%d pending", c.Pending)
	completed := fmt.Sprintf("%d completed", c.Completed())

	if !f.colored {
		return total + " | " + pending + " | " + completed
	}
	sep := DimStyle.Render(" | ")
	return HeaderStyle.Render(total) + sep + InfoStyle.Render(pending) + sep + SuccessStyle.Render(completed)
}

// FormatTabs renders one tab per filter mode with its count; active is highlighted.
func (f *Formatter) FormatTabs(active reminder.Filter, c reminder.Counts) string {
	tabs := make([]string, 0, len(reminder.Filters))
	for _, mode := range reminder.Filters {
		label := fmt.Sprintf("%s (%d)", mode.Label(), c.CountFor(mode))
		switch {
		case !f.colored && mode == active:
			tabs = append(tabs, "["+label+"]")
		case !f.colored:
			tabs = append(tabs, " "+label+" ")
		case mode == active:
			tabs = append(tabs, ActiveTabStyle.Render(label))
		default:
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// FormatEmpty is shown when a view has no reminders.
func (f *Formatter) FormatEmpty(mode reminder.Filter) string {
	var title, hint string
	switch mode {
	case reminder.FilterCompleted:
		title = "No completed reminders"
		hint = `Switch to "pending" to see other reminders.`
	case reminder.FilterPending:
		title = "No pending reminders"
		hint = `Switch to "all" to see other reminders.`
	default:
		title = "No reminders yet"
		hint = "Add your first reminder with /add to get started!"
	}
	return f.render(HeaderStyle, title) + "\n" + f.render(DimStyle, hint)
}

// FormatLine renders one numbered list row.
func (f *Formatter) FormatLine(n int, r reminder.Reminder, now time.Time) string {
	check := "[ ]"
	title := r.Title
	if r.Completed {
		check = "[x]"
		title = f.render(DoneStyle, title)
	} else if f.colored {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}

	badge := DueBadge(r.DueDate, now, f.loc)
	rel := humanize.RelTime(r.DueDate, now, "ago", "from now")

	line := fmt.Sprintf("%3d. %s %s  %s %s", n, check, title, f.FormatBadge(badge), f.render(DimStyle, rel))
	if d := r.DescriptionText(); d != "" {
		line += "\n       " + f.render(DimStyle, firstLine(d))
	}
	return line
}

// FormatList renders a filtered view, or the empty state when list is empty.
func (f *Formatter) FormatList(list []reminder.Reminder, mode reminder.Filter, now time.Time) string {
	if len(list) == 0 {
		return f.FormatEmpty(mode)
	}

	lines := make([]string, len(list))
	for i, r := range list {
		lines[i] = f.FormatLine(i+1, r, now)
	}
	return strings.Join(lines, "\n")
}

// FormatDetail renders every field of r. description is the already rendered
// description body, if any.
func (f *Formatter) FormatDetail(r reminder.Reminder, now time.Time, description string) string {
	label := func(s string) string {
		return f.render(DimStyle, fmt.Sprintf("%-10s", s))
	}

	status := f.render(InfoStyle, "pending")
	if r.Completed {
		status = f.render(SuccessStyle, "completed")
	}

	lines := []string{
		f.render(HeaderStyle, r.Title),
		"",
		label("Status") + status,
		label("Due") + f.FormatDate(r.DueDate) + "  " + f.FormatBadge(DueBadge(r.DueDate, now, f.loc)) +
			" " + f.render(DimStyle, humanize.RelTime(r.DueDate, now, "ago", "from now")),
		label("Created") + f.FormatDate(r.CreatedAt),
		label("ID") + f.render(AccentStyle, r.ID),
	}
	if description != "" {
		lines = append(lines, "", description)
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatWelcome(location string, c reminder.Counts) string {
	if !f.colored {
		lines := []string{
			"",
			"Reminder Buddy",
			fmt.Sprintf("Storage: %s", location),
			f.FormatStats(c),
			"Type /help for commands",
			"",
		}
		return strings.Join(lines, "\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	body := strings.Join([]string{
		HeaderStyle.Render("Reminder Buddy"),
		labelStyle.Render("Storage: ") + valueStyle.Render(location),
		f.FormatStats(c),
		"",
		subtitleStyle.Render("Type /help for commands"),
	}, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Render(body)

	return "\n" + box + "\n"
}

func (f *Formatter) FormatHelp() string {
	type entry struct{ cmd, desc string }
	sections := []struct {
		title   string
		entries []entry
	}{
		{"Reminders", []entry{
			{"/add", "Add a reminder (guided)"},
			{"/add <title> @ <due> [:: <description>]", "Add a reminder in one line"},
			{"/toggle [ref]", "Mark completed or reopen"},
			{"/delete [ref]", "Delete a reminder"},
			{"/show [ref]", "Show reminder details"},
		}},
		{"Views", []entry{
			{"/list [all|pending|completed]", "List reminders"},
			{"/filter <all|pending|completed>", "Change the active filter"},
			{"/overdue", "List pending reminders past due"},
			{"/stats", "Show counts"},
		}},
		{"General", []entry{
			{"/help", "Show this help"},
			{"/quit", "Exit"},
		}},
	}
	tips := []string{
		"ref is a number from the last list or the start of an ID",
		"due accepts: today 18:00, tomorrow, 2025-06-01 09:30, +2h, +3d",
		"Ctrl+C or Ctrl+D to exit",
	}

	if !f.colored {
		lines := []string{"", "Commands:"}
		for _, s := range sections {
			for _, e := range s.entries {
				lines = append(lines, fmt.Sprintf("  %-42s - %s", e.cmd, e.desc))
			}
		}
		lines = append(lines, "", "Tips:")
		for _, t := range tips {
			lines = append(lines, "  "+t)
		}
		return strings.Join(append(lines, ""), "\n")
	}

	cmdStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("147")).Bold(true)
	tipStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	lines := []string{"", HeaderStyle.Render("Commands")}
	for _, s := range sections {
		lines = append(lines, "", sectionStyle.Render(s.title))
		for _, e := range s.entries {
			lines = append(lines, "  "+cmdStyle.Render(e.cmd)+" "+descStyle.Render(e.desc))
		}
	}
	lines = append(lines, "", HeaderStyle.Render("Tips"))
	for _, t := range tips {
		lines = append(lines, tipStyle.Render("  "+t))
	}
	return strings.Join(append(lines, ""), "\n")
}

// FormatPrompt shows the active filter and pending count, e.g. "pending 2 > ".
func (f *Formatter) FormatPrompt(mode reminder.Filter, c reminder.Counts) string {
	if !f.colored {
		return fmt.Sprintf("%s %d > ", mode, c.CountFor(mode))
	}
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	arrowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	return promptStyle.Render(fmt.Sprintf("%s %d", mode, c.CountFor(mode))) + arrowStyle.Render(" > ")
}

// FormatFieldPrompt is used by the guided add flow.
func (f *Formatter) FormatFieldPrompt(field string) string {
	return f.render(AccentStyle, field+": ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
