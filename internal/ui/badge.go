package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Badge classifies a due date relative to the current day.
type Badge struct {
	Kind  BadgeKind
	Label string
}

type BadgeKind int

const (
	BadgeToday BadgeKind = iota
	BadgeTomorrow
	BadgeOverdue
	BadgeUpcoming
)

var (
	badgeUrgentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(lipgloss.Color("160")).
				Padding(0, 1)

	badgeSoonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("222")).
			Padding(0, 1)

	badgeOutlineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)
)

// DueBadge checks, in order: same calendar day as now, next calendar day,
// already past, otherwise a short "Jan 02" label. Days are taken in loc.
func DueBadge(due, now time.Time, loc *time.Location) Badge {
	if loc == nil {
		loc = time.Local
	}
	due = due.In(loc)
	now = now.In(loc)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, loc)

	switch {
	case dueDay.Equal(today):
		return Badge{Kind: BadgeToday, Label: "Today"}
	case dueDay.Equal(tomorrow):
		return Badge{Kind: BadgeTomorrow, Label: "Tomorrow"}
	case due.Before(now):
		return Badge{Kind: BadgeOverdue, Label: "Overdue"}
	default:
		return Badge{Kind: BadgeUpcoming, Label: due.Format("Jan 02")}
	}
}

// Badge classifies due in the formatter's zone.
func (f *Formatter) Badge(due, now time.Time) Badge {
	return DueBadge(due, now, f.loc)
}

func (f *Formatter) FormatBadge(b Badge) string {
	if !f.colored {
		return "(" + b.Label + ")"
	}
	switch b.Kind {
	case BadgeToday, BadgeOverdue:
		return badgeUrgentStyle.Render(b.Label)
	case BadgeTomorrow:
		return badgeSoonStyle.Render(b.Label)
	default:
		return badgeOutlineStyle.Render(b.Label)
	}
}
