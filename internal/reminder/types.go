package reminder

import "time"

// Reminder is a task with a due date. Only Completed ever changes after
// creation.
type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DescriptionText returns the description or "" when it is absent.
func (r Reminder) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// Status reports "completed" or "pending".
func (r Reminder) Status() string {
	if r.Completed {
		return string(FilterCompleted)
	}
	return string(FilterPending)
}

func (r Reminder) clone() Reminder {
	if r.Description != nil {
		d := *r.Description
		r.Description = &d
	}
	return r
}

// Input holds the caller-supplied fields of a new reminder.
type Input struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
}

// Counts are derived from the current list on every call.
type Counts struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
}

func (c Counts) Completed() int {
	return c.Total - c.Pending
}

// EventKind identifies what changed in the store.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventCreated
	EventToggled
	EventDeleted
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventCreated:
		return "created"
	case EventToggled:
		return "toggled"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after a mutation. Reminder is the affected
// entry (zero for EventLoaded) and Counts reflect the list after the change.
type Event struct {
	Kind     EventKind
	Reminder Reminder
	Counts   Counts
}

// Listener receives store events. It runs synchronously on the goroutine that
// performed the mutation.
type Listener func(Event)
