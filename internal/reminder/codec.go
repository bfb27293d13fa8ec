package reminder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Timestamps are stored as RFC 3339 with nanoseconds in UTC.
const timeLayout = time.RFC3339Nano

// Layouts accepted on read in addition to timeLayout. Zone-less values are
// read as local time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

var (
	// ErrCorrupt means the stored value is not a JSON array of records.
	ErrCorrupt = errors.New("stored reminders are not a JSON array")
	// ErrDuplicateID marks a record whose id was already seen earlier in the list.
	ErrDuplicateID = errors.New("duplicate reminder id")
	// ErrMissingField marks a record lacking a required field.
	ErrMissingField = errors.New("missing field")
)

// RecordError reports one record skipped during Decode.
type RecordError struct {
	Index int
	ID    string
	Err   error
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

type storedReminder struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	DueDate     string  `json:"dueDate"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
}

// wireReminder mirrors storedReminder with every field optional so missing
// fields can be told apart from zero values.
type wireReminder struct {
	ID          *string         `json:"id"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	DueDate     json.RawMessage `json:"dueDate"`
	Completed   *bool           `json:"completed"`
	CreatedAt   json.RawMessage `json:"createdAt"`
}

// Encode serialises list as a JSON array in list order.
func Encode(list []Reminder) ([]byte, error) {
	out := make([]storedReminder, len(list))
	for i, r := range list {
		out[i] = storedReminder{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			DueDate:     r.DueDate.UTC().Format(timeLayout),
			Completed:   r.Completed,
			CreatedAt:   r.CreatedAt.UTC().Format(timeLayout),
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminders: %w", err)
	}
	return data, nil
}

// Decode parses a stored list. Records that fail validation are skipped and
// reported; the rest are returned in stored order. The error is non-nil only
// when data is not a JSON array at all, in which case no reminders are
// returned.
func Decode(data []byte) ([]Reminder, []*RecordError, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Reminder{}, nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return []Reminder{}, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	reminders := make([]Reminder, 0, len(raw))
	var skipped []*RecordError
	seen := make(map[string]struct{}, len(raw))

	for i, item := range raw {
		r, err := decodeRecord(item)
		if err != nil {
			skipped = append(skipped, &RecordError{Index: i, ID: r.ID, Err: err})
			continue
		}
		if _, dup := seen[r.ID]; dup {
			skipped = append(skipped, &RecordError{Index: i, ID: r.ID, Err: ErrDuplicateID})
			continue
		}
		seen[r.ID] = struct{}{}
		reminders = append(reminders, r)
	}

	return reminders, skipped, nil
}

// decodeRecord returns a partially filled Reminder alongside any error so the
// caller can report the id of a bad record.
func decodeRecord(item json.RawMessage) (Reminder, error) {
	var w wireReminder
	if err := json.Unmarshal(item, &w); err != nil {
		return Reminder{}, fmt.Errorf("malformed record: %w", err)
	}

	var r Reminder
	if w.ID == nil || *w.ID == "" {
		return r, fmt.Errorf("id: %w", ErrMissingField)
	}
	r.ID = *w.ID

	if w.Title == nil || *w.Title == "" {
		return r, fmt.Errorf("title: %w", ErrMissingField)
	}
	r.Title = *w.Title
	r.Description = w.Description

	if w.Completed == nil {
		return r, fmt.Errorf("completed: %w", ErrMissingField)
	}
	r.Completed = *w.Completed

	due, err := parseTimestamp(w.DueDate)
	if err != nil {
		return r, fmt.Errorf("dueDate: %w", err)
	}
	r.DueDate = due

	created, err := parseTimestamp(w.CreatedAt)
	if err != nil {
		return r, fmt.Errorf("createdAt: %w", err)
	}
	r.CreatedAt = created

	return r, nil
}

// Unix milliseconds of 0000-01-01 and 9999-12-31T23:59:59.999Z. Encode can
// only write years in that range.
const (
	minUnixMilli = -62167219200000
	maxUnixMilli = 253402300799999
)

// checkYear rejects instants Encode could not write back.
func checkYear(t time.Time) (time.Time, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return time.Time{}, fmt.Errorf("timestamp %s outside years 0000-9999", t.Format(time.RFC3339))
	}
	return t, nil
}

// parseTimestamp accepts an RFC 3339 string, a zone-less ISO string or a
// number of Unix milliseconds. The result is always UTC.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, ErrMissingField
	}

	if raw[0] != '"' {
		ms, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.IsNaN(ms) || ms < minUnixMilli || ms > maxUnixMilli {
			return time.Time{}, fmt.Errorf("invalid timestamp %s", raw)
		}
		return checkYear(time.UnixMilli(int64(ms)).UTC())
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %s: %w", raw, err)
	}

	if t, err := time.Parse(timeLayout, s); err == nil {
		return checkYear(t.UTC())
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return checkYear(t.UTC())
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
