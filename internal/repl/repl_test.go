package repl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/notexe/reminder-buddy/internal/config"
	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/notexe/reminder-buddy/internal/storage"
	"github.com/notexe/reminder-buddy/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// scriptReader replays lines and then reports EOF. An error entry is
// returned instead of a line.
type scriptReader struct {
	lines   []any
	prompts []string
	closed  bool
}

func (s *scriptReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	next := s.lines[0]
	s.lines = s.lines[1:]
	if err, ok := next.(error); ok {
		return "", err
	}
	return next.(string), nil
}

func (s *scriptReader) SetPrompt(p string) { s.prompts = append(s.prompts, p) }
func (s *scriptReader) Close() error       { s.closed = true; return nil }

func testConfig() *config.Config {
	return &config.Config{UI: config.UIConfig{
		DateFormat:    "2006-01-02 15:04",
		DefaultFilter: "all",
	}}
}

func setupTestREPL(t *testing.T, lines ...any) (*REPL, *reminder.Store, *bytes.Buffer, *scriptReader) {
	t.Helper()
	store := reminder.NewStore(reminder.NewPersister(storage.NewMemorySlot(), "", nil),
		reminder.WithClock(func() time.Time { return testNow }))
	t.Cleanup(func() { store.Close() })
	store.Load(context.Background())

	rl := &scriptReader{lines: lines}
	out := &bytes.Buffer{}
	r := newREPL(store, testConfig(), "memory", rl, out, nil)
	r.formatter.WithLocation(time.UTC)
	r.pick = func(string, []ui.SelectorOption) (int, error) {
		t.Fatal("selector opened unexpectedly")
		return -1, nil
	}
	return r, store, out, rl
}

func run(t *testing.T, r *REPL) {
	t.Helper()
	require.NoError(t, r.Start(context.Background()))
}

func TestREPL_InlineAddListToggle(t *testing.T) {
	r, store, out, rl := setupTestREPL(t,
		"/add Pay rent @ tomorrow 18:00 :: bank transfer",
		"/list",
		"/toggle 1",
		"/stats",
		"/quit",
	)
	run(t, r)

	list := store.Snapshot()
	require.Len(t, list, 1)
	assert.Equal(t, "Pay rent", list[0].Title)
	assert.Equal(t, "bank transfer", list[0].DescriptionText())
	assert.True(t, list[0].DueDate.Equal(time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)))
	assert.True(t, list[0].Completed)

	s := out.String()
	assert.Contains(t, s, `Reminder added! "Pay rent" has been added to your reminders.`)
	assert.Contains(t, s, "1. [ ] Pay rent")
	assert.Contains(t, s, "(Tomorrow)")
	assert.Contains(t, s, `Reminder completed! "Pay rent" marked as completed.`)
	assert.Contains(t, s, "1 total | 0 pending | 1 completed")
	assert.Contains(t, s, "Goodbye!")
	assert.True(t, rl.closed)
}

func TestREPL_ToggleTwiceReopens(t *testing.T) {
	r, store, out, _ := setupTestREPL(t,
		"/add Walk dog @ +1h",
		"/toggle 1",
		"/toggle 1",
	)
	run(t, r)

	assert.False(t, store.Snapshot()[0].Completed)
	assert.Contains(t, out.String(), `Reminder reopened. "Walk dog" marked as pending.`)
}

func TestREPL_GuidedAdd(t *testing.T) {
	r, store, out, rl := setupTestREPL(t,
		"/add",
		"  Dentist  ",
		"whenever",
		"+2h",
		"   ",
	)
	run(t, r)

	list := store.Snapshot()
	require.Len(t, list, 1)
	assert.Equal(t, "Dentist", list[0].Title)
	assert.Nil(t, list[0].Description)
	assert.True(t, list[0].DueDate.Equal(testNow.Add(2*time.Hour)))
	assert.Contains(t, out.String(), "unrecognised due date")
	assert.Contains(t, rl.prompts, "Title: ")
}

func TestREPL_GuidedAddCancelled(t *testing.T) {
	r, store, out, _ := setupTestREPL(t,
		"/add",
		"Dentist",
		readline.ErrInterrupt,
		"/stats",
	)
	run(t, r)

	assert.Zero(t, store.Counts().Total)
	assert.Contains(t, out.String(), "cancelled, nothing was added")
	assert.Contains(t, out.String(), "0 total")
}

func TestREPL_AddRejectsInvalidInput(t *testing.T) {
	r, store, out, _ := setupTestREPL(t,
		"/add no due date here",
		"/add "+strings.Repeat("x", 201)+" @ tomorrow",
		"/add Trip @ someday",
	)
	run(t, r)

	assert.Zero(t, store.Counts().Total)
	s := out.String()
	assert.Contains(t, s, "usage: /add")
	assert.Contains(t, s, "invalid title")
	assert.Contains(t, s, "unrecognised due date")
}

func TestREPL_DeleteByIDPrefix(t *testing.T) {
	r, store, out, _ := setupTestREPL(t)
	keep := store.Create(reminder.Input{Title: "keep", DueDate: testNow})
	gone := store.Create(reminder.Input{Title: "gone", DueDate: testNow})
	r.rl = &scriptReader{lines: []any{"/delete " + gone.ID[:8]}}

	run(t, r)

	list := store.Snapshot()
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
	assert.Contains(t, out.String(), `Reminder deleted. "gone" has been removed.`)
}

func TestREPL_RefErrors(t *testing.T) {
	r, store, out, _ := setupTestREPL(t)
	store.Create(reminder.Input{Title: "a", DueDate: testNow})
	r.rl = &scriptReader{lines: []any{
		"/toggle 5",
		"/delete zzz-not-an-id",
		"/show 0",
	}}

	run(t, r)

	s := out.String()
	assert.Contains(t, s, "no reminder #5 in the current list (1-1)")
	assert.Contains(t, s, "no reminder with id zzz-not-an-id")
	assert.Contains(t, s, "no reminder #0")
	assert.False(t, store.Snapshot()[0].Completed)
}

func TestREPL_AmbiguousPrefix(t *testing.T) {
	ids := []string{"abc-111", "abc-222"}
	store := reminder.NewStore(nil, reminder.WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	defer store.Close()
	store.Create(reminder.Input{Title: "a", DueDate: testNow})
	store.Create(reminder.Input{Title: "b", DueDate: testNow})

	out := &bytes.Buffer{}
	r := newREPL(store, testConfig(), "memory", &scriptReader{lines: []any{"/toggle ABC", "/toggle abc-2"}}, out, nil)
	run(t, r)

	assert.Contains(t, out.String(), "id ABC matches 2 reminders, type more characters")
	got, ok := store.Get("abc-222")
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.Equal(t, 1, store.Counts().Pending)
}

func TestREPL_SelectorWhenNoRef(t *testing.T) {
	r, store, out, _ := setupTestREPL(t, "/toggle", "/delete")
	store.Create(reminder.Input{Title: "older", DueDate: testNow.AddDate(0, 0, -2)})
	store.Create(reminder.Input{Title: "newer", DueDate: testNow.AddDate(0, 1, 0)})

	var questions []string
	var offered [][]ui.SelectorOption
	r.pick = func(q string, opts []ui.SelectorOption) (int, error) {
		questions = append(questions, q)
		offered = append(offered, opts)
		if len(questions) == 1 {
			return 1, nil
		}
		return -1, ui.ErrCancelled
	}

	run(t, r)

	require.Len(t, questions, 2)
	assert.Contains(t, questions[0], "toggle")
	assert.Equal(t, "newer", offered[0][0].Label)
	assert.Equal(t, "Overdue, pending", offered[0][1].Description)

	older := store.Snapshot()[1]
	assert.True(t, older.Completed)
	assert.Equal(t, 2, store.Counts().Total)
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestREPL_FilterChangesIndexes(t *testing.T) {
	r, store, out, _ := setupTestREPL(t)
	done := store.Create(reminder.Input{Title: "done", DueDate: testNow})
	store.Create(reminder.Input{Title: "open", DueDate: testNow})
	store.ToggleComplete(done.ID)
	r.rl = &scriptReader{lines: []any{
		"/filter completed",
		"/toggle 1",
		"/filter bogus",
	}}

	run(t, r)

	assert.Equal(t, reminder.FilterCompleted, r.mode)
	assert.Equal(t, 2, store.Counts().Pending)
	s := out.String()
	assert.Contains(t, s, "[Completed (1)]")
	assert.Contains(t, s, "unknown filter: bogus")
}

func TestREPL_ViewRefreshesAfterChange(t *testing.T) {
	r, store, _, _ := setupTestREPL(t)
	first := store.Create(reminder.Input{Title: "first", DueDate: testNow})
	r.rl = &scriptReader{lines: []any{
		"/list",
		"/add second @ +1d",
		"/toggle 1",
	}}

	run(t, r)

	got, ok := store.Get(first.ID)
	require.True(t, ok)
	assert.False(t, got.Completed, "row 1 must be the newest reminder once the list changed")
	assert.True(t, store.Snapshot()[0].Completed)
}

func TestREPL_EmptyListAndOverdue(t *testing.T) {
	r, store, out, _ := setupTestREPL(t, "/list", "/overdue")
	run(t, r)
	assert.Contains(t, out.String(), "No reminders yet")
	assert.Contains(t, out.String(), "Nothing is overdue.")

	r, store, out, _ = setupTestREPL(t)
	late := store.Create(reminder.Input{Title: "late", DueDate: testNow.Add(-48 * time.Hour)})
	store.Create(reminder.Input{Title: "future", DueDate: testNow.Add(48 * time.Hour)})
	r.rl = &scriptReader{lines: []any{"/overdue", "/toggle 1"}}
	run(t, r)

	assert.Contains(t, out.String(), "Overdue (1)")
	got, _ := store.Get(late.ID)
	assert.True(t, got.Completed, "refs after /overdue point at the overdue rows")
}

func TestREPL_RefsFollowListedMode(t *testing.T) {
	r, store, out, _ := setupTestREPL(t,
		"/add Done already @ tomorrow 18:00",
		"/add Keep me @ tomorrow 19:00",
		"/toggle 2",
		"/list completed",
		"/delete 1",
	)
	run(t, r)

	assert.Contains(t, out.String(), `"Done already" has been removed.`)
	remaining := store.Snapshot()
	require.Len(t, remaining, 1)
	assert.Equal(t, "Keep me", remaining[0].Title)
	assert.False(t, remaining[0].Completed)
}

func TestREPL_RefsRebuildListedModeAfterChange(t *testing.T) {
	r, store, _, _ := setupTestREPL(t)
	first := store.Create(reminder.Input{Title: "first done", DueDate: testNow.Add(time.Hour)})
	store.Create(reminder.Input{Title: "open", DueDate: testNow.Add(2 * time.Hour)})
	second := store.Create(reminder.Input{Title: "second done", DueDate: testNow.Add(3 * time.Hour)})
	store.ToggleComplete(first.ID)
	store.ToggleComplete(second.ID)

	r.rl = &scriptReader{lines: []any{"/list completed", "/delete 1", "/delete 1"}}
	run(t, r)

	remaining := store.Snapshot()
	require.Len(t, remaining, 1)
	assert.Equal(t, "open", remaining[0].Title)
}

func TestREPL_EmptyOverdueClearsRefs(t *testing.T) {
	r, store, out, _ := setupTestREPL(t)
	store.Create(reminder.Input{Title: "future", DueDate: testNow.Add(48 * time.Hour)})
	r.rl = &scriptReader{lines: []any{"/list", "/overdue", "/delete 1"}}
	run(t, r)

	assert.Contains(t, out.String(), "the overdue list is empty")
	assert.Len(t, store.Snapshot(), 1)
}

func TestREPL_ShowRendersDetail(t *testing.T) {
	r, store, out, _ := setupTestREPL(t)
	desc := "bring the insurance card"
	rem := store.Create(reminder.Input{Title: "Dentist", Description: &desc, DueDate: testNow.Add(time.Hour)})
	r.rl = &scriptReader{lines: []any{"/show 1"}}

	run(t, r)

	s := out.String()
	assert.Contains(t, s, "Dentist")
	assert.Contains(t, s, rem.ID)
	assert.Contains(t, s, "bring the insurance card")
}

func TestREPL_RejectsPlainTextAndUnknownCommands(t *testing.T) {
	r, _, out, _ := setupTestREPL(t, "hello", "/frobnicate")
	run(t, r)

	assert.Contains(t, out.String(), "commands start with /")
	assert.Contains(t, out.String(), "unknown command: /frobnicate")
}

func TestREPL_StopsWhenContextDone(t *testing.T) {
	r, _, out, rl := setupTestREPL(t, "/stats")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.Start(ctx))
	assert.Len(t, rl.lines, 1, "no input is read once the context is done")
	assert.Contains(t, out.String(), "Goodbye!")
}
