package reminder_test

import (
	"strings"
	"testing"
	"time"

	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_UsesCamelCaseKeysAndUTC(t *testing.T) {
	desc := "call first"
	due := time.Date(2025, 6, 1, 20, 15, 0, 500, time.FixedZone("PDT", -7*3600))
	data, err := reminder.Encode([]reminder.Reminder{{
		ID:          "r1",
		Title:       "Dentist",
		Description: &desc,
		DueDate:     due,
		CreatedAt:   fixedNow,
	}})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"id":"r1"`)
	assert.Contains(t, s, `"dueDate":"2025-06-02T03:15:00.0000005Z"`)
	assert.Contains(t, s, `"createdAt":"2025-03-14T09:30:00.123456789Z"`)
	assert.Contains(t, s, `"completed":false`)
	assert.Contains(t, s, `"description":"call first"`)
}

func TestEncode_OmitsAbsentDescription(t *testing.T) {
	data, err := reminder.Encode([]reminder.Reminder{{ID: "r1", Title: "t", DueDate: fixedNow, CreatedAt: fixedNow}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "description")
}

func TestEncode_EmptyListIsArray(t *testing.T) {
	data, err := reminder.Encode([]reminder.Reminder{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = reminder.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecode_RoundTripPreservesInstants(t *testing.T) {
	desc := ""
	in := []reminder.Reminder{
		{ID: "b", Title: "second", DueDate: fixedNow.Add(time.Nanosecond), CreatedAt: fixedNow, Completed: true},
		{ID: "a", Title: "first", Description: &desc, DueDate: fixedNow.Add(-72 * time.Hour), CreatedAt: fixedNow},
	}

	data, err := reminder.Encode(in)
	require.NoError(t, err)
	out, skipped, err := reminder.Decode(data)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, in, out)
}

func TestDecode_EmptyValues(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]"} {
		list, skipped, err := reminder.Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.Empty(t, skipped, raw)
		assert.NotNil(t, list, raw)
		assert.Empty(t, list, raw)
	}
}

func TestDecode_NotAnArray(t *testing.T) {
	for _, raw := range []string{"{not json", `{"id":"a"}`, `"text"`, "42"} {
		list, _, err := reminder.Decode([]byte(raw))
		assert.ErrorIs(t, err, reminder.ErrCorrupt, raw)
		assert.Empty(t, list, raw)
	}
}

func TestDecode_AcceptsForeignTimestamps(t *testing.T) {
	blob := `[
		{"id":"js","title":"from millis","dueDate":1735725600000,"completed":false,"createdAt":1735639200000},
		{"id":"py","title":"naive iso","dueDate":"2025-01-01T10:00:00.250000","completed":true,"createdAt":"2024-12-31 10:00:00"},
		{"id":"off","title":"with offset","dueDate":"2025-01-01T12:00:00+02:00","completed":false,"createdAt":"2024-12-31T10:00:00Z"}
	]`

	list, skipped, err := reminder.Decode([]byte(blob))
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, list, 3)

	assert.True(t, list[0].DueDate.Equal(time.UnixMilli(1735725600000)))
	assert.True(t, list[0].CreatedAt.Equal(time.UnixMilli(1735639200000)))

	wantDue := time.Date(2025, 1, 1, 10, 0, 0, 250_000_000, time.Local)
	assert.True(t, list[1].DueDate.Equal(wantDue))
	wantCreated := time.Date(2024, 12, 31, 10, 0, 0, 0, time.Local)
	assert.True(t, list[1].CreatedAt.Equal(wantCreated))

	assert.True(t, list[2].DueDate.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)))
	for _, r := range list {
		assert.Equal(t, time.UTC, r.DueDate.Location())
	}
}

func TestDecode_SkipsMalformedRecords(t *testing.T) {
	valid := `{"id":"ok","title":"fine","dueDate":"2025-01-01T10:00:00Z","completed":false,"createdAt":"2024-12-01T10:00:00Z"}`
	tests := []struct {
		name    string
		record  string
		wantErr error
		wantID  string
	}{
		{"missing id", `{"title":"x","dueDate":"2025-01-01T10:00:00Z","completed":false,"createdAt":"2024-12-01T10:00:00Z"}`, reminder.ErrMissingField, ""},
		{"missing title", `{"id":"t1","dueDate":"2025-01-01T10:00:00Z","completed":false,"createdAt":"2024-12-01T10:00:00Z"}`, reminder.ErrMissingField, "t1"},
		{"missing completed", `{"id":"c1","title":"x","dueDate":"2025-01-01T10:00:00Z","createdAt":"2024-12-01T10:00:00Z"}`, reminder.ErrMissingField, "c1"},
		{"missing createdAt", `{"id":"m1","title":"x","dueDate":"2025-01-01T10:00:00Z","completed":false}`, reminder.ErrMissingField, "m1"},
		{"null dueDate", `{"id":"n1","title":"x","dueDate":null,"completed":false,"createdAt":"2024-12-01T10:00:00Z"}`, reminder.ErrMissingField, "n1"},
		{"bad dueDate", `{"id":"d1","title":"x","dueDate":"soon","completed":false,"createdAt":"2024-12-01T10:00:00Z"}`, nil, "d1"},
		{"wrong type", `{"id":"w1","title":"x","dueDate":"2025-01-01T10:00:00Z","completed":"yes","createdAt":"2024-12-01T10:00:00Z"}`, nil, ""},
		{"not an object", `"just a string"`, nil, ""},
		{"dueDate past year 9999", `{"id":"y1","title":"x","dueDate":1e15,"completed":false,"createdAt":"2024-12-01T10:00:00Z"}`, nil, "y1"},
		{"createdAt before year 0", `{"id":"y2","title":"x","dueDate":"2025-01-01T10:00:00Z","completed":false,"createdAt":-1e14}`, nil, "y2"},
		{"dueDate overflows int64", `{"id":"y3","title":"x","dueDate":1e300,"completed":false,"createdAt":"2024-12-01T10:00:00Z"}`, nil, "y3"},
		{"duplicate id", strings.Replace(valid, "fine", "again", 1), reminder.ErrDuplicateID, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := "[" + valid + "," + tt.record + "]"
			list, skipped, err := reminder.Decode([]byte(blob))
			require.NoError(t, err)

			require.Len(t, list, 1)
			assert.Equal(t, "ok", list[0].ID)
			assert.Equal(t, "fine", list[0].Title)

			require.Len(t, skipped, 1)
			assert.Equal(t, 1, skipped[0].Index)
			assert.Equal(t, tt.wantID, skipped[0].ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, skipped[0], tt.wantErr)
			}
		})
	}
}

func TestDecode_AcceptedTimestampsSurviveEncode(t *testing.T) {
	blob := `[
		{"id":"lo","title":"first","dueDate":-62167219200000,"completed":false,"createdAt":"2024-12-01T10:00:00Z"},
		{"id":"hi","title":"last","dueDate":253402300799999,"completed":false,"createdAt":"2024-12-01T10:00:00Z"}
	]`
	list, skipped, err := reminder.Decode([]byte(blob))
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, list, 2)

	data, err := reminder.Encode(list)
	require.NoError(t, err)

	again, skipped, err := reminder.Decode(data)
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, again, 2)
	assert.True(t, list[0].DueDate.Equal(again[0].DueDate))
	assert.True(t, list[1].DueDate.Equal(again[1].DueDate))
}
