package reminder_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateInput_Normalises(t *testing.T) {
	in, err := reminder.ValidateInput(reminder.Input{
		Title:       "  Pay rent  ",
		Description: strPtr("  transfer before noon \n"),
		DueDate:     fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, "Pay rent", in.Title)
	require.NotNil(t, in.Description)
	assert.Equal(t, "transfer before noon", *in.Description)
}

func TestValidateInput_BlankDescriptionIsAbsent(t *testing.T) {
	in, err := reminder.ValidateInput(reminder.Input{Title: "t", Description: strPtr("   "), DueDate: fixedNow})
	require.NoError(t, err)
	assert.Nil(t, in.Description)
}

func TestValidateInput_DoesNotAliasCallerDescription(t *testing.T) {
	desc := " keep me "
	_, err := reminder.ValidateInput(reminder.Input{Title: "t", Description: &desc, DueDate: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, " keep me ", desc)
}

func TestValidateInput_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    reminder.Input
		field string
	}{
		{"empty title", reminder.Input{Title: "", DueDate: fixedNow}, "title"},
		{"blank title", reminder.Input{Title: " \t ", DueDate: fixedNow}, "title"},
		{"long title", reminder.Input{Title: strings.Repeat("x", 201), DueDate: fixedNow}, "title"},
		{"long description", reminder.Input{Title: "t", Description: strPtr(strings.Repeat("d", 2001)), DueDate: fixedNow}, "description"},
		{"zero due date", reminder.Input{Title: "t"}, "dueDate"},
		{"year beyond 9999", reminder.Input{Title: "t", DueDate: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)}, "dueDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reminder.ValidateInput(tt.in)
			require.Error(t, err)

			var ie *reminder.InputError
			require.True(t, errors.As(err, &ie), "got %T", err)
			assert.Equal(t, tt.field, ie.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateInput_AcceptsPastDueDate(t *testing.T) {
	_, err := reminder.ValidateInput(reminder.Input{Title: "t", DueDate: fixedNow.AddDate(-5, 0, 0)})
	assert.NoError(t, err)
}
