package repl

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/notexe/reminder-buddy/internal/ui"
)

// errAborted ends a guided prompt without saving anything.
var errAborted = errors.New("cancelled, nothing was added")

func (r *REPL) readInput() (string, error) {
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (r *REPL) parseCommand(input string) (bool, string, string) {
	if !strings.HasPrefix(input, "/") {
		return false, "", ""
	}

	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return true, command, args
}

// promptField asks for one value of the guided add flow. Ctrl+C or Ctrl+D
// aborts the whole flow.
func (r *REPL) promptField(field string) (string, error) {
	r.rl.SetPrompt(r.formatter.FormatFieldPrompt(field))
	line, err := r.rl.Readline()
	if err != nil {
		if isEOF(err) {
			return "", errAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// runSelector hands the terminal to the selector. readline keeps reading
// stdin in the background, so it is closed for the duration and reopened.
func (r *REPL) runSelector(question string, options []ui.SelectorOption) (int, error) {
	_ = r.rl.Close()
	defer func() {
		if rl, err := setupReadline(); err == nil {
			r.rl = rl
		}
	}()

	return ui.NewSelector(question, options, r.config.UI.ColoredOutput).Run()
}

func setupReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              "> ",
		HistoryFile:         "",
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	return rl, err
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}
