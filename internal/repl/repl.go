package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/notexe/reminder-buddy/internal/config"
	"github.com/notexe/reminder-buddy/internal/reminder"
	"github.com/notexe/reminder-buddy/internal/ui"
	"go.uber.org/zap"
)

// lineReader is the part of *readline.Instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

type REPL struct {
	store     *reminder.Store
	config    *config.Config
	location  string
	rl        lineReader
	out       io.Writer
	formatter *ui.Formatter
	markdown  *ui.MarkdownRenderer
	log       *zap.Logger

	mode   reminder.Filter
	view   []reminder.Reminder        // rows of the last printed list, for numeric refs
	source func() []reminder.Reminder // rebuilds view; nil means the active filter
	label  string                     // name of the printed list, e.g. "completed"
	stale  atomic.Bool                // set by store events; view no longer matches the store

	unsubscribe func()
	stopOnce    sync.Once
	pick        func(question string, options []ui.SelectorOption) (int, error)
}

// NewREPL wires a terminal session to store. location describes where the
// reminders are kept and is shown in the welcome banner.
func NewREPL(store *reminder.Store, cfg *config.Config, location string, log *zap.Logger) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	r := newREPL(store, cfg, location, rl, os.Stdout, log)
	r.pick = r.runSelector
	return r, nil
}

func newREPL(store *reminder.Store, cfg *config.Config, location string, rl lineReader, out io.Writer, log *zap.Logger) *REPL {
	if log == nil {
		log = zap.NewNop()
	}

	mode, err := reminder.ParseFilter(cfg.UI.DefaultFilter)
	if err != nil {
		mode = reminder.FilterAll
	}

	r := &REPL{
		store:     store,
		config:    cfg,
		location:  location,
		rl:        rl,
		out:       out,
		formatter: ui.NewFormatter(cfg.UI.ColoredOutput, cfg.UI.DateFormat),
		markdown:  ui.NewMarkdownRenderer(cfg.UI.RenderMarkdown, cfg.UI.ColoredOutput),
		log:       log,
		mode:      mode,
	}
	r.stale.Store(true)
	r.unsubscribe = store.Subscribe(func(reminder.Event) {
		r.stale.Store(true)
	})
	return r
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.Stop()

	r.displayWelcome()

	for {
		if ctx.Err() != nil {
			r.displayGoodbye()
			return nil
		}

		r.rl.SetPrompt(r.formatter.FormatPrompt(r.mode, r.store.Counts()))
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				r.displayGoodbye()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if !isCommand {
			r.displayError(fmt.Errorf("commands start with / (type /help for available commands)"))
			continue
		}

		if command == "/quit" || command == "/exit" || command == "/q" {
			r.displayGoodbye()
			return nil
		}

		if err := r.handleCommand(command, args); err != nil {
			r.displayError(err)
		}
	}
}

// Stop detaches from the store and releases the terminal. It may be called
// from a signal handler while Start is blocked reading input.
func (r *REPL) Stop() {
	r.stopOnce.Do(func() {
		r.unsubscribe()
		_ = r.rl.Close()
	})
}

func (r *REPL) handleCommand(command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/add", "/a":
		return r.handleAdd(args)

	case "/list", "/ls", "/l":
		return r.handleList(args)

	case "/filter", "/f":
		return r.handleFilter(args)

	case "/toggle", "/done", "/t":
		return r.handleToggle(args)

	case "/delete", "/del", "/rm":
		return r.handleDelete(args)

	case "/show", "/s":
		return r.handleShow(args)

	case "/stats":
		r.displayStats()
		return nil

	case "/overdue":
		r.handleOverdue()
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

// currentView returns the rows numeric refs point at. Once a change has made
// the printed list stale it is rebuilt the same way it was first produced,
// so a /list completed keeps numbering completed reminders.
func (r *REPL) currentView() []reminder.Reminder {
	if r.stale.Load() || r.view == nil {
		if r.source != nil {
			r.view = r.source()
		} else {
			r.view = r.store.View(r.mode)
		}
		r.stale.Store(false)
	}
	return r.view
}

// setView records list as the last printed rows and source as the way to
// rebuild them.
func (r *REPL) setView(label string, list []reminder.Reminder, source func() []reminder.Reminder) {
	r.view = list
	r.source = source
	r.label = label
	r.stale.Store(false)
}

func (r *REPL) viewLabel() string {
	if r.source == nil {
		return string(r.mode)
	}
	return r.label
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func quoted(s string) string {
	return `"` + strings.TrimSpace(s) + `"`
}
