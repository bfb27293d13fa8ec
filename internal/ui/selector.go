package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user leaves the selector without choosing.
var ErrCancelled = errors.New("selection cancelled")

// SelectorOption represents a single option in the selector
type SelectorOption struct {
	Label       string
	Description string
}

// Selector is an arrow-key menu over reminders. On a terminal it switches
// stdin to raw mode; otherwise it falls back to a numbered prompt.
type Selector struct {
	question string
	options  []SelectorOption
	selected int
	colored  bool

	in  io.Reader
	out io.Writer

	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	optionStyle   lipgloss.Style
	dimStyle      lipgloss.Style
	questionStyle lipgloss.Style
	hintStyle     lipgloss.Style
}

func NewSelector(question string, options []SelectorOption, colored bool) *Selector {
	return &Selector{
		question: question,
		options:  options,
		colored:  colored,
		in:       os.Stdin,
		out:      os.Stdout,

		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		optionStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		questionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		hintStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

// WithIO replaces stdin and stdout.
func (s *Selector) WithIO(in io.Reader, out io.Writer) *Selector {
	s.in = in
	s.out = out
	return s
}

// Run displays the selector and returns the index of the chosen option.
func (s *Selector) Run() (int, error) {
	if len(s.options) == 0 {
		return -1, ErrCancelled
	}

	f, ok := s.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s.runSimple()
	}
	fd := int(f.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return s.runSimple()
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(s.out, "\033[?25h") // Show cursor
	}()

	fmt.Fprint(s.out, "\033[?25l") // Hide cursor

	totalLines := len(s.options) + 3
	s.printMenu()

	reader := bufio.NewReader(s.in)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return -1, err
		}

		chosen := false

		switch b {
		case 13, 10, ' ': // Enter, Space
			chosen = true
		case 3, 'q': // Ctrl+C
			s.clearMenu(totalLines)
			return -1, ErrCancelled
		case 'j':
			s.moveDown()
		case 'k':
			s.moveUp()
		case 27: // Escape sequence
			b2, _ := reader.ReadByte()
			if b2 == '[' {
				b3, _ := reader.ReadByte()
				switch b3 {
				case 'A':
					s.moveUp()
				case 'B':
					s.moveDown()
				}
			}
		default:
			if b >= '1' && b <= '9' {
				idx := int(b - '1')
				if idx < len(s.options) {
					s.selected = idx
					chosen = true
				}
			}
		}

		s.clearMenu(totalLines)
		if chosen {
			return s.selected, nil
		}
		s.printMenu()
	}
}

func (s *Selector) printMenu() {
	var sb strings.Builder

	if s.colored {
		sb.WriteString(s.questionStyle.Render(s.question))
	} else {
		sb.WriteString(s.question)
	}
	sb.WriteString("\r\n")

	hint := "[j/k or arrows] move  [enter] select  [q] cancel"
	if s.colored {
		sb.WriteString(s.hintStyle.Render(hint))
	} else {
		sb.WriteString(hint)
	}
	sb.WriteString("\r\n\r\n")

	for i, opt := range s.options {
		cursor := "  "
		if i == s.selected {
			cursor = "> "
		}

		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}

		switch {
		case !s.colored:
			sb.WriteString(cursor + label)
		case i == s.selected:
			sb.WriteString(s.cursorStyle.Render(cursor))
			sb.WriteString(s.selectedStyle.Render(label))
		default:
			sb.WriteString(s.dimStyle.Render(cursor))
			sb.WriteString(s.optionStyle.Render(label))
		}
		sb.WriteString("\r\n")
	}

	fmt.Fprint(s.out, sb.String())
}

func (s *Selector) clearMenu(lines int) {
	for i := 0; i < lines; i++ {
		fmt.Fprint(s.out, "\033[A\033[2K\r")
	}
}

// runSimple reads a 1-based number from a line of input. Anything else
// cancels; there is no default choice.
func (s *Selector) runSimple() (int, error) {
	fmt.Fprintln(s.out, s.question)
	for i, opt := range s.options {
		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}
		fmt.Fprintf(s.out, "  [%d] %s\n", i+1, label)
	}
	fmt.Fprint(s.out, "Enter number: ")

	line, err := bufio.NewReader(s.in).ReadString('\n')
	if err != nil && line == "" {
		return -1, ErrCancelled
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(s.options) {
		return -1, ErrCancelled
	}
	return n - 1, nil
}

func (s *Selector) moveUp() {
	if s.selected > 0 {
		s.selected--
	} else {
		s.selected = len(s.options) - 1
	}
}

func (s *Selector) moveDown() {
	if s.selected < len(s.options)-1 {
		s.selected++
	} else {
		s.selected = 0
	}
}
