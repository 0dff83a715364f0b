// Package console drives a fight from a line-oriented terminal: it reads
// commands and menu picks from a reader and prints styled narration.
package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/command"
)

// Console implements combat.Input and combat.Display over a reader/writer pair.
type Console struct {
	reader   *bufio.Reader
	mu       sync.Mutex
	out      io.Writer
	registry *command.Registry
	logger   *zap.Logger

	// Color enables ANSI styling of narration.
	Color bool
	// Status, when set, is printed before each command prompt.
	Status func() string

	lastTurn int
}

// New creates a Console reading from in and writing to out.
//
// Precondition: in, out and registry must be non-nil.
// Postcondition: Returns a Console with color disabled.
func New(in io.Reader, out io.Writer, registry *command.Registry, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		reader:   bufio.NewReaderSize(in, 4096),
		out:      out,
		registry: registry,
		logger:   logger,
	}
}

// ReadLine reads a single line of input. The returned line does not include
// the trailing \r\n, and control characters other than tab are dropped.
//
// Postcondition: Returns the next line of text input, or an error (including io.EOF).
func (c *Console) ReadLine() (string, error) {
	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return line.String(), err
		}
		if b == '\n' {
			break
		}
		if b == '\r' {
			next, err := c.reader.Peek(1)
			if err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = c.reader.ReadByte()
			}
			break
		}
		if b < 32 && b != '\t' {
			continue
		}
		line.WriteByte(b)
	}
	return line.String(), nil
}

// WriteLine prints text followed by a newline.
func (c *Console) WriteLine(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.Color {
		text = StripANSI(text)
	}
	if _, err := fmt.Fprintln(c.out, text); err != nil {
		c.logger.Warn("writing to console failed", zap.Error(err))
	}
}

func (c *Console) prompt(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, text)
}

// Show implements combat.Display. A header is printed whenever the turn
// number advances.
func (c *Console) Show(e combat.Event) {
	if e.Turn > c.lastTurn {
		c.lastTurn = e.Turn
		c.WriteLine(Colorf(Dim, "-- Turn %d --", e.Turn))
	}
	c.WriteLine(Colorize(colorFor(e.Kind), e.Text))
}

// NextCommand implements combat.Input. Help is answered locally and the
// player is asked again; unknown lines are passed to the engine as
// combat.CmdInvalid.
func (c *Console) NextCommand() (combat.Command, error) {
	for {
		if c.Status != nil {
			c.WriteLine(c.Status())
		}
		c.prompt("> ")
		line, err := c.ReadLine()
		if err != nil {
			return combat.Command{}, fmt.Errorf("reading command: %w", err)
		}
		cmd, def := c.registry.Interpret(line)
		if def != nil && def.Handler == command.HandlerHelp {
			c.WriteLine(c.HelpText())
			continue
		}
		return cmd, nil
	}
}

// Choose implements combat.Input. Options are numbered from 1. A blank
// line or a cancel word backs out of the menu.
//
// Postcondition: A numeric answer is returned as its 0-based index even when
// out of range; the engine rejects it.
func (c *Console) Choose(title string, options []string) (int, bool, error) {
	c.WriteLine(Colorize(Bold, title+":"))
	for i, opt := range options {
		c.WriteLine(fmt.Sprintf("  %d) %s", i+1, opt))
	}
	for {
		c.prompt("choose (number, or c to cancel)> ")
		line, err := c.ReadLine()
		if err != nil {
			return 0, false, fmt.Errorf("reading %s choice: %w", strings.ToLower(title), err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "", "c", "cancel":
			return 0, false, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			c.WriteLine("Enter a number or c to cancel.")
			continue
		}
		return n - 1, true, nil
	}
}

// HelpText lists the registered commands grouped by category.
func (c *Console) HelpText() string {
	var sb strings.Builder
	cats := c.registry.CommandsByCategory()
	for _, cat := range []string{command.CategoryCombat, command.CategorySystem} {
		cmds := cats[cat]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s commands:\n", strings.ToUpper(cat[:1])+cat[1:])
		for _, cmd := range cmds {
			names := cmd.Name
			if len(cmd.Aliases) > 0 {
				names += " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			fmt.Fprintf(&sb, "  %-22s %s\n", names, cmd.Help)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
