package command

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrExtraArgs is returned by Line.Index when more than one argument follows the word.
	ErrExtraArgs = errors.New("command: too many arguments")
	// ErrBadIndex is returned by Line.Index when the argument is not a positive integer.
	ErrBadIndex = errors.New("command: index must be a positive number")
)

// Line is one console line split into a command word and its arguments,
// e.g. "ability 2" or "i 1".
type Line struct {
	// Word is lowercased so aliases match regardless of case.
	Word string
	Args []string
}

// Parse splits a console line on whitespace.
//
// Postcondition: Word is empty iff line holds no non-space characters;
// Args is nil when only the word was typed.
func Parse(line string) Line {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Line{}
	}
	l := Line{Word: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		l.Args = fields[1:]
	}
	return l
}

// Index returns the 1-based menu index given after the word, or 0 when none
// was typed.
//
// Postcondition: err wraps ErrExtraArgs or ErrBadIndex when the arguments do
// not name exactly one positive index.
func (l Line) Index() (int, error) {
	switch len(l.Args) {
	case 0:
		return 0, nil
	case 1:
	default:
		return 0, ErrExtraArgs
	}
	n, err := strconv.Atoi(l.Args[0])
	if err != nil || n < 1 {
		return 0, ErrBadIndex
	}
	return n, nil
}
