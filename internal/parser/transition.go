package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// transitionMark separates a before value from an after value ("109>110").
const transitionMark = ">"

// parseStat reads the number that precedes label in field, e.g. "45 HP" or
// "109>110 SpA".
func parseStat(field, label string) (Stat, error) {
	_, slice, err := NewCursor(field).TakeUntil(label)
	if err != nil {
		return Stat{}, err
	}

	before, after, changed := strings.Cut(slice, transitionMark)
	b, err := parseUint16(before)
	if err != nil {
		return Stat{}, fmt.Errorf("%s: %w", label, err)
	}
	if !changed {
		return Fixed(b), nil
	}

	a, err := parseUint16(after)
	if err != nil {
		return Stat{}, fmt.Errorf("%s: %w", label, err)
	}
	return Transitioned(b, a), nil
}

func parseUint16(s string) (uint16, error) {
	n, err := parseUint(s, 16)
	return uint16(n), err
}

func parseUint8(s string) (uint8, error) {
	n, err := parseUint(s, 8)
	return uint8(n), err
}

// parseUint accepts surrounding whitespace but nothing else.
func parseUint(s string, bits int) (uint64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}
