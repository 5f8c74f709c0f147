package parser

import (
	"fmt"
	"strings"
)

// Section markers, in the order they appear within an entry.
const (
	markStats     = "Stats"
	markType      = "Type"
	markAbilities = "Abilities"
	markHeldItems = "Wild Held Items"
	markLocation  = "Location"
	markLevelUp   = "Level Up"
	markTMs       = "TMs"
	markEggMoves  = "Egg Moves"
	markTotal     = "BST"
)

// dexNumber finds the "<digits>-" boundary that starts every entry. Digit
// runs that are not immediately followed by "-" are treated as noise.
func dexNumber(c Cursor) (uint32, Cursor, error) {
	digits := ""
	for {
		if c.Empty() {
			return 0, c, fmt.Errorf("%w: no dex number before end of input", ErrMalformedEntry)
		}
		if digits != "" && c.HasPrefix("-") {
			break
		}

		next, run, err := c.TakeAny(While1(isNotDigit), While1(isDigit))
		if err != nil {
			return 0, c, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
		}
		if isDigit(rune(run[0])) {
			digits = run
		} else {
			digits = ""
		}
		c = next
	}

	n, err := parseUint(digits, 32)
	if err != nil {
		return 0, c, err
	}
	return uint32(n), c, nil
}

// species consumes the "-" boundary and the rest of the line.
func species(c Cursor) (string, Cursor, error) {
	c, _, err := c.Take(1)
	if err != nil {
		return "", c, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	c, line, err := c.TakeUntil("\n")
	if err != nil {
		return "", c, fmt.Errorf("%w: species line is not terminated", ErrMalformedEntry)
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return "", c, fmt.Errorf("%w: empty species name", ErrMalformedEntry)
	}
	return name, c, nil
}

// section skips to marker and returns the text up to end, leaving the
// cursor on end.
func section(c Cursor, marker, end string) (string, Cursor, error) {
	c, _, err := c.TakeUntil(marker)
	if err != nil {
		return "", c, err
	}
	c, span, err := c.TakeUntil(end)
	if err != nil {
		return "", c, err
	}
	return span, c, nil
}

// stripLabel removes a leading section label and its optional colon.
func stripLabel(span, label string) string {
	span = strings.TrimPrefix(strings.TrimSpace(span), label)
	span = strings.TrimPrefix(span, ":")
	return strings.TrimSpace(span)
}

// lines splits a section body into trimmed, non-blank lines.
func lines(body string) []string {
	var out []string
	for _, l := range strings.Split(body, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// stats parses "Stats: 45 HP/49 Atk/49 Def/65 SpA/65 SpD/45 Spe/318 BST".
// A block where every stat is transitioned collapses to no transition.
func stats(c Cursor) (Stats, Cursor, error) {
	span, c, err := section(c, markStats, markType)
	if err != nil {
		return Stats{}, c, err
	}

	sc, _, err := NewCursor(span).TakeWhile1(isNotDigit)
	if err != nil {
		return Stats{}, c, fmt.Errorf("%w: stat values", err)
	}

	var values [6]Stat
	for i, label := range StatNames {
		var field string
		last := i == len(StatNames)-1
		switch {
		case last && !strings.Contains(sc.Rest(), "/"):
			sc, field = sc.advance(len(sc.Rest()))
		default:
			sc, field, err = sc.TakeUntil("/")
			if err != nil {
				return Stats{}, c, fmt.Errorf("%s: %w", label, err)
			}
			if sc, _, err = sc.Take(len("/")); err != nil {
				return Stats{}, c, fmt.Errorf("%s: %w", label, err)
			}
		}

		values[i], err = parseStat(field, label)
		if err != nil {
			return Stats{}, c, err
		}
	}

	// The aggregate is validated but not kept.
	if strings.Contains(sc.Rest(), markTotal) {
		if _, err := parseStat(sc.Rest(), markTotal); err != nil {
			return Stats{}, c, err
		}
	}

	dense := true
	for _, v := range values {
		if !v.Changed {
			dense = false
			break
		}
	}
	if dense {
		for i, v := range values {
			values[i] = Fixed(v.Before)
		}
	}

	return statsFrom(values), c, nil
}

// typing parses "Type: Fire/Flying>Fire/Dragon".
func typing(c Cursor) (Typing, *Typing, Cursor, error) {
	span, c, err := section(c, markType, markAbilities)
	if err != nil {
		return Typing{}, nil, c, err
	}
	body := stripLabel(span, markType)

	before, after, changed := strings.Cut(body, transitionMark)
	old, err := typingPair(before)
	if err != nil {
		return Typing{}, nil, c, err
	}
	if !changed {
		return old, nil, c, nil
	}

	updated, err := typingPair(after)
	if err != nil {
		return Typing{}, nil, c, err
	}
	return old, &updated, c, nil
}

func typingPair(s string) (Typing, error) {
	primary, secondary, _ := strings.Cut(strings.TrimSpace(s), "/")
	t := Typing{
		Primary:   strings.TrimSpace(primary),
		Secondary: strings.TrimSpace(secondary),
	}
	if t.Primary == "" {
		return Typing{}, fmt.Errorf("%w: empty primary type in %q", ErrMalformedEntry, s)
	}
	return t, nil
}

// abilities parses the slash-separated ability list. The span ends at
// "Wild Held Items" when that field precedes "Location".
func abilities(c Cursor) ([]string, Cursor, error) {
	c, _, err := c.TakeUntil(markAbilities)
	if err != nil {
		return nil, c, err
	}
	_, ahead, err := c.TakeUntil(markLocation)
	if err != nil {
		return nil, c, err
	}
	end := markLocation
	if strings.Contains(ahead, markHeldItems) {
		end = markHeldItems
	}

	c, span, err := c.TakeUntil(end)
	if err != nil {
		return nil, c, err
	}

	var out []string
	for _, a := range strings.Split(stripLabel(span, markAbilities), "/") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, c, fmt.Errorf("%w: no abilities listed", ErrMalformedEntry)
	}
	return out, c, nil
}

// heldItems keeps the optional "Wild Held Items" text. The cursor is
// returned unchanged when the field is absent.
func heldItems(c Cursor) (string, Cursor, error) {
	if !c.HasPrefix(markHeldItems) {
		return "", c, nil
	}
	c, span, err := c.TakeUntil(markLocation)
	if err != nil {
		return "", c, err
	}
	return stripLabel(span, markHeldItems), c, nil
}

// locations returns one entry per non-blank line, without "*" bullets.
func locations(c Cursor) ([]string, Cursor, error) {
	span, c, err := section(c, markLocation, markLevelUp)
	if err != nil {
		return nil, c, err
	}

	out := []string{}
	for _, l := range lines(stripLabel(span, markLocation)) {
		l = strings.TrimSpace(strings.TrimLeft(l, "*"))
		if l != "" {
			out = append(out, l)
		}
	}
	return out, c, nil
}

// levelUpMoves reads "1: Tackle" or "1 - Tackle" lines.
func levelUpMoves(c Cursor, opts Options) ([]LevelMove, Cursor, error) {
	span, c, err := section(c, markLevelUp, markTMs)
	if err != nil {
		return nil, c, err
	}

	out := []LevelMove{}
	for _, l := range lines(stripLabel(span, markLevelUp)) {
		m, err := levelMove(l)
		if err != nil {
			if opts.Strict {
				return nil, c, err
			}
			continue
		}
		out = append(out, m)
	}
	return out, c, nil
}

func levelMove(line string) (LevelMove, error) {
	sep := ":"
	if !strings.Contains(line, sep) {
		sep = "-"
	}
	level, name, ok := strings.Cut(line, sep)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return LevelMove{}, fmt.Errorf("%w: level-up line %q", ErrMalformedEntry, line)
	}
	lvl, err := parseUint8(level)
	if err != nil {
		return LevelMove{}, fmt.Errorf("level-up line %q: %w", line, err)
	}
	return LevelMove{Level: lvl, Name: name}, nil
}

// tmMoves reads "TM06: Toxic" lines.
func tmMoves(c Cursor, opts Options) ([]TMMove, Cursor, error) {
	span, c, err := section(c, markTMs, markEggMoves)
	if err != nil {
		return nil, c, err
	}

	out := []TMMove{}
	for _, l := range lines(stripLabel(span, markTMs)) {
		m, err := tmMove(l)
		if err != nil {
			if opts.Strict {
				return nil, c, err
			}
			continue
		}
		out = append(out, m)
	}
	return out, c, nil
}

func tmMove(line string) (TMMove, error) {
	label, name, ok := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return TMMove{}, fmt.Errorf("%w: TM line %q", ErrMalformedEntry, line)
	}
	num, err := parseUint16(strings.TrimPrefix(strings.TrimSpace(label), "TM"))
	if err != nil {
		return TMMove{}, fmt.Errorf("TM line %q: %w", line, err)
	}
	return TMMove{Num: num, Name: name}, nil
}

// eggMoves runs from "Egg Moves" to the next digit, which starts the next
// entry, or to the end of input.
func eggMoves(c Cursor) ([]string, Cursor, error) {
	c, _, err := c.TakeUntil(markEggMoves)
	if err != nil {
		return nil, c, err
	}
	c, span := c.TakeWhile(isNotDigit)

	out := []string{}
	out = append(out, lines(stripLabel(span, markEggMoves))...)
	return out, c, nil
}
