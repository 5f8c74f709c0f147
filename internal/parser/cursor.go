package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Cursor is a read-only position in a source text. Every method returns a
// new Cursor together with the consumed prefix; the receiver is untouched.
type Cursor struct {
	src string
	pos int
}

// Taker consumes some prefix of a cursor.
type Taker func(Cursor) (Cursor, string, error)

// NewCursor starts a cursor at the beginning of src.
func NewCursor(src string) Cursor {
	return Cursor{src: src}
}

// Rest returns the unconsumed text.
func (c Cursor) Rest() string { return c.src[c.pos:] }

// Pos is the byte offset from the start of the source.
func (c Cursor) Pos() int { return c.pos }

// Empty reports whether the input is exhausted.
func (c Cursor) Empty() bool { return c.pos >= len(c.src) }

// Blank reports whether only whitespace remains.
func (c Cursor) Blank() bool { return strings.TrimSpace(c.Rest()) == "" }

// HasPrefix reports whether the remaining text starts with s.
func (c Cursor) HasPrefix(s string) bool { return strings.HasPrefix(c.Rest(), s) }

func (c Cursor) advance(n int) (Cursor, string) {
	out := c.src[c.pos : c.pos+n]
	return Cursor{src: c.src, pos: c.pos + n}, out
}

// TakeUntil consumes everything up to, but not including, marker.
func (c Cursor) TakeUntil(marker string) (Cursor, string, error) {
	idx := strings.Index(c.Rest(), marker)
	if idx < 0 {
		return c, "", fmt.Errorf("%w: %q", ErrNotFound, marker)
	}
	next, out := c.advance(idx)
	return next, out, nil
}

// Take consumes exactly n bytes.
func (c Cursor) Take(n int) (Cursor, string, error) {
	if n < 0 || n > len(c.Rest()) {
		return c, "", fmt.Errorf("%w: want %d bytes, have %d", ErrUnexpectedEOF, n, len(c.Rest()))
	}
	next, out := c.advance(n)
	return next, out, nil
}

// TakeWhile consumes runes while pred holds. It may consume nothing.
func (c Cursor) TakeWhile(pred func(rune) bool) (Cursor, string) {
	rest := c.Rest()
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !pred(r) {
			break
		}
		n += size
	}
	return c.advance(n)
}

// TakeWhile1 is TakeWhile that requires at least one rune.
func (c Cursor) TakeWhile1(pred func(rune) bool) (Cursor, string, error) {
	if c.Empty() {
		return c, "", ErrUnexpectedEOF
	}
	next, out := c.TakeWhile(pred)
	if out == "" {
		return c, "", fmt.Errorf("%w: no matching characters at offset %d", ErrNotFound, c.pos)
	}
	return next, out, nil
}

// TakeAny tries each alternative in order; the first success wins. The
// error of the last alternative is returned when all fail.
func (c Cursor) TakeAny(alts ...Taker) (Cursor, string, error) {
	err := fmt.Errorf("%w: no alternatives", ErrNotFound)
	for _, alt := range alts {
		var (
			next Cursor
			out  string
		)
		next, out, err = alt(c)
		if err == nil {
			return next, out, nil
		}
	}
	return c, "", err
}

// Until adapts TakeUntil into a Taker.
func Until(marker string) Taker {
	return func(c Cursor) (Cursor, string, error) { return c.TakeUntil(marker) }
}

// While1 adapts TakeWhile1 into a Taker.
func While1(pred func(rune) bool) Taker {
	return func(c Cursor) (Cursor, string, error) { return c.TakeWhile1(pred) }
}

func isDigit(r rune) bool    { return r >= '0' && r <= '9' }
func isNotDigit(r rune) bool { return !isDigit(r) }
