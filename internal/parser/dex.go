package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"lumidex/internal/textutil"

	"golang.org/x/sync/errgroup"
)

// ParseDex parses every entry in input, in source order. Each entry is
// bounded by its own "Egg Moves" section, so a missing section cannot pull
// in the next entry. The first entry that fails aborts the whole parse and
// no records are returned.
func ParseDex(input string, opts Options) ([]Record, error) {
	c := NewCursor(input)
	var records []Record

	for !c.Blank() {
		start := c.Pos()
		chunk, next := nextEntry(c)
		rec, err := parseChunk(chunk, opts)
		if err != nil {
			return nil, fmt.Errorf("entry %d at offset %d: %w", len(records)+1, start, err)
		}
		records = append(records, rec)
		c = next
	}

	return records, nil
}

// SplitEntries finds entry boundaries without parsing them. Each chunk runs
// from the end of the previous entry through its "Egg Moves" section.
func SplitEntries(input string) ([]string, error) {
	c := NewCursor(input)
	var chunks []string

	for !c.Blank() {
		start := c.Pos()
		if _, _, err := c.TakeUntil(markEggMoves); err != nil {
			return nil, fmt.Errorf("entry %d at offset %d: %w", len(chunks)+1, start, err)
		}
		var chunk string
		chunk, c = nextEntry(c)
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// nextEntry returns the text of the entry at c and the cursor after it. An
// entry without "Egg Moves" runs to the end of input.
func nextEntry(c Cursor) (string, Cursor) {
	next, _, err := c.TakeUntil(markEggMoves)
	if err != nil {
		end, rest := c.advance(len(c.Rest()))
		return rest, end
	}
	end, _ := next.TakeWhile(isNotDigit)
	return c.src[c.pos:end.pos], end
}

// parseChunk parses a single bounded entry, which must be consumed entirely.
func parseChunk(chunk string, opts Options) (Record, error) {
	if n := strings.Count(chunk, markStats+":"); n > 1 {
		return Record{}, fmt.Errorf("%w: %d stat blocks before the next egg moves", ErrMalformedEntry, n)
	}
	rec, rest, err := ParseEntry(NewCursor(chunk), opts)
	if err != nil {
		return Record{}, err
	}
	if !rest.Blank() {
		return Record{}, fmt.Errorf("%w: %d bytes left after egg moves", ErrMalformedEntry, len(rest.Rest()))
	}
	return rec, nil
}

// ParseDexConcurrent splits input into entries and parses them on up to
// workers goroutines. Records keep source order; the first failure cancels
// the rest and no records are returned.
func ParseDexConcurrent(ctx context.Context, input string, opts Options, workers int) ([]Record, error) {
	chunks, err := SplitEntries(input)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	records := make([]Record, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := parseChunk(chunk, opts)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// DexParser reads dex text files from disk.
type DexParser struct {
	opts Options
}

// NewDexParser creates a file parser with the given line policy.
func NewDexParser(opts Options) *DexParser { return &DexParser{opts: opts} }

func (p *DexParser) CanParse(ext string) bool {
	return ext == ".txt"
}

func (p *DexParser) Parse(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read dex file: %w", err)
	}

	records, err := ParseDex(string(data), p.opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}

	return &ParseResult{
		FilePath: filePath,
		Checksum: textutil.Hash(string(data)),
		Records:  records,
	}, nil
}
