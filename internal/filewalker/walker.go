package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lumidex/internal/parser"

	"github.com/rs/zerolog/log"
)

// Walker traverses directories and pairs dex files with a parser.
type Walker struct {
	parsers []parser.Parser
}

// NewWalker creates a Walker that parses dex files with opts.
func NewWalker(opts parser.Options) *Walker {
	return &Walker{
		parsers: []parser.Parser{
			parser.NewDexParser(opts),
		},
	}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path   string
	Ext    string
	Parser parser.Parser
}

// Walk discovers all dex files under root in lexical path order, which
// keeps regional dex files in dex-number order.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if entry, ok := w.entryFor(path); ok {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered dex files")
	return entries, nil
}

// Entry builds a FileEntry for a single file path.
func (w *Walker) Entry(path string) (FileEntry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return FileEntry{}, fmt.Errorf("resolve path: %w", err)
	}
	entry, ok := w.entryFor(abs)
	if !ok {
		return FileEntry{}, fmt.Errorf("unsupported dex file: %s", path)
	}
	return entry, nil
}

func (w *Walker) entryFor(path string) (FileEntry, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, p := range w.parsers {
		if p.CanParse(ext) {
			return FileEntry{Path: path, Ext: ext, Parser: p}, true
		}
	}
	return FileEntry{}, false
}

// ParseFile parses a single file using the appropriate parser.
func (w *Walker) ParseFile(entry FileEntry) (*parser.ParseResult, error) {
	return entry.Parser.Parse(entry.Path)
}
