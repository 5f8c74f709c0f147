package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"lumidex/internal/parser"

	"github.com/rs/zerolog/log"
)

// ExportJSON writes every stored record to a JSON array file.
func ExportJSON(ctx context.Context, s Store, outputPath string) error {
	records, err := s.All(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	log.Info().Str("path", outputPath).Int("records", len(records)).Msg("Exported dex to JSON")
	return nil
}

// ExportTSV writes one summary row per stored record.
func ExportTSV(ctx context.Context, s Store, outputPath string) error {
	records, err := s.All(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create TSV file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "dex_num\tspecies\ttype\tabilities\thp\tatk\tdef\tspa\tspd\tspe\tbst")

	for _, r := range records {
		current := r.Stats.Current()
		fmt.Fprintf(f, "%03d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			r.DexNum,
			escapeTSV(r.Species),
			escapeTSV(currentTyping(r).String()),
			escapeTSV(strings.Join(r.Abilities, ", ")),
			current[0], current[1], current[2], current[3], current[4], current[5],
			parser.Total(current),
		)
	}

	log.Info().Str("path", outputPath).Int("records", len(records)).Msg("Exported dex to TSV")
	return nil
}

func currentTyping(r parser.Record) parser.Typing {
	if r.NewType != nil {
		return *r.NewType
	}
	return r.Type
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
