package render

import (
	"fmt"
	"strings"

	"lumidex/internal/parser"
)

// Record formats a record as a human-readable block.
func Record(r parser.Record) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%03d %s %s", r.DexNum, r.Species, r.Type)
	if r.NewType != nil {
		fmt.Fprintf(&sb, " => %s", r.NewType)
	}

	fmt.Fprintf(&sb, "\nAbilities: %s", strings.Join(r.Abilities, "/"))
	if r.HeldItems != "" {
		fmt.Fprintf(&sb, "\nWild Held Items: %s", r.HeldItems)
	}
	fmt.Fprintf(&sb, "\nLocations: \n%s", strings.Join(r.Locations, "\n"))
	fmt.Fprintf(&sb, "\nStats: %s", StatLine(r.Stats))

	sb.WriteString("\n\nLevel Up:")
	for _, m := range r.LevelUp {
		fmt.Fprintf(&sb, "\nlvl%d %s", m.Level, m.Name)
	}

	sb.WriteString("\n\nTMs:")
	for _, m := range r.TMs {
		fmt.Fprintf(&sb, "\nTM%02d %s", m.Num, m.Name)
	}

	fmt.Fprintf(&sb, "\n\nEgg Moves: \n%s", strings.Join(r.EggMoves, "\n"))

	return sb.String()
}

// Records formats several records separated by a blank line.
func Records(rs []parser.Record) string {
	blocks := make([]string, 0, len(rs))
	for _, r := range rs {
		blocks = append(blocks, Record(r))
	}
	return strings.Join(blocks, "\n\n")
}

// StatLine renders "HP: 78, ..., SpA: 109 => 110, ..., BST: 534 => 535". The
// total is recomputed from the stats rather than taken from the source.
func StatLine(s parser.Stats) string {
	parts := make([]string, 0, 7)
	for i, st := range s.All() {
		if st.Changed {
			parts = append(parts, fmt.Sprintf("%s: %d => %d", parser.StatNames[i], st.Before, st.After))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %d", parser.StatNames[i], st.Before))
		}
	}

	base, current := parser.Total(s.Base()), parser.Total(s.Current())
	if s.Transitioned() {
		parts = append(parts, fmt.Sprintf("BST: %d => %d", base, current))
	} else {
		parts = append(parts, fmt.Sprintf("BST: %d", base))
	}
	return strings.Join(parts, ", ")
}

// Summary is a one-line form: "006 Charizard Fire/Dragon BST 535".
func Summary(r parser.Record) string {
	t := r.Type
	if r.NewType != nil {
		t = *r.NewType
	}
	return fmt.Sprintf("%03d %s %s BST %d", r.DexNum, r.Species, t, parser.Total(r.Stats.Current()))
}
