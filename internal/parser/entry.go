package parser

import "fmt"

// ParseEntry parses one entry starting at c and returns the record with the
// cursor positioned after the entry's egg moves.
func ParseEntry(c Cursor, opts Options) (Record, Cursor, error) {
	var (
		rec Record
		err error
	)

	if rec.DexNum, c, err = dexNumber(c); err != nil {
		return Record{}, c, fmt.Errorf("dex number: %w", err)
	}
	if rec.Species, c, err = species(c); err != nil {
		return Record{}, c, fmt.Errorf("species: %w", err)
	}
	if rec.Stats, c, err = stats(c); err != nil {
		return Record{}, c, fmt.Errorf("%s stats: %w", rec.Species, err)
	}
	if rec.Type, rec.NewType, c, err = typing(c); err != nil {
		return Record{}, c, fmt.Errorf("%s type: %w", rec.Species, err)
	}
	if rec.Abilities, c, err = abilities(c); err != nil {
		return Record{}, c, fmt.Errorf("%s abilities: %w", rec.Species, err)
	}
	if rec.HeldItems, c, err = heldItems(c); err != nil {
		return Record{}, c, fmt.Errorf("%s held items: %w", rec.Species, err)
	}
	if rec.Locations, c, err = locations(c); err != nil {
		return Record{}, c, fmt.Errorf("%s locations: %w", rec.Species, err)
	}
	if rec.LevelUp, c, err = levelUpMoves(c, opts); err != nil {
		return Record{}, c, fmt.Errorf("%s level up: %w", rec.Species, err)
	}
	if rec.TMs, c, err = tmMoves(c, opts); err != nil {
		return Record{}, c, fmt.Errorf("%s TMs: %w", rec.Species, err)
	}
	if rec.EggMoves, c, err = eggMoves(c); err != nil {
		return Record{}, c, fmt.Errorf("%s egg moves: %w", rec.Species, err)
	}

	return rec, c, nil
}
