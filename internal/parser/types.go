package parser

// Record is one creature entry parsed from a dex file.
type Record struct {
	// DexNum is the number that prefixes the entry ("001- Bulbasaur").
	DexNum uint32 `json:"dex_num"`
	// Species is the trimmed name following the dex number.
	Species string `json:"species"`
	// Type is the baseline typing.
	Type Typing `json:"type"`
	// NewType is set only when the typing line carries a ">" transition.
	NewType *Typing `json:"new_type,omitempty"`
	// Stats holds the six base stats, each optionally transitioned.
	Stats Stats `json:"stats"`
	// Abilities are listed in source order.
	Abilities []string `json:"abilities"`
	// HeldItems is the raw "Wild Held Items" text, empty when absent.
	HeldItems string `json:"held_items,omitempty"`
	// Locations are the bullet lines of the Location section.
	Locations []string `json:"locations"`
	// LevelUp moves in learn order.
	LevelUp []LevelMove `json:"level_up"`
	// TMs in source order.
	TMs []TMMove `json:"tms"`
	// EggMoves in source order.
	EggMoves []string `json:"egg_moves"`
}

// Typing is a primary type plus an optional secondary type.
type Typing struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// String renders the typing as "Primary/Secondary" or "Primary".
func (t Typing) String() string {
	if t.Secondary == "" {
		return t.Primary
	}
	return t.Primary + "/" + t.Secondary
}

// Stat is a single base stat. A fixed stat has Changed == false and only
// Before is meaningful; a transitioned stat also carries After.
type Stat struct {
	Before  uint16 `json:"before"`
	After   uint16 `json:"after,omitempty"`
	Changed bool   `json:"changed,omitempty"`
}

// Fixed returns a stat without a transition.
func Fixed(v uint16) Stat { return Stat{Before: v} }

// Transitioned returns a stat that changed from before to after.
func Transitioned(before, after uint16) Stat {
	return Stat{Before: before, After: after, Changed: true}
}

// Current is the value after the transition, or the fixed value.
func (s Stat) Current() uint16 {
	if s.Changed {
		return s.After
	}
	return s.Before
}

// StatNames lists the stat labels in dex order.
var StatNames = [6]string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

// Stats is the block of six base stats in fixed order.
type Stats struct {
	HP  Stat `json:"hp"`
	Atk Stat `json:"atk"`
	Def Stat `json:"def"`
	SpA Stat `json:"spa"`
	SpD Stat `json:"spd"`
	Spe Stat `json:"spe"`
}

// All returns the stats in dex order (HP, Atk, Def, SpA, SpD, Spe).
func (s Stats) All() [6]Stat {
	return [6]Stat{s.HP, s.Atk, s.Def, s.SpA, s.SpD, s.Spe}
}

// Base returns the baseline values.
func (s Stats) Base() [6]uint16 {
	var out [6]uint16
	for i, st := range s.All() {
		out[i] = st.Before
	}
	return out
}

// Current returns the values after any transition.
func (s Stats) Current() [6]uint16 {
	var out [6]uint16
	for i, st := range s.All() {
		out[i] = st.Current()
	}
	return out
}

// Transitioned reports whether at least one stat changed.
func (s Stats) Transitioned() bool {
	for _, st := range s.All() {
		if st.Changed {
			return true
		}
	}
	return false
}

// Total sums a stat array, e.g. Total(s.Base()) for the baseline BST.
func Total(values [6]uint16) int {
	sum := 0
	for _, v := range values {
		sum += int(v)
	}
	return sum
}

func statsFrom(values [6]Stat) Stats {
	return Stats{
		HP:  values[0],
		Atk: values[1],
		Def: values[2],
		SpA: values[3],
		SpD: values[4],
		Spe: values[5],
	}
}

// LevelMove is a move learned by leveling up.
type LevelMove struct {
	Level uint8  `json:"level"`
	Name  string `json:"name"`
}

// TMMove is a move learned from a numbered TM.
type TMMove struct {
	Num  uint16 `json:"num"`
	Name string `json:"name"`
}

// Options controls how forgiving the line-oriented move sections are.
type Options struct {
	// Strict fails the entry on a malformed level-up or TM line instead of
	// dropping the line.
	Strict bool
}

// ParseResult holds parsing output for a single dex file.
type ParseResult struct {
	// FilePath is the absolute path to the parsed file.
	FilePath string
	// Checksum is the SHA-256 of the file contents.
	Checksum string
	// Records are the entries in source order.
	Records []Record
}

// Parser is the interface for dex file parsers.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse reads a file and returns every record in it.
	Parse(filePath string) (*ParseResult, error)
}

// Learn methods reported by Record.Learnset.
const (
	LearnLevel = "level"
	LearnTM    = "tm"
	LearnEgg   = "egg"
)

// Learn is one way a record learns a move.
type Learn struct {
	Move   string
	Method string
	// Num is the level for level-up moves and the TM number for TMs.
	Num int
}

// Learnset flattens level-up, TM and egg moves, in that order.
func (r Record) Learnset() []Learn {
	out := make([]Learn, 0, len(r.LevelUp)+len(r.TMs)+len(r.EggMoves))
	for _, m := range r.LevelUp {
		out = append(out, Learn{Move: m.Name, Method: LearnLevel, Num: int(m.Level)})
	}
	for _, m := range r.TMs {
		out = append(out, Learn{Move: m.Name, Method: LearnTM, Num: int(m.Num)})
	}
	for _, m := range r.EggMoves {
		out = append(out, Learn{Move: m, Method: LearnEgg})
	}
	return out
}
