package store

import "strings"

var formSuffixes = []string{"Cloak", "Form"}

var regionalSuffixes = []struct {
	suffix, region string
}{
	{"-A", "Alolan"},
	{"-G", "Galarian"},
	{"-H", "Hisuian"},
}

// NormalizeSpecies applies the cosmetic renames used for stored names:
// "Wormadam Plant Cloak" -> "Wormadam Plant", "Vulpix-A" -> "Vulpix Alolan".
func NormalizeSpecies(species string) string {
	s := strings.TrimSpace(species)
	for _, suffix := range formSuffixes {
		if trimmed, ok := strings.CutSuffix(s, suffix); ok {
			s = strings.TrimSpace(trimmed)
		}
	}
	for _, r := range regionalSuffixes {
		if trimmed, ok := strings.CutSuffix(s, r.suffix); ok {
			s = strings.TrimSpace(trimmed) + " " + r.region
			break
		}
	}
	return s
}
