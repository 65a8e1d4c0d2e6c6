// Package filter narrows an urban-area record set by type, functional
// status, size typology, minimum land area, outlier flag, and name search.
// Filters are pure predicates; the input slice is never mutated.
package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/urban-atlas/internal/model"
)

// Filter collects the active criteria. Zero values mean "no restriction".
type Filter struct {
	Types        []model.UrbanType
	FuncStats    []string
	Typologies   []string
	MinLandKM2   float64
	OutliersOnly bool
	NameQuery    string
}

// Apply returns the records matching every active criterion.
// Typology and outlier checks need the analyzer's classifications; records
// without one fail those checks.
func (f Filter) Apply(records []model.UrbanArea, classifications map[string]model.Classification) []model.UrbanArea {
	typeSet := toSet(f.Types)
	funcSet := toSet(f.FuncStats)
	typologySet := toSet(f.Typologies)
	query := foldName(f.NameQuery)

	var out []model.UrbanArea
	for _, r := range records {
		if len(typeSet) > 0 && !typeSet[r.Type] {
			continue
		}
		if len(funcSet) > 0 && !funcSet[r.FuncStat] {
			continue
		}
		if r.LandKM2 < f.MinLandKM2 {
			continue
		}
		if len(typologySet) > 0 || f.OutliersOnly {
			c, ok := classifications[r.GEOID]
			if !ok {
				continue
			}
			if len(typologySet) > 0 && !typologySet[c.Typology] {
				continue
			}
			if f.OutliersOnly && !c.Outlier {
				continue
			}
		}
		if query != "" && !strings.Contains(foldName(r.Name), query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet[T comparable](items []T) map[T]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[T]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

// foldName lowercases and strips diacritics so "espanola" matches
// "Española, NM".
func foldName(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
