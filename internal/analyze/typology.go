package analyze

import (
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Band is one size-typology bin. A record belongs to the first band whose
// upper bound is >= its land area (inclusive); the final band is unbounded.
type Band struct {
	Label    string  `yaml:"label" json:"label"`
	UpperKM2 float64 `yaml:"upper_km2,omitempty" json:"upper_km2,omitempty"` // 0 or .inf = unbounded (last band only)
}

// DefaultBands returns the built-in size bins used when no band file is
// configured.
func DefaultBands() []Band {
	return []Band{
		{Label: "Small (<50 km²)", UpperKM2: 50},
		{Label: "Medium (50-500 km²)", UpperKM2: 500},
		{Label: "Large (500-2000 km²)", UpperKM2: 2000},
		{Label: "Mega (>2000 km²)", UpperKM2: math.Inf(1)},
	}
}

// LoadBands reads a typology band file:
//
//	bands:
//	  - label: small
//	    upper_km2: 100
//	  - label: medium
//	    upper_km2: 1000
//	  - label: large
//
// The last band may omit upper_km2 (or use .inf) to be unbounded.
func LoadBands(path string) ([]Band, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "analyze: read bands file %s", path)
	}

	var wrapper struct {
		Bands []Band `yaml:"bands"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "analyze: parse bands file %s", path)
	}

	bands := wrapper.Bands
	if len(bands) > 0 {
		last := &bands[len(bands)-1]
		if last.UpperKM2 == 0 {
			last.UpperKM2 = math.Inf(1)
		}
	}
	if err := ValidateBands(bands); err != nil {
		return nil, err
	}
	return bands, nil
}

// ValidateBands checks that bands are non-empty, labeled, strictly ascending,
// and terminated by an unbounded band.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return eris.New("analyze: no typology bands defined")
	}
	prev := math.Inf(-1)
	for i, b := range bands {
		if b.Label == "" {
			return eris.Errorf("analyze: band %d has no label", i)
		}
		if b.UpperKM2 <= prev {
			return eris.Errorf("analyze: band %q bound %v not ascending", b.Label, b.UpperKM2)
		}
		prev = b.UpperKM2
	}
	if !math.IsInf(bands[len(bands)-1].UpperKM2, 1) {
		return eris.New("analyze: final band must be unbounded")
	}
	return nil
}

// Classify returns the typology label for a land area. Bounds are inclusive:
// a record exactly on a band's upper bound belongs to that band. The final
// unbounded band catches everything else, so every non-negative value maps
// to some label.
func Classify(landKM2 float64, bands []Band) string {
	for _, b := range bands[:len(bands)-1] {
		if landKM2 <= b.UpperKM2 {
			return b.Label
		}
	}
	return bands[len(bands)-1].Label
}
