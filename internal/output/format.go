package output

import (
	"github.com/shopspring/decimal"

	"github.com/aurceive/vtm-dice-mapping/internal/engine"
)

// Percent converts a probability to a percentage rounded to two places.
func Percent(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Shift(2).Round(2)
}

// FormatPercent renders p as a percentage with exactly two decimals, e.g. "38.75".
func FormatPercent(p float64) string {
	return Percent(p).StringFixed(2)
}

type LegacyRow struct {
	Dice        int     `json:"dice"`
	Successes   int     `json:"successes"`
	Difficulty  int     `json:"difficulty"`
	Probability float64 `json:"-"`
	Percent     string  `json:"probability"`
}

type SimplifiedRow struct {
	Dice        int     `json:"dice"`
	Difficulty  int     `json:"difficulty"`
	Probability float64 `json:"-"`
	Percent     string  `json:"probability"`
}

type MappingRow struct {
	Dice                 int `json:"dice"`
	Successes            int `json:"successes"`
	Difficulty           int `json:"difficulty"`
	SimplifiedDifficulty int `json:"v5_difficulty"`
}

// Report is the row-oriented view of one set of tables shared by all exporters.
type Report struct {
	MaxDice    int             `json:"max_dice"`
	Legacy     []LegacyRow     `json:"v20_distribution"`
	Simplified []SimplifiedRow `json:"v5_distribution"`
	Mapping    []MappingRow    `json:"v20_to_v5_mapping"`
}

func BuildReport(t *engine.Tables) Report {
	legacyKeys := t.Legacy.Keys()
	simplifiedKeys := t.Simplified.Keys()

	r := Report{
		MaxDice:    t.Limits.MaxDice,
		Legacy:     make([]LegacyRow, 0, len(legacyKeys)),
		Simplified: make([]SimplifiedRow, 0, len(simplifiedKeys)),
		Mapping:    make([]MappingRow, 0, len(legacyKeys)),
	}
	for _, k := range legacyKeys {
		p, _ := t.Legacy.Lookup(k)
		r.Legacy = append(r.Legacy, LegacyRow{Dice: k.Dice, Successes: k.Successes, Difficulty: k.Difficulty, Probability: p, Percent: FormatPercent(p)})
		d, _ := t.Mapping.Lookup(k)
		r.Mapping = append(r.Mapping, MappingRow{Dice: k.Dice, Successes: k.Successes, Difficulty: k.Difficulty, SimplifiedDifficulty: d})
	}
	for _, k := range simplifiedKeys {
		p, _ := t.Simplified.Lookup(k)
		r.Simplified = append(r.Simplified, SimplifiedRow{Dice: k.Dice, Difficulty: k.Difficulty, Probability: p, Percent: FormatPercent(p)})
	}
	return r
}
