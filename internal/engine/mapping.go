package engine

import (
	"fmt"
	"math"

	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

// Mapping assigns every legacy key the simplified difficulty with the closest probability.
type Mapping struct {
	targets map[domain.LegacyKey]int
}

func (m Mapping) Lookup(k domain.LegacyKey) (int, bool) {
	d, ok := m.targets[k]
	return d, ok
}

func (m Mapping) Len() int {
	return len(m.targets)
}

// Nearest returns the simplified difficulty at the given dice count whose
// probability is closest to p. Difficulties are scanned in ascending order and
// only a strictly smaller distance replaces the current pick, so ties keep the
// lowest difficulty. ok is false when the table has no entry for dice.
func Nearest(simplified SimplifiedTable, dice int, p float64) (difficulty int, ok bool) {
	best := math.Inf(1)
	for d := 1; d <= dice; d++ {
		q, found := simplified.Lookup(domain.SimplifiedKey{Dice: dice, Difficulty: d})
		if !found {
			break
		}
		diff := math.Abs(p - q)
		if !ok || diff < best {
			best = diff
			difficulty = d
			ok = true
		}
	}
	return difficulty, ok
}

// BuildMapping maps every legacy key onto the simplified table.
func BuildMapping(legacy LegacyTable, simplified SimplifiedTable) (Mapping, error) {
	targets := make(map[domain.LegacyKey]int, legacy.Len())
	for k, p := range legacy.probs {
		d, ok := Nearest(simplified, k.Dice, p)
		if !ok {
			return Mapping{}, fmt.Errorf("map %s: no simplified difficulties for %d dice", k, k.Dice)
		}
		targets[k] = d
	}
	return Mapping{targets: targets}, nil
}
