package engine

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/aurceive/vtm-dice-mapping/internal/dice"
	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

// LegacyTable holds legacy success probabilities. It is read-only once built.
type LegacyTable struct {
	probs map[domain.LegacyKey]float64
}

func (t LegacyTable) Lookup(k domain.LegacyKey) (float64, bool) {
	p, ok := t.probs[k]
	return p, ok
}

func (t LegacyTable) Len() int {
	return len(t.probs)
}

// Keys returns every key ordered by dice, then successes, then difficulty.
func (t LegacyTable) Keys() []domain.LegacyKey {
	return slices.SortedFunc(maps.Keys(t.probs), compareLegacyKeys)
}

func compareLegacyKeys(a, b domain.LegacyKey) int {
	return cmp.Or(
		cmp.Compare(a.Dice, b.Dice),
		cmp.Compare(a.Successes, b.Successes),
		cmp.Compare(a.Difficulty, b.Difficulty),
	)
}

// SimplifiedTable holds simplified success probabilities. It is read-only once built.
type SimplifiedTable struct {
	probs map[domain.SimplifiedKey]float64
}

func (t SimplifiedTable) Lookup(k domain.SimplifiedKey) (float64, bool) {
	p, ok := t.probs[k]
	return p, ok
}

func (t SimplifiedTable) Len() int {
	return len(t.probs)
}

// Keys returns every key ordered by dice, then difficulty.
func (t SimplifiedTable) Keys() []domain.SimplifiedKey {
	return slices.SortedFunc(maps.Keys(t.probs), compareSimplifiedKeys)
}

func compareSimplifiedKeys(a, b domain.SimplifiedKey) int {
	return cmp.Or(
		cmp.Compare(a.Dice, b.Dice),
		cmp.Compare(a.Difficulty, b.Difficulty),
	)
}

// BuildLegacy computes the legacy distribution for every dice count up to
// limits.MaxDice, every reachable success count and difficulties 2..MaxDifficulty.
func BuildLegacy(limits domain.Limits) (LegacyTable, error) {
	if err := limits.Validate(); err != nil {
		return LegacyTable{}, err
	}
	probs := make(map[domain.LegacyKey]float64)
	for n := 1; n <= limits.MaxDice; n++ {
		for s := 1; s <= limits.MaxSuccesses; s++ {
			if s > n {
				break
			}
			for d := domain.MinLegacyDifficulty; d <= limits.MaxDifficulty; d++ {
				p, err := dice.Legacy(n, s, d)
				if err != nil {
					return LegacyTable{}, fmt.Errorf("legacy %d/%d/%d: %w", n, s, d, err)
				}
				probs[domain.LegacyKey{Dice: n, Successes: s, Difficulty: d}] = p
			}
		}
	}
	return LegacyTable{probs: probs}, nil
}

// BuildSimplified computes the simplified distribution for every dice count up
// to limits.MaxDice and difficulties 1..min(dice, MaxDifficulty).
func BuildSimplified(limits domain.Limits) (SimplifiedTable, error) {
	if err := limits.Validate(); err != nil {
		return SimplifiedTable{}, err
	}
	probs := make(map[domain.SimplifiedKey]float64)
	for n := 1; n <= limits.MaxDice; n++ {
		if err := fillSimplifiedRow(probs, n, limits.MaxDifficulty); err != nil {
			return SimplifiedTable{}, err
		}
	}
	return SimplifiedTable{probs: probs}, nil
}

// SimplifiedRow computes the single row of the simplified distribution for
// dice, over difficulties 1..min(dice, maxDifficulty).
func SimplifiedRow(dice, maxDifficulty int) (SimplifiedTable, error) {
	probs := make(map[domain.SimplifiedKey]float64, max(0, min(dice, maxDifficulty)))
	if err := fillSimplifiedRow(probs, dice, maxDifficulty); err != nil {
		return SimplifiedTable{}, err
	}
	return SimplifiedTable{probs: probs}, nil
}

func fillSimplifiedRow(probs map[domain.SimplifiedKey]float64, n, maxDifficulty int) error {
	for d := 1; d <= min(n, maxDifficulty); d++ {
		p, err := dice.Simplified(n, d)
		if err != nil {
			return fmt.Errorf("simplified %d/%d: %w", n, d, err)
		}
		probs[domain.SimplifiedKey{Dice: n, Difficulty: d}] = p
	}
	return nil
}
