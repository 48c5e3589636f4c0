// Package engine builds the probability tables of both dice systems and the
// legacy-to-simplified difficulty mapping derived from them.
package engine

import (
	"fmt"

	"github.com/aurceive/vtm-dice-mapping/internal/dice"
	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

// Tables is everything computed for one invocation. Query and export code
// receive it explicitly; nothing is kept in package state.
type Tables struct {
	Limits     domain.Limits
	Legacy     LegacyTable
	Simplified SimplifiedTable
	Mapping    Mapping
}

// Build computes both distributions and the mapping for limits.
func Build(limits domain.Limits) (*Tables, error) {
	legacy, err := BuildLegacy(limits)
	if err != nil {
		return nil, fmt.Errorf("build legacy table: %w", err)
	}
	simplified, err := BuildSimplified(limits)
	if err != nil {
		return nil, fmt.Errorf("build simplified table: %w", err)
	}
	mapping, err := BuildMapping(legacy, simplified)
	if err != nil {
		return nil, fmt.Errorf("build mapping: %w", err)
	}
	return &Tables{Limits: limits, Legacy: legacy, Simplified: simplified, Mapping: mapping}, nil
}

// Query resolves a single legacy roll. Rolls inside the tables are read from
// them. Rolls asking for more successes or more dice than the tables hold are
// computed on the spot: one legacy probability and the simplified row for the
// queried pool, mapped the same way as the tables.
func (t *Tables) Query(q domain.Query) (domain.QueryResult, error) {
	if err := q.Validate(); err != nil {
		return domain.QueryResult{}, err
	}
	if q.Difficulty > t.Limits.MaxDifficulty {
		return domain.QueryResult{}, fmt.Errorf("difficulty %d exceeds table size %d: %w", q.Difficulty, t.Limits.MaxDifficulty, domain.ErrInvalidArgument)
	}

	key := q.Key()
	p, ok := t.Legacy.Lookup(key)
	if !ok {
		var err error
		p, err = dice.Legacy(q.Dice, q.Successes, q.Difficulty)
		if err != nil {
			return domain.QueryResult{}, err
		}
	}

	simplified := t.Simplified
	if q.Dice > t.Limits.MaxDice {
		var err error
		simplified, err = SimplifiedRow(q.Dice, t.Limits.MaxDifficulty)
		if err != nil {
			return domain.QueryResult{}, fmt.Errorf("simplified row for %d dice: %w", q.Dice, err)
		}
	}

	mapped, ok := t.Mapping.Lookup(key)
	if !ok {
		mapped, ok = Nearest(simplified, q.Dice, p)
		if !ok {
			return domain.QueryResult{}, fmt.Errorf("map %s: no simplified difficulties for %d dice", key, q.Dice)
		}
	}
	sp, _ := simplified.Lookup(domain.SimplifiedKey{Dice: q.Dice, Difficulty: mapped})

	return domain.QueryResult{
		Query:                 q,
		LegacyProbability:     p,
		MappedDifficulty:      mapped,
		SimplifiedProbability: sp,
	}, nil
}
