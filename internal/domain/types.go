package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks parameters outside the range a model or builder accepts.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// DieFaces is the number of faces on every die of both systems.
	DieFaces = 10

	// MinLegacyDifficulty is the lowest legacy difficulty; 1 would leave no face to cancel with.
	MinLegacyDifficulty = 2

	// MaxTableDice bounds Limits.MaxDice. Every pool size up to MaxDice gets a
	// full row in each table.
	MaxTableDice = 100

	// MaxPoolDice bounds a single query. Queries above the table size are
	// computed directly, at a cost quadratic in the pool.
	MaxPoolDice = 1000
)

// LegacyKey addresses one cell of the legacy distribution.
type LegacyKey struct {
	Dice       int
	Successes  int
	Difficulty int
}

func (k LegacyKey) String() string {
	return fmt.Sprintf("%d-%d-%d", k.Dice, k.Successes, k.Difficulty)
}

// SimplifiedKey addresses one cell of the simplified distribution.
type SimplifiedKey struct {
	Dice       int
	Difficulty int
}

func (k SimplifiedKey) String() string {
	return fmt.Sprintf("%d-%d", k.Dice, k.Difficulty)
}

// Limits bounds the parameter ranges the tables are built for.
type Limits struct {
	MaxDice       int
	MaxSuccesses  int
	MaxDifficulty int
}

func DefaultLimits() Limits {
	return Limits{MaxDice: 20, MaxSuccesses: 10, MaxDifficulty: DieFaces}
}

func (l Limits) Validate() error {
	if l.MaxDice < 1 || l.MaxDice > MaxTableDice {
		return fmt.Errorf("max dice must be in [1..%d], got %d: %w", MaxTableDice, l.MaxDice, ErrInvalidArgument)
	}
	if l.MaxSuccesses < 1 || l.MaxSuccesses > DieFaces {
		return fmt.Errorf("max successes must be in [1..%d], got %d: %w", DieFaces, l.MaxSuccesses, ErrInvalidArgument)
	}
	if l.MaxDifficulty < MinLegacyDifficulty || l.MaxDifficulty > DieFaces {
		return fmt.Errorf("max difficulty must be in [%d..%d], got %d: %w", MinLegacyDifficulty, DieFaces, l.MaxDifficulty, ErrInvalidArgument)
	}
	return nil
}

// Query is a single legacy roll to convert.
type Query struct {
	Dice       int
	Successes  int
	Difficulty int
}

func (q Query) Key() LegacyKey {
	return LegacyKey(q)
}

func (q Query) Validate() error {
	if q.Dice < 1 || q.Dice > MaxPoolDice {
		return fmt.Errorf("dice must be in [1..%d], got %d: %w", MaxPoolDice, q.Dice, ErrInvalidArgument)
	}
	if q.Successes < 1 {
		return fmt.Errorf("required successes must be at least 1, got %d: %w", q.Successes, ErrInvalidArgument)
	}
	if q.Difficulty < MinLegacyDifficulty || q.Difficulty > DieFaces {
		return fmt.Errorf("difficulty must be in [%d..%d], got %d: %w", MinLegacyDifficulty, DieFaces, q.Difficulty, ErrInvalidArgument)
	}
	return nil
}

// QueryResult pairs a legacy roll with its closest simplified difficulty.
type QueryResult struct {
	Query                 Query
	LegacyProbability     float64
	MappedDifficulty      int
	SimplifiedProbability float64
}
