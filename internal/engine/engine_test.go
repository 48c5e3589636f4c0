package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

func buildDefault(t *testing.T) *Tables {
	t.Helper()
	tables, err := Build(domain.DefaultLimits())
	require.NoError(t, err)
	return tables
}

func TestBuild_TableSizes(t *testing.T) {
	tables := buildDefault(t)

	// sum over n=1..20 of min(n,10) = 155
	assert.Equal(t, 155*9, tables.Legacy.Len())
	assert.Equal(t, 155, tables.Simplified.Len())
	assert.Equal(t, tables.Legacy.Len(), tables.Mapping.Len())
}

func TestBuild_KeysStayInValidRanges(t *testing.T) {
	tables := buildDefault(t)

	for _, k := range tables.Legacy.Keys() {
		assert.LessOrEqual(t, k.Successes, k.Dice, "legacy key %s", k)
		assert.GreaterOrEqual(t, k.Difficulty, 2, "legacy key %s", k)
		assert.LessOrEqual(t, k.Difficulty, 10, "legacy key %s", k)
		p, ok := tables.Legacy.Lookup(k)
		require.True(t, ok)
		assert.True(t, p >= 0 && p <= 1, "legacy %s = %v", k, p)
	}
	for _, k := range tables.Simplified.Keys() {
		assert.LessOrEqual(t, k.Difficulty, k.Dice, "simplified key %s", k)
		p, ok := tables.Simplified.Lookup(k)
		require.True(t, ok)
		assert.True(t, p >= 0 && p <= 1, "simplified %s = %v", k, p)
	}
}

func TestKeys_AreOrdered(t *testing.T) {
	tables, err := Build(domain.Limits{MaxDice: 3, MaxSuccesses: 10, MaxDifficulty: 3})
	require.NoError(t, err)

	assert.Equal(t, []domain.SimplifiedKey{
		{Dice: 1, Difficulty: 1},
		{Dice: 2, Difficulty: 1}, {Dice: 2, Difficulty: 2},
		{Dice: 3, Difficulty: 1}, {Dice: 3, Difficulty: 2}, {Dice: 3, Difficulty: 3},
	}, tables.Simplified.Keys())

	keys := tables.Legacy.Keys()
	require.Len(t, keys, 12)
	assert.Equal(t, domain.LegacyKey{Dice: 1, Successes: 1, Difficulty: 2}, keys[0])
	assert.Equal(t, domain.LegacyKey{Dice: 1, Successes: 1, Difficulty: 3}, keys[1])
	assert.Equal(t, domain.LegacyKey{Dice: 2, Successes: 1, Difficulty: 2}, keys[2])
	assert.Equal(t, domain.LegacyKey{Dice: 3, Successes: 3, Difficulty: 3}, keys[11])
}

func TestMapping_IsTotal(t *testing.T) {
	tables := buildDefault(t)

	for _, k := range tables.Legacy.Keys() {
		d, ok := tables.Mapping.Lookup(k)
		require.True(t, ok, "legacy key %s has no mapping", k)
		assert.GreaterOrEqual(t, d, 1)
		assert.LessOrEqual(t, d, min(k.Dice, 10))
	}
}

func TestMapping_PicksClosestProbability(t *testing.T) {
	tables := buildDefault(t)

	for _, k := range tables.Legacy.Keys() {
		p, _ := tables.Legacy.Lookup(k)
		d, _ := tables.Mapping.Lookup(k)
		chosen, _ := tables.Simplified.Lookup(domain.SimplifiedKey{Dice: k.Dice, Difficulty: d})
		for other := 1; other <= min(k.Dice, 10); other++ {
			q, _ := tables.Simplified.Lookup(domain.SimplifiedKey{Dice: k.Dice, Difficulty: other})
			assert.LessOrEqual(t, abs(p-chosen), abs(p-q), "legacy %s maps to %d but %d is closer", k, d, other)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestNearest_TieKeepsLowestDifficulty(t *testing.T) {
	simplified := SimplifiedTable{probs: map[domain.SimplifiedKey]float64{
		{Dice: 3, Difficulty: 1}: 0.9,
		{Dice: 3, Difficulty: 2}: 0.6,
		{Dice: 3, Difficulty: 3}: 0.4,
	}}

	d, ok := Nearest(simplified, 3, 0.5)
	require.True(t, ok)
	assert.Equal(t, 2, d)

	d, ok = Nearest(simplified, 3, 0.0)
	require.True(t, ok)
	assert.Equal(t, 3, d)

	_, ok = Nearest(simplified, 4, 0.5)
	assert.False(t, ok)
}

func TestQuery_EndToEnd(t *testing.T) {
	tables := buildDefault(t)

	res, err := tables.Query(domain.Query{Dice: 5, Successes: 3, Difficulty: 6})
	require.NoError(t, err)
	assert.InDelta(t, 0.3875, res.LegacyProbability, 1e-12)
	assert.Equal(t, 3, res.MappedDifficulty)
	assert.InDelta(t, 0.5125, res.SimplifiedProbability, 1e-12)
}

func TestQuery_SingleDie(t *testing.T) {
	tables := buildDefault(t)

	res, err := tables.Query(domain.Query{Dice: 1, Successes: 1, Difficulty: 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, res.LegacyProbability, 1e-12)
	assert.Equal(t, 1, res.MappedDifficulty)
}

func TestQuery_MoreSuccessesThanDiceIsZero(t *testing.T) {
	tables := buildDefault(t)

	res, err := tables.Query(domain.Query{Dice: 3, Successes: 5, Difficulty: 6})
	require.NoError(t, err)
	assert.Zero(t, res.LegacyProbability)
	// 0.875, 0.5, 0.14 at three dice: the hardest difficulty is closest to zero
	assert.Equal(t, 3, res.MappedDifficulty)
}

func TestQuery_SuccessesBeyondTableAreComputed(t *testing.T) {
	tables, err := Build(domain.Limits{MaxDice: 12, MaxSuccesses: 2, MaxDifficulty: 10})
	require.NoError(t, err)

	res, err := tables.Query(domain.Query{Dice: 12, Successes: 11, Difficulty: 3})
	require.NoError(t, err)
	assert.Greater(t, res.LegacyProbability, 0.0)
	assert.GreaterOrEqual(t, res.MappedDifficulty, 1)
}

func TestQuery_PoolBeyondTableMatchesLargerTables(t *testing.T) {
	small, err := Build(domain.Limits{MaxDice: 5, MaxSuccesses: 10, MaxDifficulty: 10})
	require.NoError(t, err)
	full := buildDefault(t)

	for _, q := range []domain.Query{
		{Dice: 8, Successes: 2, Difficulty: 6},
		{Dice: 12, Successes: 7, Difficulty: 8},
		{Dice: 20, Successes: 15, Difficulty: 4},
	} {
		got, err := small.Query(q)
		require.NoError(t, err, "query %+v", q)
		want, err := full.Query(q)
		require.NoError(t, err, "query %+v", q)
		assert.InDelta(t, want.LegacyProbability, got.LegacyProbability, 1e-12, "query %+v", q)
		assert.Equal(t, want.MappedDifficulty, got.MappedDifficulty, "query %+v", q)
		assert.InDelta(t, want.SimplifiedProbability, got.SimplifiedProbability, 1e-12, "query %+v", q)
	}
	assert.Equal(t, 5, small.Limits.MaxDice)
}

func TestQuery_LargePoolIsComputedDirectly(t *testing.T) {
	tables := buildDefault(t)

	res, err := tables.Query(domain.Query{Dice: domain.MaxPoolDice, Successes: 550, Difficulty: 6})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.LegacyProbability, 0.0)
	assert.LessOrEqual(t, res.LegacyProbability, 1.0)

	row, err := SimplifiedRow(domain.MaxPoolDice, tables.Limits.MaxDifficulty)
	require.NoError(t, err)
	assert.Equal(t, tables.Limits.MaxDifficulty, row.Len())
	want, ok := Nearest(row, domain.MaxPoolDice, res.LegacyProbability)
	require.True(t, ok)
	assert.Equal(t, want, res.MappedDifficulty)
}

func TestSimplifiedRow_MatchesTable(t *testing.T) {
	tables := buildDefault(t)

	row, err := SimplifiedRow(7, 10)
	require.NoError(t, err)
	assert.Equal(t, 7, row.Len())
	for _, k := range row.Keys() {
		want, ok := tables.Simplified.Lookup(k)
		require.True(t, ok, "key %s", k)
		got, _ := row.Lookup(k)
		assert.Equal(t, want, got, "key %s", k)
	}
}

func TestQuery_RejectsOutOfRange(t *testing.T) {
	tables, err := Build(domain.Limits{MaxDice: 5, MaxSuccesses: 10, MaxDifficulty: 10})
	require.NoError(t, err)

	for _, q := range []domain.Query{
		{Dice: 0, Successes: 1, Difficulty: 6},
		{Dice: domain.MaxPoolDice + 1, Successes: 1, Difficulty: 6},
		{Dice: 3, Successes: 0, Difficulty: 6},
		{Dice: 3, Successes: 1, Difficulty: 1},
		{Dice: 3, Successes: 1, Difficulty: 11},
	} {
		_, err := tables.Query(q)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "query %+v", q)
	}
}

func TestBuild_RejectsInvalidLimits(t *testing.T) {
	for _, l := range []domain.Limits{
		{MaxDice: 0, MaxSuccesses: 10, MaxDifficulty: 10},
		{MaxDice: domain.MaxTableDice + 1, MaxSuccesses: 10, MaxDifficulty: 10},
		{MaxDice: 5, MaxSuccesses: 0, MaxDifficulty: 10},
		{MaxDice: 5, MaxSuccesses: 10, MaxDifficulty: 1},
		{MaxDice: 5, MaxSuccesses: 11, MaxDifficulty: 10},
	} {
		_, err := Build(l)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "limits %+v", l)
	}
}

func TestBuild_IsRepeatable(t *testing.T) {
	a := buildDefault(t)
	b := buildDefault(t)
	for _, k := range a.Legacy.Keys() {
		pa, _ := a.Legacy.Lookup(k)
		pb, _ := b.Legacy.Lookup(k)
		assert.Equal(t, pa, pb)
		da, _ := a.Mapping.Lookup(k)
		db, _ := b.Mapping.Lookup(k)
		assert.Equal(t, da, db)
	}
}
