package dice

import (
	"fmt"

	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

// LegacySuccessChance is the chance of a single die showing difficulty or higher.
func LegacySuccessChance(difficulty int) float64 {
	return float64(domain.DieFaces-difficulty+1) / domain.DieFaces
}

// legacyOneChance is the chance of a die that missed the difficulty showing a 1.
func legacyOneChance(difficulty int) float64 {
	return 1 / float64(difficulty-1)
}

// Legacy returns the probability that a legacy pool of dice d10 nets at least
// successes hits against difficulty.
//
// Every die showing difficulty or higher is a hit. Every 1 cancels a hit,
// unless all dice hit. The result sums, over the raw hit count x, the chance
// of exactly x hits times the chance that the ones among the other dice leave
// at least successes hits standing.
//
// Precondition: dice >= 1, successes >= 1, 2 <= difficulty <= 10. Anything
// else returns domain.ErrInvalidArgument.
// Postcondition: the result lies in [0,1] and is 0 when successes > dice.
func Legacy(dice, successes, difficulty int) (float64, error) {
	if dice < 1 || successes < 1 {
		return 0, fmt.Errorf("legacy roll %dd10 needing %d: %w", dice, successes, domain.ErrInvalidArgument)
	}
	if difficulty < domain.MinLegacyDifficulty || difficulty > domain.DieFaces {
		return 0, fmt.Errorf("legacy difficulty %d: %w", difficulty, domain.ErrInvalidArgument)
	}
	if dice < successes {
		return 0, nil
	}

	hit := LegacySuccessChance(difficulty)
	var total float64
	for x := successes; x <= dice; x++ {
		total += BinomialPMF(hit, dice, x) * cancellationSurvival(dice, x, successes, difficulty)
	}
	return clamp(total), nil
}

// cancellationSurvival is the chance that x raw hits out of dice still meet
// successes once the ones rolled by the remaining dice are subtracted.
func cancellationSurvival(dice, hits, successes, difficulty int) float64 {
	if hits < successes {
		return 0
	}
	if hits == dice {
		return 1
	}
	return BinomialCDF(legacyOneChance(difficulty), dice-hits, hits-successes)
}
