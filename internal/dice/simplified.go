package dice

import (
	"fmt"
	"math"

	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

const (
	// SimplifiedSuccessChance is the chance of a die showing 6 or more.
	SimplifiedSuccessChance = 0.5

	maxFaceChance = 1.0 / domain.DieFaces
	midFaceChance = SimplifiedSuccessChance - maxFaceChance
	missChance    = 1 - SimplifiedSuccessChance
)

// SimplifiedScore is the number of successes scored by tens tens and mids
// other successful dice. Every complete pair of tens adds two extra successes.
func SimplifiedScore(tens, mids int) int {
	return mids + tens + 2*(tens/2)
}

// Simplified returns the probability that a simplified pool of dice d10
// scores at least difficulty successes.
//
// The base term counts plain successes at one half per die. The bonus term
// adds the outcomes that fall short on plain successes but reach difficulty
// once paired tens are doubled; since those outcomes fail without the bonus,
// none of them is already part of the base term.
//
// Precondition: dice >= 1, difficulty >= 1, else domain.ErrInvalidArgument.
// Postcondition: the result lies in [0,1] and is 0 when difficulty > dice.
func Simplified(dice, difficulty int) (float64, error) {
	if dice < 1 || difficulty < 1 {
		return 0, fmt.Errorf("simplified roll %dd10 at difficulty %d: %w", dice, difficulty, domain.ErrInvalidArgument)
	}
	if dice < difficulty {
		return 0, nil
	}
	base := BinomialTailProbability(SimplifiedSuccessChance, dice, difficulty)
	return clamp(base + pairedTensBonus(dice, difficulty)), nil
}

func pairedTensBonus(dice, difficulty int) float64 {
	var bonus float64
	for tens := 2; tens <= dice; tens++ {
		for mids := 0; mids <= dice-tens; mids++ {
			if mids+tens >= difficulty {
				// plain successes already reach difficulty: part of the base term
				break
			}
			if SimplifiedScore(tens, mids) < difficulty {
				continue
			}
			misses := dice - tens - mids
			bonus += math.Exp(logChoose(dice, tens) + logChoose(dice-tens, mids) +
				float64(tens)*math.Log(maxFaceChance) +
				float64(mids)*math.Log(midFaceChance) +
				float64(misses)*math.Log(missChance))
		}
	}
	return bonus
}
