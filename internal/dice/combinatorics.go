// Package dice implements the success-probability models of the legacy and
// simplified dice pool rules, on top of a few exact combinatorics helpers.
package dice

import (
	"fmt"
	"math"
	"math/big"

	"github.com/aurceive/vtm-dice-mapping/internal/domain"
)

// Factorial returns n! exactly. Negative n yields 1, callers guard the range.
func Factorial(n int) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}

// BinomialCoefficient returns n!/(x!(n-x)!) computed from exact factorials.
// The probability functions below work in log space and do not call it.
//
// Precondition: 0 <= x <= n. Anything else returns domain.ErrInvalidArgument.
func BinomialCoefficient(n, x int) (*big.Int, error) {
	if n < 0 || x < 0 || x > n {
		return nil, fmt.Errorf("binomial coefficient C(%d,%d): %w", n, x, domain.ErrInvalidArgument)
	}
	denom := new(big.Int).Mul(Factorial(x), Factorial(n-x))
	return new(big.Int).Quo(Factorial(n), denom), nil
}

// logChoose is the natural log of C(n,x). It stays finite for pools whose
// coefficient no longer fits a float64.
func logChoose(n, x int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(x + 1))
	c, _ := math.Lgamma(float64(n - x + 1))
	return a - b - c
}

// logPMF is the natural log of BinomialPMF for 0 < p < 1 and 0 <= x <= n.
func logPMF(p float64, n, x int) float64 {
	return logChoose(n, x) + float64(x)*math.Log(p) + float64(n-x)*math.Log1p(-p)
}

// BinomialPMF returns the probability of exactly x successes in n
// independent Bernoulli(p) trials.
func BinomialPMF(p float64, n, x int) float64 {
	if x < 0 || x > n {
		return 0
	}
	switch p {
	case 0:
		return indicator(x == 0)
	case 1:
		return indicator(x == n)
	}
	return math.Exp(logPMF(p, n, x))
}

// binomialRange sums the PMF over lo..hi. Each term is stepped from the
// previous one in log space, so the whole sum needs a single logChoose.
func binomialRange(p float64, n, lo, hi int) float64 {
	lo, hi = max(lo, 0), min(hi, n)
	if lo > hi {
		return 0
	}
	switch p {
	case 0:
		return indicator(lo == 0)
	case 1:
		return indicator(hi == n)
	}
	odds := math.Log(p) - math.Log1p(-p)
	term := logPMF(p, n, lo)
	var sum float64
	for i := lo; ; i++ {
		sum += math.Exp(term)
		if i == hi {
			return sum
		}
		term += math.Log(float64(n-i)/float64(i+1)) + odds
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// BinomialTailProbability returns the probability of at least x successes in
// n independent Bernoulli(p) trials.
//
// x > n is impossible and yields 0; p == 1 yields exactly 1. The result is
// clamped to [0,1].
func BinomialTailProbability(p float64, n, x int) float64 {
	if x > n {
		return 0
	}
	if x <= 0 || p == 1 {
		return 1
	}
	return clamp(binomialRange(p, n, x, n))
}

// BinomialCDF returns the probability of at most k successes in n
// independent Bernoulli(p) trials.
func BinomialCDF(p float64, n, k int) float64 {
	if k < 0 {
		return 0
	}
	if k >= n {
		return 1
	}
	return clamp(binomialRange(p, n, 0, k))
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
