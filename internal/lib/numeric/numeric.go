// Package numeric holds the pure numeric kernels behind the bfhl
// operations: Fibonacci generation, primality, GCD and LCM reductions.
//
// Every function is deterministic and free of side effects. Results are
// freshly allocated and owned by the caller. FilterPrimes, the only kernel
// whose cost grows with both input size and magnitude, honours a context.
package numeric

import (
	"context"
	"math"
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for inputs outside a kernel's domain
	// (negative Fibonacci count, empty reduction).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOverflow is returned when a result does not fit in an int64.
	ErrOverflow = errors.New("integer overflow")
)

// Fibonacci returns the first n Fibonacci numbers: 0, 1, 1, 2, 3, ...
func Fibonacci(n int) ([]*big.Int, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "fibonacci input must be non-negative, got %d", n)
	}

	seq := make([]*big.Int, 0, n)
	for i := 0; i < n; i++ {
		switch i {
		case 0:
			seq = append(seq, big.NewInt(0))
		case 1:
			seq = append(seq, big.NewInt(1))
		default:
			seq = append(seq, new(big.Int).Add(seq[i-1], seq[i-2]))
		}
	}
	return seq, nil
}

// trialDivisionLimit is the point above which IsPrime switches from 6k+/-1
// trial division (at most ~170 steps below it) to Baillie-PSW.
const trialDivisionLimit = 1 << 20

// cancelCheckInterval is how many elements FilterPrimes tests between
// context checks.
const cancelCheckInterval = 256

// IsPrime reports whether x >= 2 has no divisor in [2, sqrt(x)].
//
// Inputs from trialDivisionLimit up use big.Int.ProbablyPrime(0), which is
// exact for every value below 2^64.
func IsPrime(x int64) bool {
	if x < 2 {
		return false
	}
	if x >= trialDivisionLimit {
		return big.NewInt(x).ProbablyPrime(0)
	}
	if x < 4 {
		return true
	}
	if x%2 == 0 || x%3 == 0 {
		return false
	}
	// Remaining candidates are of the form 6k +/- 1.
	for i := int64(5); i <= x/i; i += 6 {
		if x%i == 0 || x%(i+2) == 0 {
			return false
		}
	}
	return true
}

// FilterPrimes returns the primes of xs in input order. It stops early
// with ctx's error once ctx is done.
func FilterPrimes(ctx context.Context, xs []int64) ([]int64, error) {
	primes := make([]int64, 0, len(xs))
	for i, x := range xs {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if IsPrime(x) {
			primes = append(primes, x)
		}
	}
	return primes, nil
}

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(a, 0) is |a|.
//
// Inputs are expected to be above math.MinInt64, whose absolute value has
// no int64 representation.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ReduceGCD folds GCD over xs from the left.
func ReduceGCD(xs []int64) (int64, error) {
	if len(xs) == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "gcd of an empty sequence")
	}

	acc := abs(xs[0])
	for _, x := range xs[1:] {
		acc = GCD(acc, x)
	}
	return acc, nil
}

// LCM returns |a*b| / GCD(a, b). Any zero operand yields 0.
func LCM(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	a, b = abs(a), abs(b)
	q := uint64(a / GCD(a, b))
	hi, lo := bits.Mul64(q, uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, errors.Wrapf(ErrOverflow, "lcm(%d, %d)", a, b)
	}
	return int64(lo), nil
}

// ReduceLCM folds LCM over xs from the left.
func ReduceLCM(xs []int64) (int64, error) {
	if len(xs) == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "lcm of an empty sequence")
	}

	acc := abs(xs[0])
	for _, x := range xs[1:] {
		var err error
		if acc, err = LCM(acc, x); err != nil {
			return 0, err
		}
	}
	return acc, nil
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
