package numeric

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func toInt64s(t *testing.T, seq []*big.Int) []int64 {
	t.Helper()

	out := make([]int64, len(seq))
	for i, v := range seq {
		require.True(t, v.IsInt64())
		out[i] = v.Int64()
	}
	return out
}

func TestFibonacci(t *testing.T) {
	tests := []struct {
		n    int
		want []int64
	}{
		{0, []int64{}},
		{1, []int64{0}},
		{2, []int64{0, 1}},
		{5, []int64{0, 1, 1, 2, 3}},
		{10, []int64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}},
	}

	for _, tt := range tests {
		seq, err := Fibonacci(tt.n)
		require.NoError(t, err)
		assert.NotNil(t, seq)
		assert.Equal(t, tt.want, toInt64s(t, seq), "n=%d", tt.n)
	}
}

func TestFibonacci_Recurrence(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 50, 100, 300} {
		seq, err := Fibonacci(n)
		require.NoError(t, err)
		require.Len(t, seq, n)

		for i := 2; i < n; i++ {
			sum := new(big.Int).Add(seq[i-1], seq[i-2])
			assert.Zero(t, sum.Cmp(seq[i]), "n=%d i=%d", n, i)
		}
	}
}

func TestFibonacci_BeyondInt64(t *testing.T) {
	seq, err := Fibonacci(100)
	require.NoError(t, err)

	// F(99) = 218922995834555169026
	assert.Equal(t, "218922995834555169026", seq[99].String())
}

func TestFibonacci_Negative(t *testing.T) {
	_, err := Fibonacci(-1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestIsPrime(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13, 17, 97, 7919, 1_000_000_007}
	for _, p := range primes {
		assert.True(t, IsPrime(p), "%d should be prime", p)
	}

	composites := []int64{math.MinInt64 + 1, -7, -1, 0, 1, 4, 9, 25, 49, 91, 7917, 1_000_000_007 * 3}
	for _, c := range composites {
		assert.False(t, IsPrime(c), "%d should not be prime", c)
	}
}

func TestIsPrime_MatchesTrialDivision(t *testing.T) {
	naive := func(x int64) bool {
		if x < 2 {
			return false
		}
		for d := int64(2); d*d <= x; d++ {
			if x%d == 0 {
				return false
			}
		}
		return true
	}

	for x := int64(-10); x <= 5000; x++ {
		assert.Equal(t, naive(x), IsPrime(x), "x=%d", x)
	}
}

func TestIsPrime_LargeInputs(t *testing.T) {
	primes := []int64{
		1_000_000_007,
		998_244_353,
		9_007_199_254_740_881, // largest prime below 2^53
		math.MaxInt64 - 24,    // largest prime below 2^63
	}
	for _, p := range primes {
		assert.True(t, IsPrime(p), "%d should be prime", p)
	}

	composites := []int64{
		trialDivisionLimit,
		3_215_031_751, // strong pseudoprime to bases 2, 3, 5 and 7
		1_000_000_007 * 998_244_353,
		9_007_199_254_740_881 + 2, // below 2^53, above its largest prime
	}
	for _, c := range composites {
		assert.False(t, IsPrime(c), "%d should not be prime", c)
	}
}

func TestIsPrime_MatchesTrialDivisionAcrossLimit(t *testing.T) {
	naive := func(x int64) bool {
		for d := int64(2); d*d <= x; d++ {
			if x%d == 0 {
				return false
			}
		}
		return x >= 2
	}

	for x := int64(trialDivisionLimit - 2000); x <= trialDivisionLimit+2000; x++ {
		assert.Equal(t, naive(x), IsPrime(x), "x=%d", x)
	}
}

func TestFilterPrimes(t *testing.T) {
	ctx := context.Background()

	got, err := FilterPrimes(ctx, []int64{1, 2, 3, 4, 5, 9, 17})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 5, 17}, got)

	got, err = FilterPrimes(ctx, []int64{7, 2, 8, 7})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 2, 7}, got)

	empty, err := FilterPrimes(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFilterPrimes_ManyLargePrimes(t *testing.T) {
	xs := make([]int64, 10000)
	for i := range xs {
		xs[i] = 9_007_199_254_740_881
	}

	got, err := FilterPrimes(context.Background(), xs)
	require.NoError(t, err)
	assert.Len(t, got, len(xs))
}

func TestFilterPrimes_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FilterPrimes(ctx, make([]int64, cancelCheckInterval*4))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{12, 18, 6},
		{18, 12, 6},
		{7, 0, 7},
		{-7, 0, 7},
		{0, 0, 0},
		{-12, 18, 6},
		{17, 5, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GCD(tt.a, tt.b), "gcd(%d, %d)", tt.a, tt.b)
	}
}

func TestReduceGCD(t *testing.T) {
	got, err := ReduceGCD([]int64{12, 18, 24})
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)

	got, err = ReduceGCD([]int64{-9})
	require.NoError(t, err)
	assert.Equal(t, int64(9), got)

	_, err = ReduceGCD([]int64{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestLCM(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{4, 6, 12},
		{-4, 6, 12},
		{5, 7, 35},
		{4, 0, 0},
		{0, 0, 0},
	}

	for _, tt := range tests {
		got, err := LCM(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "lcm(%d, %d)", tt.a, tt.b)
	}
}

func TestLCM_Overflow(t *testing.T) {
	_, err := LCM(math.MaxInt64, 2)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestReduceLCM(t *testing.T) {
	got, err := ReduceLCM([]int64{4, 6})
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	got, err = ReduceLCM([]int64{2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, int64(60), got)

	_, err = ReduceLCM(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	primes := []int64{
		1_000_003, 1_000_033, 1_000_037, 1_000_039,
	}
	_, err = ReduceLCM(primes)
	assert.True(t, errors.Is(err, ErrOverflow))
}
