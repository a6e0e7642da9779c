package wave

import (
	"math"
	"math/bits"
)

const maxLevels = 63

// maxIncrement returns the largest per-item value that cannot overflow
// total within a single window of N time units: floor(MaxInt64 / N).
func maxIncrement(n int64) int64 {
	if n <= 0 {
		return math.MaxInt64
	}
	return math.MaxInt64 / n
}

// modulus returns the smallest power of two >= 2*N*R, clamped to 2^62
// when 2*N*R would overflow int64.
func modulus(n, r int64) int64 {
	if n <= 0 || r <= 0 {
		return 1
	}
	need := safeMul2(n, r)
	if need < 0 || need > 1<<62 {
		return 1 << 62
	}
	m := int64(1)
	for m < need {
		if m >= 1<<62 {
			return 1 << 62
		}
		m <<= 1
	}
	return m
}

// safeMul2 computes 2*n*r, returning -1 if the product would overflow
// int64. n and r are both assumed positive.
func safeMul2(n, r int64) int64 {
	const limit = math.MaxInt64 / 2
	if n > limit/r {
		return -1
	}
	return 2 * n * r
}

// numLevels returns 1 + |ceil(log2(2*eps*N*r))|, clamped to [1, maxLevels].
// r defaults to maxIncrement(N) when R is not positive.
func numLevels(n int64, eps float64, r int64) int {
	rr := r
	if rr <= 0 {
		rr = maxIncrement(n)
	}
	if eps <= 0 {
		eps = 0.01
	}
	arg := 2 * eps * float64(n) * float64(rr)
	if arg <= 0 {
		arg = 1
	}
	val := math.Ceil(math.Log2(arg))
	levels := 1 + int(math.Abs(val))
	if levels < 1 {
		levels = 1
	}
	if levels > maxLevels {
		levels = maxLevels
	}
	return levels
}

// levelCap returns the per-level queue bound ceil(1/eps) + 1. eps
// defaults to 0.01 when zero.
func levelCap(eps float64) int {
	if eps <= 0 {
		eps = 0.01
	}
	return int(math.Ceil(1/eps)) + 1
}

// bitLen64 returns floor(log2(x)) for x > 0, or -1 for x == 0.
func bitLen64(x uint64) int {
	if x == 0 {
		return -1
	}
	return bits.Len64(x) - 1
}
