package track

import "fmt"

// Binomial returns the binomial coefficient n choose k.
//
// It uses the multiplicative recurrence C(n, i) = C(n, i-1) * (n-i+1) / i,
// which never divides inexactly and stays within int range for every n that
// is reasonable as a Bézier degree. It panics if k is outside [0, n].
func Binomial(n, k int) int {
	if k < 0 || k > n {
		panic(fmt.Sprintf("binomial coefficient %d choose %d is undefined", n, k))
	}
	k = min(k, n-k)
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
