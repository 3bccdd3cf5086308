package track

import "testing"

func TestBinomial(t *testing.T) {
	tests := []struct {
		n, k int
		want int
	}{
		{0, 0, 1},
		{1, 0, 1},
		{1, 1, 1},
		{4, 2, 6},
		{5, 2, 10},
		{5, 3, 10},
		{9, 4, 126},
		{10, 5, 252},
		{20, 10, 184756},
		// 30! overflows int64, the recurrence doesn't.
		{30, 15, 155117520},
		{60, 30, 118264581564861424},
	}
	for _, tt := range tests {
		if got := Binomial(tt.n, tt.k); got != tt.want {
			t.Errorf("Binomial(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}

func TestBinomialRow(t *testing.T) {
	// Each row of Pascal's triangle sums to 2ⁿ.
	for n := range 16 {
		var sum int
		for k := 0; k <= n; k++ {
			sum += Binomial(n, k)
		}
		if sum != 1<<n {
			t.Errorf("row %d sums to %d, want %d", n, sum, 1<<n)
		}
	}
}

func TestBinomialPanics(t *testing.T) {
	for _, k := range []int{-1, 4} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Binomial(3, %d) didn't panic", k)
				}
			}()
			Binomial(3, k)
		}()
	}
}
