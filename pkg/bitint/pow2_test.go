// SPDX-License-Identifier: MIT
package bitint

import "testing"

func TestNextPowerOfTwo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero", 0, 1},
		{"negative", -8, 1},
		{"one", 1, 1},
		{"exact power preserved", 1024, 1024},
		{"rounds up", 1000, 1024},
		{"small odd", 5, 8},
		{"large", (1 << 20) + 1, 1 << 21},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextPowerOfTwo(tc.in); got != tc.want {
				t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 4, 256, 2048, 1 << 30} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, -4, 3, 6, 100, 2047} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", n)
		}
	}
}

func TestNextPowerOfTwoNoAllocs(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		_ = NextPowerOfTwo(1000)
		_ = IsPowerOfTwo(1024)
	})
	if allocs > 0 {
		t.Errorf("expected zero allocations, got %.1f", allocs)
	}
}
