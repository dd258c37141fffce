package inventory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Run("remaining and soldOut over a range of counts", func(t *testing.T) {
		for count := 0; count <= 3*DefaultCapacity; count++ {
			got := Compute(count, DefaultCapacity)

			want := DefaultCapacity - count
			if want < 0 {
				want = 0
			}
			require.Equal(t, want, got.Remaining, "count=%d", count)
			require.Equal(t, count >= DefaultCapacity, got.SoldOut, "count=%d", count)
		}
	})

	t.Run("fresh campaign", func(t *testing.T) {
		got := Compute(0, DefaultCapacity)
		require.Equal(t, Status{Remaining: 5, SoldOut: false}, got)
	})

	t.Run("exactly at capacity", func(t *testing.T) {
		got := Compute(DefaultCapacity, DefaultCapacity)
		require.Equal(t, Status{Remaining: 0, SoldOut: true}, got)
	})

	t.Run("oversold store clamps at zero", func(t *testing.T) {
		got := Compute(7, DefaultCapacity)
		require.Equal(t, Status{Remaining: 0, SoldOut: true}, got)
	})

	t.Run("non-default capacity", func(t *testing.T) {
		got := Compute(1, 3)
		require.Equal(t, Status{Remaining: 2, SoldOut: false}, got)
	})
}
