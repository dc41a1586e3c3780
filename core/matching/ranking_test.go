package matching

import (
	"slices"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func allCompatible(n int) Mask {
	m := NewMask(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, i != j)
		}
	}
	return m
}

func TestRank_DescendingWithStableTies(t *testing.T) {
	raw := mat.NewDense(5, 5, []float64{
		0, 0, 3, 3, 9,
		0, 0, 1, 2, 3,
		3, 1, 0, 0, 0,
		3, 2, 0, 0, 0,
		9, 3, 0, 0, 0,
	})
	p := NewPartition(5, []int{0, 1})
	s := Sanitize(raw, allCompatible(5), p)
	r := Rank(p.Proposers, p.Receivers, s)

	if got := r.Order(0); !slices.Equal(got, []int{4, 2, 3}) {
		t.Fatalf("proposer 0 ranking %v", got)
	}
	if got := r.Order(1); !slices.Equal(got, []int{4, 3, 2}) {
		t.Fatalf("proposer 1 ranking %v", got)
	}
	if r.Position(0, 1) != -1 {
		t.Fatalf("same-role participant must not be ranked")
	}
	if !r.Prefers(0, 2, 3) {
		t.Fatalf("tie should favour lower id")
	}
}

func TestRank_ForbiddenAfterAllowed(t *testing.T) {
	raw := mat.NewDense(3, 3, []float64{
		0, 5, -2,
		5, 0, 0,
		-2, 0, 0,
	})
	compat := allCompatible(3)
	compat.Set(0, 1, false)
	compat.Set(1, 0, false)
	p := NewPartition(3, []int{0})
	s := Sanitize(raw, compat, p)
	r := Rank([]int{0}, p.Receivers, s)
	if got := r.Order(0); !slices.Equal(got, []int{2, 1}) {
		t.Fatalf("negative allowed score should precede forbidden pair, got %v", got)
	}
}

func TestRank_OrderIsCopy(t *testing.T) {
	raw := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	p := NewPartition(2, []int{0})
	s := Sanitize(raw, allCompatible(2), p)
	r := Rank([]int{0}, []int{1}, s)
	o := r.Order(0)
	o[0] = 99
	if r.Order(0)[0] != 1 {
		t.Fatalf("ranking mutated through Order")
	}
}
