package matching

import (
	"iter"

	"gonum.org/v1/gonum/stat/combin"
)

// Partition splits the population into proposers and receivers for one
// attempt. Index is the position of the partition in enumeration order.
type Partition struct {
	Index     int
	Proposers []int
	Receivers []int
	proposer  []bool
}

// NewPartition builds a partition of n participants with the given proposers.
// Every other id becomes a receiver, in ascending order.
func NewPartition(n int, proposers []int) Partition {
	p := Partition{
		Proposers: append([]int(nil), proposers...),
		Receivers: make([]int, 0, n-len(proposers)),
		proposer:  make([]bool, n),
	}
	for _, id := range proposers {
		p.proposer[id] = true
	}
	for id := 0; id < n; id++ {
		if !p.proposer[id] {
			p.Receivers = append(p.Receivers, id)
		}
	}
	return p
}

// IsProposer reports whether id plays the proposer role.
func (p Partition) IsProposer(id int) bool { return p.proposer[id] }

// SameRole reports whether i and j play the same role.
func (p Partition) SameRole(i, j int) bool { return p.proposer[i] == p.proposer[j] }

// Size returns the population size.
func (p Partition) Size() int { return len(p.proposer) }

// PartitionCount returns C(n, ⌊n/2⌋), the number of partitions Partitions
// yields for n participants.
func PartitionCount(n int) int {
	if n < 2 {
		return 0
	}
	return combin.Binomial(n, n/2)
}

// Partitions lazily yields every proposer set of size ⌊n/2⌋ in lexicographic
// ascending order, paired with its enumeration index. The sequence is finite
// and restartable: each range over it starts from the first partition.
func Partitions(n int) iter.Seq2[int, Partition] {
	return func(yield func(int, Partition) bool) {
		if n < 2 {
			return
		}
		gen := combin.NewCombinationGenerator(n, n/2)
		buf := make([]int, n/2)
		for idx := 0; gen.Next(); idx++ {
			p := NewPartition(n, gen.Combination(buf))
			p.Index = idx
			if !yield(idx, p) {
				return
			}
		}
	}
}
