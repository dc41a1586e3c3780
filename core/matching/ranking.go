package matching

import (
	"cmp"
	"slices"
)

// Rankings holds, for each chooser, its candidates ordered from most to
// least preferred. Rankings are never mutated after construction; matchers
// keep their own cursors into them.
type Rankings struct {
	order map[int][]int
	pos   map[int][]int
}

// Rank orders candidates for every chooser by descending sanitized score.
// Allowed candidates precede forbidden ones, and equal scores keep ascending
// id order because the sort is stable over the id-ordered candidate list.
// Choosers never rank members of their own role: pass the other role as
// candidates.
func Rank(choosers, candidates []int, s Sanitized) Rankings {
	n := s.Forbidden.Size()
	base := slices.Clone(candidates)
	slices.Sort(base)
	r := Rankings{order: make(map[int][]int, len(choosers)), pos: make(map[int][]int, len(choosers))}
	for _, c := range choosers {
		list := slices.Clone(base)
		slices.SortStableFunc(list, func(a, b int) int {
			fa, fb := s.Forbidden.At(c, a), s.Forbidden.At(c, b)
			if fa != fb {
				if fa {
					return 1
				}
				return -1
			}
			return cmp.Compare(s.Score(c, b), s.Score(c, a))
		})
		pos := make([]int, n)
		for i := range pos {
			pos[i] = -1
		}
		for i, id := range list {
			pos[id] = i
		}
		r.order[c] = list
		r.pos[c] = pos
	}
	return r
}

// Order returns a copy of chooser's ranking.
func (r Rankings) Order(chooser int) []int { return slices.Clone(r.order[chooser]) }

// Position returns the index of candidate in chooser's ranking, or -1 if the
// candidate is not ranked.
func (r Rankings) Position(chooser, candidate int) int {
	pos, ok := r.pos[chooser]
	if !ok || candidate < 0 || candidate >= len(pos) {
		return -1
	}
	return pos[candidate]
}

// Prefers reports whether chooser ranks a strictly above b.
func (r Rankings) Prefers(chooser, a, b int) bool {
	pa, pb := r.Position(chooser, a), r.Position(chooser, b)
	if pa < 0 {
		return false
	}
	return pb < 0 || pa < pb
}
