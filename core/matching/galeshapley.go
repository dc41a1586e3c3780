package matching

import "fmt"

// GaleShapley runs deferred acceptance for one partition and returns the
// proposer-optimal stable matching with respect to the given rankings.
//
// Free proposers wait in a FIFO queue. A proposer always proposes to the next
// receiver its cursor points at and never revisits a receiver. A receiver
// holding an offer switches only to a strictly preferred proposer; the
// displaced proposer returns to the back of the queue.
func GaleShapley(proposers, receivers []int, pr, rr Rankings) (Match, error) {
	engaged := make(map[int]int, len(receivers))
	match := make(Match, len(proposers))
	cursor := make(map[int]int, len(proposers))

	queue := append([]int(nil), proposers...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		list := pr.order[p]
		next := cursor[p]
		if next >= len(list) {
			return nil, fmt.Errorf("%w: proposer %d", ErrRankingExhausted, p)
		}
		r := list[next]
		cursor[p] = next + 1

		current, taken := engaged[r]
		switch {
		case !taken:
			engaged[r] = p
			match[p] = r
		case rr.Position(r, p) < rr.Position(r, current):
			engaged[r] = p
			match[p] = r
			delete(match, current)
			queue = append(queue, current)
		default:
			queue = append(queue, p)
		}
	}
	return match, nil
}
