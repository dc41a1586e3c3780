package matching

import "fmt"

// VerifyStable checks m for blocking pairs: a proposer p and receiver r who
// both rank each other above their current partners. Unmatched receivers
// prefer any ranked proposer to being alone.
func VerifyStable(m Match, pr, rr Rankings) error {
	partner := make(map[int]int, len(m))
	for p, r := range m {
		if q, dup := partner[r]; dup {
			return fmt.Errorf("%w: receiver %d matched to %d and %d", ErrUnstable, r, q, p)
		}
		partner[r] = p
	}
	for p, mine := range m {
		for _, r := range pr.order[p] {
			if r == mine {
				break
			}
			current, ok := partner[r]
			if !ok || rr.Prefers(r, p, current) {
				return fmt.Errorf("%w: proposer %d and receiver %d form a blocking pair", ErrUnstable, p, r)
			}
		}
	}
	return nil
}
