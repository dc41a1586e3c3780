package matching

import (
	"errors"

	"github.com/inakineitor/algo-comp-2023/core/model"
)

var (
	// ErrMalformedInput reports a score matrix that is not square, contains
	// NaN or Inf, or whose size differs from the gender metadata.
	ErrMalformedInput = errors.New("matching: malformed input")

	// ErrDegeneratePopulation reports a population too small to pair anyone.
	ErrDegeneratePopulation = errors.New("matching: population must contain at least two participants")

	// ErrTooManyParticipants reports a population above Config.MaxParticipants.
	ErrTooManyParticipants = errors.New("matching: too many participants for exhaustive partition search")

	// ErrUnknownPreference aliases the model error so callers of this package
	// can match it without importing model.
	ErrUnknownPreference = model.ErrUnknownPreference

	// ErrNoFeasibleMatching is returned by Result.Err when the search ended
	// without a valid matching.
	ErrNoFeasibleMatching = errors.New("matching: no feasible matching")

	// ErrRankingExhausted means a free proposer ran out of candidates. It can
	// only happen when rankings are incomplete.
	ErrRankingExhausted = errors.New("matching: proposer exhausted its ranking")

	// ErrUnstable is returned by VerifyStable when a blocking pair exists.
	ErrUnstable = errors.New("matching: unstable matching")
)
