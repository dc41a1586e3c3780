package matching

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/inakineitor/algo-comp-2023/core/model"
)

// Input is the data a matching run consumes. Scores must be N×N with one
// identity and one preference per row.
type Input struct {
	Scores      *mat.Dense
	Identities  []model.Gender
	Preferences []model.Preference
}

// NewInput builds an Input from a row-major score grid. Ragged or empty grids
// are rejected with ErrMalformedInput or ErrDegeneratePopulation.
func NewInput(scores [][]float64, identities []model.Gender, preferences []model.Preference) (Input, error) {
	m, err := DenseFromRows(scores)
	if err != nil {
		return Input{}, err
	}
	return Input{Scores: m, Identities: identities, Preferences: preferences}, nil
}

// DenseFromRows copies a row-major grid into a dense matrix.
func DenseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, ErrDegeneratePopulation
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: empty score row", ErrMalformedInput)
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedInput, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// validate checks the structural preconditions of a run. The rule table check
// happens separately when the compatibility mask is built.
func (in Input) validate(maxParticipants int) error {
	if in.Scores == nil {
		return fmt.Errorf("%w: nil score matrix", ErrMalformedInput)
	}
	r, c := in.Scores.Dims()
	if r != c {
		return fmt.Errorf("%w: score matrix is %dx%d", ErrMalformedInput, r, c)
	}
	if len(in.Identities) != r || len(in.Preferences) != r {
		return fmt.Errorf("%w: %d scores rows but %d identities and %d preferences",
			ErrMalformedInput, r, len(in.Identities), len(in.Preferences))
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := in.Scores.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: score (%d,%d) is %v", ErrMalformedInput, i, j, v)
			}
		}
	}
	if r < 2 {
		return fmt.Errorf("%w: got %d", ErrDegeneratePopulation, r)
	}
	if maxParticipants > 0 && r > maxParticipants {
		return fmt.Errorf("%w: %d > %d", ErrTooManyParticipants, r, maxParticipants)
	}
	return nil
}

// Size returns N.
func (in Input) Size() int {
	if in.Scores == nil {
		return 0
	}
	r, _ := in.Scores.Dims()
	return r
}

// Match maps each proposer id to its receiver id.
type Match map[int]int

// Pair is one matched couple with its sanitized score.
type Pair struct {
	Proposer int     `json:"proposer"`
	Receiver int     `json:"receiver"`
	Score    float64 `json:"score"`
}

// Status describes how a run ended.
type Status int

const (
	// StatusMatched means a valid matching was found.
	StatusMatched Status = iota
	// StatusInfeasible means every partition was tried and none was valid.
	StatusInfeasible
	// StatusAttemptLimit means Config.MaxAttempts was reached first.
	StatusAttemptLimit
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusInfeasible:
		return "infeasible"
	case StatusAttemptLimit:
		return "attempt_limit"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus returns the Status with the given name.
func ParseStatus(name string) (Status, error) {
	for _, s := range []Status{StatusMatched, StatusInfeasible, StatusAttemptLimit} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// Result is the outcome of Engine.Match.
type Result struct {
	RunID  string `json:"run_id"`
	Status Status `json:"status"`
	// Pairs is sorted by proposer id.
	Pairs     []Pair `json:"pairs"`
	Proposers []int  `json:"proposers"`
	Receivers []int  `json:"receivers"`
	// Unmatched lists receivers left without a partner. It holds exactly one
	// id when N is odd and is empty otherwise.
	Unmatched []int `json:"unmatched"`
	// PartitionIndex is the enumeration position of the winning partition,
	// -1 when no matching was found.
	PartitionIndex int `json:"partition_index"`
	// Attempts counts evaluated partitions. Parallel runs may evaluate a few
	// partitions past the winner before they are cancelled.
	Attempts int           `json:"attempts"`
	Total    int           `json:"total"`
	Duration time.Duration `json:"duration"`
}

// Matched reports whether the run produced a matching.
func (r Result) Matched() bool { return r.Status == StatusMatched }

// Err returns ErrNoFeasibleMatching for runs that ended without a matching.
func (r Result) Err() error {
	switch r.Status {
	case StatusMatched:
		return nil
	case StatusAttemptLimit:
		return fmt.Errorf("%w within %d attempts", ErrNoFeasibleMatching, r.Attempts)
	default:
		return ErrNoFeasibleMatching
	}
}

// Match returns the proposer to receiver mapping of the result.
func (r Result) Match() Match {
	m := make(Match, len(r.Pairs))
	for _, p := range r.Pairs {
		m[p.Proposer] = p.Receiver
	}
	return m
}

// PartnerOf returns the partner of id, or false if id is unmatched.
func (r Result) PartnerOf(id int) (int, bool) {
	for _, p := range r.Pairs {
		switch id {
		case p.Proposer:
			return p.Receiver, true
		case p.Receiver:
			return p.Proposer, true
		}
	}
	return 0, false
}
