package matching

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/inakineitor/algo-comp-2023/core/model"
)

// Mask is a square boolean matrix indexed by participant id.
type Mask struct {
	n    int
	bits []bool
}

// NewMask returns an n×n mask with every entry false.
func NewMask(n int) Mask { return Mask{n: n, bits: make([]bool, n*n)} }

// At returns entry (i, j).
func (m Mask) At(i, j int) bool { return m.bits[i*m.n+j] }

// Set writes entry (i, j).
func (m Mask) Set(i, j int, v bool) { m.bits[i*m.n+j] = v }

// Size returns n.
func (m Mask) Size() int { return m.n }

// GenderCompatibility evaluates the rule table for every pair. The resulting
// mask is symmetric: (i, j) is true only if each participant's identity is
// accepted by the other's preference. Unknown preference categories fail with
// ErrUnknownPreference before any pair is evaluated.
func GenderCompatibility(identities []model.Gender, preferences []model.Preference, rules model.CompatibilityRules) (Mask, error) {
	if len(identities) != len(preferences) {
		return Mask{}, fmt.Errorf("%w: %d identities but %d preferences", ErrMalformedInput, len(identities), len(preferences))
	}
	if err := rules.Validate(preferences); err != nil {
		return Mask{}, err
	}
	n := len(identities)
	mask := NewMask(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ok, err := rules.Compatible(identities[i], preferences[i], identities[j], preferences[j])
			if err != nil {
				return Mask{}, err
			}
			mask.Set(i, j, ok)
			mask.Set(j, i, ok)
		}
	}
	return mask, nil
}

// Sanitized is a score matrix prepared for one partition. Forbidden pairs
// have their score forced to zero and are flagged in the mask, so a forbidden
// pair can be told apart from a genuinely zero score.
type Sanitized struct {
	Scores    *mat.Dense
	Forbidden Mask
}

// Score returns the sanitized score of (i, j).
func (s Sanitized) Score(i, j int) float64 { return s.Scores.At(i, j) }

// Allowed reports whether (i, j) may be matched.
func (s Sanitized) Allowed(i, j int) bool { return !s.Forbidden.At(i, j) }

// Sanitize copies raw and forbids every pair that is gender-incompatible
// under compat or whose members share a role in p. raw is left untouched so it
// can be reused across partitions.
func Sanitize(raw mat.Matrix, compat Mask, p Partition) Sanitized {
	scores := mat.DenseCopyOf(raw)
	n, _ := scores.Dims()
	forbidden := NewMask(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if p.SameRole(i, j) || !compat.At(i, j) {
				forbidden.Set(i, j, true)
				scores.Set(i, j, 0)
			}
		}
	}
	return Sanitized{Scores: scores, Forbidden: forbidden}
}
