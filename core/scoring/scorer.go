package scoring

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/inakineitor/algo-comp-2023/core/model"
)

// Scorer computes compatibility scores in [0, 1].
type Scorer struct {
	cfg   Config
	rules model.CompatibilityRules
}

// NewScorer validates cfg and returns a Scorer. A nil rule table selects the
// default rules.
func NewScorer(cfg Config, rules model.CompatibilityRules) (*Scorer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = model.DefaultRules()
	}
	return &Scorer{cfg: cfg, rules: rules}, nil
}

// Score returns the compatibility of a and b within pop. Pairs whose genders
// are not mutually accepted score zero.
func (s *Scorer) Score(pop *Population, a, b model.Participant) (float64, error) {
	ok, err := s.mutual(a, b)
	if err != nil || !ok {
		return 0, err
	}
	grad := pop.GraduationCompatibility(a.GradYear, b.GradYear)
	survey := pop.SurveyCompatibility(a.Responses, b.Responses)
	total := s.cfg.GraduationYearWeight + s.cfg.SurveyWeight
	return (grad*s.cfg.GraduationYearWeight + survey*s.cfg.SurveyWeight) / total, nil
}

// Matrix returns the symmetric N×N score matrix of ps with a zero diagonal.
func (s *Scorer) Matrix(ps []model.Participant) (*mat.Dense, error) {
	pop, err := NewPopulation(ps)
	if err != nil {
		return nil, err
	}
	n := len(ps)
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v, err := s.Score(pop, ps[i], ps[j])
			if err != nil {
				return nil, fmt.Errorf("score (%d,%d): %w", i, j, err)
			}
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m, nil
}

func (s *Scorer) mutual(a, b model.Participant) (bool, error) {
	aa, err := a.AcceptedGenders(s.rules)
	if err != nil {
		return false, err
	}
	ba, err := b.AcceptedGenders(s.rules)
	if err != nil {
		return false, err
	}
	return slices.Contains(aa, b.Gender) && slices.Contains(ba, a.Gender), nil
}
