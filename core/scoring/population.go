package scoring

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inakineitor/algo-comp-2023/core/model"
)

var (
	// ErrEmptyPopulation is returned when no participant is given.
	ErrEmptyPopulation = errors.New("empty population")
	// ErrResponseMismatch is returned when participants answered a different
	// number of survey questions.
	ErrResponseMismatch = errors.New("survey response count mismatch")
)

// Population holds the statistics a score depends on.
type Population struct {
	grad      distuv.Normal
	flat      bool
	questions int
	// weights[q][answer] is 1/(1+freq/total) for question q.
	weights []map[int]float64
}

// NewPopulation derives graduation-year and answer-frequency statistics from ps.
func NewPopulation(ps []model.Participant) (*Population, error) {
	if len(ps) == 0 {
		return nil, ErrEmptyPopulation
	}
	questions := len(ps[0].Responses)
	years := make([]float64, len(ps))
	for i, p := range ps {
		if len(p.Responses) != questions {
			return nil, fmt.Errorf("%w: %s answered %d questions, expected %d",
				ErrResponseMismatch, p.Name, len(p.Responses), questions)
		}
		years[i] = float64(p.GradYear)
	}

	pop := &Population{questions: questions}
	mean := stat.Mean(years, nil)
	sd := 0.0
	if len(years) > 1 {
		sd = stat.StdDev(years, nil)
	}
	if sd == 0 || math.IsNaN(sd) {
		pop.flat = true
	} else {
		pop.grad = distuv.Normal{Mu: mean, Sigma: sd}
	}

	pop.weights = make([]map[int]float64, questions)
	for q := range questions {
		freq := make(map[int]int)
		for _, p := range ps {
			freq[p.Responses[q]]++
		}
		w := make(map[int]float64, len(freq))
		for answer, f := range freq {
			w[answer] = 1 / (1 + float64(f)/float64(len(ps)))
		}
		pop.weights[q] = w
	}
	return pop, nil
}

// Questions returns the number of survey questions.
func (p *Population) Questions() int { return p.questions }

// GraduationCompatibility returns 1-|CDF(a)-CDF(b)|. When every participant
// graduates the same year the distribution is degenerate and the result is 1.
func (p *Population) GraduationCompatibility(a, b int) float64 {
	if p.flat {
		return 1
	}
	return 1 - math.Abs(p.grad.CDF(float64(a))-p.grad.CDF(float64(b)))
}

// AnswerWeight returns the weight of answer for question q. Unseen answers weigh 1.
func (p *Population) AnswerWeight(q, answer int) float64 {
	if w, ok := p.weights[q][answer]; ok {
		return w
	}
	return 1
}

// SurveyCompatibility sums the weights of the answers a and b share,
// normalised by the number of questions.
func (p *Population) SurveyCompatibility(a, b []int) float64 {
	if p.questions == 0 {
		return 0
	}
	var sum float64
	for q := 0; q < p.questions && q < len(a) && q < len(b); q++ {
		if a[q] == b[q] {
			sum += p.AnswerWeight(q, a[q])
		}
	}
	return sum / float64(p.questions)
}
