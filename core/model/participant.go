package model

import "fmt"

// Gender is a participant's gender identity tag.
type Gender string

const (
	GenderMale      Gender = "Male"
	GenderFemale    Gender = "Female"
	GenderNonbinary Gender = "Nonbinary"
)

// Preference is the category a participant states for the genders they want
// to be matched with.
type Preference string

const (
	PreferenceMen      Preference = "Men"
	PreferenceWomen    Preference = "Women"
	PreferenceBisexual Preference = "Bisexual"
)

// Participant is one member of the population being matched. ID is the
// stable index of the participant in the score matrix.
type Participant struct {
	ID         int        `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Gender     Gender     `json:"gender" yaml:"gender"`
	Preference Preference `json:"preference" yaml:"preference"`
	// Accepts lists the genders the participant accepts for scoring. When
	// empty it is derived from Preference through the rule table.
	Accepts   []Gender `json:"accepts,omitempty" yaml:"accepts,omitempty"`
	GradYear  int      `json:"grad_year" yaml:"grad_year"`
	Responses []int    `json:"responses" yaml:"responses"`
}

// Identities returns the gender identity of every participant, indexed by ID order.
func Identities(ps []Participant) []Gender {
	out := make([]Gender, len(ps))
	for i, p := range ps {
		out[i] = p.Gender
	}
	return out
}

// Preferences returns the preference category of every participant.
func Preferences(ps []Participant) []Preference {
	out := make([]Preference, len(ps))
	for i, p := range ps {
		out[i] = p.Preference
	}
	return out
}

// AcceptedGenders returns Accepts when set, otherwise the genders the rule
// table lists for the participant's preference.
func (p Participant) AcceptedGenders(rules CompatibilityRules) ([]Gender, error) {
	if len(p.Accepts) > 0 {
		return p.Accepts, nil
	}
	gs, ok := rules[p.Preference]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", p.Name, ErrUnknownPreference, p.Preference)
	}
	return gs, nil
}
