package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownPreference is returned when a preference category has no entry in
// the compatibility rule table.
var ErrUnknownPreference = errors.New("unrecognized preference category")

// CompatibilityRules maps a preference category to the gender identities it accepts.
type CompatibilityRules map[Preference][]Gender

// DefaultRules returns the Men/Women/Bisexual rule table. A fresh map is
// returned on every call so callers may extend it freely.
func DefaultRules() CompatibilityRules {
	return CompatibilityRules{
		PreferenceMen:      {GenderMale},
		PreferenceWomen:    {GenderFemale},
		PreferenceBisexual: {GenderMale, GenderFemale, GenderNonbinary},
	}
}

// RulesFromStrings converts a raw configuration table into CompatibilityRules.
// An empty table yields DefaultRules.
func RulesFromStrings(raw map[string][]string) CompatibilityRules {
	if len(raw) == 0 {
		return DefaultRules()
	}
	rules := make(CompatibilityRules, len(raw))
	for pref, genders := range raw {
		gs := make([]Gender, len(genders))
		for i, g := range genders {
			gs[i] = Gender(g)
		}
		rules[Preference(pref)] = gs
	}
	return rules
}

// Accepts reports whether preference p accepts gender g.
func (r CompatibilityRules) Accepts(p Preference, g Gender) (bool, error) {
	accepted, ok := r[p]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPreference, p)
	}
	return slices.Contains(accepted, g), nil
}

// Compatible reports whether two participants accept each other. The check is
// symmetric: a's identity must be accepted by b's preference and vice versa.
func (r CompatibilityRules) Compatible(ga Gender, pa Preference, gb Gender, pb Preference) (bool, error) {
	ab, err := r.Accepts(pb, ga)
	if err != nil {
		return false, err
	}
	ba, err := r.Accepts(pa, gb)
	if err != nil {
		return false, err
	}
	return ab && ba, nil
}

// Validate checks that every preference in prefs has an entry in the table.
func (r CompatibilityRules) Validate(prefs []Preference) error {
	for i, p := range prefs {
		if _, ok := r[p]; !ok {
			return fmt.Errorf("participant %d: %w: %q", i, ErrUnknownPreference, p)
		}
	}
	return nil
}
