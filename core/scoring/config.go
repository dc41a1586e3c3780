package scoring

import "fmt"

// Config holds the weights of the two score components.
type Config struct {
	GraduationYearWeight float64 `json:"graduation_year_weight"`
	SurveyWeight         float64 `json:"survey_weight"`
}

// SetDefaults applies the 0.05 / 0.95 split when no weight is set.
func (c *Config) SetDefaults() {
	if c.GraduationYearWeight == 0 && c.SurveyWeight == 0 {
		c.GraduationYearWeight = 0.05
		c.SurveyWeight = 0.95
	}
}

// Validate ensures the weights are usable.
func (c Config) Validate() error {
	if c.GraduationYearWeight < 0 || c.SurveyWeight < 0 {
		return fmt.Errorf("scoring weights must not be negative")
	}
	if c.GraduationYearWeight+c.SurveyWeight == 0 {
		return fmt.Errorf("scoring weights must not both be zero")
	}
	return nil
}
