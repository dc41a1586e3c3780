package scenarios

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inakineitor/algo-comp-2023/core/dataset"
)

// EngineDef overrides matching engine settings for one scenario.
type EngineDef struct {
	Workers         int                 `yaml:"workers"`
	MaxAttempts     int                 `yaml:"max_attempts"`
	AllowZeroScores bool                `yaml:"allow_zero_scores"`
	Rules           map[string][]string `yaml:"rules,omitempty"`
}

type Expected struct {
	Status         string            `yaml:"status"`
	Pairs          int               `yaml:"pairs"`
	PartitionIndex *int              `yaml:"partition_index,omitempty"`
	Attempts       int               `yaml:"attempts,omitempty"`
	Unmatched      []string          `yaml:"unmatched,omitempty"`
	Partners       map[string]string `yaml:"partners,omitempty"`
}

type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Engine      EngineDef `yaml:"engine"`
	Population  yaml.Node `yaml:"population"`
	Expected    Expected  `yaml:"expected"`

	doc dataset.Document
}

// Document returns the normalized population of the scenario.
func (s *Scenario) Document() dataset.Document { return s.doc }

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	raw, err := yaml.Marshal(&sc.Population)
	if err != nil {
		return nil, err
	}
	if sc.doc, err = dataset.DecodeDocument(bytes.NewReader(raw), "yaml"); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return &sc, nil
}
