package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inakineitor/algo-comp-2023/core/model"
)

// ErrInvalidDocument is returned when a participant document is inconsistent.
var ErrInvalidDocument = errors.New("invalid participant document")

// Document is a population file: the participants and, optionally, a
// precomputed score matrix.
type Document struct {
	Participants []model.Participant `json:"participants" yaml:"participants"`
	Scores       [][]float64         `json:"scores,omitempty" yaml:"scores,omitempty"`
}

// LoadDocument reads a JSON or YAML document from path.
func LoadDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeDocument(f, ext)
}

// DecodeDocument reads a document in the given format ("json", "yaml" or
// "yml") and normalises it.
func DecodeDocument(r io.Reader, format string) (Document, error) {
	var doc Document
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return doc, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return doc, err
		}
	default:
		return doc, fmt.Errorf("unsupported format: %s", format)
	}
	if err := doc.normalize(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// normalize assigns positional IDs and checks the score matrix shape.
func (d *Document) normalize() error {
	if len(d.Participants) == 0 {
		return fmt.Errorf("%w: no participants", ErrInvalidDocument)
	}
	for i := range d.Participants {
		p := &d.Participants[i]
		p.ID = i
		if p.Name == "" {
			p.Name = fmt.Sprintf("participant-%d", i)
		}
		if p.Gender == "" {
			return fmt.Errorf("%w: %s has no gender", ErrInvalidDocument, p.Name)
		}
	}
	if d.Scores == nil {
		return nil
	}
	if len(d.Scores) != len(d.Participants) {
		return fmt.Errorf("%w: %d score rows for %d participants", ErrInvalidDocument, len(d.Scores), len(d.Participants))
	}
	for i, row := range d.Scores {
		if len(row) != len(d.Participants) {
			return fmt.Errorf("%w: score row %d has %d entries", ErrInvalidDocument, i, len(row))
		}
	}
	return nil
}

// Names returns the participant names in ID order.
func (d Document) Names() []string {
	out := make([]string, len(d.Participants))
	for i, p := range d.Participants {
		out[i] = p.Name
	}
	return out
}
