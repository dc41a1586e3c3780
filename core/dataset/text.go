package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inakineitor/algo-comp-2023/core/model"
)

// ReadScores parses a whitespace separated matrix, one row per line. Blank
// lines are skipped. Row lengths are not checked here.
func ReadScores(r io.Reader) ([][]float64, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, sc.Err()
}

// ReadLines returns the trimmed non-empty lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out, sc.Err()
}

// LoadScores reads a score matrix file.
func LoadScores(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScores(f)
}

// LoadLines reads a line-per-participant file such as a list of genders.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// FromLists builds a Document from parallel gender and preference lists, as
// read from line-per-participant files. Participants are named by index.
func FromLists(genders, preferences []string, scores [][]float64) (Document, error) {
	if len(genders) != len(preferences) {
		return Document{}, fmt.Errorf("%w: %d genders but %d preferences", ErrInvalidDocument, len(genders), len(preferences))
	}
	doc := Document{Participants: make([]model.Participant, len(genders)), Scores: scores}
	for i := range genders {
		doc.Participants[i] = model.Participant{
			Gender:     model.Gender(genders[i]),
			Preference: model.Preference(preferences[i]),
		}
	}
	if err := doc.normalize(); err != nil {
		return Document{}, err
	}
	return doc, nil
}
