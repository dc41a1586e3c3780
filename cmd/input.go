package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inakineitor/algo-comp-2023/core/dataset"
)

// inputFlags selects a population either as one document or as the
// line-per-participant files of a survey export.
type inputFlags struct {
	document    string
	scores      string
	genders     string
	preferences string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.document, "input", "i", "", "population document (yaml or json)")
	cmd.Flags().StringVar(&f.scores, "scores", "", "whitespace separated score matrix")
	cmd.Flags().StringVar(&f.genders, "genders", "", "file with one gender per line")
	cmd.Flags().StringVar(&f.preferences, "preferences", "", "file with one preference per line")
	cmd.MarkFlagsMutuallyExclusive("input", "genders")
	cmd.MarkFlagsMutuallyExclusive("input", "scores")
	cmd.MarkFlagsRequiredTogether("genders", "preferences")
	cmd.MarkFlagsOneRequired("input", "genders")
}

func (f *inputFlags) load() (dataset.Document, error) {
	if f.document != "" {
		return dataset.LoadDocument(f.document)
	}
	genders, err := dataset.LoadLines(f.genders)
	if err != nil {
		return dataset.Document{}, fmt.Errorf("genders: %w", err)
	}
	prefs, err := dataset.LoadLines(f.preferences)
	if err != nil {
		return dataset.Document{}, fmt.Errorf("preferences: %w", err)
	}
	var scores [][]float64
	if f.scores != "" {
		if scores, err = dataset.LoadScores(f.scores); err != nil {
			return dataset.Document{}, fmt.Errorf("scores: %w", err)
		}
	}
	return dataset.FromLists(genders, prefs, scores)
}
