package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/inakineitor/algo-comp-2023/app"
)

var scoreInput inputFlags

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the pairwise compatibility matrix",
	Args:  cobra.NoArgs,
	RunE:  runScore,
}

func init() {
	scoreInput.register(scoreCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	doc, err := scoreInput.load()
	if err != nil {
		return err
	}
	return withService(func(_ context.Context, svc *app.Service) error {
		scores, err := svc.Scores(doc)
		if err != nil {
			return err
		}
		names := doc.Names()
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(append([]string{""}, shortNames(names)...), matrixRows(scores, names)))
		return nil
	})
}

func shortNames(names []string) []string {
	out := make([]string, len(names))
	for i := range names {
		out[i] = nameOf(names, i)
	}
	return out
}

func matrixRows(m mat.Matrix, names []string) [][]string {
	r, c := m.Dims()
	rows := make([][]string, r)
	for i := range r {
		row := make([]string, 0, c+1)
		row = append(row, nameOf(names, i))
		for j := range c {
			row = append(row, strconv.FormatFloat(m.At(i, j), 'f', 3, 64))
		}
		rows[i] = row
	}
	return rows
}
