package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/inakineitor/algo-comp-2023/app"
	"github.com/inakineitor/algo-comp-2023/core/matching"
)

var (
	matchInput inputFlags
	matchJSON  bool
	matchServe bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find a stable pairing of the population",
	Long: `Scores the population (unless a matrix is supplied), then searches the
proposer/receiver partitions for the first one whose Gale-Shapley matching
pairs every participant compatibly.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	matchInput.register(matchCmd)
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print the result as JSON")
	matchCmd.Flags().BoolVar(&matchServe, "serve-metrics", false, "keep serving /metrics after the run until interrupted")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	doc, err := matchInput.load()
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *app.Service) error {
		res, err := svc.Match(ctx, doc)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if matchJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else {
			printResult(out, res, doc.Names())
		}
		if matchServe {
			if err := svc.ServeMetrics(ctx); err != nil {
				return err
			}
		}
		return res.Err()
	})
}

func printResult(w io.Writer, res matching.Result, names []string) {
	if !res.Matched() {
		printWarning(w, "no stable matching after %d of %d partitions", res.Attempts, res.Total)
		return
	}
	printSuccess(w, "%d pairs from partition %d of %d (%d attempts, %s)",
		len(res.Pairs), res.PartitionIndex, res.Total, res.Attempts, res.Duration.Round(time.Microsecond))
	printTitle(w, "Pairs")
	for _, p := range res.Pairs {
		printPair(w, nameOf(names, p.Proposer), nameOf(names, p.Receiver), p.Score)
	}
	for _, id := range res.Unmatched {
		printWarning(w, "%s is unmatched", nameOf(names, id))
	}
	printKeyValue(w, "run", res.RunID)
}

func nameOf(names []string, id int) string {
	if id >= 0 && id < len(names) && names[id] != "" {
		return names[id]
	}
	return fmt.Sprintf("#%d", id)
}
