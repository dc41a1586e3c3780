package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inakineitor/algo-comp-2023/app"
	"github.com/inakineitor/algo-comp-2023/core/matching"
	runlog "github.com/inakineitor/algo-comp-2023/core/matching/logging"
)

var (
	runsStatus      string
	runsParticipant int
	runsSince       time.Duration
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run log",
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded matching runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsLs,
}

func init() {
	runsLsCmd.Flags().StringVar(&runsStatus, "status", "", "only runs with this status (matched, infeasible, attempt_limit)")
	runsLsCmd.Flags().IntVar(&runsParticipant, "participant", 0, "only runs involving this participant id")
	runsLsCmd.Flags().DurationVar(&runsSince, "since", 0, "only runs newer than this")
	runsCmd.AddCommand(runsLsCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsLs(cmd *cobra.Command, args []string) error {
	if runsStatus != "" {
		if _, err := matching.ParseStatus(runsStatus); err != nil {
			return err
		}
	}
	q := runlog.RunQuery{Status: runsStatus}
	if cmd.Flags().Changed("participant") {
		id := runsParticipant
		q.Participant = &id
	}
	if runsSince > 0 {
		q.Start = time.Now().Add(-runsSince)
	}
	return withService(func(ctx context.Context, svc *app.Service) error {
		recs, err := svc.Runs(ctx, q)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			printWarning(out, "no runs recorded")
			return nil
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Run", "Time", "Status", "N", "Partition", "Attempts", "Pairs"},
			runRows(recs),
		))
		return nil
	})
}

func runRows(recs []runlog.RunRecord) [][]string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		pairs := make([]string, len(r.Pairs))
		for k, p := range r.Pairs {
			pairs[k] = nameOf(r.Names, p.Proposer) + "-" + nameOf(r.Names, p.Receiver)
		}
		rows[i] = []string{
			r.RunID,
			r.Timestamp.Format(time.DateTime),
			r.Status.String(),
			strconv.Itoa(r.Participants),
			strconv.Itoa(r.PartitionIndex),
			fmt.Sprintf("%d/%d", r.Attempts, r.Total),
			strings.Join(pairs, " "),
		}
	}
	return rows
}
