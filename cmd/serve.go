package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inakineitor/algo-comp-2023/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching HTTP API until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *app.Service) error {
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error { return svc.Serve(ctx) })
			g.Go(func() error { return svc.ServeMetrics(ctx) })
			return g.Wait()
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
