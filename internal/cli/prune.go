package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"conche/internal/app"
)

type pruneOptions struct {
	DryRun bool
}

func newPruneCommand() *cobra.Command {
	opts := pruneOptions{}
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove checkouts and build outputs of packages no longer in the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrune(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Only report what would be removed")
	return cmd
}

func runPrune(ctx context.Context, cmd *cobra.Command, opts pruneOptions) error {
	service := newAppService()
	result, err := service.Prune(ctx, app.PruneRequest{DryRun: opts.DryRun})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if result.DryRun {
		fmt.Fprintf(out, "dry-run: keep=%d delete=%d\n", len(result.Keep), len(result.Removed))
	} else {
		fmt.Fprintf(out, "pruned packages: %d\n", len(result.Removed))
	}
	if len(result.Removed) > 0 {
		fmt.Fprintf(out, "  %s\n", strings.Join(result.Removed, ", "))
	}
	return nil
}
