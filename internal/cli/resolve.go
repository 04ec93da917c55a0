package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conche/internal/app"
)

type resolveOptions struct {
	WriteLock bool
	LockPath  string
	SBOMPath  string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve dependencies and print the graph and build order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.WriteLock, "lock", false, "Also write the lock file")
	cmd.Flags().StringVar(&opts.LockPath, "lock-path", "", "Lock file path (defaults to Conche.lock in the work dir)")
	cmd.Flags().StringVar(&opts.SBOMPath, "sbom", "", "Also write an SPDX SBOM of the resolved packages to this path")

	_ = viper.BindPFlag("lock_path", cmd.Flags().Lookup("lock-path"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		WriteLock: opts.WriteLock,
		LockPath:  resolveString(cmd, opts.LockPath, "lock_path", "lock-path"),
		SBOMPath:  opts.SBOMPath,
	})
	if err != nil {
		return err
	}
	printResolve(cmd.OutOrStdout(), result)
	return nil
}

func printResolve(out io.Writer, result app.ResolveResult) {
	fmt.Fprint(out, result.Graph.String())
	for _, graph := range result.TestGraphs {
		fmt.Fprintf(out, "test: %s", graph.String())
	}
	// Order lists the root first; dependencies are built before it.
	fmt.Fprintln(out, "build order:")
	for i := range result.Order {
		spec := result.Order[len(result.Order)-1-i]
		fmt.Fprintf(out, "%3d. %s\n", i+1, spec)
	}
	if result.LockPath != "" {
		fmt.Fprintf(out, "lock written: %s\n", result.LockPath)
	}
	if result.SBOMPath != "" {
		fmt.Fprintf(out, "sbom written: %s\n", result.SBOMPath)
	}
}
