package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"conche/internal/app"
)

type initOptions struct {
	Dir       string
	WithCLI   bool
	WithTests bool
}

func newInitCommand() *cobra.Command {
	opts := initOptions{}
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Scaffold a new package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Directory to create the package in (defaults to the work dir)")
	cmd.Flags().BoolVar(&opts.WithCLI, "with-cli", false, "Add a command-line entry point")
	cmd.Flags().BoolVar(&opts.WithTests, "with-tests", false, "Add a test specification using Spectre")
	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, name string, opts initOptions) error {
	service := newAppService()
	result, err := service.Init(ctx, app.InitRequest{
		Dir:       opts.Dir,
		Name:      name,
		WithCLI:   opts.WithCLI,
		WithTests: opts.WithTests,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s\n", result.ManifestPath)
	for _, path := range result.Created {
		if path != result.ManifestPath {
			fmt.Fprintf(out, "created %s\n", path)
		}
	}
	return nil
}
