package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"conche/internal/app"
)

func newTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test [files...]",
		Short: "Build and run the package's test specification",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd.Context(), cmd, args)
		},
	}
}

func runTest(ctx context.Context, cmd *cobra.Command, files []string) error {
	service := newAppService()
	result, err := service.Test(ctx, app.TestRequest{Files: files})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "tests passed: %s (%s)\n", result.Name, result.Binary)
	return nil
}
