package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conche/internal/app"
)

type buildOptions struct {
	Watch    bool
	Debounce time.Duration
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve and build the package in the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Rebuild whenever sources change")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 300*time.Millisecond, "Quiet period before a watched rebuild")

	_ = viper.BindPFlag("watch_debounce", cmd.Flags().Lookup("debounce"))
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	service := newAppService()
	out := cmd.OutOrStdout()
	if !opts.Watch {
		result, err := service.Build(ctx, app.BuildRequest{})
		if err != nil {
			return err
		}
		printBuild(out, result)
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return service.Watch(ctx, app.WatchRequest{
		Debounce: resolveDuration(cmd, opts.Debounce, "watch_debounce", "debounce"),
	}, func(result app.BuildResult, err error) {
		if err != nil {
			fmt.Fprintf(out, "build failed: %s\n", errorMessage(err))
			return
		}
		printBuild(out, result)
	})
}

func printBuild(out io.Writer, result app.BuildResult) {
	if !result.DidWork {
		fmt.Fprintf(out, "%s is up to date\n", result.Name)
	} else {
		fmt.Fprintf(out, "built %s\n", result.Name)
	}
	for _, binary := range result.Executables {
		fmt.Fprintf(out, "  %s\n", binary)
	}
}
