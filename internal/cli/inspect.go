package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conche/internal/app"
)

type inspectOptions struct {
	LockPath string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the pinned packages of the lock file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.LockPath, "lock-path", "", "Lock file path (defaults to Conche.lock in the work dir)")
	_ = viper.BindPFlag("lock_path", cmd.Flags().Lookup("lock-path"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		LockPath: resolveString(cmd, opts.LockPath, "lock_path", "lock-path"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lock entries: %d\n", len(result.Entries))
	for _, entry := range result.Entries {
		if entry.Git == "" {
			fmt.Fprintf(out, "- %s %s\n", entry.Name, entry.Version)
			continue
		}
		fmt.Fprintf(out, "- %s %s (%s @ %s)\n", entry.Name, entry.Version, entry.Git, entry.Tag)
	}
	return nil
}
