package cli

import "github.com/spf13/cobra"

func newLockCommand() *cobra.Command {
	opts := resolveOptions{WriteLock: true}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve dependencies and write the lock file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.LockPath, "lock-path", "", "Lock file path (defaults to Conche.lock in the work dir)")
	cmd.Flags().StringVar(&opts.SBOMPath, "sbom", "", "Also write an SPDX SBOM of the resolved packages to this path")
	return cmd
}
