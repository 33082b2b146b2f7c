package cmd

import (
	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command.
var cacheCmd = newCacheCmd()

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the icon cache",
		Long: `The icon cache remembers the last icon of every resource between runs so
they show immediately on the next start.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show what the cache snapshot holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wf, release, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}
			defer release()

			return wf.CacheInfo(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the cache snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wf, release, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}
			defer release()

			return wf.ClearCache(cmd.Context())
		},
	})

	return cmd
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
