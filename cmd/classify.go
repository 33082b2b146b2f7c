package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fileicons.dev/pkg/fileicons/internal/domain"
)

var classifyWatchFlag bool
var classifyDisableFlag []string

// classifyCmd represents the classify command.
var classifyCmd = newClassifyCmd()

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [paths...]",
		Short: "Classify files and directories",
		Long:  classifyLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			wf, release, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}
			defer release()

			if classifyWatchFlag && configLoaded {
				viper.WatchConfig()
			}

			return wf.Classify(ctx, domain.ClassifyArgs{
				Paths:      parsePaths(args),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Strategies: strategyToggles(viper.GetViper(), classifyDisableFlag),
				Mode:       colourMode(viper.GetViper()),
				Watch:      classifyWatchFlag,
			})
		},
	}

	configureClassifyFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func configureClassifyFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&classifyWatchFlag, watchFlagName, "w", false, "keep running and print icon changes as files change")
	cmd.Flags().StringSliceVar(&classifyDisableFlag, disableFlagName, nil, "disable strategies by name (comma separated or repeated)")
}
