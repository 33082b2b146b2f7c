package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fileicons.dev/pkg/fileicons/internal/domain"
)

var rulesDirectoriesFlag bool

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [query]",
		Short: "Search the icon rules",
		Long: `List the icon rules, best fuzzy matches for query first. Without a query
every file rule is listed in table order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, release, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}
			defer release()

			var query string
			if len(args) > 0 {
				query = args[0]
			}

			return wf.Rules(cmd.Context(), domain.RulesArgs{
				Query:       query,
				Directories: rulesDirectoriesFlag,
				Mode:        colourMode(viper.GetViper()),
			})
		},
	}

	cmd.Flags().BoolVarP(&rulesDirectoriesFlag, directoriesFlagName, "d", false, "list directory rules instead of file rules")

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
