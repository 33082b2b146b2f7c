// Package cmd provides the root command and CLI setup for fileicons.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	"fileicons.dev/pkg/fileicons/internal/controller"
	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/scheduler"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	"fileicons.dev/pkg/fileicons/internal/domain/strategies"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// workflow is set by tests; commands build their own otherwise.
var workflow domain.Workflow

// excludePatterns is a root-level flag that filters paths for applicable commands.
var excludePatterns []string

// colourFlag overrides colour.mode for a single run.
var colourFlag string

// verboseFlag switches logging to debug.
var verboseFlag bool

// backendFlag selects the snapshot store.
var backendFlag string

func init() {
	configureRootFlags(rootCmd)
}

const pathPatternsHelp = `Paths are walked recursively. A trailing "/..." is accepted:
  - .              classify the current directory
  - ./src/...      classify the src directory
  - ./cmd ./pkg    classify several directories`

const rootLongDescription = `fileicons decides which icon every file and directory of a project should
show. Seven strategies of increasing priority look at names, file headers,
editor modelines, user configuration and .gitattributes overrides; the
highest one that matches wins.

` + pathPatternsHelp

const classifyLongDescription = `Classify the given paths (default: current directory) and print the icon
each entry resolves to, along with the strategy that chose it.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fileicons",
		Short: "File icon classification engine",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a root command with its persistent flags configured.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude paths matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&colourFlag, colourFlagName, viper.GetString(colourModeKey), "colour tokens to show: dark, light or none")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(colourFlagName), colourModeKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&backendFlag, backendFlagName, viper.GetString(cacheBackendKey), "cache backend: file or sqlite")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(backendFlagName), cacheBackendKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// resolveWorkflow returns the workflow commands run against and a function
// releasing what it opened.
func resolveWorkflow(cmd *cobra.Command) (domain.Workflow, func(), error) {
	if workflow != nil {
		return workflow, func() {}, nil
	}

	return newWorkflow(cmd, viper.GetViper())
}

func newWorkflow(cmd *cobra.Command, v *viper.Viper) (domain.Workflow, func(), error) {
	table, err := loadRules(v.GetString(rulesPathKey))
	if err != nil {
		slog.Error("Failed to load icon rules", "error", err)
		return nil, nil, err
	}

	backend := v.GetString(cacheBackendKey)

	store, closeStore, err := openSnapshotStore(backend, cachePath(v, backend))
	if err != nil {
		slog.Error("Failed to open cache store", "backend", backend, "error", err)
		return nil, nil, err
	}

	fsAdapter := adapter.NewLocalProbeFSAdapter(v.GetInt(probeSampleSizeKey))
	capacity := v.GetInt(cacheCapacityKey)
	newWatcher := func() (adapter.FileWatcher, error) { return adapter.NewFSNotifyWatcher() }

	newEngine := func(roots []m.Path) (*domain.Service, error) {
		cache := storage.New(capacity)
		sched := scheduler.New(fsAdapter, scheduler.Options{
			Debounce: v.GetDuration(schedulerDebounceKey),
			Parallel: v.GetInt(schedulerParallelKey),
		})
		registry := domain.NewRegistry(cache, table)

		pipeline, err := domain.NewPipeline(strategies.New(strategies.Deps{
			Table:      table,
			Scheduler:  sched,
			FS:         fsAdapter,
			Config:     v,
			Roots:      roots,
			NewWatcher: newWatcher,
			MinSize:    v.GetInt64(probeMinSizeKey),
		})...)
		if err != nil {
			sched.Close()
			return nil, fmt.Errorf("build pipeline: %w", err)
		}

		return domain.NewService(table, cache, store, sched, registry, pipeline), nil
	}

	wf := domain.NewWorkflow(fsAdapter, store, newUI(cmd, v), table, newEngine, newWatcher, capacity)

	return wf, closeStore, nil
}

// newUI picks the pager UI on a terminal and plain tables otherwise.
func newUI(cmd *cobra.Command, v *viper.Viper) controller.UI {
	out := cmd.OutOrStdout()

	f, ok := out.(*os.File)
	if !ok || !controller.IsTTY(f) {
		return controller.NewSimpleUI(cmd, false)
	}

	return controller.NewTUI(cmd, out, colourMode(v) != m.ColourNone)
}

// loadRules compiles the rule source at path, or the built-in database
// when path is empty.
func loadRules(path string) (*rules.Table, error) {
	if path == "" {
		return rules.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	table, err := rules.LoadSource(data)
	if err != nil {
		return nil, fmt.Errorf("load rules %s: %w", path, err)
	}

	return table, nil
}

// openSnapshotStore opens the snapshot store of backend at path.
func openSnapshotStore(backend string, path m.Path) (adapter.SnapshotStore, func(), error) {
	switch backend {
	case "", cacheBackendFile:
		return adapter.NewFileSnapshotStore(path), func() {}, nil
	case cacheBackendSQLite:
		store, err := adapter.NewSQLiteSnapshotStore(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite cache: %w", err)
		}

		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("failed to close sqlite cache", "error", err)
			}
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown cache backend %q", backend)
}
