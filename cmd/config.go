package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	"fileicons.dev/pkg/fileicons/internal/domain/scheduler"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	"fileicons.dev/pkg/fileicons/internal/domain/strategies"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "fileicons"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	excludeFlagName     = "exclude"
	colourFlagName      = "colour"
	verboseFlagName     = "verbose"
	watchFlagName       = "watch"
	disableFlagName     = "disable"
	directoriesFlagName = "directories"
	backendFlagName     = "backend"

	rulesPathKey         = "rules.path"
	cacheBackendKey      = "cache.backend"
	cachePathKey         = "cache.path"
	cacheCapacityKey     = "cache.capacity"
	schedulerDebounceKey = "scheduler.debounce"
	schedulerParallelKey = "scheduler.parallel"
	probeSampleSizeKey   = "probe.sample_size"
	probeMinSizeKey      = "probe.min_size"
	colourModeKey        = "colour.mode"
	strategiesKey        = "strategies"
	userTypesKey         = "user_types"
	excludeConfigKey     = "paths.exclude"

	cacheBackendFile   = "file"
	cacheBackendSQLite = "sqlite"

	defaultCacheDir     = ".fileicons-cache"
	defaultCacheBackend = cacheBackendFile
	defaultColourMode   = "dark"

	envPrefix = "FILEICONS"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".fileicons.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configLoaded is set when a configuration file was read at startup.
var configLoaded bool

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}

	configLoaded = true
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(configVersionKey, currentConfigVersion)
	v.SetDefault(rulesPathKey, "")
	v.SetDefault(cacheBackendKey, defaultCacheBackend)
	v.SetDefault(cachePathKey, "")
	v.SetDefault(cacheCapacityKey, storage.DefaultCapacity)
	v.SetDefault(schedulerDebounceKey, scheduler.DefaultDebounce.String())
	v.SetDefault(schedulerParallelKey, scheduler.DefaultParallel)
	v.SetDefault(probeSampleSizeKey, adapter.DefaultSampleSize)
	v.SetDefault(probeMinSizeKey, strategies.DefaultMinSize)
	v.SetDefault(colourModeKey, defaultColourMode)
	v.SetDefault(userTypesKey, []map[string]any{})
	v.SetDefault(excludeConfigKey, []string{})

	for _, name := range strategies.Names {
		v.SetDefault(strategiesKey+"."+name, true)
	}

	// Logging defaults (used by config/env and as fallbacks for flags).
	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, defaultLogVerbose)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)
}

// strategyToggles reads strategies.<name> from the configuration, names
// included, and turns off every strategy listed in disabled.
func strategyToggles(v *viper.Viper, disabled []string) map[string]bool {
	toggles := make(map[string]bool, len(strategies.Names))

	for _, name := range strategies.Names {
		toggles[name] = v.GetBool(strategiesKey + "." + name)
	}

	for name := range v.GetStringMap(strategiesKey) {
		toggles[name] = v.GetBool(strategiesKey + "." + name)
	}

	for _, name := range disabled {
		if name = strings.TrimSpace(name); name != "" {
			toggles[name] = false
		}
	}

	return toggles
}

// colourMode returns the configured colour mode.
func colourMode(v *viper.Viper) m.ColourMode {
	return m.ParseColourMode(strings.ToLower(strings.TrimSpace(v.GetString(colourModeKey))))
}

// cachePath returns where the snapshot of backend lives.
func cachePath(v *viper.Viper, backend string) m.Path {
	if path := strings.TrimSpace(v.GetString(cachePathKey)); path != "" {
		return m.Path(path)
	}

	name := "icons.gob"
	if backend == cacheBackendSQLite {
		name = "icons.db"
	}

	return m.Path(filepath.Join(defaultCacheDir, name))
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
