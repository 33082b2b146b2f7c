package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileicons.dev/pkg/fileicons/internal/domain/strategies"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "fileicons", configBaseName)
	assert.Equal(t, "fileicons.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "cache.backend", cacheBackendKey)
	assert.Equal(t, ".fileicons-cache", defaultCacheDir)
	assert.Equal(t, "dark", defaultColourMode)
	assert.Equal(t, "FILEICONS", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	assert.Equal(t, cacheBackendFile, v.GetString(cacheBackendKey))
	assert.Equal(t, 10000, v.GetInt(cacheCapacityKey))
	assert.Equal(t, 10*time.Millisecond, v.GetDuration(schedulerDebounceKey))
	assert.Equal(t, 8, v.GetInt(schedulerParallelKey))
	assert.Equal(t, 256, v.GetInt(probeSampleSizeKey))
	assert.Equal(t, int64(6), v.GetInt64(probeMinSizeKey))
	assert.Equal(t, "dark", v.GetString(colourModeKey))
	assert.Empty(t, v.GetString(rulesPathKey))

	for _, name := range strategies.Names {
		assert.True(t, v.GetBool(strategiesKey+"."+name), name)
	}
}

func TestStrategyToggles(t *testing.T) {
	t.Run("defaults enable everything", func(t *testing.T) {
		v := viper.New()
		setDefaults(v)

		toggles := strategyToggles(v, nil)

		require.Len(t, toggles, len(strategies.Names))

		for _, name := range strategies.Names {
			assert.True(t, toggles[name], name)
		}
	})

	t.Run("configuration and flags disable", func(t *testing.T) {
		v := viper.New()
		setDefaults(v)
		v.Set(strategiesKey+"."+strategies.NameModeline, false)

		toggles := strategyToggles(v, []string{" linguist ", ""})

		assert.False(t, toggles[strategies.NameModeline])
		assert.False(t, toggles[strategies.NameLinguist])
		assert.True(t, toggles[strategies.NamePath])
	})

	t.Run("unknown names are passed through", func(t *testing.T) {
		v := viper.New()
		setDefaults(v)

		toggles := strategyToggles(v, []string{"colour"})

		assert.Contains(t, toggles, "colour")
		assert.False(t, toggles["colour"])
	})
}

func TestColourMode(t *testing.T) {
	tests := []struct {
		value string
		want  m.ColourMode
	}{
		{"dark", m.ColourDark},
		{" Light ", m.ColourLight},
		{"none", m.ColourNone},
		{"sepia", m.ColourNone},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := viper.New()
			v.Set(colourModeKey, tt.value)
			assert.Equal(t, tt.want, colourMode(v))
		})
	}
}

func TestCachePath(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	assert.Equal(t, m.Path(filepath.Join(".fileicons-cache", "icons.gob")), cachePath(v, cacheBackendFile))
	assert.Equal(t, m.Path(filepath.Join(".fileicons-cache", "icons.db")), cachePath(v, cacheBackendSQLite))

	v.Set(cachePathKey, "/tmp/custom.gob")
	assert.Equal(t, m.Path("/tmp/custom.gob"), cachePath(v, cacheBackendFile))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", " INFO ", slog.LevelInfo},
		{"warning", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logPath := filepath.Join(t.TempDir(), "fileicons.log")

	configureLogger(logPath, true)

	require.NotNil(t, globalLogger)
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))

	slog.Debug("logger configured", "path", logPath)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "logger configured")
}
