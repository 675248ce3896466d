package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/outline-labs/opc/internal/branding"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognised keys.
const (
	KeyAuthor          = "author"
	KeyCategory        = "category"
	KeyDescription     = "description"
	KeyVersion         = "version"
	KeyBundleWorkers   = "bundle.workers"
	KeyBundleOutputDir = "bundle.output_dir"
	KeyWatchDebounce   = "watch.debounce"
)

// Keys returns every recognised key in display order.
func Keys() []string {
	return []string{
		KeyAuthor,
		KeyCategory,
		KeyDescription,
		KeyVersion,
		KeyBundleWorkers,
		KeyBundleOutputDir,
		KeyWatchDebounce,
	}
}

// DefaultWatchDebounce is the quiet period before watch mode re-bundles.
const DefaultWatchDebounce = 300 * time.Millisecond

// Dir returns the path to the opc config directory (~/.opc/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.opc/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, manifest.DefaultVersion)
	viper.SetDefault(KeyBundleWorkers, 0)
	viper.SetDefault(KeyWatchDebounce, DefaultWatchDebounce.String())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := validate(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func validate(key, value string) error {
	switch key {
	case KeyVersion:
		if _, err := manifest.ParseVersion(value); err != nil {
			return err
		}
	case KeyWatchDebounce:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a duration such as 300ms: %w", key, err)
		}
	case KeyBundleWorkers:
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", key)
		}
	}
	return nil
}

// Settings is the typed view of the configuration.
type Settings struct {
	// Identity holds the metadata written into new manifests.
	Identity manifest.Identity

	// BundleWorkers bounds concurrent file reads; zero means automatic.
	BundleWorkers int

	// BundleOutputDir, if set, replaces the project's parent directory as
	// the default bundle location.
	BundleOutputDir string

	WatchDebounce time.Duration
}

// Defaults returns the current settings with defaults applied.
func Defaults() Settings {
	debounce := viper.GetDuration(KeyWatchDebounce)
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return Settings{
		Identity: manifest.Identity{
			Description:   viper.GetString(KeyDescription),
			Version:       viper.GetString(KeyVersion),
			Author:        viper.GetString(KeyAuthor),
			CategoryLabel: viper.GetString(KeyCategory),
		},
		BundleWorkers:   max(viper.GetInt(KeyBundleWorkers), 0),
		BundleOutputDir: viper.GetString(KeyBundleOutputDir),
		WatchDebounce:   debounce,
	}
}
