// Config loading for the yama CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix namespaces environment overrides, e.g. YAMA_MAX_COUNT.
	envPrefix = "YAMA"
)

// configHeader is written above the marshalled defaults on first run.
const configHeader = `# yama configuration
# Every key can be overridden by a YAMA_ environment variable,
# e.g. YAMA_LISTEN=:9000 or YAMA_RATE_LIMIT_REQUESTS_PER_MINUTE=60.
# ROOT_PATH is also accepted for root_path.

`

// loadConfig reads config.yaml from configDir using Viper, applying defaults
// and environment overrides, and validates the result. It creates the config
// directory and a default config.yaml on first run. A missing config.yaml is
// not an error.
func loadConfig(configDir string) (types.Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := newViper()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newViper returns a Viper instance with every key defaulted and bound to
// its YAMA_ environment variable.
func newViper() *viper.Viper {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault("site", def.Site)
	v.SetDefault("sites", []map[string]any{{"name": types.DefaultSiteName, "url": types.DefaultSiteURL}})
	v.SetDefault("data_dir", "")
	v.SetDefault("max_count", def.MaxCount)
	v.SetDefault("listen", def.Listen)
	v.SetDefault("root_path", "")
	v.SetDefault("cors_origin", def.CORSOrigin)
	v.SetDefault("fetch_timeout", def.FetchTimeout)
	v.SetDefault("rate_limit.requests_per_minute", def.RateLimit.RequestsPerMinute)
	v.SetDefault("rate_limit.burst", def.RateLimit.Burst)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.seq_url", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// ROOT_PATH is the name deployments behind a proxy already use.
	_ = v.BindEnv("root_path", envPrefix+"_ROOT_PATH", "ROOT_PATH")

	return v
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return writeConfig(path, types.DefaultConfig())
}

// writeConfig marshals cfg as YAML below configHeader.
func writeConfig(path string, cfg types.Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
