package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/quiverfm/quiver/internal/domain"
)

// DefaultConfigPaths returns the default paths to search for config files
func DefaultConfigPaths() []string {
	paths := []string{
		".",
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "quiver"))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "quiver"))
		paths = append(paths, filepath.Join(homeDir, ".quiver"))
	}

	return paths
}

// Load reads and parses a configuration file
// If path is empty, searches default locations for config.yaml and
// falls back to built-in defaults when no file exists
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, domain.ErrConfigNotFound
			}
			// No config anywhere: defaults are a valid configuration
		} else if os.IsNotExist(err) && path != "" {
			return nil, domain.ErrConfigNotFound
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("transfer.buffer_kb", def.Transfer.BufferKB)
	v.SetDefault("transfer.verify_checksums", def.Transfer.VerifyChecksums)
	v.SetDefault("transfer.checksum_algorithm", def.Transfer.ChecksumAlgorithm)
	v.SetDefault("clipboard.history_size", def.Clipboard.HistorySize)
	v.SetDefault("journal.enabled", def.Journal.Enabled)
	v.SetDefault("journal.dir", def.Journal.Dir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file.enabled", def.Log.File.Enabled)
	v.SetDefault("log.file.path", def.Log.File.Path)
	v.SetDefault("log.file.max_size_mb", def.Log.File.MaxSizeMB)
	v.SetDefault("log.file.max_age_days", def.Log.File.MaxAgeDays)
	v.SetDefault("log.file.max_backups", def.Log.File.MaxBackups)
	v.SetDefault("log.file.compress", def.Log.File.Compress)
}
