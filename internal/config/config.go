package config

import (
	"fmt"

	"github.com/quiverfm/quiver/internal/core/checksum"
	"github.com/quiverfm/quiver/internal/domain"
)

// Config is the complete engine configuration
type Config struct {
	Transfer  TransferConfig  `mapstructure:"transfer"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Log       LogConfig       `mapstructure:"log"`
}

// TransferConfig tunes the paste executor
type TransferConfig struct {
	// BufferKB is the streaming copy chunk size in KiB
	BufferKB int `mapstructure:"buffer_kb"`

	// VerifyChecksums enables post-copy verification per file
	VerifyChecksums bool `mapstructure:"verify_checksums"`

	// ChecksumAlgorithm is "md5" or "sha256"
	ChecksumAlgorithm string `mapstructure:"checksum_algorithm"`
}

// ClipboardConfig tunes the clipboard manager
type ClipboardConfig struct {
	// HistorySize caps the archived-operation history
	HistorySize int `mapstructure:"history_size"`
}

// JournalConfig controls the transfer journal
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   LogFileConfig `mapstructure:"file"`
}

// LogFileConfig controls the rotating log file output
type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Transfer: TransferConfig{
			BufferKB:          64,
			VerifyChecksums:   false,
			ChecksumAlgorithm: string(checksum.SHA256),
		},
		Clipboard: ClipboardConfig{
			HistorySize: 10,
		},
		Journal: JournalConfig{
			Enabled: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File: LogFileConfig{
				MaxSizeMB:  10,
				MaxAgeDays: 30,
				MaxBackups: 3,
			},
		},
	}
}

// Validate checks the configuration for nonsense values
func (c *Config) Validate() error {
	if c.Transfer.BufferKB <= 0 {
		return fmt.Errorf("%w: transfer.buffer_kb must be positive", domain.ErrConfigInvalid)
	}
	if !checksum.IsSupported(checksum.Algorithm(c.Transfer.ChecksumAlgorithm)) {
		return fmt.Errorf("%w: unknown checksum algorithm: %s",
			domain.ErrConfigInvalid, c.Transfer.ChecksumAlgorithm)
	}
	if c.Clipboard.HistorySize <= 0 {
		return fmt.Errorf("%w: clipboard.history_size must be positive", domain.ErrConfigInvalid)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level: %s", domain.ErrConfigInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format: %s", domain.ErrConfigInvalid, c.Log.Format)
	}
	if c.Journal.Enabled && c.Journal.Dir == "" {
		return fmt.Errorf("%w: journal.dir required when journal is enabled", domain.ErrConfigInvalid)
	}
	return nil
}

// BufferSize returns the copy buffer size in bytes
func (c *Config) BufferSize() int {
	return c.Transfer.BufferKB * 1024
}
