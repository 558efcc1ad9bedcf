// Package commands implements the quiver command line interface on top
// of the clipboard transfer engine.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/quiverfm/quiver/internal/config"
	"github.com/quiverfm/quiver/internal/logger"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "quiver",
	Short: "File transfer engine of the Quiver file manager",
	Long: `quiver moves and duplicates files and directory trees with
progress reporting, cooperative cancellation and conflict resolution.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		return logger.Init(logger.Config{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			Outputs: []logger.OutputConfig{
				{Type: logger.OutputStderr},
				{Type: logger.OutputFile},
			},
			File: logger.FileConfig{
				Enabled:    cfg.Log.File.Enabled,
				Path:       cfg.Log.File.Path,
				MaxSizeMB:  cfg.Log.File.MaxSizeMB,
				MaxAgeDays: cfg.Log.File.MaxAgeDays,
				MaxBackups: cfg.Log.File.MaxBackups,
				Compress:   cfg.Log.File.Compress,
			},
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Shutdown()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
