package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quiverfm/quiver/internal/progress"
	"github.com/quiverfm/quiver/internal/state"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent transfer journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Journal.Enabled {
			return fmt.Errorf("transfer journal is disabled; enable journal.enabled in config")
		}

		journal, err := state.NewJournal(cfg.Journal.Dir)
		if err != nil {
			return err
		}
		defer journal.Close()

		records, err := journal.History(historyLimit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("no transfers recorded")
			return nil
		}

		for _, r := range records {
			fmt.Printf("%s  %-4s %-9s  %d copied, %d skipped, %d failed, %s in %s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Kind,
				r.Status,
				r.FilesCopied,
				r.FilesSkipped,
				r.FilesFailed,
				progress.FormatBytes(r.Bytes),
				r.Duration,
			)
			if r.Error != "" {
				fmt.Printf("    error: %s\n", r.Error)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
}
