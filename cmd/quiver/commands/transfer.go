package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/progress"
	"github.com/quiverfm/quiver/internal/service"
)

var (
	onConflict string
	verify     bool
	quiet      bool
)

var copyCmd = &cobra.Command{
	Use:   "copy SOURCE... DEST",
	Short: "Copy files or directory trees into DEST",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(args, false)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move SOURCE... DEST",
	Short: "Move files or directory trees into DEST",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(args, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{copyCmd, moveCmd} {
		c.Flags().StringVar(&onConflict, "on-conflict", "skip",
			"conflict policy: skip|replace|keep-both|replace-if-newer|replace-if-larger")
		c.Flags().BoolVar(&verify, "verify", false, "verify checksums after each file copy")
		c.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress bar")
	}
}

func runTransfer(args []string, isCut bool) error {
	resolution, ok := domain.ParseConflictResolution(onConflict)
	if !ok {
		return fmt.Errorf("unknown conflict policy: %s", onConflict)
	}

	sources, err := absolutePaths(args[:len(args)-1])
	if err != nil {
		return err
	}
	destDir, err := filepath.Abs(args[len(args)-1])
	if err != nil {
		return err
	}

	if verify {
		cfg.Transfer.VerifyChecksums = true
	}

	svc, err := service.NewPasteService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if isCut {
		svc.Manager().Cut(sources)
	} else {
		svc.Manager().Copy(sources)
	}

	handle, err := svc.Paste(destDir, func(source, destination string) domain.ConflictResolution {
		return resolution
	})
	if err != nil {
		return err
	}

	// Ctrl-C cancels cooperatively; the engine cleans up partial files
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)
	go func() {
		<-interrupt
		handle.Cancel()
	}()

	cancelled := drainUpdates(handle.Updates)

	result, err := handle.Wait()
	if err != nil {
		return err
	}

	printSummary(result, cancelled)
	if !result.IsSuccess() {
		return fmt.Errorf("%d file(s) failed to transfer", len(result.FailedFiles))
	}
	return nil
}

// drainUpdates renders the progress bar and reports whether the
// transfer ended with a Cancelled event
func drainUpdates(updates <-chan progress.Update) bool {
	agg := progress.NewAggregator()
	cancelled := false

	for u := range updates {
		agg.Apply(u)

		switch u.Type {
		case progress.UpdateFileSkipped:
			clearLine()
			fmt.Printf("skipped: %s (%s)\n", u.File, u.Reason)
		case progress.UpdateFileFailed:
			clearLine()
			fmt.Fprintf(os.Stderr, "failed: %s: %s\n", u.File, u.Error)
		case progress.UpdateCancelled:
			cancelled = true
		}

		if !quiet {
			snap := agg.Snapshot()
			fmt.Printf("\r%s %s %s ETA %s ",
				progress.FormatProgress(snap.BytesTransferred, snap.TotalBytes, 30),
				progress.FormatBytes(snap.BytesTransferred),
				progress.FormatSpeed(snap.SpeedBytesPerSec),
				progress.FormatETA(snap.EstimatedRemaining),
			)
		}
	}

	if !quiet {
		fmt.Println()
	}
	return cancelled
}

func printSummary(result *domain.PasteResult, cancelled bool) {
	if cancelled {
		fmt.Printf("cancelled after %d file(s), %s transferred\n",
			result.TotalProcessed(), progress.FormatBytes(result.TotalBytesTransferred))
		return
	}

	fmt.Printf("%d copied, %d skipped, %d failed, %s in %s\n",
		len(result.SuccessfulFiles),
		len(result.SkippedFiles),
		len(result.FailedFiles),
		progress.FormatBytes(result.TotalBytesTransferred),
		result.Duration.Round(time.Millisecond),
	)

	for _, f := range result.CleanupFailures {
		fmt.Fprintf(os.Stderr, "warning: could not remove source %s: %s\n", f.Path, f.Message)
	}
}

func clearLine() {
	if !quiet {
		fmt.Print("\r\033[K")
	}
}

func absolutePaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	return out, nil
}
