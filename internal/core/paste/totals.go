package paste

import (
	"os"
	"path/filepath"
)

// calculateTotals walks all sources recursively and returns the total
// regular-file count and byte size. Unreadable entries are skipped:
// totals drive progress display, not correctness.
func calculateTotals(sources []string) (int, int64) {
	var totalFiles int
	var totalBytes int64

	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			continue
		}
		if info.IsDir() {
			countDirContents(source, &totalFiles, &totalBytes)
		} else {
			totalFiles++
			totalBytes += info.Size()
		}
	}

	return totalFiles, totalBytes
}

func countDirContents(dir string, totalFiles *int, totalBytes *int64) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			countDirContents(path, totalFiles, totalBytes)
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		*totalFiles++
		*totalBytes += info.Size()
	}
}
