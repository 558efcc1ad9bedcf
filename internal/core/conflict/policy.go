// Package conflict evaluates destination collisions during a paste
// according to the caller-chosen resolution policy.
package conflict

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quiverfm/quiver/internal/domain"
	"github.com/quiverfm/quiver/internal/logger"
)

// Action is the outcome of evaluating a policy against a collision
type Action int

const (
	// ActionCopyTo proceeds with the copy to Decision.Target
	ActionCopyTo Action = iota

	// ActionSkip leaves the destination untouched and skips the source
	ActionSkip
)

// Decision describes how the executor should proceed after a collision
type Decision struct {
	// Action to take for this source
	Action Action

	// Target is the destination path to copy to (may differ from the
	// colliding path under keep-both)
	Target string

	// RemoveExisting requests deletion of the colliding destination
	// before copying
	RemoveExisting bool

	// Reason explains a skip decision
	Reason string
}

// Decide applies a conflict resolution to a source/destination collision
func Decide(resolution domain.ConflictResolution, source, destination string) Decision {
	switch resolution {
	case domain.ResolutionSkip:
		return Decision{
			Action: ActionSkip,
			Reason: "user chose to skip",
		}

	case domain.ResolutionKeepBoth:
		// Original destination stays intact; copy lands beside it
		return Decision{
			Action: ActionCopyTo,
			Target: UniqueName(destination),
		}

	case domain.ResolutionReplace, domain.ResolutionReplaceIfNewer, domain.ResolutionReplaceIfLarger:
		shouldReplace := true
		switch resolution {
		case domain.ResolutionReplaceIfNewer:
			shouldReplace = isSourceNewer(source, destination)
		case domain.ResolutionReplaceIfLarger:
			shouldReplace = isSourceLarger(source, destination)
		}

		if !shouldReplace {
			return Decision{
				Action: ActionSkip,
				Reason: "condition not met",
			}
		}
		return Decision{
			Action:         ActionCopyTo,
			Target:         destination,
			RemoveExisting: true,
		}

	default:
		return Decision{
			Action: ActionSkip,
			Reason: fmt.Sprintf("unknown resolution: %s", resolution),
		}
	}
}

// UniqueName synthesizes an unused path by appending " (N)" before the
// extension, incrementing N from 1
func UniqueName(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// isSourceNewer compares modification times, strictly
// Metadata read failures fail open: the source is treated as qualifying
func isSourceNewer(source, destination string) bool {
	srcInfo, srcErr := os.Stat(source)
	dstInfo, dstErr := os.Stat(destination)
	if srcErr != nil || dstErr != nil {
		logger.Get().Warn("mtime comparison failed, replacing by default",
			"source", source, "destination", destination)
		return true
	}
	return srcInfo.ModTime().After(dstInfo.ModTime())
}

// isSourceLarger compares file sizes, strictly
// Metadata read failures fail open: the source is treated as qualifying
func isSourceLarger(source, destination string) bool {
	srcInfo, srcErr := os.Stat(source)
	dstInfo, dstErr := os.Stat(destination)
	if srcErr != nil || dstErr != nil {
		logger.Get().Warn("size comparison failed, replacing by default",
			"source", source, "destination", destination)
		return true
	}
	return srcInfo.Size() > dstInfo.Size()
}
