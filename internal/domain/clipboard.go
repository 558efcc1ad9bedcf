package domain

import "time"

// OperationKind distinguishes copy from cut clipboard operations
type OperationKind int

const (
	// OpCopy duplicates the sources at the paste destination
	OpCopy OperationKind = iota

	// OpCut moves the sources to the paste destination
	OpCut
)

// String returns the string representation of the kind
func (k OperationKind) String() string {
	switch k {
	case OpCopy:
		return "copy"
	case OpCut:
		return "cut"
	default:
		return "unknown"
	}
}

// ClipboardOperation is the current set of paths marked for copy or cut
type ClipboardOperation struct {
	// Kind indicates whether this is a copy or a cut
	Kind OperationKind

	// SourcePaths are the absolute paths captured by the operation
	SourcePaths []string
}

// NewCopy creates a copy operation over the given paths
func NewCopy(paths []string) ClipboardOperation {
	return ClipboardOperation{Kind: OpCopy, SourcePaths: paths}
}

// NewCut creates a cut operation over the given paths
func NewCut(paths []string) ClipboardOperation {
	return ClipboardOperation{Kind: OpCut, SourcePaths: paths}
}

// Paths returns the paths captured by the operation
func (o ClipboardOperation) Paths() []string {
	return o.SourcePaths
}

// IsCut returns true if this operation moves its sources
func (o ClipboardOperation) IsCut() bool {
	return o.Kind == OpCut
}

// IsCopy returns true if this operation duplicates its sources
func (o ClipboardOperation) IsCopy() bool {
	return o.Kind == OpCopy
}

// Contains reports whether the operation captured the given path
func (o ClipboardOperation) Contains(path string) bool {
	for _, p := range o.SourcePaths {
		if p == path {
			return true
		}
	}
	return false
}

// ClipboardEntry is an archived clipboard operation
// Entries are immutable once placed in history
type ClipboardEntry struct {
	Operation ClipboardOperation
	Timestamp time.Time
}

// NewClipboardEntry archives an operation with the current time
func NewClipboardEntry(op ClipboardOperation) ClipboardEntry {
	return ClipboardEntry{Operation: op, Timestamp: time.Now()}
}
