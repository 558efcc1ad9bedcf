// Package clipboard holds the in-memory clipboard state of the file
// manager: the current copy/cut operation, a bounded history of
// replaced operations, and the lifecycle of an in-flight paste.
// State lives in process memory only and is lost on restart.
package clipboard

import (
	"sync"

	"github.com/quiverfm/quiver/internal/cancel"
	"github.com/quiverfm/quiver/internal/domain"
)

// DefaultMaxHistory is the default clipboard history capacity
// Inserting beyond capacity evicts the oldest entry
const DefaultMaxHistory = 10

// Manager owns the current clipboard operation and its history
// At most one operation and one active paste exist at a time
type Manager struct {
	mu          sync.Mutex
	capacity    int
	operation   *domain.ClipboardOperation
	history     []domain.ClipboardEntry // newest first
	activePaste *cancel.Token
}

// NewManager creates an empty clipboard manager with the default
// history capacity
func NewManager() *Manager {
	return NewManagerWithCapacity(DefaultMaxHistory)
}

// NewManagerWithCapacity creates a manager with a custom history cap
func NewManagerWithCapacity(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultMaxHistory
	}
	return &Manager{capacity: capacity}
}

// Copy replaces the current operation with a copy of the given paths
// A pre-existing operation is archived to history first
func (m *Manager) Copy(paths []string) {
	m.setOperation(domain.NewCopy(paths))
}

// Cut replaces the current operation with a cut of the given paths
// A pre-existing operation is archived to history first
func (m *Manager) Cut(paths []string) {
	m.setOperation(domain.NewCut(paths))
}

func (m *Manager) setOperation(op domain.ClipboardOperation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archiveLocked()
	m.operation = &op
}

// archiveLocked moves the current operation into history, evicting the
// oldest entry beyond capacity. Caller must hold mu.
func (m *Manager) archiveLocked() {
	if m.operation == nil {
		return
	}
	entry := domain.NewClipboardEntry(*m.operation)
	m.history = append([]domain.ClipboardEntry{entry}, m.history...)
	if len(m.history) > m.capacity {
		m.history = m.history[:m.capacity]
	}
	m.operation = nil
}

// Clear archives the current operation (if any) and unsets it
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archiveLocked()
}

// HasContent reports whether an operation is set
func (m *Manager) HasContent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operation != nil
}

// Operation returns the current operation, if any
func (m *Manager) Operation() (domain.ClipboardOperation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.operation == nil {
		return domain.ClipboardOperation{}, false
	}
	return *m.operation, true
}

// Paths returns the paths of the current operation, nil when empty
func (m *Manager) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.operation == nil {
		return nil
	}
	return m.operation.Paths()
}

// IsCut reports whether the current operation is a cut
func (m *Manager) IsCut() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operation != nil && m.operation.IsCut()
}

// IsCopy reports whether the current operation is a copy
func (m *Manager) IsCopy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operation != nil && m.operation.IsCopy()
}

// ContainsPath reports whether the current operation captured the path
// Used for visual feedback on clipboard items
func (m *Manager) ContainsPath(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operation != nil && m.operation.Contains(path)
}

// IsPathCut reports whether the path is part of a cut operation
// Used for reduced-opacity display of cut items
func (m *Manager) IsPathCut(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operation != nil && m.operation.IsCut() && m.operation.Contains(path)
}

// ItemCount returns the number of paths in the current operation
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.operation == nil {
		return 0
	}
	return len(m.operation.Paths())
}

// History returns a snapshot of the archive, newest first
func (m *Manager) History() []domain.ClipboardEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ClipboardEntry, len(m.history))
	copy(out, m.history)
	return out
}

// StartPaste creates and records the cancellation token for a new paste
// The token is shared between the manager and the transfer worker
func (m *Manager) StartPaste() cancel.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := cancel.NewToken()
	m.activePaste = &token
	return token
}

// CancelPaste cancels the active paste token, if any
func (m *Manager) CancelPaste() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activePaste != nil {
		m.activePaste.Cancel()
	}
}

// IsPasteActive reports whether a paste is in flight and not cancelled
func (m *Manager) IsPasteActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activePaste != nil && !m.activePaste.Cancelled()
}

// CompletePaste releases the active paste token
// When wasCut is true the clipboard operation is cleared as post-move
// cleanup; the cleared operation is not archived
func (m *Manager) CompletePaste(wasCut bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activePaste = nil
	if wasCut {
		m.operation = nil
	}
}
