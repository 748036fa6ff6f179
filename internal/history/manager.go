// Package history provides linear undo/redo over full surface snapshots.
package history

import (
	"github.com/bethropolis/doodle/internal/logger"
)

// DefaultMaxHistory bounds the log when no explicit depth is configured.
// Every entry is a full raster, so this is kept well below a text editor's depth.
const DefaultMaxHistory = 50

// Manager is an append-with-truncation log of snapshots plus a cursor.
//
// index is -1 while the log is empty, otherwise 0 <= index <= len(entries)-1.
// Entries after index are the redo branch; the next Append discards them.
// A Manager is not safe for concurrent use.
type Manager struct {
	entries  []*Snapshot
	index    int
	maxDepth int
}

// NewManager creates an empty history holding at most maxDepth snapshots.
func NewManager(maxDepth int) *Manager {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxHistory
	}
	return &Manager{
		entries:  make([]*Snapshot, 0, maxDepth),
		index:    -1,
		maxDepth: maxDepth,
	}
}

// Append discards the redo branch and makes s the last and current entry.
// A nil snapshot is ignored.
func (m *Manager) Append(s *Snapshot) {
	if s == nil {
		return
	}

	if m.index < len(m.entries)-1 {
		// Clear references so dropped rasters can be collected.
		for i := m.index + 1; i < len(m.entries); i++ {
			m.entries[i] = nil
		}
		m.entries = m.entries[:m.index+1]
	}

	m.entries = append(m.entries, s)
	m.index = len(m.entries) - 1

	if len(m.entries) > m.maxDepth {
		excess := len(m.entries) - m.maxDepth
		for i := 0; i < excess; i++ {
			m.entries[i] = nil
		}
		m.entries = append(m.entries[:0], m.entries[excess:]...)
		m.index -= excess
		logger.DebugTagf("history", "History: evicted %d oldest snapshot(s)", excess)
	}

	logger.DebugTagf("history", "History: appended snapshot (%d bytes). Index: %d, Count: %d", s.ByteSize(), m.index, len(m.entries))
}

// Undo moves the cursor back one entry and returns the snapshot now current.
// The oldest entry is never undone away: with the cursor at 0 (or an empty log) it is a no-op.
func (m *Manager) Undo() (*Snapshot, bool) {
	if m.index <= 0 {
		logger.DebugTagf("history", "History: nothing to undo (index %d)", m.index)
		return nil, false
	}
	m.index--
	logger.DebugTagf("history", "History: undo to index %d of %d", m.index, len(m.entries))
	return m.entries[m.index], true
}

// Redo moves the cursor forward one entry and returns the snapshot now current.
// It is a no-op when the cursor is already at the last entry.
func (m *Manager) Redo() (*Snapshot, bool) {
	if m.index >= len(m.entries)-1 {
		logger.DebugTagf("history", "History: nothing to redo (index %d, count %d)", m.index, len(m.entries))
		return nil, false
	}
	m.index++
	logger.DebugTagf("history", "History: redo to index %d of %d", m.index, len(m.entries))
	return m.entries[m.index], true
}

// Current returns the snapshot at the cursor, or nil when the log is empty.
func (m *Manager) Current() *Snapshot {
	if m.index < 0 {
		return nil
	}
	return m.entries[m.index]
}

// Reset empties the log. Callers append a fresh baseline right after.
func (m *Manager) Reset() {
	for i := range m.entries {
		m.entries[i] = nil
	}
	m.entries = m.entries[:0]
	m.index = -1
	logger.DebugTagf("history", "History: cleared")
}

// Len returns the number of entries, including the redo branch.
func (m *Manager) Len() int { return len(m.entries) }

// Index returns the cursor position (-1 when empty).
func (m *Manager) Index() int { return m.index }

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool { return m.index > 0 }

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool { return m.index < len(m.entries)-1 }

// TotalBytes sums the pixel memory held by all entries.
func (m *Manager) TotalBytes() int {
	total := 0
	for _, s := range m.entries {
		total += s.ByteSize()
	}
	return total
}
