package notify

import (
	"sync"

	"pos_gateway/internal/posapi"
)

// HistoryStore is the locally cached import/export history, used as the
// last fallback tier when the remote endpoints are unreachable. The
// aggregator only ever reads from it.
type HistoryStore interface {
	Imports() ([]posapi.ImportRecord, error)
	Exports() ([]posapi.ExportRecord, error)
}

// LocalHistory provides an in-memory implementation of HistoryStore.
type LocalHistory struct {
	mu      sync.RWMutex
	imports []posapi.ImportRecord
	exports []posapi.ExportRecord
}

// NewLocalHistory instantiates an empty LocalHistory.
func NewLocalHistory() *LocalHistory {
	return &LocalHistory{}
}

// SetImports replaces the cached import history.
func (l *LocalHistory) SetImports(records []posapi.ImportRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.imports = append([]posapi.ImportRecord(nil), records...)
}

// SetExports replaces the cached export history.
func (l *LocalHistory) SetExports(records []posapi.ExportRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.exports = append([]posapi.ExportRecord(nil), records...)
}

// Imports returns a copy of the cached import history.
func (l *LocalHistory) Imports() ([]posapi.ImportRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]posapi.ImportRecord(nil), l.imports...), nil
}

// Exports returns a copy of the cached export history.
func (l *LocalHistory) Exports() ([]posapi.ExportRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]posapi.ExportRecord(nil), l.exports...), nil
}
