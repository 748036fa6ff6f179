// Package storage persists the committed drawing and settings as key/value blobs.
package storage

import "errors"

// Keys used by the canvas for its persisted state.
const (
	KeyDrawing    = "doodle-drawing"
	KeyBackground = "doodle-bg-color"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Store is a simple blob store. Implementations must be safe for concurrent use:
// the export server and plugins read while the UI loop writes.
type Store interface {
	// Save writes blob under key, replacing any previous value.
	Save(key string, blob []byte) error
	// Load returns the blob stored under key; ok is false when absent.
	Load(key string) (blob []byte, ok bool, err error)
	// Close releases resources held by the store.
	Close() error
}
