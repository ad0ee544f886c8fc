package recording

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/inkdraw/inkdraw/canvas"
)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register registers a backend factory for a file extension (without
// the dot, lowercase). It is typically called from init() in backend
// packages, following the database/sql driver pattern:
//
//	func init() {
//	    recording.Register("pdf", func(engine canvas.TextLayoutEngine) recording.Backend {
//	        return New(engine)
//	    })
//	}
//
// Register panics if factory is nil or the extension is already
// registered, so duplicate registrations are caught during program
// initialization instead of silently overwriting backends.
func Register(ext string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	ext = strings.ToLower(ext)
	if _, dup := backends[ext]; dup {
		panic("recording: Register called twice for " + ext)
	}
	backends[ext] = factory
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing to clean up between tests.
// If the extension is not registered, this is a no-op.
func Unregister(ext string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, strings.ToLower(ext))
}

// NewBackend creates a backend for a file extension. The extension is
// matched case-insensitively, with or without a leading dot.
//
// Returns an error when no backend is registered for the extension.
// The error message includes a hint about forgotten imports.
func NewBackend(ext string, engine canvas.TextLayoutEngine) (Backend, error) {
	key := strings.ToLower(strings.TrimPrefix(ext, "."))

	registryMu.RLock()
	factory, ok := backends[key]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("recording: unknown output format %q (forgotten import?)", ext)
	}
	return factory(engine), nil
}

// Extensions returns a sorted list of registered file extensions.
func Extensions() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	exts := make([]string, 0, len(backends))
	for ext := range backends {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsRegistered checks if a backend is registered for the extension.
func IsRegistered(ext string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}
