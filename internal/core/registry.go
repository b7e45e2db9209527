package core

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// ExportFunc writes rows to w in one file format.
type ExportFunc func(w io.Writer, rows []InventoryRow) error

var (
	registry   = make(map[string]ExportFormat)
	registryMu sync.RWMutex
)

// Register adds an export format to the registry.
// Panics if a format with the same key is already registered.
func Register(f ExportFormat) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[f.Key]; exists {
		panic(fmt.Sprintf("export format already registered: %s", f.Key))
	}
	if f.Write == nil {
		panic(fmt.Sprintf("export format %s has no writer", f.Key))
	}
	if f.Extension == "" {
		f.Extension = f.Key
	}

	registry[f.Key] = f
}

// Get returns an export format by key.
// Returns false if not found.
func Get(key string) (ExportFormat, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[key]
	return f, ok
}

// All returns all registered formats sorted by key, with "csv" first
// since it is the file the Tohands tool imports.
func All() []ExportFormat {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ExportFormat, 0, len(registry))
	for _, f := range registry {
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		if (result[i].Key == DefaultFormat) != (result[j].Key == DefaultFormat) {
			return result[i].Key == DefaultFormat
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// FormatCount returns the number of registered formats.
func FormatCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered formats.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ExportFormat)
}
