package launch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultLoader is the loader used when none is configured.
const DefaultLoader = "csv"

// Config selects a loader and the file it reads.
type Config struct {
	// Loader names a registered loader ("csv", "duckdb").
	Loader string

	// Path is the data file to read.
	Path string
}

// Loader reads a source file into a header and raw string rows.
// Type checking of the cells is shared by all loaders and happens in NewTable.
type Loader interface {
	Read(ctx context.Context, path string) (columns []string, rows [][]string, err error)
}

// Factory creates a Loader.
type Factory func() Loader

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a loader available under name. Loaders register themselves in init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Get returns the factory registered under name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// IsRegistered reports whether a loader is registered under name.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// ListLoaders returns the registered loader names in sorted order.
func ListLoaders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewLoader returns a new instance of the named loader.
func NewLoader(name string) (Loader, error) {
	if name == "" {
		name = DefaultLoader
	}
	factory, ok := Get(name)
	if !ok {
		return nil, &UnknownLoaderError{Name: name, Available: ListLoaders()}
	}
	return factory(), nil
}

// Load reads cfg.Path with the configured loader and derives the dataset.
func Load(ctx context.Context, cfg Config) (*Dataset, error) {
	loader, err := NewLoader(cfg.Loader)
	if err != nil {
		return nil, err
	}

	columns, rows, err := loader.Read(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.Path, err)
	}

	table, err := NewTable(columns, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.Path, err)
	}

	ds, err := NewDataset(table)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Path, err)
	}
	ds.Source = cfg.Path

	return ds, nil
}
