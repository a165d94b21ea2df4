// Shared helpers for anchorage CLI commands.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spatialkit/anchorage/internal/anchordb"
	"github.com/spatialkit/anchorage/internal/document"
	"github.com/spatialkit/anchorage/pkg/types"
)

// openNativeStore validates the session config, resolves the data
// directory, and opens the SQLite anchor store. The caller must defer
// store.Close().
func openNativeStore() (*anchordb.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		NativeStore: configNativeStore,
		DataDir:     dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	store, err := anchordb.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open anchor store: %w", err)
	}

	return store, nil
}

// newDocumentStore builds a document store with the built-in strategy codecs
// and a logger selected by the --verbose flag.
func newDocumentStore() (*document.Store, error) {
	logger := zap.NewNop()
	if flagVerbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		logger = l
	}
	return document.NewStore(document.DefaultRegistry(), logger), nil
}

// readDocument reads a frame document from disk.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}
