package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spatialkit/anchorage/pkg/types"
)

// Codec encodes and decodes one strategy kind. Decoding dispatches only
// through registered codecs: an unregistered kind in a document is rejected
// outright, never instantiated.
type Codec struct {
	Encode func(s types.Strategy, enc *encodeContext) (strategyJSON, error)
	Decode func(rec strategyJSON, dec *decodeContext) (types.Strategy, error)
}

// Registry is the allow-list of strategy kinds keyed by discriminator.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register stores the codec under kind, guarding against duplicates.
func (r *Registry) Register(kind string, c Codec) error {
	if kind == "" {
		return fmt.Errorf("document: kind must not be empty")
	}
	if c.Encode == nil || c.Decode == nil {
		return fmt.Errorf("document: codec for %q is incomplete", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codecs[kind]; exists {
		return fmt.Errorf("document: %q: %w", kind, types.ErrKindAlreadyRegistered)
	}
	r.codecs[kind] = c
	return nil
}

// codec returns the codec registered for kind.
func (r *Registry) codec(kind string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[kind]
	return c, ok
}

// Kinds returns the registered discriminators in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
