package document

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spatialkit/anchorage/pkg/types"
)

// Store saves and loads whole frame graphs, sequencing the native
// persistence phase around the structural one: native saves run before the
// document is finalized so it can embed the anchor IDs they produce, and
// native loads run after every frame is structurally present so they can
// cross-reference other frames.
type Store struct {
	registry *Registry
	logger   *zap.Logger
}

// NewStore returns a store over the given registry. A nil logger disables
// logging.
func NewStore(registry *Registry, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{registry: registry, logger: logger}
}

// Save persists the graph: first the native phase, invoking SaveNative
// exactly once per native-persisting strategy, then the structural encode.
// A failed or cancelled native save fails the whole operation before any
// document bytes exist; the prior document remains the durable truth.
func (s *Store) Save(ctx context.Context, g *types.Graph) ([]byte, error) {
	for _, f := range g.Frames() {
		np, ok := f.Strategy().(types.NativePersister)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := np.SaveNative(ctx); err != nil {
			s.logger.Error("native save failed", zap.String("frame", f.ID()), zap.Error(err))
			return nil, fmt.Errorf("native save frame %q: %w", f.ID(), err)
		}
		s.logger.Debug("native save", zap.String("frame", f.ID()))
	}

	data, err := Encode(g, s.registry)
	if err != nil {
		return nil, err
	}
	s.logger.Info("graph saved", zap.Int("frames", g.Len()))
	return data, nil
}

// Load materializes a graph from document bytes: the structural decode is
// all-or-nothing, and afterwards LoadNative runs exactly once per
// native-persisting strategy. Any native failure or cancellation discards
// the graph; a partially loaded graph is never published.
func (s *Store) Load(ctx context.Context, data []byte, native types.NativeStore) (*types.Graph, error) {
	g, err := Decode(data, s.registry, native)
	if err != nil {
		return nil, err
	}

	for _, f := range g.Frames() {
		np, ok := f.Strategy().(types.NativePersister)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := np.LoadNative(ctx); err != nil {
			s.logger.Error("native load failed", zap.String("frame", f.ID()), zap.Error(err))
			return nil, fmt.Errorf("native load frame %q: %w", f.ID(), err)
		}
		s.logger.Debug("native load", zap.String("frame", f.ID()))
	}

	s.logger.Info("graph loaded", zap.Int("frames", g.Len()))
	return g, nil
}
