package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spatialkit/anchorage/pkg/types"
)

// errNotReady marks a reference to a frame that exists in the document but
// has not been materialized yet in the current pass. Decoding retries such
// strategies once their dependencies exist.
var errNotReady = errors.New("referenced frame not yet materialized")

// decodeContext carries the materialization arena and the native store
// collaborator through strategy decoding. Reference markers resolve to the
// already-materialized frame instances, never to placeholders, so shared
// parents come out of a load as truly shared objects.
type decodeContext struct {
	frames []*types.Frame
	native types.NativeStore
}

// frame resolves a reference marker. Out-of-range markers are dangling;
// in-range markers whose frame is not built yet report errNotReady.
func (d *decodeContext) frame(ref int) (*types.Frame, error) {
	if ref < 0 || ref >= len(d.frames) {
		return nil, fmt.Errorf("ref %d: %w", ref, types.ErrDanglingReference)
	}
	if d.frames[ref] == nil {
		return nil, errNotReady
	}
	return d.frames[ref], nil
}

// Decode parses a document into a live frame graph, structurally only: the
// native persistence phase is the caller's responsibility and runs after
// every frame exists. The load is all-or-nothing; any malformed record
// fails the whole operation with no frames published.
func Decode(data []byte, reg *Registry, native types.NativeStore) (*types.Graph, error) {
	var doc documentJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("version %d: %w", doc.Version, types.ErrUnsupportedVersion)
	}
	if err := validate(doc, reg); err != nil {
		return nil, err
	}

	dec := &decodeContext{frames: make([]*types.Frame, len(doc.Frames)), native: native}

	// Materialize strategies in passes: a multi-parent record whose
	// candidates are not all built yet is retried after the frames it
	// references exist. Validation already ruled out dangling markers, so
	// a pass without progress means the references form a cycle.
	remaining := len(doc.Frames)
	for remaining > 0 {
		progress := false
		for i, rec := range doc.Frames {
			if dec.frames[i] != nil {
				continue
			}
			codec, _ := reg.codec(rec.Strategy.Kind)
			s, err := codec.Decode(rec.Strategy, dec)
			if errors.Is(err, errNotReady) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("decode frame %q: %w", rec.ID, err)
			}
			f, err := types.NewFrame(rec.ID, s)
			if err != nil {
				return nil, fmt.Errorf("frame %q: %w", rec.ID, err)
			}
			dec.frames[i] = f
			remaining--
			progress = true
		}
		if !progress {
			return nil, types.ErrReferenceCycle
		}
	}

	g := types.NewGraph()
	for _, f := range dec.frames {
		if err := g.Add(f); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// validate checks the whole document before anything is instantiated:
// non-empty unique IDs, registered strategy kinds, and in-range candidate
// reference markers.
func validate(doc documentJSON, reg *Registry) error {
	seen := make(map[string]bool, len(doc.Frames))
	for _, rec := range doc.Frames {
		if rec.ID == "" {
			return types.ErrFrameIDEmpty
		}
		if seen[rec.ID] {
			return fmt.Errorf("frame %q: %w", rec.ID, types.ErrDuplicateFrameID)
		}
		seen[rec.ID] = true

		if _, ok := reg.codec(rec.Strategy.Kind); !ok {
			return fmt.Errorf("frame %q kind %q: %w", rec.ID, rec.Strategy.Kind, types.ErrUnknownStrategyKind)
		}
		for _, c := range rec.Strategy.Candidates {
			if c.Ref < 0 || c.Ref >= len(doc.Frames) {
				return fmt.Errorf("frame %q ref %d: %w", rec.ID, c.Ref, types.ErrDanglingReference)
			}
		}
	}
	return nil
}
