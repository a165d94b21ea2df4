package document

import (
	"encoding/json"
	"fmt"

	"github.com/spatialkit/anchorage/pkg/types"
)

// encodeContext is the first-occurrence arena built over a graph during
// encode. Every frame is emitted fully exactly once, in graph order;
// candidate references serialize as indices into that order.
type encodeContext struct {
	refs map[*types.Frame]int
}

// refFor returns the reference marker for a frame, or ErrDanglingReference
// when the frame is not part of the encoded set.
func (e *encodeContext) refFor(f *types.Frame) (int, error) {
	ref, ok := e.refs[f]
	if !ok {
		id := "<nil>"
		if f != nil {
			id = f.ID()
		}
		return 0, fmt.Errorf("frame %q: %w", id, types.ErrDanglingReference)
	}
	return ref, nil
}

// Encode serializes the graph into a document using the registered codecs.
// Frames are emitted in graph (first-occurrence) order; shared parents are
// emitted once and referenced by marker everywhere else, so the reference
// topology survives a round trip.
func Encode(g *types.Graph, reg *Registry) ([]byte, error) {
	frames := g.Frames()
	enc := &encodeContext{refs: make(map[*types.Frame]int, len(frames))}
	for i, f := range frames {
		enc.refs[f] = i
	}

	doc := documentJSON{Version: documentVersion, Frames: make([]frameJSON, 0, len(frames))}
	for _, f := range frames {
		if f.ID() == "" {
			return nil, types.ErrFrameIDEmpty
		}
		kind := f.Strategy().Kind()
		codec, ok := reg.codec(kind)
		if !ok {
			return nil, fmt.Errorf("frame %q kind %q: %w", f.ID(), kind, types.ErrUnknownStrategyKind)
		}
		rec, err := codec.Encode(f.Strategy(), enc)
		if err != nil {
			return nil, fmt.Errorf("encode frame %q: %w", f.ID(), err)
		}
		doc.Frames = append(doc.Frames, frameJSON{ID: f.ID(), Strategy: rec})
	}

	return json.MarshalIndent(doc, "", "  ")
}
