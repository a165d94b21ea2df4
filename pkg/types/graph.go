package types

// Graph is the set of frames loaded in one session, ordered by insertion.
// Insertion order is the first-occurrence order the persistence document
// preserves, so it is stable across save/load round trips.
//
// Graph is not internally synchronized; it is owned and mutated by a single
// goroutine. Frames referenced by several multi-parent strategies are
// read-shared.
type Graph struct {
	frames []*Frame
	byID   map[string]*Frame
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{byID: make(map[string]*Frame)}
}

// Add appends a frame to the graph. Returns ErrNilFrame for nil input and
// ErrDuplicateFrameID when a frame with the same ID is already present.
func (g *Graph) Add(f *Frame) error {
	if f == nil {
		return ErrNilFrame
	}
	if _, exists := g.byID[f.ID()]; exists {
		return ErrDuplicateFrameID
	}
	g.frames = append(g.frames, f)
	g.byID[f.ID()] = f
	return nil
}

// Frame returns the frame with the given ID, or ErrFrameNotFound.
func (g *Graph) Frame(id string) (*Frame, error) {
	f, ok := g.byID[id]
	if !ok {
		return nil, ErrFrameNotFound
	}
	return f, nil
}

// Frames returns the frames in insertion order. The returned slice is a
// copy; the frames themselves are shared.
func (g *Graph) Frames() []*Frame {
	out := make([]*Frame, len(g.frames))
	copy(out, g.frames)
	return out
}

// Len returns the number of frames in the graph.
func (g *Graph) Len() int {
	return len(g.frames)
}

// Remove deletes the frame with the given ID from the graph. Returns
// ErrFrameNotFound if no such frame exists. Strategies elsewhere in the
// graph that reference the removed frame keep their (now external)
// reference; removal only unlists the frame.
func (g *Graph) Remove(id string) error {
	if _, ok := g.byID[id]; !ok {
		return ErrFrameNotFound
	}
	delete(g.byID, id)
	for i, f := range g.frames {
		if f.ID() == id {
			g.frames = append(g.frames[:i], g.frames[i+1:]...)
			break
		}
	}
	return nil
}
