// JSON record structures for the frame graph document format. Vectors and
// quaternions serialize as named-component objects, never arrays, so fields
// can be added without breaking old documents.
package document

import "github.com/spatialkit/anchorage/pkg/types"

// documentVersion is the format version this package reads and writes.
const documentVersion = 1

// documentJSON is the top-level structure: an ordered list of frame
// records. Frame order is first-occurrence order; candidate reference
// markers index into it.
type documentJSON struct {
	Version int         `json:"version"`
	Frames  []frameJSON `json:"frames"`
}

// frameJSON represents one frame record.
type frameJSON struct {
	ID       string       `json:"id"`
	Strategy strategyJSON `json:"strategy"`
}

// strategyJSON is a polymorphic strategy node. Kind selects which of the
// optional field groups is meaningful; it must name a registered kind.
type strategyJSON struct {
	Kind string `json:"kind"`

	// Placed strategies: stationary, ray_refined, nudge_refined.
	Pose     *types.Pose   `json:"pose,omitempty"`
	Accuracy *float64      `json:"accuracy,omitempty"`
	Offset   *types.Offset `json:"offset,omitempty"`

	// native_anchor: the durable state lives in the native store; the
	// document only carries the reference.
	AnchorID string `json:"anchor_id,omitempty"`

	// multi_parent.
	Candidates []candidateJSON `json:"candidates,omitempty"`
}

// candidateJSON is one multi-parent candidate entry. Ref is a reference
// marker: the first-occurrence index of the parent frame in the document's
// frame list, never a duplicated copy of the frame.
type candidateJSON struct {
	Ref         int          `json:"ref"`
	Offset      types.Offset `json:"offset"`
	MinAccuracy *float64     `json:"min_accuracy,omitempty"`
}
